package dupfinder

// FindStrictDuplicates returns the tokens that occur more than once,
// compared exactly and case-sensitively, each listed once in canonical
// order.
func FindStrictDuplicates(tokens []string) []string {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	dupl := make([]string, 0)
	for t, n := range counts {
		if n > 1 {
			dupl = append(dupl, t)
		}
	}
	SortWords(dupl)
	return dupl
}

// FindLemmaDuplicates returns the tokens that share a lemma group with at
// least one other distinct token of the text. For each bucket of lemmas,
// the bucket's forms present among tokens are collected; when two or more
// are present, all of them are duplicates. The result is unordered.
func FindLemmaDuplicates(tokens []string, lemmas *LemmaMap) map[string]struct{} {
	dupl := make(map[string]struct{})
	if lemmas == nil {
		return dupl
	}
	present := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		present[t] = struct{}{}
	}
	for _, forms := range lemmas.Lemmas {
		var found []string
		for form := range forms {
			if _, ok := present[form]; ok {
				found = append(found, form)
			}
		}
		if len(found) < 2 {
			continue
		}
		for _, form := range found {
			dupl[form] = struct{}{}
		}
	}
	return dupl
}
