package dupfinder

// Item is one reported duplicate with the detectors that flagged it.
type Item struct {
	Word string
	// Strict is set when Word is repeated verbatim in the text.
	Strict bool
	// Lemma is set when Word shares a lemma with another distinct word.
	Lemma bool
}

// Report is the result of one analysis run.
type Report struct {
	// Items holds every duplicate once, in canonical order.
	Items []Item
	// StrictCount is the number of strict duplicates.
	StrictCount int
	// LemmaCount is the number of lemma duplicates. A word flagged by both
	// detectors counts in both StrictCount and LemmaCount.
	LemmaCount int
	// Words lists the distinct tokens of the text in canonical order,
	// duplicated or not.
	Words []string
}

// Assemble merges the strict and lemma duplicates into a Report. Counts are
// taken from the two sets before they are merged.
func Assemble(strict []string, lemma map[string]struct{}, tokens []string) *Report {
	flags := make(map[string]*Item, len(strict)+len(lemma))
	item := func(w string) *Item {
		it, ok := flags[w]
		if !ok {
			it = &Item{Word: w}
			flags[w] = it
		}
		return it
	}
	strictSet := make(map[string]struct{}, len(strict))
	for _, w := range strict {
		strictSet[w] = struct{}{}
		item(w).Strict = true
	}
	for w := range lemma {
		item(w).Lemma = true
	}

	words := make([]string, 0, len(flags))
	for w := range flags {
		words = append(words, w)
	}
	SortWords(words)

	r := &Report{
		Items:       make([]Item, 0, len(words)),
		StrictCount: len(strictSet),
		LemmaCount:  len(lemma),
		Words:       Distinct(tokens),
	}
	for _, w := range words {
		r.Items = append(r.Items, *flags[w])
	}
	SortWords(r.Words)
	return r
}

// Duplicates returns the reported words in order.
func (r *Report) Duplicates() []string {
	out := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.Word)
	}
	return out
}

// StrictWords returns the reported words flagged as strict duplicates.
func (r *Report) StrictWords() []string {
	var out []string
	for _, it := range r.Items {
		if it.Strict {
			out = append(out, it.Word)
		}
	}
	return out
}

// LemmaWords returns the reported words flagged as lemma duplicates.
func (r *Report) LemmaWords() []string {
	var out []string
	for _, it := range r.Items {
		if it.Lemma {
			out = append(out, it.Word)
		}
	}
	return out
}
