package dupfinder

import (
	"context"
)

// lexicon is a test analyzer: it segments text like the tokenizer and
// reports every lemma listed for a form, or the form itself tagged "ign".
type lexicon map[string][]string

func (l lexicon) Analyze(_ context.Context, text string) ([]Interpretation, error) {
	var out []Interpretation
	for _, form := range Tokenize(Normalize(text)) {
		lemmas, ok := l[form]
		if !ok {
			out = append(out, Interpretation{Form: form, Lemma: form + ":ign"})
			continue
		}
		for _, lemma := range lemmas {
			out = append(out, Interpretation{Form: form, Lemma: lemma})
		}
	}
	return out, nil
}

var polish = lexicon{
	"Kot":   {"kot:Sm1"},
	"kot":   {"kot:Sm1"},
	"kota":  {"kot:Sm1"},
	"kotem": {"kot:Sm1"},
	"pies":  {"pies:Sm1"},
	"psa":   {"pies:Sm1"},
	"psem":  {"pies:Sm1"},
	"biegł": {"biec:v"},
	"biegu": {"bieg:Sm3"},
	"mam":   {"mieć:v", "mama:Sf"},
	"mama":  {"mama:Sf"},
	"miał":  {"mieć:v", "miał:Sm3"},
}
