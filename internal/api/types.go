package api

import (
	"github.com/cours-de-latin/dupfinder"
	"github.com/cours-de-latin/dupfinder/internal/remote"
)

// ---- JSON request / response types ---------------------------------------

type textRequest struct {
	Text string `json:"text"`
}

// DuplicateJSON is one reported word with its highlighting flags.
type DuplicateJSON struct {
	Word   string `json:"word"`
	Strict bool   `json:"strict"`
	Lemma  bool   `json:"lemma"`
}

// DuplicatesResponse is the body returned by /api/duplicates.
type DuplicatesResponse struct {
	Duplicates  []DuplicateJSON `json:"duplicates"`
	StrictCount int             `json:"strict_count"`
	LemmaCount  int             `json:"lemma_count"`
	Words       []string        `json:"words"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts a report to its JSON shape.
func ToResponse(r *dupfinder.Report) DuplicatesResponse {
	out := DuplicatesResponse{
		Duplicates:  make([]DuplicateJSON, 0, len(r.Items)),
		StrictCount: r.StrictCount,
		LemmaCount:  r.LemmaCount,
		Words:       r.Words,
	}
	for _, it := range r.Items {
		out.Duplicates = append(out.Duplicates, DuplicateJSON{
			Word:   it.Word,
			Strict: it.Strict,
			Lemma:  it.Lemma,
		})
	}
	return out
}

func toAnalyzeResponse(entries []dupfinder.Interpretation) remote.AnalyzeResponse {
	out := remote.AnalyzeResponse{Interpretations: make([]remote.Entry, 0, len(entries))}
	for _, e := range entries {
		out.Interpretations = append(out.Interpretations, remote.Entry{Form: e.Form, Lemma: e.Lemma})
	}
	return out
}
