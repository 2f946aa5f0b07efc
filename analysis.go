package dupfinder

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/semaphore"
)

// TagSeparator separates a lemma's base form from its grammatical tags,
// as in "kot:Sm1" or "biec:v".
const TagSeparator = ":"

// Interpretation is one analyzer entry for an occurrence in the text.
type Interpretation struct {
	// Form is the surface form as it appears in the text.
	Form string
	// Lemma is the lemma with its tags, e.g. "kot:Sm1".
	Lemma string
}

// Analyzer is a morphological analyzer. Analyze receives the whole raw
// text, does its own segmentation and returns every candidate lemma of
// every occurrence, without disambiguation.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]Interpretation, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, text string) ([]Interpretation, error)

// Analyze calls f(ctx, text).
func (f AnalyzerFunc) Analyze(ctx context.Context, text string) ([]Interpretation, error) {
	return f(ctx, text)
}

// ParseInterpretation returns the surface form and the lemma base of in,
// the base being the text before the first TagSeparator. Entries without
// a separator, with an empty form or with an empty base are rejected with
// ErrMalformedEntry.
func ParseInterpretation(in Interpretation) (string, string, error) {
	if in.Form == "" {
		return "", "", fmt.Errorf("%w: empty surface form", ErrMalformedEntry)
	}
	base, _, found := strings.Cut(in.Lemma, TagSeparator)
	if !found {
		return "", "", fmt.Errorf("%w: %q has no tag separator", ErrMalformedEntry, in.Lemma)
	}
	if base == "" {
		return "", "", fmt.Errorf("%w: %q has an empty lemma", ErrMalformedEntry, in.Lemma)
	}
	return in.Form, base, nil
}

// limitedAnalyzer bounds the number of concurrent calls to an analyzer.
type limitedAnalyzer struct {
	analyzer Analyzer
	sem      *semaphore.Weighted
}

// Limit returns an Analyzer that lets at most n calls into a run at once.
// Limit(a, 1) serializes access to a handle that is not safe for
// concurrent use. Waiting for a slot honors ctx.
func Limit(a Analyzer, n int64) Analyzer {
	if n < 1 {
		n = 1
	}
	return &limitedAnalyzer{analyzer: a, sem: semaphore.NewWeighted(n)}
}

// Analyze implements Analyzer.
func (l *limitedAnalyzer) Analyze(ctx context.Context, text string) ([]Interpretation, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: waiting for analyzer: %w", ErrAnalyzerUnavailable, err)
	}
	defer l.sem.Release(1)
	return l.analyzer.Analyze(ctx, text)
}
