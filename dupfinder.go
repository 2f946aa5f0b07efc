// Package dupfinder reports repeated words in a text. It finds strict
// duplicates, words repeated verbatim, and lemma duplicates, distinct
// inflected forms that share a lemma according to a morphological
// analyzer.
//
// A run is one-shot: every intermediate value lives only for the duration
// of Finder.Find, and nothing is kept between runs.
package dupfinder

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Finder runs the duplicate search pipeline against an Analyzer.
type Finder struct {
	analyzer   Analyzer
	logger     *zap.Logger
	sequential bool
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSequential disables running the strict search alongside the
// analyzer call. Results are identical either way.
func WithSequential() Option {
	return func(f *Finder) {
		f.sequential = true
	}
}

// New returns a Finder that groups words with analyzer a. If a is shared
// between concurrent Find calls it must be safe for concurrent use; wrap it
// with Limit otherwise.
func New(a Analyzer, opts ...Option) *Finder {
	f := &Finder{
		analyzer: a,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find analyzes text and returns its duplicate Report. Blank text fails with
// ErrEmptyInput before anything runs; analyzer failures fail the whole run
// with an error wrapping ErrAnalyzerUnavailable. Malformed analyzer entries
// are skipped.
func (f *Finder) Find(ctx context.Context, text string) (*Report, error) {
	doc, err := NewDocument(text)
	if err != nil {
		return nil, err
	}

	var (
		tokens []string
		strict []string
		lemmas *LemmaMap
	)
	searchStrict := func() {
		tokens = Tokenize(Normalize(doc.Text()))
		strict = FindStrictDuplicates(tokens)
	}
	group := func(ctx context.Context) error {
		var err error
		lemmas, err = GroupByLemma(ctx, f.analyzer, doc.Text())
		return err
	}

	if f.sequential {
		searchStrict()
		err = group(ctx)
	} else {
		p := pool.New().WithContext(ctx).WithCancelOnError()
		p.Go(func(context.Context) error {
			searchStrict()
			return nil
		})
		p.Go(group)
		err = p.Wait()
	}
	if err != nil {
		f.logger.Warn("Analysis aborted", zap.Error(err))
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	for _, in := range lemmas.Skipped {
		f.logger.Warn("Skipped malformed analyzer entry",
			zap.String("form", in.Form),
			zap.String("lemma", in.Lemma))
	}

	lemm := FindLemmaDuplicates(tokens, lemmas)
	report := Assemble(strict, lemm, tokens)

	f.logger.Debug("Analysis finished",
		zap.Int("tokens", len(tokens)),
		zap.Int("lemmaGroups", len(lemmas.Lemmas)),
		zap.Int("skippedEntries", len(lemmas.Skipped)),
		zap.Int("strictDuplicates", report.StrictCount),
		zap.Int("lemmaDuplicates", report.LemmaCount))

	return report, nil
}

// Lemmatize runs only the grouping stage on text, for callers that want to
// inspect the analyzer's view of a document.
func (f *Finder) Lemmatize(ctx context.Context, text string) (*LemmaMap, error) {
	doc, err := NewDocument(text)
	if err != nil {
		return nil, err
	}
	return GroupByLemma(ctx, f.analyzer, doc.Text())
}
