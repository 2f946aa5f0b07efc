package dupfinder

import "errors"

var (
	// ErrEmptyInput is returned when the submitted text is empty or blank.
	// No analysis is started.
	ErrEmptyInput = errors.New("no text to analyze")

	// ErrAnalyzerUnavailable is returned when the morphological analyzer
	// cannot be reached, fails to initialize or fails while analyzing.
	// The run is aborted and no Report is produced.
	ErrAnalyzerUnavailable = errors.New("morphological analyzer unavailable")

	// ErrMalformedEntry marks a single analyzer entry that cannot be split
	// into a surface form and a lemma. Such entries are skipped.
	ErrMalformedEntry = errors.New("malformed analyzer entry")
)
