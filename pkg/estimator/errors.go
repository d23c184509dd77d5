package estimator

import "errors"

var (
	// ErrMalformedFormula reports a structurally invalid estimator, most often
	// a regression term that names an unknown width transform.
	ErrMalformedFormula = errors.New("malformed formula")

	// ErrEmptySampleSet reports a bounding-box estimator without samples.
	ErrEmptySampleSet = errors.New("empty sample set")

	// ErrMalformedSampleSet reports a bounding-box estimator whose samples
	// disagree on dimensionality, carry non-positive widths, or repeat a
	// width vector.
	ErrMalformedSampleSet = errors.New("malformed sample set")

	// ErrInvalidWidthVector reports a query that the estimator cannot answer.
	ErrInvalidWidthVector = errors.New("invalid width vector")

	// ErrUnresolvedAlias reports an alias evaluated before it was bound to
	// its target.
	ErrUnresolvedAlias = errors.New("unresolved alias")
)
