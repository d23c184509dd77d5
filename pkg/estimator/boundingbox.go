package estimator

import "fmt"

// Sample is one measured data point of a bounding-box estimator.
type Sample struct {
	Widths WidthVector
	Delay  float64
}

// BoundingBox estimates delays from measured samples.
//
// A query that matches a sample returns its delay as Exact. Otherwise the
// smallest sample that dominates the query in every dimension is used
// (Interpolated). When no sample dominates the query, the largest sample is
// used (Extrapolated). Samples are ordered by total width, then
// lexicographically, with declaration order breaking remaining ties.
type BoundingBox struct {
	Samples []Sample
}

func (b *BoundingBox) evaluate(query WidthVector) (Estimate, error) {
	if len(b.Samples) == 0 {
		return Estimate{}, ErrEmptySampleSet
	}
	if err := query.Validate(); err != nil {
		return Estimate{}, err
	}

	var bounding, largest *Sample
	for i := range b.Samples {
		s := &b.Samples[i]
		if len(s.Widths) != len(query) {
			continue
		}
		if s.Widths.Equal(query) {
			return Estimate{Delay: s.Delay, Confidence: Exact}, nil
		}
		if largest == nil || compareWidths(s.Widths, largest.Widths) > 0 {
			largest = s
		}
		if s.Widths.Dominates(query) && (bounding == nil || compareWidths(s.Widths, bounding.Widths) < 0) {
			bounding = s
		}
	}

	switch {
	case bounding != nil:
		return Estimate{Delay: bounding.Delay, Confidence: Interpolated}, nil
	case largest != nil:
		return Estimate{Delay: largest.Delay, Confidence: Extrapolated}, nil
	default:
		return Estimate{}, fmt.Errorf("%w: no sample has %d widths", ErrInvalidWidthVector, len(query))
	}
}

func (b *BoundingBox) validate() error {
	if len(b.Samples) == 0 {
		return ErrEmptySampleSet
	}
	dims := len(b.Samples[0].Widths)
	for i, s := range b.Samples {
		if len(s.Widths) != dims {
			return fmt.Errorf("%w: sample %d has %d widths, sample 0 has %d", ErrMalformedSampleSet, i, len(s.Widths), dims)
		}
		if err := s.Widths.Validate(); err != nil {
			return fmt.Errorf("%w: sample %d: %v", ErrMalformedSampleSet, i, err)
		}
		if s.Delay < 0 || !isFinite(s.Delay) {
			return fmt.Errorf("%w: sample %d has invalid delay %v", ErrMalformedSampleSet, i, s.Delay)
		}
		for j := range i {
			if b.Samples[j].Widths.Equal(s.Widths) {
				return fmt.Errorf("%w: samples %d and %d share widths %s", ErrMalformedSampleSet, j, i, s.Widths)
			}
		}
	}
	return nil
}
