package estimator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// WidthVector holds the bit-widths of an operation instance: one entry per
// operand followed by the result width.
type WidthVector []int

// Validate checks that the vector is non-empty and that every width is
// positive.
func (w WidthVector) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("%w: no widths given", ErrInvalidWidthVector)
	}
	for i, width := range w {
		if width <= 0 {
			return fmt.Errorf("%w: width %d at position %d is not positive", ErrInvalidWidthVector, width, i)
		}
	}
	return nil
}

// Equal reports whether both vectors hold the same widths in the same order.
func (w WidthVector) Equal(other WidthVector) bool {
	return slices.Equal(w, other)
}

// Dominates reports whether w is at least as wide as other in every
// dimension. Vectors of different length never dominate each other.
func (w WidthVector) Dominates(other WidthVector) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] < other[i] {
			return false
		}
	}
	return true
}

// Total returns the sum of all widths.
func (w WidthVector) Total() int {
	total := 0
	for _, width := range w {
		total += width
	}
	return total
}

// Join formats the widths separated by sep.
func (w WidthVector) Join(sep string) string {
	parts := make([]string, len(w))
	for i, width := range w {
		parts[i] = strconv.Itoa(width)
	}
	return strings.Join(parts, sep)
}

func (w WidthVector) String() string {
	return "[" + w.Join(", ") + "]"
}

// Clone returns an independent copy of w.
func (w WidthVector) Clone() WidthVector {
	if w == nil {
		return nil
	}
	return slices.Clone(w)
}

// compareWidths orders vectors by total width, then lexicographically.
func compareWidths(a, b WidthVector) int {
	if ta, tb := a.Total(), b.Total(); ta != tb {
		if ta < tb {
			return -1
		}
		return 1
	}
	return slices.Compare(a, b)
}
