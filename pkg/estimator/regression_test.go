package estimator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegression_Evaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		est    *Estimator
		widths WidthVector
		want   float64
	}{
		{
			name:   "constant only",
			est:    NewRegression(3, nil, nil),
			widths: WidthVector{8},
			want:   3,
		},
		{
			name:   "identity on operand 0",
			est:    NewRegression(1, []Term{{Coefficient: 0.5, Transform: Identity, Operands: []int{0}}}, nil),
			widths: WidthVector{16, 16, 32},
			want:   9,
		},
		{
			name:   "log2 on the result width",
			est:    NewRegression(0, []Term{{Coefficient: 2, Transform: Log2, Operands: []int{2}}}, nil),
			widths: WidthVector{8, 8, 64},
			want:   12,
		},
		{
			name:   "square",
			est:    NewRegression(0, []Term{{Coefficient: 0.25, Transform: Square, Operands: []int{1}}}, nil),
			widths: WidthVector{1, 6},
			want:   9,
		},
		{
			name:   "product of two widths",
			est:    NewRegression(1, []Term{{Coefficient: 0.1, Transform: Product, Operands: []int{0, 1}}}, nil),
			widths: WidthVector{10, 20},
			want:   21,
		},
		{
			name: "several terms",
			est: NewRegression(-1, []Term{
				{Coefficient: 1, Transform: Identity, Operands: []int{0}},
				{Coefficient: 3, Transform: Log2, Operands: []int{1}},
			}, nil),
			widths: WidthVector{4, 32},
			want:   18,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.est.Evaluate(tt.widths)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Delay, 1e-9)
			assert.Equal(t, Exact, got.Confidence)
		})
	}
}

func TestRegression_IsDeterministic(t *testing.T) {
	t.Parallel()

	est := NewRegression(0.3, []Term{
		{Coefficient: 0.7, Transform: Log2, Operands: []int{0}},
		{Coefficient: 1.1, Transform: Product, Operands: []int{0, 1}},
	}, nil)
	widths := WidthVector{13, 37}

	first, err := est.Evaluate(widths)
	require.NoError(t, err)
	second, err := est.Evaluate(widths)
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(first.Delay), math.Float64bits(second.Delay))
}

func TestRegression_Domain(t *testing.T) {
	t.Parallel()

	est := NewRegression(1, []Term{{Coefficient: 1, Transform: Identity, Operands: []int{0}}},
		&Domain{Min: WidthVector{1, 1}, Max: WidthVector{64, 64}})

	inside, err := est.Evaluate(WidthVector{32, 64, 999})
	require.NoError(t, err)
	assert.Equal(t, Estimate{Delay: 33, Confidence: Exact}, inside)

	outside, err := est.Evaluate(WidthVector{128, 8})
	require.NoError(t, err)
	assert.Equal(t, Estimate{Delay: 129, Confidence: Extrapolated}, outside)

	short, err := est.Evaluate(WidthVector{8})
	require.NoError(t, err)
	assert.Equal(t, Extrapolated, short.Confidence)
}

func TestRegression_EvaluateErrors(t *testing.T) {
	t.Parallel()

	t.Run("operand beyond the query", func(t *testing.T) {
		est := NewRegression(0, []Term{{Coefficient: 1, Transform: Identity, Operands: []int{3}}}, nil)
		_, err := est.Evaluate(WidthVector{8, 8})
		assert.ErrorIs(t, err, ErrInvalidWidthVector)
	})

	t.Run("unknown transform", func(t *testing.T) {
		est := NewRegression(0, []Term{{Coefficient: 1, Transform: "cube", Operands: []int{0}}}, nil)
		_, err := est.Evaluate(WidthVector{8})
		assert.ErrorIs(t, err, ErrMalformedFormula)
		assert.ErrorContains(t, err, "want one of [identity log2 square product]")

		assert.ErrorContains(t, est.Validate(), "want one of [identity log2 square product]")
	})

	t.Run("empty width vector", func(t *testing.T) {
		_, err := NewRegression(1, nil, nil).Evaluate(nil)
		assert.ErrorIs(t, err, ErrInvalidWidthVector)
	})
}
