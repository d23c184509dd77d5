package estimator

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		est     *Estimator
		wantErr error
	}{
		{"fixed", NewFixed(2), nil},
		{"alias", NewAlias("add"), nil},
		{"bounding box", NewBoundingBox(Sample{Widths: WidthVector{8}, Delay: 1}), nil},
		{"regression", NewRegression(1, []Term{{Coefficient: 1, Transform: Product, Operands: []int{0, 2}}}, nil), nil},

		{"nil estimator", nil, ErrMalformedFormula},
		{"negative fixed delay", NewFixed(-1), ErrMalformedFormula},
		{"infinite fixed delay", NewFixed(math.Inf(1)), ErrMalformedFormula},
		{"alias without target", NewAlias(""), ErrMalformedFormula},
		{"unknown kind", &Estimator{Kind: Kind(42)}, ErrMalformedFormula},
		{"missing regression payload", &Estimator{Kind: KindRegression}, ErrMalformedFormula},

		{"empty sample set", NewBoundingBox(), ErrEmptySampleSet},
		{"missing bounding box payload", &Estimator{Kind: KindBoundingBox}, ErrEmptySampleSet},
		{
			"mixed dimensionality",
			NewBoundingBox(Sample{Widths: WidthVector{8}, Delay: 1}, Sample{Widths: WidthVector{8, 8}, Delay: 2}),
			ErrMalformedSampleSet,
		},
		{
			"duplicate sample",
			NewBoundingBox(Sample{Widths: WidthVector{8, 8}, Delay: 1}, Sample{Widths: WidthVector{8, 8}, Delay: 2}),
			ErrMalformedSampleSet,
		},
		{"zero width sample", NewBoundingBox(Sample{Widths: WidthVector{0}, Delay: 1}), ErrMalformedSampleSet},
		{"negative sample delay", NewBoundingBox(Sample{Widths: WidthVector{1}, Delay: -3}), ErrMalformedSampleSet},

		{
			"unknown transform",
			NewRegression(0, []Term{{Coefficient: 1, Transform: "sqrt", Operands: []int{0}}}, nil),
			ErrMalformedFormula,
		},
		{
			"product with one operand",
			NewRegression(0, []Term{{Coefficient: 1, Transform: Product, Operands: []int{0}}}, nil),
			ErrMalformedFormula,
		},
		{
			"negative operand",
			NewRegression(0, []Term{{Coefficient: 1, Transform: Identity, Operands: []int{-1}}}, nil),
			ErrMalformedFormula,
		},
		{
			"domain min above max",
			NewRegression(0, nil, &Domain{Min: WidthVector{8}, Max: WidthVector{4}}),
			ErrMalformedFormula,
		},
		{
			"domain length mismatch",
			NewRegression(0, nil, &Domain{Min: WidthVector{1}, Max: WidthVector{4, 4}}),
			ErrMalformedFormula,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.est.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	t.Run("regression", func(t *testing.T) {
		est := NewRegression(1, []Term{{Coefficient: 0.5, Transform: Identity, Operands: []int{0}}},
			&Domain{Min: WidthVector{1}, Max: WidthVector{64}})

		want := Summary{
			Kind:     "regression",
			Constant: 1,
			Terms:    []Term{{Coefficient: 0.5, Transform: Identity, Operands: []int{0}}},
			Domain:   &Domain{Min: WidthVector{1}, Max: WidthVector{64}},
		}
		if diff := cmp.Diff(want, est.Summary()); diff != "" {
			t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("alias reports the resolved kind", func(t *testing.T) {
		alias := NewAlias("add")
		require.NoError(t, alias.Alias.Bind(NewFixed(2)))

		got := alias.Summary()
		assert.Equal(t, "alias", got.Kind)
		assert.Equal(t, "add", got.Target)
		assert.Equal(t, "fixed", got.ResolvedKind)
	})

	t.Run("summary does not share samples", func(t *testing.T) {
		est := NewBoundingBox(Sample{Widths: WidthVector{8}, Delay: 1})
		s := est.Summary()
		s.Samples[0].Widths[0] = 1024
		assert.Equal(t, WidthVector{8}, est.BoundingBox.Samples[0].Widths)
	})
}
