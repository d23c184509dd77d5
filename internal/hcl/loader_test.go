package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/delaygen/internal/config"
	"github.com/vk/delaygen/pkg/estimator"
	"github.com/vk/delaygen/pkg/registry"
)

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// Act
	records, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "model.hcl"))

	// Assert
	require.NoError(t, err)
	want := []registry.Record{
		{Operation: "add", Estimator: estimator.NewFixed(2)},
		{Operation: "sub", Estimator: estimator.NewAlias("add")},
		{Operation: "mul", Estimator: estimator.NewRegression(1,
			[]estimator.Term{
				{Coefficient: 0.5, Transform: estimator.Identity, Operands: []int{0}},
				{Coefficient: 0.25, Transform: estimator.Product, Operands: []int{0, 1}},
			},
			&estimator.Domain{Min: estimator.WidthVector{1, 1, 1}, Max: estimator.WidthVector{64, 64, 64}},
		)},
		{Operation: "shll", Estimator: estimator.NewBoundingBox(
			estimator.Sample{Widths: estimator.WidthVector{8, 8, 8}, Delay: 10},
			estimator.Sample{Widths: estimator.WidthVector{32, 32, 32}, Delay: 20},
		)},
	}
	opts := cmp.Options{
		cmpopts.IgnoreUnexported(estimator.Alias{}),
		cmpopts.IgnoreFields(registry.Record{}, "Source"),
	}
	if diff := cmp.Diff(want, records, opts); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "testdata/model.hcl:1,1-9", records[0].Source)
}

func TestLoader_LoadBuildsRegistry(t *testing.T) {
	t.Parallel()

	records, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "model.hcl"))
	require.NoError(t, err)

	reg, err := registry.Build(context.Background(), records)
	require.NoError(t, err)

	got, err := reg.Lookup("mul", estimator.WidthVector{8, 8, 16})
	require.NoError(t, err)
	// 1 + 0.5*8 + 0.25*8*8
	assert.Equal(t, estimator.Estimate{Delay: 21, Confidence: estimator.Exact}, got)
}

func TestLoader_UnknownTransformIsValidationError(t *testing.T) {
	t.Parallel()

	src := `
op "mul" {
  regression {
    term {
      coefficient = 1
      transform   = cube
      operands    = [0]
    }
  }
}
`
	records, err := NewLoader().Parse(context.Background(), []byte(src), "model.hcl")
	require.NoError(t, err)
	assert.Equal(t, estimator.Transform("cube"), records[0].Estimator.Regression.Terms[0].Transform)

	_, err = registry.New(records)
	assert.ErrorIs(t, err, estimator.ErrMalformedFormula)
}

func TestLoader_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "syntax error",
			src:     `op "add" { fixed = }`,
			wantMsg: "model.hcl",
		},
		{
			name:    "unknown top-level block",
			src:     `operation "add" { fixed = 1 }`,
			wantMsg: "Unsupported block type",
		},
		{
			name:    "unknown attribute",
			src:     `op "add" { constant = 1 }`,
			wantMsg: "Unsupported argument",
		},
		{
			name:    "no strategy",
			src:     `op "add" {}`,
			wantMsg: "no delay strategy declared",
		},
		{
			name:    "wrong value type",
			src:     "op \"add\" {\n  fixed = \"fast\"\n}\n",
			wantMsg: "Unsuitable value type",
		},
		{
			name:    "transform of wrong type",
			src:     "op \"mul\" {\n  regression {\n    term {\n      coefficient = 1\n      transform = [1]\n      operands = [0]\n    }\n  }\n}\n",
			wantMsg: "transform must be a keyword or a string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewLoader().Parse(context.Background(), []byte(tt.src), "model.hcl")
			var pErr *config.ParseError
			require.ErrorAs(t, err, &pErr)
			assert.Equal(t, "model.hcl", pErr.Path)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestLoader_TwoStrategies(t *testing.T) {
	t.Parallel()

	src := "op \"add\" {\n  fixed = 1\n  alias = \"sub\"\n}\n"
	_, err := NewLoader().Parse(context.Background(), []byte(src), "model.hcl")
	assert.ErrorIs(t, err, config.ErrMultipleStrategies)
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
