package emitter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/delaygen/internal/render"
	"github.com/vk/delaygen/pkg/estimator"
	"github.com/vk/delaygen/pkg/registry"
)

const demoArtifact = `// DO NOT EDIT: this file is AUTOMATICALLY GENERATED and should not be changed.
package delaymodels

import (
	"github.com/vk/delaygen/pkg/estimator"
	"github.com/vk/delaygen/pkg/registry"
)

// DemoDelayModel is the "demo" delay model.
var DemoDelayModel = registry.MustNew([]registry.Record{
	{Operation: "add", Estimator: estimator.NewFixed(2)},
	{Operation: "sub", Estimator: estimator.NewAlias("add")},
	{Operation: "mul", Estimator: estimator.NewRegression(1, []estimator.Term{
		{Coefficient: 0.5, Transform: "identity", Operands: []int{0}},
	}, &estimator.Domain{Min: estimator.WidthVector{1}, Max: estimator.WidthVector{64}})},
	{Operation: "shll", Estimator: estimator.NewBoundingBox(
		estimator.Sample{Widths: estimator.WidthVector{8, 8, 8}, Delay: 10},
	)},
})

func init() {
	registry.MustRegister("demo", DemoDelayModel)
}
`

func demoRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Record{
		{Operation: "add", Estimator: estimator.NewFixed(2)},
		{Operation: "sub", Estimator: estimator.NewAlias("add")},
		{Operation: "mul", Estimator: estimator.NewRegression(1,
			[]estimator.Term{{Coefficient: 0.5, Transform: estimator.Identity, Operands: []int{0}}},
			&estimator.Domain{Min: estimator.WidthVector{1}, Max: estimator.WidthVector{64}})},
		{Operation: "shll", Estimator: estimator.NewBoundingBox(
			estimator.Sample{Widths: estimator.WidthVector{8, 8, 8}, Delay: 10})},
	})
	require.NoError(t, err)
	return reg
}

func TestEmit_DefaultTemplate(t *testing.T) {
	t.Parallel()

	// Arrange
	reg := demoRegistry(t)
	e := New(render.NewTemplateRenderer())
	var out bytes.Buffer

	// Act
	err := e.Emit(context.Background(), &out, reg, "demo")

	// Assert
	require.NoError(t, err)
	if diff := cmp.Diff(demoArtifact, out.String()); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestEmit_RegressionWithoutTerms(t *testing.T) {
	t.Parallel()

	reg, err := registry.New([]registry.Record{
		{Operation: "empty_reg", Estimator: estimator.NewRegression(3, nil, nil)},
	})
	require.NoError(t, err)
	var out bytes.Buffer

	require.NoError(t, New(render.NewTemplateRenderer()).Emit(context.Background(), &out, reg, "demo"))

	assert.Contains(t, out.String(),
		"\t{Operation: \"empty_reg\", Estimator: estimator.NewRegression(3, nil, nil)},\n")
	assert.NotContains(t, out.String(), "[]estimator.Term{\n\t}")
}

func TestEmit_Deterministic(t *testing.T) {
	t.Parallel()

	reg := demoRegistry(t)
	e := New(render.NewTemplateRenderer(), WithPackage("models"))

	var first, second bytes.Buffer
	require.NoError(t, e.Emit(context.Background(), &first, reg, "unit_test"))
	require.NoError(t, e.Emit(context.Background(), &second, reg, "unit_test"))

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Contains(t, first.String(), "package models\n")
	assert.Contains(t, first.String(), "var UnitTestDelayModel = ")
	assert.Contains(t, first.String(), `registry.MustRegister("unit_test", UnitTestDelayModel)`)
}

func TestEmit_CustomTemplate(t *testing.T) {
	t.Parallel()

	tmpl := `{{.camel_case_name}}:{{range .operations}} {{.Operation}}={{.Estimator.Kind}}{{if .Estimator.ResolvedKind}}->{{.Estimator.ResolvedKind}}{{end}}{{end}}`
	e := New(render.NewTemplateRenderer(), WithTemplate(tmpl))
	var out bytes.Buffer

	require.NoError(t, e.Emit(context.Background(), &out, demoRegistry(t), "demo"))
	assert.Equal(t, Banner+"\nDemo: add=fixed sub=alias->fixed mul=regression shll=bounding_box\n", out.String())
}

func TestEmit_RenderErrorWritesNothing(t *testing.T) {
	t.Parallel()

	e := New(render.NewTemplateRenderer(), WithTemplate(`{{.undefined_binding}}`))
	var out bytes.Buffer

	err := e.Emit(context.Background(), &out, demoRegistry(t), "demo")

	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorContains(t, err, "undefined_binding")
	assert.Zero(t, out.Len())
}

type failingRenderer struct{ err error }

func (f failingRenderer) Render(string, map[string]any) (string, error) { return "", f.err }

func TestEmit_RendererMessageKept(t *testing.T) {
	t.Parallel()

	cause := errors.New("template engine exploded")
	var out bytes.Buffer

	err := New(failingRenderer{err: cause}).Emit(context.Background(), &out, demoRegistry(t), "demo")

	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "template engine exploded")
	assert.Zero(t, out.Len())
}

func TestEmit_InvalidModelName(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := New(render.NewTemplateRenderer()).Emit(context.Background(), &out, demoRegistry(t), "___")

	assert.ErrorIs(t, err, ErrInvalidModelName)
	assert.Zero(t, out.Len())
}

func TestBindings(t *testing.T) {
	t.Parallel()

	b, err := Bindings(demoRegistry(t), "demo", "delaymodels")
	require.NoError(t, err)

	assert.Equal(t, "demo", b[BindingName])
	assert.Equal(t, "Demo", b[BindingCamelCaseName])
	assert.Equal(t, "delaymodels", b[BindingPackage])

	ops, ok := b[BindingOperations].([]OperationBinding)
	require.True(t, ok)
	var names []string
	for _, op := range ops {
		names = append(names, op.Operation)
	}
	assert.Equal(t, []string{"add", "sub", "mul", "shll"}, names)
	assert.Equal(t, "fixed", ops[1].Estimator.ResolvedKind)
}
