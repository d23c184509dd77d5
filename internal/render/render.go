package render

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// Renderer renders a template source with the given bindings. A reference
// to a binding that is not present must fail rather than render a default.
type Renderer interface {
	Render(source string, bindings map[string]any) (string, error)
}

// DefaultTemplate is the Go source template for a generated delay model.
//
//go:embed templates/delay_model.go.tmpl
var DefaultTemplate string

// TemplateRenderer is a Renderer backed by text/template running with
// missingkey=error.
type TemplateRenderer struct {
	funcs template.FuncMap
}

// NewTemplateRenderer returns a strict text/template renderer with the
// helper functions used by delay model templates.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{funcs: Funcs()}
}

// Render implements Renderer.
func (r *TemplateRenderer) Render(source string, bindings map[string]any) (string, error) {
	tmpl, err := template.New("delay_model").
		Option("missingkey=error").
		Funcs(r.funcs).
		Parse(source)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, bindings); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Funcs returns the helper functions available to templates:
//
//	float  formats a float64 as the shortest Go literal that round-trips
//	ints   joins integers with ", "
//	quote  quotes a value as a Go string literal
//	unsupported  fails rendering for an estimator kind the template lacks
func Funcs() template.FuncMap {
	return template.FuncMap{
		"float": formatFloat,
		"ints":  joinInts,
		"quote": func(v any) string { return strconv.Quote(fmt.Sprint(v)) },
		"unsupported": func(kind string) (string, error) {
			return "", fmt.Errorf("unsupported estimator kind %q", kind)
		},
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
