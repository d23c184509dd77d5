package emitter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vk/delaygen/internal/ctxlog"
	"github.com/vk/delaygen/internal/render"
	"github.com/vk/delaygen/pkg/registry"
)

// Banner is written before every generated artifact.
const Banner = "// DO NOT EDIT: this file is AUTOMATICALLY GENERATED and should not be changed."

// DefaultPackage is the Go package of generated artifacts unless
// overridden.
const DefaultPackage = "delaymodels"

// Emitter renders delay models.
type Emitter struct {
	renderer render.Renderer
	template string
	pkg      string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithTemplate replaces the default template source.
func WithTemplate(source string) Option {
	return func(e *Emitter) {
		e.template = source
	}
}

// WithPackage sets the Go package name of the generated file.
func WithPackage(pkg string) Option {
	return func(e *Emitter) {
		e.pkg = pkg
	}
}

// New returns an Emitter that renders through r.
func New(r render.Renderer, opts ...Option) *Emitter {
	e := &Emitter{
		renderer: r,
		template: render.DefaultTemplate,
		pkg:      DefaultPackage,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit writes the artifact of reg, named model, to w. The artifact is
// rendered completely before anything is written, so w receives nothing
// when rendering fails.
func (e *Emitter) Emit(ctx context.Context, w io.Writer, reg *registry.Registry, model string) error {
	logger := ctxlog.FromContext(ctx).With("component", "emitter")

	bindings, err := Bindings(reg, model, e.pkg)
	if err != nil {
		return err
	}
	logger.Debug("Rendering delay model.", "model", model, "operations", reg.Len())

	body, err := e.renderer.Render(e.template, bindings)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	var b strings.Builder
	b.Grow(len(Banner) + len(body) + 2)
	b.WriteString(Banner)
	b.WriteString("\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	logger.Debug("Delay model written.", "bytes", b.Len())
	return nil
}
