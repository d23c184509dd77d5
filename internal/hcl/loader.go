package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/delaygen/internal/config"
	"github.com/vk/delaygen/internal/ctxlog"
	"github.com/vk/delaygen/pkg/registry"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads and parses the HCL specification at path.
func (l *Loader) Load(ctx context.Context, path string) ([]registry.Record, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification %s: %w", path, err)
	}
	return l.Parse(ctx, src, path)
}

// Parse decodes HCL source. filename is only used in positions and error
// messages.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) ([]registry.Record, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, &config.ParseError{Path: filename, Err: diags}
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, &config.ParseError{Path: filename, Err: diags}
	}

	records := make([]registry.Record, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		rec, err := translateOp(ctx, block)
		if err != nil {
			return nil, &config.ParseError{Path: filename, Err: err}
		}
		records = append(records, rec)
	}

	logger.Debug("HCL loading complete.", "operations", len(records))
	return records, nil
}

// translateOp decodes one `op` block into a registry record.
func translateOp(ctx context.Context, block *hcl.Block) (registry.Record, error) {
	name := block.Labels[0]
	var body opBody
	if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
		return registry.Record{}, diags
	}

	raw := config.RawRecord{
		Op:    name,
		Fixed: body.Fixed,
		Alias: body.Alias,
	}
	if bb := body.BoundingBox; bb != nil {
		raw.BoundingBox = &config.RawBoundingBox{Samples: make([]config.RawSample, len(bb.Samples))}
		for i, s := range bb.Samples {
			raw.BoundingBox.Samples[i] = config.RawSample{Widths: s.Widths, Delay: s.Delay}
		}
	}
	if rb := body.Regression; rb != nil {
		reg, err := translateRegression(ctx, rb)
		if err != nil {
			return registry.Record{}, fmt.Errorf("op %q: %w", name, err)
		}
		raw.Regression = reg
	}

	ctxlog.FromContext(ctx).Debug("Decoded op block.", "op", name, "range", block.DefRange.String())
	return raw.Record(block.DefRange.String())
}

func translateRegression(ctx context.Context, rb *regressionBlock) (*config.RawRegression, error) {
	out := &config.RawRegression{Terms: make([]config.RawTerm, len(rb.Terms))}
	if rb.Constant != nil {
		out.Constant = *rb.Constant
	}
	for i, t := range rb.Terms {
		transform, err := transformName(ctx, t.Transform)
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		out.Terms[i] = config.RawTerm{
			Coefficient: t.Coefficient,
			Transform:   transform,
			Operands:    t.Operands,
		}
	}
	if d := rb.Domain; d != nil {
		out.Domain = &config.RawDomain{Min: d.Min, Max: d.Max}
	}
	return out, nil
}
