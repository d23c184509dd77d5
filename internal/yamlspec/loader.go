package yamlspec

import (
	"context"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/vk/delaygen/internal/config"
	"github.com/vk/delaygen/internal/ctxlog"
	"github.com/vk/delaygen/pkg/registry"
)

// Loader reads YAML or JSON specifications. JSON is a subset of YAML, so a
// single decoder serves both.
type Loader struct{}

// NewLoader creates a new YAML/JSON specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads and decodes the specification at path.
func (l *Loader) Load(ctx context.Context, path string) ([]registry.Record, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification %s: %w", path, err)
	}
	return l.Parse(ctx, contents, path)
}

// Parse decodes a YAML or JSON document. Unknown and duplicate fields are
// rejected.
func (l *Loader) Parse(ctx context.Context, contents []byte, filename string) ([]registry.Record, error) {
	var doc config.Document
	if err := yaml.UnmarshalStrict(contents, &doc); err != nil {
		return nil, &config.ParseError{Path: filename, Err: fmt.Errorf("decoding specification: %w", err)}
	}

	records := make([]registry.Record, 0, len(doc.Operations))
	for i, raw := range doc.Operations {
		rec, err := raw.Record(fmt.Sprintf("%s:operations[%d]", filename, i))
		if err != nil {
			return nil, &config.ParseError{Path: filename, Err: err}
		}
		records = append(records, rec)
	}

	ctxlog.FromContext(ctx).Debug("YAML loading complete.", "operations", len(records))
	return records, nil
}
