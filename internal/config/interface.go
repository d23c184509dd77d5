package config

import (
	"context"

	"github.com/vk/delaygen/pkg/registry"
)

// Loader is the interface for a format-specific specification loader.
type Loader interface {
	// Load reads the specification at path and returns its records in
	// declaration order. Malformed input is reported as a *ParseError.
	Load(ctx context.Context, path string) ([]registry.Record, error)
}
