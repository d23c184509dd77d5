package app

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/vk/delaygen/pkg/estimator"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SpecPath     string // .hcl, .yaml, .yml or .json
	ModelName    string
	Package      string // Go package of the artifact
	TemplatePath string // optional replacement for the default template
	OutputPath   string // stdout when empty

	Required     []string // operations the model must cover
	ProbeWidths  []estimator.WidthVector
	ProbeWorkers int

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SpecPath == "" {
		return nil, errors.New("SpecPath is a required configuration field and cannot be empty")
	}
	if cfg.ModelName == "" {
		return nil, errors.New("ModelName is a required configuration field and cannot be empty")
	}
	if cfg.Package != "" && !token.IsIdentifier(cfg.Package) {
		return nil, fmt.Errorf("package %q is not a valid Go identifier", cfg.Package)
	}
	if cfg.ProbeWorkers < 0 {
		return nil, fmt.Errorf("probe workers must not be negative, got %d", cfg.ProbeWorkers)
	}
	return &cfg, nil
}
