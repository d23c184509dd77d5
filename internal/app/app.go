package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/delaygen/internal/config"
	"github.com/vk/delaygen/internal/ctxlog"
	"github.com/vk/delaygen/internal/hcl"
	"github.com/vk/delaygen/internal/render"
	"github.com/vk/delaygen/internal/yamlspec"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loaders  map[config.Format]config.Loader
	renderer render.Renderer
}

// Option customizes an App.
type Option func(*App)

// WithLoader overrides the loader used for a specification format.
func WithLoader(format config.Format, loader config.Loader) Option {
	return func(a *App) {
		a.loaders[format] = loader
	}
}

// WithRenderer overrides the template renderer.
func WithRenderer(r render.Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// NewApp is the constructor for the main application. The artifact goes to
// outW unless the configuration names an output file; logs go to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, opts ...Option) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	ctxlog.FromContext(ctx).Debug("Logger configured successfully.")

	yamlLoader := yamlspec.NewLoader()
	a := &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		loaders: map[config.Format]config.Loader{
			config.FormatHCL:  hcl.NewLoader(),
			config.FormatYAML: yamlLoader,
			config.FormatJSON: yamlLoader,
		},
		renderer: render.NewTemplateRenderer(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
