package app

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/vk/delaygen/internal/config"
	"github.com/vk/delaygen/internal/ctxlog"
	"github.com/vk/delaygen/internal/emitter"
	"github.com/vk/delaygen/internal/probe"
	"github.com/vk/delaygen/pkg/estimator"
	"github.com/vk/delaygen/pkg/registry"
)

// Run executes the main application logic: load the specification, build
// the delay model, optionally probe it, and emit the artifact.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "spec", a.config.SpecPath, "model", a.config.ModelName)

	reg, err := a.build(ctx)
	if err != nil {
		return err
	}

	if len(a.config.ProbeWidths) > 0 {
		if err := a.probe(ctx, reg); err != nil {
			return err
		}
	}

	if err := a.emit(ctx, reg); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) build(ctx context.Context) (*registry.Registry, error) {
	format, err := config.DetectFormat(a.config.SpecPath)
	if err != nil {
		return nil, err
	}
	loader, ok := a.loaders[format]
	if !ok {
		return nil, fmt.Errorf("no loader configured for %s specifications", format)
	}

	a.logger.Debug("Loading specification.", "format", format)
	records, err := loader.Load(ctx, a.config.SpecPath)
	if err != nil {
		return nil, err
	}

	var opts []registry.Option
	if len(a.config.Required) > 0 {
		opts = append(opts, registry.WithRequiredOperations(a.config.Required...))
	}
	reg, err := registry.Build(ctx, records, opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Delay model built.", "model", a.config.ModelName, "operations", reg.Len())
	return reg, nil
}

func (a *App) probe(ctx context.Context, reg *registry.Registry) error {
	report, err := probe.Sweep(ctx, reg, a.config.ProbeWidths, a.config.ProbeWorkers)
	if err != nil {
		return err
	}
	for _, r := range report.Results {
		if r.Err != nil {
			a.logger.Warn("Probe query failed.", "op", r.Operation, "widths", r.Widths.String(), "error", r.Err)
			continue
		}
		a.logger.Debug("Probe query.", "op", r.Operation, "widths", r.Widths.String(),
			"delay", r.Estimate.Delay, "confidence", r.Estimate.Confidence.String())
	}
	a.logger.Info("Probe sweep finished.",
		"queries", len(report.Results),
		"exact", report.Counts[estimator.Exact],
		"interpolated", report.Counts[estimator.Interpolated],
		"extrapolated", report.Counts[estimator.Extrapolated],
		"failures", report.Failures,
	)
	return nil
}

func (a *App) emit(ctx context.Context, reg *registry.Registry) error {
	var opts []emitter.Option
	if a.config.Package != "" {
		opts = append(opts, emitter.WithPackage(a.config.Package))
	}
	if a.config.TemplatePath != "" {
		src, err := os.ReadFile(a.config.TemplatePath)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		opts = append(opts, emitter.WithTemplate(string(src)))
	}
	e := emitter.New(a.renderer, opts...)

	if a.config.OutputPath == "" {
		return e.Emit(ctx, a.outW, reg, a.config.ModelName)
	}

	var buf bytes.Buffer
	if err := e.Emit(ctx, &buf, reg, a.config.ModelName); err != nil {
		return err
	}
	if err := os.WriteFile(a.config.OutputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	a.logger.Info("Artifact written.", "path", a.config.OutputPath, "bytes", buf.Len())
	return nil
}
