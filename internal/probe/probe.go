// Package probe cross-checks a delay model by evaluating every operation at
// a set of width vectors concurrently and tallying the confidence of the
// answers.
package probe

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vk/delaygen/internal/ctxlog"
	"github.com/vk/delaygen/pkg/estimator"
)

// Model is the part of a registry the sweep needs.
type Model interface {
	Operations() []string
	Lookup(op string, widths estimator.WidthVector) (estimator.Estimate, error)
}

// Result is the outcome of one (operation, widths) query.
type Result struct {
	Operation string
	Widths    estimator.WidthVector
	Estimate  estimator.Estimate
	Err       error
}

// Report aggregates a sweep. Results are ordered by operation, then by
// width vector, in the order given to Sweep.
type Report struct {
	Results  []Result
	Counts   map[estimator.Confidence]int
	Failures int
}

// ParseWidths parses width vectors separated by ';', each a comma-separated
// list of positive integers, e.g. "8,8,8;32,32,32".
func ParseWidths(s string) ([]estimator.WidthVector, error) {
	var out []estimator.WidthVector
	for i, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		var w estimator.WidthVector
		for _, field := range strings.Split(group, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("width vector %d: %w", i, err)
			}
			w = append(w, n)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("width vector %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// Sweep evaluates every operation of m at every width vector using at most
// workers goroutines (GOMAXPROCS when workers <= 0). Failed queries are
// recorded in the report; only cancellation of ctx aborts the sweep.
func Sweep(ctx context.Context, m Model, widths []estimator.WidthVector, workers int) (*Report, error) {
	logger := ctxlog.FromContext(ctx).With("component", "probe")
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ops := m.Operations()
	results := make([]Result, len(ops)*len(widths))
	logger.Debug("Starting probe sweep.", "operations", len(ops), "width_vectors", len(widths), "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, op := range ops {
		for j, w := range widths {
			slot := i*len(widths) + j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				est, err := m.Lookup(op, w)
				results[slot] = Result{Operation: op, Widths: w, Estimate: est, Err: err}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("probe sweep aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("probe sweep aborted: %w", err)
	}

	report := &Report{Results: results, Counts: make(map[estimator.Confidence]int)}
	for _, r := range results {
		if r.Err != nil {
			report.Failures++
			continue
		}
		report.Counts[r.Estimate.Confidence]++
	}
	logger.Debug("Probe sweep finished.", "queries", len(results), "failures", report.Failures)
	return report, nil
}
