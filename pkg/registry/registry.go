package registry

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/vk/delaygen/internal/ctxlog"
	"github.com/vk/delaygen/internal/dag"
	"github.com/vk/delaygen/pkg/estimator"
)

// Registry is an immutable, validated delay model. It is safe for
// concurrent use.
type Registry struct {
	entries []entry
	index   map[string]int
}

type entry struct {
	operation string
	estimator *estimator.Estimator
}

// Option configures Build.
type Option func(*options)

type options struct {
	required []string
}

// WithRequiredOperations makes Build fail with ErrMissingOperation unless
// every listed operation is declared.
func WithRequiredOperations(ops ...string) Option {
	return func(o *options) {
		o.required = append(o.required, ops...)
	}
}

// Build validates records and assembles them into a Registry. The records
// are copied; later changes to them do not affect the result. Any failure
// is returned as a *ValidationError.
func Build(ctx context.Context, records []Record, opts ...Option) (*Registry, error) {
	logger := ctxlog.FromContext(ctx).With("component", "registry")
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	logger.Debug("Validating records.", "count", len(records))
	if err := checkRecords(records); err != nil {
		return nil, err
	}
	if err := checkDuplicates(records); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.Operation] = i
	}

	logger.Debug("Checking alias graph.")
	if err := checkAliases(records, index); err != nil {
		return nil, err
	}
	if err := checkEstimators(records); err != nil {
		return nil, err
	}
	if len(o.required) > 0 {
		logger.Debug("Checking operation coverage.", "required", len(o.required))
		if err := checkCoverage(index, o.required); err != nil {
			return nil, err
		}
	}

	reg := &Registry{
		entries: make([]entry, len(records)),
		index:   index,
	}
	for i, r := range records {
		reg.entries[i] = entry{operation: r.Operation, estimator: r.Estimator.Clone()}
	}
	if err := reg.bindAliases(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	logger.Debug("Delay model built.", "operations", reg.Len())
	return reg, nil
}

// New is Build with a background context.
func New(records []Record, opts ...Option) (*Registry, error) {
	return Build(context.Background(), records, opts...)
}

// MustNew is like New but panics if the delay model is invalid. It is meant
// for package-level variables in generated code.
func MustNew(records []Record, opts ...Option) *Registry {
	reg, err := New(records, opts...)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return reg
}

func checkRecords(records []Record) error {
	v := recordValidator()
	var errs error
	var ops []string
	for i, r := range records {
		if err := validateRecord(v, r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record %d: %w", i, err))
			ops = append(ops, r.Operation)
		}
	}
	if errs != nil {
		return &ValidationError{Operations: ops, Err: errs}
	}
	return nil
}

func checkDuplicates(records []Record) error {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, r := range records {
		seen[r.Operation]++
		if seen[r.Operation] == 2 {
			dups = append(dups, r.Operation)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return &ValidationError{
		Operations: dups,
		Err:        fmt.Errorf("%w: %s", ErrDuplicateOperation, quoteAll(dups)),
	}
}

// checkAliases verifies that every alias names a declared operation and
// that no alias chain loops back on itself.
func checkAliases(records []Record, index map[string]int) error {
	g := dag.New()
	for _, r := range records {
		g.AddNode(r.Operation)
	}

	var errs error
	var ops []string
	for _, r := range records {
		target, ok := aliasTarget(r.Estimator)
		if !ok {
			continue
		}
		if _, declared := index[target]; !declared {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s refers to %q", ErrUnknownAliasTarget, r.describe(), target))
			ops = append(ops, r.Operation)
			continue
		}
		if err := g.AddEdge(r.Operation, target); err != nil {
			return &ValidationError{Operations: []string{r.Operation}, Err: err}
		}
	}
	if errs != nil {
		return &ValidationError{Operations: ops, Err: errs}
	}

	err := g.DetectCycles()
	var cycle *dag.CycleError
	if errors.As(err, &cycle) {
		return &ValidationError{
			Operations: cycle.Nodes(),
			Err:        fmt.Errorf("%w: %s", ErrCyclicAlias, strings.Join(cycle.Path, " -> ")),
		}
	}
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func checkEstimators(records []Record) error {
	var errs error
	var ops []string
	for _, r := range records {
		if err := r.Estimator.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.describe(), err))
			ops = append(ops, r.Operation)
		}
	}
	if errs != nil {
		return &ValidationError{Operations: ops, Err: errs}
	}
	return nil
}

func checkCoverage(index map[string]int, required []string) error {
	var missing []string
	for _, op := range required {
		if _, ok := index[op]; !ok && !slices.Contains(missing, op) {
			missing = append(missing, op)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{
		Operations: missing,
		Err:        fmt.Errorf("%w: %s", ErrMissingOperation, quoteAll(missing)),
	}
}

// bindAliases attaches every alias to the terminal estimator of its chain.
// The chains are known to be acyclic at this point.
func (r *Registry) bindAliases() error {
	for _, e := range r.entries {
		if e.estimator.Kind != estimator.KindAlias {
			continue
		}
		target := e.estimator
		for hops := 0; target.Kind == estimator.KindAlias; hops++ {
			if hops > len(r.entries) {
				return fmt.Errorf("%w: %s", ErrCyclicAlias, e.operation)
			}
			target = r.entries[r.index[target.Alias.Target]].estimator
		}
		if err := e.estimator.Alias.Bind(target); err != nil {
			return err
		}
	}
	return nil
}

func aliasTarget(e *estimator.Estimator) (string, bool) {
	if e == nil || e.Kind != estimator.KindAlias || e.Alias == nil || e.Alias.Target == "" {
		return "", false
	}
	return e.Alias.Target, true
}

func quoteAll(ops []string) string {
	quoted := make([]string, len(ops))
	for i, op := range ops {
		quoted[i] = fmt.Sprintf("%q", op)
	}
	return strings.Join(quoted, ", ")
}

// Lookup estimates the delay of op at the given widths.
func (r *Registry) Lookup(op string, widths estimator.WidthVector) (estimator.Estimate, error) {
	i, ok := r.index[op]
	if !ok {
		return estimator.Estimate{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	est, err := r.entries[i].estimator.Evaluate(widths)
	if err != nil {
		return estimator.Estimate{}, fmt.Errorf("operation %q: %w", op, err)
	}
	return est, nil
}

// Get returns the estimator declared for op. The estimator is shared with
// the registry and must not be modified.
func (r *Registry) Get(op string) (*estimator.Estimator, bool) {
	i, ok := r.index[op]
	if !ok {
		return nil, false
	}
	return r.entries[i].estimator, true
}

// All iterates over the operations and their estimators in declaration
// order. The estimators must not be modified.
func (r *Registry) All() iter.Seq2[string, *estimator.Estimator] {
	return func(yield func(string, *estimator.Estimator) bool) {
		for _, e := range r.entries {
			if !yield(e.operation, e.estimator) {
				return
			}
		}
	}
}

// Operations returns the declared operations in declaration order.
func (r *Registry) Operations() []string {
	ops := make([]string, len(r.entries))
	for i, e := range r.entries {
		ops[i] = e.operation
	}
	return ops
}

// Len returns the number of declared operations.
func (r *Registry) Len() int {
	return len(r.entries)
}
