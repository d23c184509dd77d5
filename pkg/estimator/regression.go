package estimator

import (
	"fmt"
	"math"
	"slices"
)

// Transform names the function applied to operand widths in a regression
// term.
type Transform string

const (
	Identity Transform = "identity" // w
	Log2     Transform = "log2"     // log2(w)
	Square   Transform = "square"   // w * w
	Product  Transform = "product"  // w[i] * w[j]
)

// Transforms lists every supported transform.
var Transforms = []Transform{Identity, Log2, Square, Product}

// arity returns the number of operands the transform consumes.
func (t Transform) arity() (int, bool) {
	switch t {
	case Identity, Log2, Square:
		return 1, true
	case Product:
		return 2, true
	default:
		return 0, false
	}
}

func (t Transform) apply(widths ...float64) float64 {
	switch t {
	case Identity:
		return widths[0]
	case Log2:
		return math.Log2(widths[0])
	case Square:
		return widths[0] * widths[0]
	case Product:
		return widths[0] * widths[1]
	}
	return math.NaN()
}

// Term is one coefficient-weighted transform of operand widths. Operands
// index into the queried WidthVector.
type Term struct {
	Coefficient float64
	Transform   Transform
	Operands    []int
}

// Domain bounds the width vectors a regression was fitted on. Position i of
// a query is constrained when i < len(Min).
type Domain struct {
	Min WidthVector
	Max WidthVector
}

// Contains reports whether every constrained position of widths lies within
// the domain.
func (d *Domain) Contains(widths WidthVector) bool {
	for i := range d.Min {
		if i >= len(widths) || widths[i] < d.Min[i] || widths[i] > d.Max[i] {
			return false
		}
	}
	return true
}

// Regression evaluates delay = Constant + Σ Coefficient·Transform(widths).
type Regression struct {
	Constant float64
	Terms    []Term
	Domain   *Domain
}

func (r *Regression) evaluate(query WidthVector) (Estimate, error) {
	if err := query.Validate(); err != nil {
		return Estimate{}, err
	}
	delay := r.Constant
	for i, term := range r.Terms {
		v, err := term.value(query)
		if err != nil {
			return Estimate{}, fmt.Errorf("term %d: %w", i, err)
		}
		delay += term.Coefficient * v
	}
	confidence := Exact
	if r.Domain != nil && !r.Domain.Contains(query) {
		confidence = Extrapolated
	}
	return Estimate{Delay: delay, Confidence: confidence}, nil
}

func (t Term) value(query WidthVector) (float64, error) {
	n, ok := t.Transform.arity()
	if !ok {
		return 0, fmt.Errorf("%w: unknown transform %q, want one of %v", ErrMalformedFormula, t.Transform, Transforms)
	}
	if len(t.Operands) != n {
		return 0, fmt.Errorf("%w: transform %q takes %d operands, got %d", ErrMalformedFormula, t.Transform, n, len(t.Operands))
	}
	args := make([]float64, n)
	for i, op := range t.Operands {
		if op < 0 || op >= len(query) {
			return 0, fmt.Errorf("%w: operand %d out of range for %d widths", ErrInvalidWidthVector, op, len(query))
		}
		args[i] = float64(query[op])
	}
	return t.Transform.apply(args...), nil
}

func (r *Regression) validate() error {
	if !isFinite(r.Constant) {
		return fmt.Errorf("%w: constant %v is not finite", ErrMalformedFormula, r.Constant)
	}
	for i, term := range r.Terms {
		n, ok := term.Transform.arity()
		if !ok {
			return fmt.Errorf("%w: term %d references unknown transform %q, want one of %v", ErrMalformedFormula, i, term.Transform, Transforms)
		}
		if len(term.Operands) != n {
			return fmt.Errorf("%w: term %d: transform %q takes %d operands, got %d", ErrMalformedFormula, i, term.Transform, n, len(term.Operands))
		}
		for _, op := range term.Operands {
			if op < 0 {
				return fmt.Errorf("%w: term %d: negative operand index %d", ErrMalformedFormula, i, op)
			}
		}
		if !isFinite(term.Coefficient) {
			return fmt.Errorf("%w: term %d: coefficient %v is not finite", ErrMalformedFormula, i, term.Coefficient)
		}
	}
	if d := r.Domain; d != nil {
		if len(d.Min) != len(d.Max) {
			return fmt.Errorf("%w: domain min has %d widths, max has %d", ErrMalformedFormula, len(d.Min), len(d.Max))
		}
		for i := range d.Min {
			if d.Min[i] > d.Max[i] {
				return fmt.Errorf("%w: domain min %d exceeds max %d at position %d", ErrMalformedFormula, d.Min[i], d.Max[i], i)
			}
		}
	}
	return nil
}

func (r *Regression) clone() *Regression {
	c := &Regression{Constant: r.Constant, Terms: make([]Term, len(r.Terms))}
	for i, t := range r.Terms {
		c.Terms[i] = Term{Coefficient: t.Coefficient, Transform: t.Transform, Operands: slices.Clone(t.Operands)}
	}
	if r.Domain != nil {
		c.Domain = &Domain{Min: r.Domain.Min.Clone(), Max: r.Domain.Max.Clone()}
	}
	return c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
