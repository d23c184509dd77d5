package estimator

import (
	"fmt"
)

// Kind tags the populated variant of an Estimator.
type Kind int

const (
	KindFixed Kind = iota + 1
	KindAlias
	KindBoundingBox
	KindRegression
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindAlias:
		return "alias"
	case KindBoundingBox:
		return "bounding_box"
	case KindRegression:
		return "regression"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Confidence classifies an estimate relative to the measured data.
type Confidence int

const (
	Exact Confidence = iota
	Interpolated
	Extrapolated
)

func (c Confidence) String() string {
	switch c {
	case Exact:
		return "exact"
	case Interpolated:
		return "interpolated"
	case Extrapolated:
		return "extrapolated"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Estimate is the result of evaluating an estimator.
type Estimate struct {
	Delay      float64
	Confidence Confidence
}

// Estimator is the delay-estimation strategy of one operation. Exactly the
// field matching Kind is populated.
type Estimator struct {
	Kind        Kind
	Fixed       *Fixed
	Alias       *Alias
	BoundingBox *BoundingBox
	Regression  *Regression
}

// Fixed is a constant delay measured once.
type Fixed struct {
	Delay float64
}

// Alias defers to the estimator of another operation. The registry binds the
// terminal (non-alias) estimator of the chain at build time.
type Alias struct {
	Target string

	resolved *Estimator
}

// NewFixed returns a Fixed estimator.
func NewFixed(delay float64) *Estimator {
	return &Estimator{Kind: KindFixed, Fixed: &Fixed{Delay: delay}}
}

// NewAlias returns an unbound Alias estimator pointing at target.
func NewAlias(target string) *Estimator {
	return &Estimator{Kind: KindAlias, Alias: &Alias{Target: target}}
}

// NewBoundingBox returns a BoundingBox estimator over the given samples.
func NewBoundingBox(samples ...Sample) *Estimator {
	return &Estimator{Kind: KindBoundingBox, BoundingBox: &BoundingBox{Samples: samples}}
}

// NewRegression returns a Regression estimator. A nil domain means the
// formula is valid for every width vector.
func NewRegression(constant float64, terms []Term, domain *Domain) *Estimator {
	return &Estimator{
		Kind:       KindRegression,
		Regression: &Regression{Constant: constant, Terms: terms, Domain: domain},
	}
}

// Evaluate estimates the delay of an operation instance with the given
// widths.
func (e *Estimator) Evaluate(widths WidthVector) (Estimate, error) {
	if err := e.checkPayload(); err != nil {
		return Estimate{}, err
	}
	switch e.Kind {
	case KindFixed:
		return Estimate{Delay: e.Fixed.Delay, Confidence: Exact}, nil
	case KindAlias:
		return e.Alias.evaluate(widths)
	case KindBoundingBox:
		return e.BoundingBox.evaluate(widths)
	case KindRegression:
		return e.Regression.evaluate(widths)
	default:
		return Estimate{}, fmt.Errorf("%w: unknown estimator kind %s", ErrMalformedFormula, e.Kind)
	}
}

// Bind attaches the terminal estimator of the alias chain. Binding another
// alias is rejected so that evaluation never recurses more than one level.
func (a *Alias) Bind(target *Estimator) error {
	if target == nil {
		return fmt.Errorf("%w: alias of %q bound to nothing", ErrUnresolvedAlias, a.Target)
	}
	if target.Kind == KindAlias {
		return fmt.Errorf("%w: alias of %q must be bound to a non-alias estimator", ErrUnresolvedAlias, a.Target)
	}
	a.resolved = target
	return nil
}

// Resolved returns the bound terminal estimator, or nil.
func (a *Alias) Resolved() *Estimator {
	return a.resolved
}

func (a *Alias) evaluate(widths WidthVector) (Estimate, error) {
	if a.resolved == nil {
		return Estimate{}, fmt.Errorf("%w: %q", ErrUnresolvedAlias, a.Target)
	}
	return a.resolved.Evaluate(widths)
}

// checkPayload guards against a Kind whose variant struct is missing.
func (e *Estimator) checkPayload() error {
	missing := false
	switch e.Kind {
	case KindFixed:
		missing = e.Fixed == nil
	case KindAlias:
		missing = e.Alias == nil
	case KindBoundingBox:
		if e.BoundingBox == nil {
			return fmt.Errorf("%w: bounding box has no samples", ErrEmptySampleSet)
		}
	case KindRegression:
		missing = e.Regression == nil
	}
	if missing {
		return fmt.Errorf("%w: %s estimator has no parameters", ErrMalformedFormula, e.Kind)
	}
	return nil
}

// Clone returns a deep copy of e. Alias bindings are not copied.
func (e *Estimator) Clone() *Estimator {
	if e == nil {
		return nil
	}
	c := &Estimator{Kind: e.Kind}
	if e.Fixed != nil {
		f := *e.Fixed
		c.Fixed = &f
	}
	if e.Alias != nil {
		c.Alias = &Alias{Target: e.Alias.Target}
	}
	if e.BoundingBox != nil {
		samples := make([]Sample, len(e.BoundingBox.Samples))
		for i, s := range e.BoundingBox.Samples {
			samples[i] = Sample{Widths: s.Widths.Clone(), Delay: s.Delay}
		}
		c.BoundingBox = &BoundingBox{Samples: samples}
	}
	if e.Regression != nil {
		c.Regression = e.Regression.clone()
	}
	return c
}
