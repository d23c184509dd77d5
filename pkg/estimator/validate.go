package estimator

import "fmt"

// Validate performs the static checks of the estimator without evaluating
// it. Alias targets are checked by the registry, which knows every operation.
func (e *Estimator) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: no estimator", ErrMalformedFormula)
	}
	if err := e.checkPayload(); err != nil {
		return err
	}
	switch e.Kind {
	case KindFixed:
		if d := e.Fixed.Delay; d < 0 || !isFinite(d) {
			return fmt.Errorf("%w: fixed delay %v must be a finite non-negative number", ErrMalformedFormula, d)
		}
		return nil
	case KindAlias:
		if e.Alias.Target == "" {
			return fmt.Errorf("%w: alias has no target", ErrMalformedFormula)
		}
		return nil
	case KindBoundingBox:
		return e.BoundingBox.validate()
	case KindRegression:
		return e.Regression.validate()
	default:
		return fmt.Errorf("%w: unknown estimator kind %s", ErrMalformedFormula, e.Kind)
	}
}
