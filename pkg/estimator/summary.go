package estimator

// Summary is a renderer-facing view of an estimator: its kind tag plus the
// parameters of that kind. Fields of other kinds are left at their zero
// value.
type Summary struct {
	Kind string

	// Fixed
	Delay float64

	// Alias
	Target       string
	ResolvedKind string

	// BoundingBox
	Samples []Sample

	// Regression
	Constant float64
	Terms    []Term
	Domain   *Domain
}

// Summary describes e for code generation. The returned value shares no
// memory with e.
func (e *Estimator) Summary() Summary {
	c := e.Clone()
	s := Summary{Kind: c.Kind.String()}
	if c.checkPayload() != nil {
		return s
	}
	switch c.Kind {
	case KindFixed:
		s.Delay = c.Fixed.Delay
	case KindAlias:
		s.Target = c.Alias.Target
		if r := e.Alias.Resolved(); r != nil {
			s.ResolvedKind = r.Kind.String()
		}
	case KindBoundingBox:
		s.Samples = c.BoundingBox.Samples
	case KindRegression:
		s.Constant = c.Regression.Constant
		s.Terms = c.Regression.Terms
		s.Domain = c.Regression.Domain
	}
	return s
}
