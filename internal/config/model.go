package config

import (
	"fmt"
	"strings"

	"github.com/vk/delaygen/pkg/estimator"
	"github.com/vk/delaygen/pkg/registry"
)

// Document is the top-level shape of a YAML or JSON specification.
type Document struct {
	Operations []RawRecord `json:"operations"`
}

// RawRecord is the decoded form of one operation declaration. Exactly one
// of the strategy fields must be set.
type RawRecord struct {
	Op          string          `json:"op"`
	Fixed       *float64        `json:"fixed,omitempty"`
	Alias       *string         `json:"alias,omitempty"`
	BoundingBox *RawBoundingBox `json:"bounding_box,omitempty"`
	Regression  *RawRegression  `json:"regression,omitempty"`
}

// RawBoundingBox lists the measured samples of a table-lookup strategy.
type RawBoundingBox struct {
	Samples []RawSample `json:"samples"`
}

// RawSample is one measured (widths, delay) pair.
type RawSample struct {
	Widths []int   `json:"widths"`
	Delay  float64 `json:"delay"`
}

// RawRegression is a closed-form delay formula.
type RawRegression struct {
	Constant float64    `json:"constant"`
	Terms    []RawTerm  `json:"terms"`
	Domain   *RawDomain `json:"domain,omitempty"`
}

// RawTerm is one coefficient-weighted transform of operand widths.
type RawTerm struct {
	Coefficient float64 `json:"coefficient"`
	Transform   string  `json:"transform"`
	Operands    []int   `json:"operands"`
}

// RawDomain bounds the widths a regression was fitted on.
type RawDomain struct {
	Min []int `json:"min"`
	Max []int `json:"max"`
}

// strategies returns the names of the strategy fields set on r.
func (r RawRecord) strategies() []string {
	var set []string
	if r.Fixed != nil {
		set = append(set, "fixed")
	}
	if r.Alias != nil {
		set = append(set, "alias")
	}
	if r.BoundingBox != nil {
		set = append(set, "bounding_box")
	}
	if r.Regression != nil {
		set = append(set, "regression")
	}
	return set
}

// Record converts r into a registry record. Semantic checks (transform
// names, sample consistency, alias targets) are left to the registry.
func (r RawRecord) Record(source string) (registry.Record, error) {
	set := r.strategies()
	switch len(set) {
	case 0:
		return registry.Record{}, fmt.Errorf("operation %q: %w", r.Op, ErrNoStrategy)
	case 1:
	default:
		return registry.Record{}, fmt.Errorf("operation %q: %w: %s", r.Op, ErrMultipleStrategies, strings.Join(set, ", "))
	}

	out := registry.Record{Operation: r.Op, Source: source}
	switch {
	case r.Fixed != nil:
		out.Estimator = estimator.NewFixed(*r.Fixed)
	case r.Alias != nil:
		out.Estimator = estimator.NewAlias(*r.Alias)
	case r.BoundingBox != nil:
		samples := make([]estimator.Sample, len(r.BoundingBox.Samples))
		for i, s := range r.BoundingBox.Samples {
			samples[i] = estimator.Sample{Widths: estimator.WidthVector(s.Widths), Delay: s.Delay}
		}
		out.Estimator = estimator.NewBoundingBox(samples...)
	case r.Regression != nil:
		terms := make([]estimator.Term, len(r.Regression.Terms))
		for i, t := range r.Regression.Terms {
			terms[i] = estimator.Term{
				Coefficient: t.Coefficient,
				Transform:   estimator.Transform(t.Transform),
				Operands:    t.Operands,
			}
		}
		var domain *estimator.Domain
		if d := r.Regression.Domain; d != nil {
			domain = &estimator.Domain{Min: estimator.WidthVector(d.Min), Max: estimator.WidthVector(d.Max)}
		}
		out.Estimator = estimator.NewRegression(r.Regression.Constant, terms, domain)
	}
	return out, nil
}
