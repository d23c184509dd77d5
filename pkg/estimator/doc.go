// Package estimator implements the delay-estimation strategies of a delay
// model.
//
// An Estimator is a closed tagged union over four variants:
//
//   - Fixed: a single measured constant.
//   - Alias: defers to the estimator of another operation.
//   - BoundingBox: a table of measured (width vector, delay) samples, queried
//     by dominance.
//   - Regression: a closed-form formula over transformed operand widths.
//
// Every variant is evaluated through the single Estimator.Evaluate switch,
// which returns the delay together with a Confidence describing how the value
// relates to the measured data. Estimators are immutable once bound into a
// registry and are safe for concurrent use.
package estimator
