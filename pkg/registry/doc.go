// Package registry builds and queries delay models.
//
// A Registry is the validated, immutable collection of estimators of one
// delay model, keyed by operation identifier and kept in declaration order.
// Build rejects duplicate operations, dangling or cyclic aliases, malformed
// estimators, and (optionally) models that do not cover a required set of
// operations. Every alias is bound to its terminal estimator during the
// build, so lookups never walk alias chains.
//
// Generated delay models register themselves in a process-wide catalog with
// MustRegister and are retrieved by name with Named.
package registry
