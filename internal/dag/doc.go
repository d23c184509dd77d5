// Package dag provides a small directed graph with deterministic cycle
// detection. The registry uses it to model the alias relation between
// operations and to reject alias cycles at build time, before any estimator
// is evaluated.
package dag
