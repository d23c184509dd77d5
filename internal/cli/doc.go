// Package cli turns command-line arguments into an app.Config. It owns the
// flag definitions, help text, and the mapping of usage errors to exit
// codes.
package cli
