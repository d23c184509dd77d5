// Package render turns a template and a set of named bindings into text.
// It is the only place that knows about the template engine; callers depend
// on the Renderer interface.
package render
