// Package emitter generates the source artifact of a delay model. It turns
// a validated registry into an ordered set of template bindings, hands them
// to a render.Renderer, and writes the result behind a "do not edit" banner.
package emitter
