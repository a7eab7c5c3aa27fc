// Package observe provides observability primitives for specification runs.
//
// It is a pure instrumentation library: it never decides the outcome of a
// specification. Hosts wire the Middleware around the timed observation
// step to get a span, metrics and a log line per run.
package observe
