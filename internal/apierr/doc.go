// Package apierr defines the closed set of error kinds shared by every
// detection engine and the HTTP transport, and the JSON envelope used to
// surface them to clients.
//
// Engines never panic and never let a Go error of an unknown shape cross
// a request boundary: every failure that should be visible to a caller
// is wrapped in an *Error carrying one of the Kind constants below, and
// every Kind maps to exactly one HTTP status via StatusFor.
package apierr
