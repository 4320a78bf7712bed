// SPDX-License-Identifier: MIT

// Package errs defines the reduction engine's fatal error taxonomy.
// Reduction never returns these as Go errors: a malformed graph or an
// unsupported construct is a programmer bug, not a recoverable runtime
// condition, so graph panics with a *GraphError and the CLI boundary
// (cmd/lambdag) is the only place that recovers one back into a normal
// error. Grounded in style on junjiewwang-perf-analysis/pkg/errors'
// coded AppError, adapted from an HTTP-handler error taxonomy to a
// fatal-panic one.
package errs

import "fmt"

// Code identifies which of the reduction engine's fatal error kinds
// occurred.
type Code string

const (
	// CodeUnimplementedConstruct is raised when reduction reaches a
	// construct that is recognized but deliberately not implemented,
	// such as Let.
	CodeUnimplementedConstruct Code = "UNIMPLEMENTED_CONSTRUCT"
	// CodeMalformedGraph is raised when the graph's own invariants are
	// violated: a nil child where one is required, a ParentCell owned
	// by a leaf node, and so on.
	CodeMalformedGraph Code = "MALFORMED_GRAPH"
	// CodeUnknownRef is raised when a Ref names a definition absent
	// from the definitions collaborator.
	CodeUnknownRef Code = "UNKNOWN_REF"
	// CodeInfiniteLoop is raised when a reduction budget is exhausted,
	// the engine's only defense against a genuinely non-terminating
	// term (spec.md explicitly carries no termination guarantee).
	CodeInfiniteLoop Code = "INFINITE_LOOP"
)

// GraphError is the concrete type behind every panic the reduction
// engine raises.
type GraphError struct {
	Code    Code
	Message string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Fail panics with a *GraphError built from code and a formatted message.
func Fail(code Code, format string, args ...any) {
	panic(&GraphError{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Recover turns a panic carrying a *GraphError into a returned error; any
// other panic value is re-panicked, since only the taxonomy above is
// meant to unwind this way. Call it deferred at a reduction entry point
// that needs to report failures as errors instead of crashing, such as a
// CLI command.
func Recover(target *error) {
	r := recover()
	if r == nil {
		return
	}
	if ge, ok := r.(*GraphError); ok {
		*target = ge
		return
	}
	panic(r)
}
