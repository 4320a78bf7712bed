// SPDX-License-Identifier: MIT

package graph

import "github.com/dagreduce/lambdag/internal/errs"

// failUnimplemented panics for a construct the engine recognizes but has
// deliberately not implemented (spec.md §9's Let).
func failUnimplemented(what string) {
	errs.Fail(errs.CodeUnimplementedConstruct, "%s is not implemented", what)
}

// failUnknownRef panics when a Ref names a definition the definitions
// collaborator does not have.
func failUnknownRef(link string) {
	errs.Fail(errs.CodeUnknownRef, "no definition bound to %q", link)
}

// failMalformed panics when the graph's own bookkeeping invariants have
// been violated, independent of the term being reduced.
func failMalformed(format string, args ...any) {
	errs.Fail(errs.CodeMalformedGraph, format, args...)
}

// failInfiniteLoop panics once a reduction's step budget is exhausted.
func failInfiniteLoop(budget int) {
	errs.Fail(errs.CodeInfiniteLoop, "reduction did not finish within %d steps", budget)
}
