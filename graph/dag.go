// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"github.com/dagreduce/lambdag/defs"
	"github.com/dagreduce/lambdag/internal/obs"
)

// maxSteps bounds a single reduction call's work, the engine's only
// defense against a genuinely non-terminating term: spec.md is explicit
// that the engine carries no termination guarantee, so rather than hang
// forever it fails loudly with errs.CodeInfiniteLoop once the budget
// runs out.
const maxSteps = 1_000_000

// DAG is a single evaluator frame: one root pointer into a node graph,
// the arena that graph's nodes were allocated from, and the optional
// definitions collaborator Refs resolve through. Nothing about DAG is
// safe for concurrent use from multiple goroutines (spec.md's
// Concurrency & Resource Model scopes that out entirely); a DAG is
// owned by whichever single call is reducing it.
type DAG struct {
	Head Node

	reg  *registry
	defs *defs.Defs

	unfoldRefs bool
	refCache   map[defs.Link]Node

	// MaxSteps overrides maxSteps when nonzero, letting a caller (such as
	// cmd/lambdag's --reduce.max_steps flag) tighten or loosen the
	// infinite-loop budget per DAG.
	MaxSteps int

	steps int
}

func newDAGFromHead(reg *registry, head Node) *DAG {
	dag := &DAG{Head: head, reg: reg}
	dag.Head.SetParents(merge(dag.Head.Parents(), singleton(nil, slotRoot)))
	return dag
}

// WithDefs attaches a definitions collaborator and enables Ref
// unfolding during reduction. Without it, Ref nodes are opaque values:
// whnf/norm treat them as already-reduced, per spec.md's "definitions
// map is an external collaborator" note.
func (dag *DAG) WithDefs(d *defs.Defs) *DAG {
	dag.defs = d
	dag.unfoldRefs = d != nil
	dag.refCache = make(map[defs.Link]Node)
	return dag
}

// LiveNodes reports how many of this DAG's allocated nodes have not
// been freed, the basis for spec.md invariant 6 ("no leaks"): in a
// correctly functioning engine this always equals the number of nodes
// reachable by walking from Head.
func (dag *DAG) LiveNodes() int {
	return dag.reg.LiveCount()
}

// Stats reports the arena's lifetime allocation counters: how many nodes
// are currently live, how many have ever been allocated, and how many
// have been freed (and so are available for reuse out of the pool).
func (dag *DAG) Stats() (live, total, freed uint64) {
	return dag.reg.Stats()
}

// Whnf reduces the DAG's head to weak-head normal form in place and
// returns it.
func (dag *DAG) Whnf() (result Node) {
	dag.steps = 0
	obs.ReductionStart("whnf")
	defer func() {
		if r := recover(); r != nil {
			obs.ReductionDone("whnf", dag.steps, panicErr(r))
			panic(r)
		}
		obs.ReductionDone("whnf", dag.steps, nil)
	}()
	dag.Head = whnf(dag, dag.Head)
	return dag.Head
}

// Norm fully normalizes the DAG in place: every subterm, not just the
// head, is reduced as far as it will go.
func (dag *DAG) Norm() (result Node) {
	dag.steps = 0
	obs.ReductionStart("norm")
	defer func() {
		if r := recover(); r != nil {
			obs.ReductionDone("norm", dag.steps, panicErr(r))
			panic(r)
		}
		obs.ReductionDone("norm", dag.steps, nil)
	}()
	dag.Head = norm(dag, dag.Head)
	return dag.Head
}

// panicErr adapts a recovered panic value into the error obs.ReductionDone
// logs; it never swallows the panic, only describes it before it
// continues unwinding.
func panicErr(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// resolveRef returns the (shared, cached) node a Ref's link resolves
// to, unfolding it from the definitions collaborator on first use.
// Every subsequent Ref to the same link reuses the identical node,
// preserving sharing across the whole definition rather than inlining
// a fresh copy per call site.
func (dag *DAG) resolveRef(link defs.Link) Node {
	if cached, ok := dag.refCache[link]; ok {
		return cached
	}
	def, ok := dag.defs.Lookup(link)
	if !ok {
		failUnknownRef(link)
	}
	node, err := fromTerm(dag.reg, def.Term, nil)
	if err != nil {
		failMalformed("resolving %q: %v", link, err)
	}
	dag.refCache[link] = node
	obs.RefResolved(string(link))
	return node
}

func (dag *DAG) step() {
	budget := maxSteps
	if dag.MaxSteps > 0 {
		budget = dag.MaxSteps
	}
	dag.steps++
	if dag.steps > budget {
		failInfiniteLoop(budget)
	}
}
