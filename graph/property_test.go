// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dagreduce/lambdag/internal/errs"
	"github.com/dagreduce/lambdag/term"
)

// buildClosedTerm grows a random closed term bottom-up out of Lam, App,
// Var and Typ only: a restricted grammar, but enough to stress upcopy's
// sharing machinery (any Lam whose bound variable is used more than
// once forces the multi-occurrence path) while staying inside what
// FromTerm/Whnf/Norm fully support. Capped at maxDepth so generation
// always terminates; the term itself need not.
func buildClosedTerm(rng *rand.Rand, scope []string, depth, maxDepth int) *term.Term {
	leaf := depth >= maxDepth
	if !leaf && len(scope) > 0 && rng.Intn(3) == 0 {
		leaf = true
	}

	if leaf {
		if len(scope) > 0 && rng.Intn(2) == 0 {
			i := rng.Intn(len(scope))
			return term.NewVar(scope[i], uint64(len(scope)-1-i))
		}
		return term.NewTyp()
	}

	if rng.Intn(2) == 0 {
		name := fmt.Sprintf("v%d", depth)
		bod := buildClosedTerm(rng, append(append([]string{}, scope...), name), depth+1, maxDepth)
		return term.NewLam(name, bod)
	}
	fun := buildClosedTerm(rng, scope, depth+1, maxDepth)
	arg := buildClosedTerm(rng, scope, depth+1, maxDepth)
	return term.NewApp(fun, arg)
}

func genClosedTerm(maxDepth int) gopter.Gen {
	return gen.IntRange(1, 1<<30).Map(func(seed int) *term.Term {
		rng := rand.New(rand.NewSource(int64(seed)))
		return buildClosedTerm(rng, nil, 0, maxDepth)
	})
}

// reduceOrSkip runs reduce under a step budget tight enough that the
// property test doesn't hang on a generated non-terminating term (e.g.
// an Omega-combinator shape); a budget panic is not a property failure,
// since spec.md carries no termination guarantee, so it is treated as
// "no observation for this sample" (ok=false) rather than asserted on.
func reduceOrSkip(t *term.Term, reduce func(*DAG) Node) (dag *DAG, ok bool, err error) {
	dag, err = FromTerm(t)
	if err != nil {
		return nil, false, err
	}
	dag.MaxSteps = 2000
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ge, is := r.(*errs.GraphError); is && ge.Code == errs.CodeInfiniteLoop {
			ok = false
			return
		}
		panic(r)
	}()
	reduce(dag)
	return dag, true, nil
}

// reduceAgainOrSkip re-runs reduce on an already-built DAG — the second
// pass of an idempotence check — under the same budget-panic-as-skip
// convention as reduceOrSkip.
func reduceAgainOrSkip(dag *DAG, reduce func(*DAG) Node) (ok bool) {
	dag.MaxSteps = 2000
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ge, is := r.(*errs.GraphError); is && ge.Code == errs.CodeInfiniteLoop {
			ok = false
			return
		}
		panic(r)
	}()
	reduce(dag)
	return true
}

func TestPropertyWhnfIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("Whnf(Whnf(t)) == Whnf(t)", prop.ForAll(
		func(tm *term.Term) bool {
			dag, ok, err := reduceOrSkip(tm, func(d *DAG) Node { return d.Whnf() })
			if err != nil {
				t.Fatalf("FromTerm: %v", err)
			}
			if !ok {
				return true
			}
			once := dag.ToTerm().String()

			if !reduceAgainOrSkip(dag, func(d *DAG) Node { return d.Whnf() }) {
				return true
			}
			return dag.ToTerm().String() == once
		},
		genClosedTerm(5),
	))

	properties.TestingRun(t)
}

func TestPropertyNoLeaks(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("live node count matches an independent reachability walk", prop.ForAll(
		func(tm *term.Term) bool {
			dag, ok, err := reduceOrSkip(tm, func(d *DAG) Node { return d.Norm() })
			if err != nil {
				t.Fatalf("FromTerm: %v", err)
			}
			if !ok {
				return true
			}
			live, _, _ := dag.Stats()
			return live == uint64(countReachable(dag.Head))
		},
		genClosedTerm(5),
	))

	properties.TestingRun(t)
}

func TestPropertyNormExtendsWhnf(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("a full normal form is already a fixed point of Whnf", prop.ForAll(
		func(tm *term.Term) bool {
			dag, ok, err := reduceOrSkip(tm, func(d *DAG) Node { return d.Norm() })
			if err != nil {
				t.Fatalf("FromTerm: %v", err)
			}
			if !ok {
				return true
			}
			before := dag.ToTerm().String()
			if !reduceAgainOrSkip(dag, func(d *DAG) Node { return d.Whnf() }) {
				return true
			}
			return dag.ToTerm().String() == before
		},
		genClosedTerm(5),
	))

	properties.TestingRun(t)
}
