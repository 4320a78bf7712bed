// SPDX-License-Identifier: MIT

package graph

import (
	"testing"

	"github.com/dagreduce/lambdag/term"
)

// reduceString parses src, reduces it with reduce, and renders the
// result back through ToTerm — the same round trip cmd/lambdag drives.
func reduceString(t *testing.T, src string, reduce func(*DAG) Node) string {
	t.Helper()
	parsed, err := term.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	dag, err := FromTerm(parsed)
	if err != nil {
		t.Fatalf("FromTerm %q: %v", src, err)
	}
	reduce(dag)
	return dag.ToTerm().String()
}

func whnfOf(t *testing.T, src string) string {
	return reduceString(t, src, func(dag *DAG) Node { return dag.Whnf() })
}

func normOf(t *testing.T, src string) string {
	return reduceString(t, src, func(dag *DAG) Node { return dag.Norm() })
}

func TestWhnfValuesAreFixedPoints(t *testing.T) {
	cases := []string{
		"λ x => x",
		// print.go collapses a chain of nested single-binder Lams into one
		// multi-name header, so the canonical round-tripped form of
		// "λ x => λ y => x" is this, not the un-collapsed spelling.
		"λ x y => x",
		"Type",
	}
	for _, src := range cases {
		got := whnfOf(t, src)
		if got != src {
			t.Errorf("Whnf(%q) = %q, want unchanged", src, got)
		}
	}
}

func TestBetaReduction(t *testing.T) {
	cases := []struct{ src, want string }{
		{"(λ x => x) (λ y => y)", "λ y => y"},
		// the result is Lam(y, Lam(z, z)), which print.go renders collapsed
		// as "λ y z => z" rather than "λ y => λ z => z".
		{"(λ x => λ y => x) (λ z => z)", "λ y z => z"},
	}
	for _, c := range cases {
		if got := normOf(t, c.src); got != c.want {
			t.Errorf("Norm(%q) = %q, want %q", c.src, got, c.want)
		}
	}
}

// TestSelfApplicationOfIdentity exercises "id id", the case where
// sharing makes the Lam being eliminated and the substituted argument
// the identical graph node. id's two parent cells (App's Fun and Arg
// both pointing at it) keep target.Parents() off the singleton fast
// path regardless of the aliasing, so this falls straight through to
// the ordinary upcopy path and id itself is never mutated.
func TestSelfApplicationOfIdentity(t *testing.T) {
	src := "(λ f => f f) (λ x => x)"
	want := "λ x => x"
	if got := normOf(t, src); got != want {
		t.Fatalf("Norm(%q) = %q, want %q", src, got, want)
	}
}

// TestSelfApplicationLeavesNoDanglingBody guards the exact bug this
// package caught during review: subst used to gate its in-place path on
// the bound variable's use count rather than the Lam's own parent count,
// so a doubly-shared occurrence like "f f" could still take the
// mutate-in-place branch and null out a body something else still
// pointed to. Reduce to Whnf, then Norm again: a corrupted Lam panics
// the second time through.
func TestSelfApplicationLeavesNoDanglingBody(t *testing.T) {
	parsed, err := term.Parse("(λ f => f f) (λ x => x)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dag, err := FromTerm(parsed)
	if err != nil {
		t.Fatalf("FromTerm: %v", err)
	}
	dag.Whnf()
	dag.Norm() // would panic on a nil Bod if the fast-path gate regressed
	if got, want := dag.ToTerm().String(), "λ x => x"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSharedArgumentIsReducedOnce(t *testing.T) {
	// (λ x => x x) ((λ y => y) z): the argument, once reduced, is shared
	// by both occurrences of x rather than duplicated and re-reduced.
	src := "(λ x => x x) ((λ y => y) %z)"
	parsed, err := term.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dag, err := FromTerm(parsed)
	if err != nil {
		t.Fatalf("FromTerm: %v", err)
	}
	dag.Whnf()

	app, ok := dag.Head.(*App)
	if !ok {
		t.Fatalf("Whnf result is %T, want *App", dag.Head)
	}
	if app.Fun != app.Arg {
		t.Fatalf("Fun and Arg are distinct nodes (%p, %p); argument was duplicated instead of shared", app.Fun, app.Arg)
	}
	ref, ok := app.Fun.(*Ref)
	if !ok {
		t.Fatalf("shared argument is %T, want *Ref (the unresolved %%z)", app.Fun)
	}
	if string(ref.Link) != "z" {
		t.Fatalf("shared argument resolves %q, want %q", ref.Link, "z")
	}
}

func TestNoLeaksAfterReduction(t *testing.T) {
	srcs := []string{
		"(λ x => x) (λ y => y)",
		"(λ f => f f) (λ x => x)",
		"(λ x => λ y => x) ((λ z => z) Type)",
	}
	for _, src := range srcs {
		parsed, err := term.Parse(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		dag, err := FromTerm(parsed)
		if err != nil {
			t.Fatalf("FromTerm %q: %v", src, err)
		}
		dag.Norm()
		live, _, _ := dag.Stats()
		want := uint64(countReachable(dag.Head))
		if live != want {
			t.Errorf("Norm(%q): live=%d, reachable=%d, want equal", src, live, want)
		}
	}
}

func TestNormIdempotent(t *testing.T) {
	srcs := []string{
		"λ x => x",
		"(λ x => x) (λ y => y)",
		"(λ f => f f) (λ x => x)",
	}
	for _, src := range srcs {
		parsed, err := term.Parse(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		dag, err := FromTerm(parsed)
		if err != nil {
			t.Fatalf("FromTerm %q: %v", src, err)
		}
		dag.Norm()
		once := dag.ToTerm().String()
		dag.Norm()
		twice := dag.ToTerm().String()
		if once != twice {
			t.Errorf("Norm(%q) not idempotent: %q then %q", src, once, twice)
		}
	}
}

// countReachable walks the live graph from head, counting each distinct
// node once regardless of how many parents point at it — the
// independent reachability check invariant 6 ("no leaks") is measured
// against.
func countReachable(head Node) int {
	seen := map[Node]bool{}
	var walk func(Node)
	walk = func(n Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		switch n := n.(type) {
		case *Var:
		case *Lam:
			walk(n.Var)
			walk(n.Bod)
		case *Slf:
			walk(n.Var)
			walk(n.Bod)
		case *All:
			walk(n.Var)
			walk(n.Dom)
			walk(n.Img)
		case *App:
			walk(n.Fun)
			walk(n.Arg)
		case *Ann:
			walk(n.Typ)
			walk(n.Exp)
		case *Dat:
			walk(n.Bod)
		case *Cse:
			walk(n.Bod)
		case *Let:
		case *Lit:
		case *Opr:
		case *Typ:
		case *Ref:
		}
	}
	walk(head)
	return len(seen)
}
