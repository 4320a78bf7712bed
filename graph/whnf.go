// SPDX-License-Identifier: MIT

package graph

import "github.com/dagreduce/lambdag/primop"

// whnf drives start to weak-head normal form: application spines are
// walked with an explicit trail of the App frames descended through
// (rather than recursion), so a long chain of applications does not
// consume Go call-stack depth; the only recursion is into genuinely
// separate subterms (a Cse's scrutinee, a primop's arguments), each of
// which gets its own fresh trail. Grounded on original_source's
// DAG::whnf.
func whnf(dag *DAG, start Node) Node {
	var trail []*App
	cur := start

	for {
		dag.step()

		switch n := cur.(type) {
		case *App:
			trail = append(trail, n)
			cur = n.Fun

		case *Ann:
			cur = n.Exp

		case *Ref:
			if !dag.unfoldRefs {
				return rebuild(trail, cur)
			}
			resolved := dag.resolveRef(n.Link)
			replaceEverywhere(dag, n, resolved)
			cur = resolved

		case *Let:
			failUnimplemented("Let")
			return nil // unreachable, failUnimplemented panics

		case *Lam:
			if len(trail) == 0 {
				return rebuild(trail, cur)
			}
			redex := trail[len(trail)-1]
			trail = trail[:len(trail)-1]
			newBod := subst(dag, n, redex.Arg)
			replaceEverywhere(dag, redex, newBod)
			cur = newBod

		case *Cse:
			scrutinee := whnf(dag, n.Bod)
			dat, ok := scrutinee.(*Dat)
			if !ok {
				return rebuild(trail, n)
			}
			replaceEverywhere(dag, n, dat.Bod)
			cur = dat.Bod

		case *Opr:
			arity := n.Op.Arity()
			if arity == 0 || len(trail) < arity {
				return rebuild(trail, n)
			}

			args := make([]Node, arity)
			for i := range arity {
				args[i] = whnf(dag, trail[len(trail)-1-i].Arg)
			}

			lits := make([]primop.Literal, arity)
			for i, a := range args {
				lit, ok := a.(*Lit)
				if !ok {
					return rebuild(trail, n)
				}
				lits[i] = lit.Val
			}

			var resLit primop.Literal
			var ok bool
			switch arity {
			case 1:
				resLit, ok = primop.ApplyUna(n.Op, lits[0])
			case 2:
				// lits[0] is the first-applied (innermost) argument,
				// lits[1] the second-applied (outermost) one; ApplyBin
				// wants (second, first).
				resLit, ok = primop.ApplyBin(n.Op, lits[1], lits[0])
			}
			if !ok {
				return rebuild(trail, n)
			}

			outer := trail[len(trail)-arity]
			trail = trail[:len(trail)-arity]
			result := dag.reg.newLit(resLit)
			replaceEverywhere(dag, outer, result)
			cur = result

		default:
			// Var, Lit, Typ, Slf, All, Dat: already values, nothing
			// further to do.
			return rebuild(trail, cur)
		}
	}
}

// rebuild returns the node that now stands in for the term whnf was
// asked to reduce. Every mutation along the way already landed in the
// graph in place via replaceEverywhere/replaceChild, so there is
// nothing left to splice here: trail[0], if any frames remain, is the
// same outermost App object the walk started from (its Fun field has
// simply been kept up to date), and cur is the whole answer if the
// trail emptied out entirely.
func rebuild(trail []*App, cur Node) Node {
	if len(trail) == 0 {
		return cur
	}
	return trail[0]
}
