// SPDX-License-Identifier: MIT

package graph

import "github.com/dagreduce/lambdag/term"

// ToTerm renders the DAG's current head back into a surface Term,
// reversing FromTerm. Sharing is not preserved in the output: a node
// reachable from two places is unfolded twice, since term.Term has no
// notion of a back-pointer. That is a deliberate, bounded cost paid only
// at the graph/term boundary (printing a result, feeding it to a type
// checker), never during reduction itself.
func (dag *DAG) ToTerm() *term.Term {
	return toTerm(dag.Head, map[*Var]int{}, 0)
}

func toTerm(n Node, depths map[*Var]int, depth int) *term.Term {
	switch n := n.(type) {
	case *Var:
		boundAt, ok := depths[n]
		if !ok {
			failMalformed("ToTerm: variable %q has no enclosing binder in this traversal", n.Name)
		}
		return term.NewVar(n.Name, uint64(depth-boundAt-1))

	case *Lam:
		depths[n.Var] = depth
		bod := toTerm(n.Bod, depths, depth+1)
		delete(depths, n.Var)
		return term.NewLam(n.Var.Name, bod)

	case *Slf:
		depths[n.Var] = depth
		bod := toTerm(n.Bod, depths, depth+1)
		delete(depths, n.Var)
		return term.NewSlf(n.Var.Name, bod)

	case *All:
		dom := toTerm(n.Dom, depths, depth)
		depths[n.Var] = depth
		img := toTerm(n.Img, depths, depth+1)
		delete(depths, n.Var)
		return term.NewAll(n.Var.Name, n.Uses, dom, img)

	case *App:
		return term.NewApp(toTerm(n.Fun, depths, depth), toTerm(n.Arg, depths, depth))

	case *Ann:
		return term.NewAnn(toTerm(n.Typ, depths, depth), toTerm(n.Exp, depths, depth))

	case *Dat:
		return term.NewDat(toTerm(n.Bod, depths, depth))

	case *Cse:
		return term.NewCse(toTerm(n.Bod, depths, depth))

	case *Let:
		return term.NewLet()

	case *Lit:
		return term.NewLit(n.Val)

	case *Opr:
		return term.NewOpr(n.Op)

	case *Typ:
		return term.NewTyp()

	case *Ref:
		return term.NewRef(n.Link)

	default:
		failMalformed("ToTerm: unrecognized node type %T", n)
		return nil
	}
}
