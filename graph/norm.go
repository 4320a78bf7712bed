// SPDX-License-Identifier: MIT

package graph

// norm drives start to full normal form: its head is reduced via whnf,
// then every child is normalized in turn. Because whnf always mutates
// the graph in place through replaceEverywhere/replaceChild, a child's
// parent already sees the normalized child by the time the recursive
// call below returns — there is no separate "splice the result back in"
// step the way a substitution-free, copy-returning normalizer would
// need. Grounded on original_source's DAG::norm.
func norm(dag *DAG, start Node) Node {
	cur := whnf(dag, start)

	switch n := cur.(type) {
	case *App:
		norm(dag, n.Fun)
		norm(dag, n.Arg)
	case *All:
		norm(dag, n.Dom)
		norm(dag, n.Img)
	case *Ann:
		norm(dag, n.Typ)
		norm(dag, n.Exp)
	case *Lam:
		norm(dag, n.Bod)
	case *Slf:
		norm(dag, n.Bod)
	case *Dat:
		norm(dag, n.Bod)
	case *Cse:
		norm(dag, n.Bod)
	}

	return cur
}
