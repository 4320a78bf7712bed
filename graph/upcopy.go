// SPDX-License-Identifier: MIT

package graph

// upcopy is the sharing-preserving duplication step substitution relies
// on whenever a bound variable occurs more than once. Given one
// occurrence's parent cell and the node that should appear in the
// variable's place there, it walks upward through the graph, copying
// each ancestor exactly once no matter how many times the walk reaches
// it, and leaving everything below/beside the walked path untouched and
// shared between the old and new spines. The walk always terminates at
// stop: reaching one of stop's own child cells means the climb has
// produced stop's new child on that slot, so onStop records or splices
// it in rather than fanning out past the node the walk is confined to.
// subst's primary substitution pass stops at the Lam being eliminated
// and only records the answer, since that Lam is never touched when it
// is shared; freshenBinderVar's secondary pass, run while copying some
// other binder encountered along the way, stops at that binder's own
// copy and splices in, since the copy is brand new and owned by nobody
// else yet.
//
// Two-child ancestors (App/All/Ann) cache the in-progress duplicate on a
// Copy field: the first of two converging walks to arrive creates the
// copy (referencing the *other*, not-yet-duplicated child by the
// original, shared pointer) and keeps climbing; the second walk to
// arrive finds Copy already set and simply patches that remaining slot
// in place, without climbing again, since the first walk already carried
// the propagation the rest of the way up. This diamond only arises for
// multi-child nodes: a single-child node (Lam/Slf/Dat/Cse) has only one
// edge down to begin with, so it can never receive two independent
// "first arrival" calls for the same walk, and needs no Copy cache at
// all.
//
// pending collects a thunk per Copy slot set along the way; once the
// whole substitution finishes, the caller runs them to null the slots
// back out (original_source's clear_copies), so the next, unrelated
// substitution starts from a clean graph.
func upcopy(dag *DAG, stop Node, onStop func(slot, Node), pending *[]func(), newChild Node, cell *ParentCell) {
	if cell.Owner == stop {
		onStop(cell.Slot, newChild)
		return
	}

	if cell.Owner == nil {
		redirectRoot(dag, newChild, cell)
		return
	}

	switch o := cell.Owner.(type) {
	case *Lam:
		copy := dag.reg.newLam(o.Var, newChild)
		freshenBinderVar(dag, copy, o.Var, pending)
		fanOut(dag, stop, onStop, pending, o, copy)

	case *Slf:
		copy := dag.reg.newSlf(o.Var, newChild)
		freshenBinderVar(dag, copy, o.Var, pending)
		fanOut(dag, stop, onStop, pending, o, copy)

	case *Dat:
		copy := dag.reg.newDat(newChild)
		fanOut(dag, stop, onStop, pending, o, copy)

	case *Cse:
		copy := dag.reg.newCse(newChild)
		fanOut(dag, stop, onStop, pending, o, copy)

	case *App:
		if o.Copy == nil {
			fun, arg := o.Fun, o.Arg
			if cell.Slot == slotFun {
				fun = newChild
			} else {
				arg = newChild
			}
			copy := dag.reg.newApp(fun, arg)
			o.Copy = copy
			*pending = append(*pending, func() { o.Copy = nil })
			fanOut(dag, stop, onStop, pending, o, copy)
		} else {
			copy := o.Copy
			if cell.Slot == slotFun {
				replaceChild(dag.reg, copy, slotFun, copy.funCell, copy.Fun, newChild)
			} else {
				replaceChild(dag.reg, copy, slotArg, copy.argCell, copy.Arg, newChild)
			}
		}

	case *All:
		if o.Copy == nil {
			dom, img := o.Dom, o.Img
			if cell.Slot == slotDom {
				dom = newChild
			} else {
				img = newChild
			}
			copy := dag.reg.newAll(o.Var, o.Uses, dom, img)
			o.Copy = copy
			*pending = append(*pending, func() { o.Copy = nil })
			freshenBinderVar(dag, copy, o.Var, pending)
			fanOut(dag, stop, onStop, pending, o, copy)
		} else {
			copy := o.Copy
			if cell.Slot == slotDom {
				replaceChild(dag.reg, copy, slotDom, copy.domCell, copy.Dom, newChild)
			} else {
				replaceChild(dag.reg, copy, slotImg, copy.imgCell, copy.Img, newChild)
			}
		}

	case *Ann:
		if o.Copy == nil {
			typ, exp := o.Typ, o.Exp
			if cell.Slot == slotTyp {
				typ = newChild
			} else {
				exp = newChild
			}
			copy := dag.reg.newAnn(typ, exp)
			o.Copy = copy
			*pending = append(*pending, func() { o.Copy = nil })
			fanOut(dag, stop, onStop, pending, o, copy)
		} else {
			copy := o.Copy
			if cell.Slot == slotTyp {
				replaceChild(dag.reg, copy, slotTyp, copy.typCell, copy.Typ, newChild)
			} else {
				replaceChild(dag.reg, copy, slotExp, copy.expCell, copy.Exp, newChild)
			}
		}

	default:
		panic("graph: upcopy reached a leaf node as an owner, the graph is malformed")
	}
}

// fanOut propagates a freshly made copy of old to every one of old's own
// parents, continuing the upward walk one level further.
func fanOut(dag *DAG, stop Node, onStop func(slot, Node), pending *[]func(), old Node, copy Node) {
	for _, p := range eachParent(old.Parents()) {
		upcopy(dag, stop, onStop, pending, copy, p)
	}
}

// freshenBinderVar gives copy its own bound variable instead of letting it
// share oldVar with whatever binder copy was just copied from. Without
// this, a binder duplicated by upcopy while its original survives (is
// itself still reachable some other way) would leave two live binders
// claiming the same *Var, breaking spec.md invariant 2: a later
// substitution through either binder would walk oldVar's occurrence ring
// and find occurrences that belong to the *other* binder's body mixed in.
//
// oldVar's occurrences can only ever be inside the binder that scopes it,
// so redirecting them never needs to climb past copy itself: each
// occurrence's own upward walk is confined to stop at copy, which (being
// brand new) is safe to splice into directly rather than merely recorded,
// the same way App/All/Ann splice a second-arriving sibling into an
// already-built copy. Grounded on original_source's per-frame new_var
// allocation when popping a substituted spine back out through its
// enclosing binders (src/core/eval.rs:96-105).
func freshenBinderVar(dag *DAG, copy Node, oldVar *Var, pending *[]func()) {
	newVar := dag.reg.newVar(oldVar.Name)

	switch c := copy.(type) {
	case *Lam:
		c.Var = newVar
	case *Slf:
		c.Var = newVar
	case *All:
		c.Var = newVar
	default:
		panic("graph: freshenBinderVar called on a non-binder copy, the graph is malformed")
	}

	onStop := func(sl slot, newChild Node) {
		switch c := copy.(type) {
		case *Lam:
			replaceChild(dag.reg, c, slotBod, c.bodCell, c.Bod, newChild)
		case *Slf:
			replaceChild(dag.reg, c, slotBod, c.bodCell, c.Bod, newChild)
		case *All:
			if sl == slotDom {
				replaceChild(dag.reg, c, slotDom, c.domCell, c.Dom, newChild)
			} else {
				replaceChild(dag.reg, c, slotImg, c.imgCell, c.Img, newChild)
			}
		}
	}

	for _, c := range eachParent(oldVar.Parents()) {
		upcopy(dag, copy, onStop, pending, Node(newVar), c)
	}
}

// redirectRoot handles the case where the walk has reached the DAG's own
// root pointer rather than another node's child slot or stop. It should
// not arise while substituting a variable bound inside the Lam being
// eliminated, since such a walk must reach that Lam before it could reach
// the root; it exists for completeness should this function ever be
// reused for a whole-graph rewrite that does climb as far as the root.
func redirectRoot(dag *DAG, newChild Node, cell *ParentCell) {
	oldHead := dag.Head
	dag.Head = newChild
	newHead := remove(oldHead.Parents(), cell)
	oldHead.SetParents(newHead)
	if newHead == nil {
		freeDeadNode(dag.reg, oldHead)
	}
	newChild.SetParents(merge(newChild.Parents(), cell))
}
