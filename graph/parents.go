// SPDX-License-Identifier: MIT

package graph

// edge is one (child, owning-cell) pair of a node, used to walk a node's
// children generically without a type switch at every call site that
// needs to touch all of them (freeDeadNode, upcopy's fan-out).
type edge struct {
	child Node
	cell  *ParentCell
}

// edges returns n's children along with the ParentCell each child
// reaches back through. Leaves (Var, Lit, Opr, Typ, Ref, Let) return nil.
func edges(n Node) []edge {
	switch n := n.(type) {
	case *Lam:
		// Bod is nil'd out by subst once a Lam has been eliminated by
		// application, ahead of the Lam itself being freed once its own
		// last application-parent goes away; skip the already-severed
		// edge rather than re-detaching it.
		if n.Bod == nil {
			return nil
		}
		return []edge{{n.Bod, n.bodCell}}
	case *Slf:
		return []edge{{n.Bod, n.bodCell}}
	case *All:
		return []edge{{n.Dom, n.domCell}, {n.Img, n.imgCell}}
	case *App:
		return []edge{{n.Fun, n.funCell}, {n.Arg, n.argCell}}
	case *Ann:
		return []edge{{n.Typ, n.typCell}, {n.Exp, n.expCell}}
	case *Dat:
		return []edge{{n.Bod, n.bodCell}}
	case *Cse:
		return []edge{{n.Bod, n.bodCell}}
	default:
		return nil
	}
}

// attach creates a fresh singleton ParentCell recording that owner
// reaches child through sl, and threads it into child's parent ring.
func attach(owner Node, sl slot, child Node) *ParentCell {
	c := singleton(owner, sl)
	child.SetParents(merge(child.Parents(), c))
	return c
}

// replaceChild points owner's sl-slot at newChild instead of whatever it
// held before, moving cell from oldChild's parent ring to newChild's.
// This is the graph's in-place analogue of original_source's
// `replace_child`: the ParentCell's identity survives the move, so any
// other code still holding a reference to cell sees the new target.
func replaceChild(reg *registry, owner Node, sl slot, cell *ParentCell, oldChild, newChild Node) {
	oldChild.SetParents(remove(oldChild.Parents(), cell))

	switch o := owner.(type) {
	case *Lam:
		o.Bod = newChild
	case *Slf:
		o.Bod = newChild
	case *All:
		switch sl {
		case slotDom:
			o.Dom = newChild
		case slotImg:
			o.Img = newChild
		}
	case *App:
		switch sl {
		case slotFun:
			o.Fun = newChild
		case slotArg:
			o.Arg = newChild
		}
	case *Ann:
		switch sl {
		case slotTyp:
			o.Typ = newChild
		case slotExp:
			o.Exp = newChild
		}
	case *Dat:
		o.Bod = newChild
	case *Cse:
		o.Bod = newChild
	default:
		panic("graph: replaceChild owner is not a compound node, the graph is malformed")
	}

	newChild.SetParents(merge(newChild.Parents(), cell))

	// oldChild is freed only after newChild holds cell, so a newChild that
	// was reachable only through oldChild is not freed along with it.
	if oldChild.Parents() == nil {
		freeDeadNode(reg, oldChild)
	}
}

// replaceEverywhere points every current parent of old at new instead,
// reusing each ParentCell the way replaceChild does. Unlike
// substitution's upcopy, a reduced redex never needs more than one
// consumer-facing value, so every parent legitimately wants the same
// new node: the node that got reduced once benefits every one of its
// parents, not just the occurrence whnf happened to walk in through.
func replaceEverywhere(dag *DAG, old, new Node) {
	for _, c := range eachParent(old.Parents()) {
		if c.Owner == nil {
			dag.Head = new
			newHead := remove(old.Parents(), c)
			old.SetParents(newHead)
			new.SetParents(merge(new.Parents(), c))
			if newHead == nil {
				freeDeadNode(dag.reg, old)
			}
			continue
		}
		replaceChild(dag.reg, c.Owner, c.Slot, c, old, new)
	}
}

// freeDeadNode recursively releases n, which has just lost its last
// parent: each of n's own children loses the cell n held on it, and if
// that drops a child to zero parents too, the child is freed in turn.
// Mirrors original_source's free_dead_node walking down through a
// now-unreachable subterm instead of waiting on a GC.
func freeDeadNode(reg *registry, n Node) {
	for _, e := range edges(n) {
		newHead := remove(e.child.Parents(), e.cell)
		e.child.SetParents(newHead)
		if newHead == nil {
			freeDeadNode(reg, e.child)
		}
	}
	reg.free(n)
}
