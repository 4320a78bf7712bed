// SPDX-License-Identifier: MIT

package graph

// subst eliminates target's body, substituting arg for target's bound
// variable throughout it, and returns the resulting term. Which path it
// takes turns on target's OWN parent count, not the variable's: a Lam
// reachable from only one place is about to be fully consumed by that
// one reducer context, so its body can be rewritten in place; a shared
// Lam must be left untouched, since its other parents still need its
// original structure, and upcopy instead builds a disjoint copy of just
// the ancestors between each occurrence and target. Grounded on
// original_source's subst(), including its two fast paths ahead of the
// general upcopy-driven one.
func subst(dag *DAG, target *Lam, arg Node) Node {
	varParents := target.Var.Parents()

	switch {
	case target.Parents().isSingleton():
		// Unique parent: target is about to be fully consumed by its one
		// reducer context, so every current occurrence of the bound
		// variable — however many there are — can be spliced to arg in
		// place, with no copying anywhere in the graph.
		if varParents != nil {
			replaceEverywhere(dag, target.Var, arg)
		}
		// target.Bod may have just been rewritten directly above, if the
		// variable's one-and-only occurrence was the whole body, so it
		// has to be read again rather than trusted from before the call.
		result := target.Bod
		emptyOutLam(dag, target, result)
		return result

	case varParents == nil:
		// Unused variable: arg is simply dropped, and the body passes
		// through unchanged. target is shared (the case above didn't
		// fire) or has nothing referencing its variable either way;
		// either way it is left completely alone, to be freed the
		// ordinary way once its own last parent-cell goes away.
		return target.Bod

	default:
		// Shared target, used variable: each occurrence needs its own
		// view of arg, produced by copying exactly the ancestors between
		// the occurrence and target via upcopy. target itself is never
		// mutated, since its other parents still need it intact: the
		// walk only ever records the answer at target, it never splices
		// into it the way it would for a binder copy upcopy builds along
		// the way.
		var result Node
		var pending []func()
		onStop := func(_ slot, newChild Node) { result = newChild }
		for _, c := range eachParent(varParents) {
			upcopy(dag, Node(target), onStop, &pending, arg, c)
		}
		for _, clear := range pending {
			clear()
		}
		return result
	}
}

// emptyOutLam pulls target.bodCell off result, which is always target.Bod
// itself at the point this is called (the unique-parent path mutates in
// place, so the two are one and the same object). result is deliberately
// left alone otherwise, even if this drops it to zero parents, since the
// caller is about to attach it at the redex's site. target.Bod is then
// cleared so the eventual, ordinary freeDeadNode(target) call — made by
// whoever replaces the App this Lam headed — does not try to walk this
// already-severed edge a second time.
func emptyOutLam(dag *DAG, target *Lam, result Node) {
	childNode := target.Bod
	newHead := remove(childNode.Parents(), target.bodCell)
	childNode.SetParents(newHead)
	if newHead == nil && childNode != result {
		freeDeadNode(dag.reg, childNode)
	}
	target.Bod = nil
	target.bodCell = nil
}
