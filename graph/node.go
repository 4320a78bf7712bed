// SPDX-License-Identifier: MIT

// Package graph is the sharing-preserving reduction engine: an in-place
// rewriting graph with parent back-pointers that performs beta-reduction,
// case-on-data reduction, and primitive-operator evaluation while
// preserving maximal sharing of subterms. This file is spec.md §3, the
// data model.
package graph

import (
	"github.com/dagreduce/lambdag/defs"
	"github.com/dagreduce/lambdag/primop"
	"github.com/dagreduce/lambdag/term"
)

// Node is any node in the graph. Parents/SetParents dispatch on kind the
// way the teacher's nodeReader/nodeWriter interface
// (noderiface.go) dispatches node operations over *bartNode/*fastNode/
// *liteNode without a type switch at every call site.
type Node interface {
	Parents() *ParentCell
	SetParents(*ParentCell)
	arenaID() uint64
}

// Var is a bound or free variable occurrence. Its identity is its
// pointer: two Var values are the "same" variable iff they are the same
// *Var, never by comparing Name.
type Var struct {
	Name    string
	id      uint64
	parents *ParentCell
}

func (v *Var) Parents() *ParentCell     { return v.parents }
func (v *Var) SetParents(p *ParentCell) { v.parents = p }
func (v *Var) arenaID() uint64          { return v.id }

// Lam is a lambda abstraction, binding Var over Bod.
type Lam struct {
	Var     *Var
	Bod     Node
	bodCell *ParentCell
	id      uint64
	parents *ParentCell
}

func (n *Lam) Parents() *ParentCell     { return n.parents }
func (n *Lam) SetParents(p *ParentCell) { n.parents = p }
func (n *Lam) arenaID() uint64          { return n.id }

// Slf is a self-type former, binding Var over Bod.
type Slf struct {
	Var     *Var
	Bod     Node
	bodCell *ParentCell
	id      uint64
	parents *ParentCell
}

func (n *Slf) Parents() *ParentCell     { return n.parents }
func (n *Slf) SetParents(p *ParentCell) { n.parents = p }
func (n *Slf) arenaID() uint64          { return n.id }

// All is a dependent function type, binding Var over Img with domain Dom.
// It is a two-child node for upcopy purposes (Dom, Img) plus the bound
// variable, matching original_source's Branch::All(Uses).
type All struct {
	Var     *Var
	Uses    term.Uses
	Dom     Node
	Img     Node
	domCell *ParentCell
	imgCell *ParentCell
	// Copy caches the in-progress duplicate during a single upcopy pass;
	// spec.md invariant 3 requires this to be nil outside of substitution.
	Copy    *All
	id      uint64
	parents *ParentCell
}

func (n *All) Parents() *ParentCell     { return n.parents }
func (n *All) SetParents(p *ParentCell) { n.parents = p }
func (n *All) arenaID() uint64          { return n.id }

// App is a function application.
type App struct {
	Fun     Node
	Arg     Node
	funCell *ParentCell
	argCell *ParentCell
	Copy    *App
	id      uint64
	parents *ParentCell
}

func (n *App) Parents() *ParentCell     { return n.parents }
func (n *App) SetParents(p *ParentCell) { n.parents = p }
func (n *App) arenaID() uint64          { return n.id }

// Ann is an explicit type annotation, `exp :: typ`.
type Ann struct {
	Typ     Node
	Exp     Node
	typCell *ParentCell
	expCell *ParentCell
	Copy    *Ann
	id      uint64
	parents *ParentCell
}

func (n *Ann) Parents() *ParentCell     { return n.parents }
func (n *Ann) SetParents(p *ParentCell) { n.parents = p }
func (n *Ann) arenaID() uint64          { return n.id }

// Dat introduces a data value (the "constructor" side of case/elim).
type Dat struct {
	Bod     Node
	bodCell *ParentCell
	id      uint64
	parents *ParentCell
}

func (n *Dat) Parents() *ParentCell     { return n.parents }
func (n *Dat) SetParents(p *ParentCell) { n.parents = p }
func (n *Dat) arenaID() uint64          { return n.id }

// Cse is a case/elim over a Dat-headed scrutinee.
type Cse struct {
	Bod     Node
	bodCell *ParentCell
	id      uint64
	parents *ParentCell
}

func (n *Cse) Parents() *ParentCell     { return n.parents }
func (n *Cse) SetParents(p *ParentCell) { n.parents = p }
func (n *Cse) arenaID() uint64          { return n.id }

// Let is the explicit, unimplemented hole from spec.md §3/§9: encountering
// one during reduction panics via failUnimplemented with
// errs.CodeUnimplementedConstruct.
type Let struct {
	id      uint64
	parents *ParentCell
}

func (n *Let) Parents() *ParentCell     { return n.parents }
func (n *Let) SetParents(p *ParentCell) { n.parents = p }
func (n *Let) arenaID() uint64          { return n.id }

// Lit is a literal value.
type Lit struct {
	Val     primop.Literal
	id      uint64
	parents *ParentCell
}

func (n *Lit) Parents() *ParentCell     { return n.parents }
func (n *Lit) SetParents(p *ParentCell) { n.parents = p }
func (n *Lit) arenaID() uint64          { return n.id }

// Opr is a primitive operator, saturated by applications above it.
type Opr struct {
	Op      primop.Op
	id      uint64
	parents *ParentCell
}

func (n *Opr) Parents() *ParentCell     { return n.parents }
func (n *Opr) SetParents(p *ParentCell) { n.parents = p }
func (n *Opr) arenaID() uint64          { return n.id }

// Typ is the universe.
type Typ struct {
	id      uint64
	parents *ParentCell
}

func (n *Typ) Parents() *ParentCell     { return n.parents }
func (n *Typ) SetParents(p *ParentCell) { n.parents = p }
func (n *Typ) arenaID() uint64          { return n.id }

// Ref is a named reference to an external definition (defs.Defs).
type Ref struct {
	Link    defs.Link
	id      uint64
	parents *ParentCell
}

func (n *Ref) Parents() *ParentCell     { return n.parents }
func (n *Ref) SetParents(p *ParentCell) { n.parents = p }
func (n *Ref) arenaID() uint64          { return n.id }

// slot identifies which owned ParentCell a two-or-single-child node used
// to reach a particular child, i.e. the Rust original's ParentCell::{Left,
// Right, Single, Root}.
type slot uint8

const (
	slotRoot slot = iota
	slotBod        // Lam/Slf/Dat/Cse's only child
	slotFun        // App.Fun
	slotArg        // App.Arg
	slotDom        // All.Dom
	slotImg        // All.Img
	slotTyp        // Ann.Typ
	slotExp        // Ann.Exp
)
