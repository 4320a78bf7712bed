// SPDX-License-Identifier: MIT

// Package defs is the definitions-map collaborator spec.md places out of
// scope for the reduction engine itself: a name-keyed lookup from a Ref's
// Link to the surface term it stands for. graph consumes it only through
// the Lookup method, so any other backing store (a database, an LSP
// workspace index) can stand in without graph noticing.
package defs

import "github.com/dagreduce/lambdag/term"

// Link is the name a Ref resolves through.
type Link = string

// Def is one bound top-level definition.
type Def struct {
	Link Link
	Term *term.Term
}

// Defs is an in-memory definitions map. The zero value is an empty map
// ready to use.
type Defs struct {
	byLink map[Link]*Def
}

// New returns an empty Defs.
func New() *Defs {
	return &Defs{byLink: make(map[Link]*Def)}
}

// Add binds link to t, overwriting any previous definition for link.
func (d *Defs) Add(link Link, t *term.Term) {
	if d.byLink == nil {
		d.byLink = make(map[Link]*Def)
	}
	d.byLink[link] = &Def{Link: link, Term: t}
}

// Lookup returns the definition bound to link, if any.
func (d *Defs) Lookup(link Link) (*Def, bool) {
	if d.byLink == nil {
		return nil, false
	}
	def, ok := d.byLink[link]
	return def, ok
}

// Len reports how many definitions are bound.
func (d *Defs) Len() int {
	return len(d.byLink)
}
