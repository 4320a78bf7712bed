// SPDX-License-Identifier: MIT

// Package term is the surface abstract syntax for the calculus graph/
// reduces. spec.md §1 places "the surface-term abstract syntax and its
// parser/pretty-printer" out of scope for the reducer, calling it an
// external collaborator; this package is the one concrete instance of
// that collaborator the repository ships, consumed only through
// graph.FromTerm/(*graph.DAG).ToTerm.
package term

import "github.com/dagreduce/lambdag/primop"

// Kind tags which variant a Term is. Mirrors the node-kind table in
// spec.md §3 one-for-one.
type Kind uint8

const (
	KVar Kind = iota
	KLam
	KSlf
	KAll
	KApp
	KAnn
	KDat
	KCse
	KLet
	KLit
	KOpr
	KTyp
	KRef
)

func (k Kind) String() string {
	switch k {
	case KVar:
		return "Var"
	case KLam:
		return "Lam"
	case KSlf:
		return "Slf"
	case KAll:
		return "All"
	case KApp:
		return "App"
	case KAnn:
		return "Ann"
	case KDat:
		return "Dat"
	case KCse:
		return "Cse"
	case KLet:
		return "Let"
	case KLit:
		return "Lit"
	case KOpr:
		return "Opr"
	case KTyp:
		return "Typ"
	case KRef:
		return "Ref"
	default:
		return "?"
	}
}

// Term is a tagged node of the surface syntax tree. Only the fields
// relevant to Kind are meaningful, the same shape the teacher's node[V]
// carries both prefixes and children fields regardless of nodeType and
// lets the zero value of the unused ones be ignored.
type Term struct {
	Kind Kind

	// KVar
	Name string
	Idx  uint64 // de Bruijn index

	// KLam/KSlf/KAll binder name
	Bind string
	Uses Uses // KAll only

	// children, reused by Kind:
	//   KLam/KSlf: A = body
	//   KAll:      A = dom, B = img
	//   KApp:      A = fun, B = arg
	//   KAnn:      A = typ, B = exp
	//   KDat/KCse: A = body
	A, B *Term

	Lit primop.Literal // KLit
	Opr primop.Op      // KOpr

	Link string // KRef
}

func NewVar(name string, idx uint64) *Term { return &Term{Kind: KVar, Name: name, Idx: idx} }

func NewLam(bind string, bod *Term) *Term { return &Term{Kind: KLam, Bind: bind, A: bod} }

func NewSlf(bind string, bod *Term) *Term { return &Term{Kind: KSlf, Bind: bind, A: bod} }

func NewAll(bind string, uses Uses, dom, img *Term) *Term {
	return &Term{Kind: KAll, Bind: bind, Uses: uses, A: dom, B: img}
}

func NewApp(fun, arg *Term) *Term { return &Term{Kind: KApp, A: fun, B: arg} }

func NewAnn(typ, exp *Term) *Term { return &Term{Kind: KAnn, A: typ, B: exp} }

func NewDat(bod *Term) *Term { return &Term{Kind: KDat, A: bod} }

func NewCse(bod *Term) *Term { return &Term{Kind: KCse, A: bod} }

func NewLet() *Term { return &Term{Kind: KLet} }

func NewLit(lit primop.Literal) *Term { return &Term{Kind: KLit, Lit: lit} }

func NewOpr(op primop.Op) *Term { return &Term{Kind: KOpr, Opr: op} }

func NewTyp() *Term { return &Term{Kind: KTyp} }

func NewRef(link string) *Term { return &Term{Kind: KRef, Link: link} }
