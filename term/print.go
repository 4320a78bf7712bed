// SPDX-License-Identifier: MIT

package term

import "strings"

// String renders t back into the surface syntax from SPEC_FULL.md §5.
// Round-tripping Parse(t.String()) is the invariant exercised by
// TestPropertyPrintParseRoundTrip in this package.
func (t *Term) String() string {
	var sb strings.Builder
	t.render(&sb, ctxTop)
	return sb.String()
}

type printCtx uint8

const (
	ctxTop    printCtx = iota // anywhere a whole term is expected
	ctxAppFun                 // function position of an application
	ctxAtom                   // argument position / anything requiring an atom
)

func (t *Term) render(sb *strings.Builder, ctx printCtx) {
	needsParens := false
	switch t.Kind {
	case KLam, KSlf, KAll, KAnn:
		needsParens = ctx != ctxTop
	case KApp:
		needsParens = ctx == ctxAtom
	}

	if needsParens {
		sb.WriteByte('(')
		defer sb.WriteByte(')')
	}

	switch t.Kind {
	case KVar:
		sb.WriteString(t.Name)
	case KLam:
		sb.WriteString("λ ")
		cur := t
		for cur.Kind == KLam {
			sb.WriteString(cur.Bind)
			if cur.A.Kind == KLam {
				sb.WriteByte(' ')
			}
			cur = cur.A
		}
		sb.WriteString(" => ")
		cur.render(sb, ctxTop)
	case KSlf:
		sb.WriteByte('@')
		sb.WriteString(t.Bind)
		sb.WriteByte(' ')
		t.A.render(sb, ctxTop)
	case KAll:
		sb.WriteByte('(')
		sb.WriteString(t.Bind)
		sb.WriteString(" : ")
		sb.WriteString(t.Uses.String())
		sb.WriteByte(' ')
		t.A.render(sb, ctxTop)
		sb.WriteString(") -> ")
		t.B.render(sb, ctxTop)
	case KApp:
		t.A.render(sb, ctxAppFun)
		sb.WriteByte(' ')
		t.B.render(sb, ctxAtom)
	case KAnn:
		t.B.render(sb, ctxAtom)
		sb.WriteString(" :: ")
		t.A.render(sb, ctxTop)
	case KDat:
		sb.WriteByte('#')
		t.A.render(sb, ctxAtom)
	case KCse:
		sb.WriteByte('$')
		t.A.render(sb, ctxAtom)
	case KLet:
		sb.WriteString("let")
	case KLit:
		sb.WriteString(t.Lit.String())
	case KOpr:
		sb.WriteString(t.Opr.String())
	case KTyp:
		sb.WriteString("Type")
	case KRef:
		sb.WriteString(t.Link)
	}
}
