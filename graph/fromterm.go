// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"github.com/dagreduce/lambdag/term"
)

// FromTerm builds a freshly allocated node graph from a surface Term,
// giving every bound variable's occurrences the same *Var pointer so
// that sharing-aware reduction sees them as one thing with many parents
// rather than many unrelated leaves. This is the boundary spec.md §1
// draws between term (an external collaborator) and the reduction
// engine: everything past this call is Node, ParentCell and registry
// bookkeeping, never *term.Term again.
func FromTerm(t *term.Term) (*DAG, error) {
	reg := newRegistry()
	head, err := fromTerm(reg, t, nil)
	if err != nil {
		return nil, err
	}
	return newDAGFromHead(reg, head), nil
}

func fromTerm(reg *registry, t *term.Term, env []*Var) (Node, error) {
	switch t.Kind {
	case term.KVar:
		idx := int(t.Idx)
		if idx < 0 || idx >= len(env) {
			return nil, fmt.Errorf("graph: %q references de Bruijn index %d with only %d names in scope", t.Name, t.Idx, len(env))
		}
		return env[len(env)-1-idx], nil

	case term.KLam:
		v := reg.newVar(t.Bind)
		bod, err := fromTerm(reg, t.A, append(env, v))
		if err != nil {
			return nil, err
		}
		return reg.newLam(v, bod), nil

	case term.KSlf:
		v := reg.newVar(t.Bind)
		bod, err := fromTerm(reg, t.A, append(env, v))
		if err != nil {
			return nil, err
		}
		return reg.newSlf(v, bod), nil

	case term.KAll:
		dom, err := fromTerm(reg, t.A, env)
		if err != nil {
			return nil, err
		}
		v := reg.newVar(t.Bind)
		img, err := fromTerm(reg, t.B, append(env, v))
		if err != nil {
			return nil, err
		}
		return reg.newAll(v, t.Uses, dom, img), nil

	case term.KApp:
		fun, err := fromTerm(reg, t.A, env)
		if err != nil {
			return nil, err
		}
		arg, err := fromTerm(reg, t.B, env)
		if err != nil {
			return nil, err
		}
		return reg.newApp(fun, arg), nil

	case term.KAnn:
		typ, err := fromTerm(reg, t.A, env)
		if err != nil {
			return nil, err
		}
		exp, err := fromTerm(reg, t.B, env)
		if err != nil {
			return nil, err
		}
		return reg.newAnn(typ, exp), nil

	case term.KDat:
		bod, err := fromTerm(reg, t.A, env)
		if err != nil {
			return nil, err
		}
		return reg.newDat(bod), nil

	case term.KCse:
		bod, err := fromTerm(reg, t.A, env)
		if err != nil {
			return nil, err
		}
		return reg.newCse(bod), nil

	case term.KLet:
		return reg.newLet(), nil

	case term.KLit:
		return reg.newLit(t.Lit), nil

	case term.KOpr:
		return reg.newOpr(t.Opr), nil

	case term.KTyp:
		return reg.newTyp(), nil

	case term.KRef:
		return reg.newRef(t.Link), nil

	default:
		return nil, fmt.Errorf("graph: unknown term kind %v", t.Kind)
	}
}
