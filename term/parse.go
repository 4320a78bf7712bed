// SPDX-License-Identifier: MIT

package term

import (
	"fmt"
	"strconv"

	"github.com/dagreduce/lambdag/primop"
)

// Parse reads one term from src, per the grammar in SPEC_FULL.md §5.
// Bound names resolve to de-Bruijn Var nodes; any name not in scope
// becomes a Ref, so top-level definitions need no special sigil (though
// `%name` is also accepted as an explicit Ref spelling).
func Parse(src string) (*Term, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tEOF {
		return nil, fmt.Errorf("term: unexpected trailing input at offset %d", p.cur().pos)
	}
	return t, nil
}

type parser struct {
	toks []token
	pos  int
	env  []string // bound names, nearest-last
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) advance()    { p.pos++ }
func (p *parser) at(k tokKind) bool { return p.cur().kind == k }

func (p *parser) expect(k tokKind, what string) (token, error) {
	if !p.at(k) {
		return token{}, fmt.Errorf("term: expected %s at offset %d, got %q", what, p.cur().pos, p.cur().text)
	}
	t := p.cur()
	p.advance()
	return t, nil
}

func (p *parser) term() (*Term, error) {
	switch {
	case p.at(tLambda):
		return p.lam()
	case p.at(tAt):
		return p.slf()
	case p.at(tLParen) && p.looksLikeAll():
		return p.all()
	default:
		return p.annApp()
	}
}

// looksLikeAll peeks at the two tokens after '(' to see whether they read
// `name :`, the start of `(name : uses term) -> term`, as opposed to a
// plain parenthesized subterm. The closing ')' and the arrow are checked
// by all() itself.
func (p *parser) looksLikeAll() bool {
	save := p.pos
	defer func() { p.pos = save }()

	p.advance() // '('
	if !p.at(tIdent) {
		return false
	}
	p.advance()
	return p.at(tColon)
}

func (p *parser) lam() (*Term, error) {
	p.advance() // λ
	var names []string
	for p.at(tIdent) {
		names = append(names, p.cur().text)
		p.advance()
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("term: lambda needs at least one bound name at offset %d", p.cur().pos)
	}
	if _, err := p.expect(tFatArrow, "'=>'"); err != nil {
		return nil, err
	}
	for _, n := range names {
		p.env = append(p.env, n)
	}
	bod, err := p.term()
	for range names {
		p.env = p.env[:len(p.env)-1]
	}
	if err != nil {
		return nil, err
	}
	for i := len(names) - 1; i >= 0; i-- {
		bod = NewLam(names[i], bod)
	}
	return bod, nil
}

func (p *parser) slf() (*Term, error) {
	p.advance() // @
	name, err := p.expect(tIdent, "self-type variable name")
	if err != nil {
		return nil, err
	}
	p.env = append(p.env, name.text)
	bod, err := p.term()
	p.env = p.env[:len(p.env)-1]
	if err != nil {
		return nil, err
	}
	return NewSlf(name.text, bod), nil
}

func (p *parser) all() (*Term, error) {
	if _, err := p.expect(tLParen, "'('"); err != nil {
		return nil, err
	}
	name, err := p.expect(tIdent, "All-bound variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tColon, "':'"); err != nil {
		return nil, err
	}
	uses := UsesMany
	if p.at(tIdent) || p.at(tInt) {
		if u, ok := ParseUses(p.cur().text); ok {
			uses = u
			p.advance()
		}
	}
	dom, err := p.term()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tRParen, "')'"); err != nil {
		return nil, err
	}
	if !p.at(tArrow) {
		return nil, fmt.Errorf("term: expected '->' after All-domain at offset %d", p.cur().pos)
	}
	p.advance()
	p.env = append(p.env, name.text)
	img, err := p.term()
	p.env = p.env[:len(p.env)-1]
	if err != nil {
		return nil, err
	}
	return NewAll(name.text, uses, dom, img), nil
}

func (p *parser) annApp() (*Term, error) {
	exp, err := p.app()
	if err != nil {
		return nil, err
	}
	if p.at(tColonColon) {
		p.advance()
		typ, err := p.term()
		if err != nil {
			return nil, err
		}
		return NewAnn(typ, exp), nil
	}
	return exp, nil
}

func (p *parser) app() (*Term, error) {
	fn, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		arg, err := p.atom()
		if err != nil {
			return nil, err
		}
		fn = NewApp(fn, arg)
	}
	return fn, nil
}

func (p *parser) startsAtom() bool {
	switch p.cur().kind {
	case tIdent, tInt, tLParen, tHash, tDollar, tPercent:
		return true
	default:
		return false
	}
}

func (p *parser) atom() (*Term, error) {
	switch p.cur().kind {
	case tLParen:
		p.advance()
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tRParen, "')'"); err != nil {
			return nil, err
		}
		return t, nil
	case tHash:
		p.advance()
		bod, err := p.atom()
		if err != nil {
			return nil, err
		}
		return NewDat(bod), nil
	case tDollar:
		p.advance()
		bod, err := p.atom()
		if err != nil {
			return nil, err
		}
		return NewCse(bod), nil
	case tPercent:
		p.advance()
		name, err := p.expect(tIdent, "reference name")
		if err != nil {
			return nil, err
		}
		return NewRef(name.text), nil
	case tInt:
		text := p.cur().text
		p.advance()
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("term: invalid integer literal %q: %w", text, err)
		}
		return NewLit(primop.I64(n)), nil
	case tIdent:
		return p.ident()
	default:
		return nil, fmt.Errorf("term: expected a term at offset %d, got %q", p.cur().pos, p.cur().text)
	}
}

func (p *parser) ident() (*Term, error) {
	name := p.cur().text
	p.advance()

	switch name {
	case "Type":
		return NewTyp(), nil
	case "true":
		return NewLit(primop.Bool(true)), nil
	case "false":
		return NewLit(primop.Bool(false)), nil
	}

	for i := len(p.env) - 1; i >= 0; i-- {
		if p.env[i] == name {
			return NewVar(name, uint64(len(p.env)-1-i)), nil
		}
	}
	if op, ok := primop.ParseOp(name); ok {
		return NewOpr(op), nil
	}
	return NewRef(name), nil
}
