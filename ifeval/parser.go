// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ifeval

import (
	"fmt"

	"github.com/cpre/cpre/token"
)

// parser is a precedence-climbing recursive descent parser over an already
// resolved token slice (spec.md §4.4: "condition's token slice is first
// resolved… then parsed with a small expression parser").
type parser struct {
	toks []token.Token
	pos  int
}

// ErrInvalid is returned (wrapped with detail) when the condition does not
// reduce to a single constant expression, per spec.md §4.4's "only one
// top-level expression is permitted; trailing tokens are a fatal error" and
// §7's ConstExprInvalid kind.
type ErrInvalid struct {
	Detail string
}

func (e *ErrInvalid) Error() string {
	return "invalid #if constant expression: " + e.Detail
}

// Parse parses toks (which must already be macro-resolved) into a constant
// expression. Returns ErrInvalid if toks is not exactly one expression.
func Parse(toks []token.Token) (Expr, error) {
	p := &parser{toks: skipSpace(toks)}
	if len(p.toks) == 0 {
		return nil, &ErrInvalid{"empty condition"}
	}

	e, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, &ErrInvalid{fmt.Sprintf("unexpected trailing token %q", p.toks[p.pos].Printable())}
	}
	return e, nil
}

// Eval is a convenience that parses and immediately folds toks to an
// integer, and whether it is non-zero (spec.md §4.4: "iff non-zero").
func Eval(toks []token.Token, env Env) (int64, bool, error) {
	e, err := Parse(toks)
	if err != nil {
		return 0, false, err
	}
	v := e.Eval(env)
	return v, v != 0, nil
}

func skipSpace(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.EOF || t.Kind == token.EOT {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) parseTernary() (Expr, error) {
	cond, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || t.Kind != token.Question {
		return cond, nil
	}
	p.advance()
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	colon, ok := p.peek()
	if !ok || colon.Kind != token.Colon {
		return nil, &ErrInvalid{"expected ':' in ternary expression"}
	}
	p.advance()
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return ternary{cond, then, els}, nil
}

// precedence levels, low to high; each entry is the set of Kinds at that
// level, all left-associative.
var precedence = [][]token.Kind{
	{token.PipePipe},
	{token.AmpAmp},
	{token.Pipe},
	{token.Caret},
	{token.Amp},
	{token.Eq, token.Ne},
	{token.Lt, token.Le, token.Gt, token.Ge},
	{token.Shl, token.Shr},
	{token.Plus, token.Minus},
	{token.Star, token.Slash, token.Percent},
}

func (p *parser) parseBinary(level int) (Expr, error) {
	if level >= len(precedence) {
		return p.parseUnary()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		t, ok := p.peek()
		if !ok || !kindIn(t.Kind, precedence[level]) {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = binary{op: t.Text, left: left, right: right}
	}
}

func kindIn(k token.Kind, set []token.Kind) bool {
	for _, s := range set {
		if s == k {
			return true
		}
	}
	return false
}

func (p *parser) parseUnary() (Expr, error) {
	t, ok := p.peek()
	if ok {
		switch t.Kind {
		case token.Bang, token.Minus, token.Plus, token.Tilde:
			p.advance()
			inner, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return unary{op: t.Text, expr: inner}, nil
		}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, &ErrInvalid{"unexpected end of expression"}
	}

	switch t.Kind {
	case token.LParen:
		p.advance()
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		closeT, ok := p.peek()
		if !ok || closeT.Kind != token.RParen {
			return nil, &ErrInvalid{"expected ')'"}
		}
		p.advance()
		return inner, nil

	case token.Number:
		p.advance()
		lit, _ := t.Payload.(*token.NumberLiteral)
		if lit == nil {
			lit = &token.NumberLiteral{Text: t.Text}
		}
		return intLit{parseInt[int64](lit)}, nil

	case token.Ident:
		p.advance()
		if t.Text == "defined" {
			return p.parseDefined()
		}
		return ident{t.Text}, nil

	case token.MacroDefined:
		p.advance()
		name, _ := t.Payload.(*token.Name)
		if name == nil {
			return nil, &ErrInvalid{"malformed defined() operand"}
		}
		return definedExpr{name.Text}, nil

	default:
		return nil, &ErrInvalid{fmt.Sprintf("unexpected token %q in constant expression", t.Printable())}
	}
}

// parseDefined parses the `(IDENT)` or bare `IDENT` following a `defined`
// identifier, per spec.md §4.4's "defined(X)" probe grammar (C also permits
// the parenthesis-free form `defined X`).
func (p *parser) parseDefined() (Expr, error) {
	hasParen := false
	if t, ok := p.peek(); ok && t.Kind == token.LParen {
		hasParen = true
		p.advance()
	}

	nameTok, ok := p.peek()
	if !ok || nameTok.Kind != token.Ident {
		return nil, &ErrInvalid{"expected identifier after 'defined'"}
	}
	p.advance()

	if hasParen {
		closeT, ok := p.peek()
		if !ok || closeT.Kind != token.RParen {
			return nil, &ErrInvalid{"expected ')' after defined(...)"}
		}
		p.advance()
	}

	return definedExpr{nameTok.Text}, nil
}
