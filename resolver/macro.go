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

package resolver

import (
	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/macroenv"
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/token"
	"github.com/cpre/cpre/token/keyword"
)

// expandIdent implements spec.md §4.3.1.
func (r *Resolver) expandIdent(table *token.Table, tok token.Token, buf *rtoken.Buffer, lookForKeyword bool) (token.Handle, error) {
	if lookForKeyword {
		if kw := keyword.Lookup(tok.Text); kw != keyword.Unknown {
			buf.Push(tok.WithKeyword(kw))
			return tok.Next, nil
		}
	}

	def, ok := r.file.LookupDefine(tok.Text)
	if !ok {
		buf.Push(tok)
		return tok.Next, nil
	}

	variadicIndex := -1
	for i, p := range def.Body.Params {
		if p.IsVariadic {
			variadicIndex = i
			break
		}
	}

	var argToks [][]token.Token
	var resumeAt token.Handle

	if next, ok := peekAt(table, tok.Next); ok && next.Kind == token.LParen {
		var err error
		argToks, resumeAt, err = r.parseMacroArgs(table, next.Next, variadicIndex)
		if err != nil {
			return token.Nil, err
		}
	} else if len(def.Body.Params) == 0 {
		resumeAt = tok.Next
	} else {
		return token.Nil, r.fatalf(diag.MacroArity, tok.Loc, "macro %q requires arguments", tok.Text)
	}

	// F() parses as one empty argument; a zero-parameter macro called with
	// empty parens takes zero arguments, not one.
	if len(argToks) == 1 && len(argToks[0]) == 0 && len(def.Body.Params) == 0 {
		argToks = nil
	}
	if len(argToks) != len(def.Body.Params) {
		return token.Nil, r.fatalf(diag.MacroArity, tok.Loc,
			"macro %q expects %d argument(s), got %d", tok.Text, len(def.Body.Params), len(argToks))
	}

	params := &macroenv.Params{}
	for i, raw := range argToks {
		child, err := r.enter()
		if err != nil {
			return token.Nil, err
		}
		resolved, err := child.resolveList(scratchList(raw), false)
		if err != nil {
			return token.Nil, err
		}
		params.Append(macroenv.Param{Name: def.Body.Params[i].Name, Resolved: resolved})
	}

	call := macroenv.EmptyCall()
	if params.Len() > 0 {
		call = macroenv.NewCall(params)
	}

	body, err := r.enter()
	if err != nil {
		return token.Nil, err
	}
	body.macroCall = call
	bodyBuf, err := body.resolveList(def.Body.Body, false)
	if err != nil {
		return token.Nil, err
	}
	buf.Merge(bodyBuf)

	return resumeAt, nil
}

func peekAt(table *token.Table, h token.Handle) (token.Token, bool) {
	if h.IsNil() {
		return token.Token{}, false
	}
	return *table.At(h), true
}

// parseMacroArgs implements the balanced-group parser of spec.md §4.3/§4.3.1:
// starting just after a macro call's opening '(', it splits top-level
// comma-separated argument runs, treats '(' '{' '[' as needing a matching
// close, and — once the variadic parameter's position has been reached —
// stops treating commas as separators, folding the remainder of the call
// into a single argument.
func (r *Resolver) parseMacroArgs(table *token.Table, start token.Handle, variadicIndex int) ([][]token.Token, token.Handle, error) {
	var args [][]token.Token
	var cur []token.Token
	var stack []token.Kind
	argIndex := 0

	h := start
	for {
		if h.IsNil() {
			return nil, token.Nil, r.fatalf(diag.LexicalExpectation, token.Location{}, "unterminated macro argument list")
		}
		tok := *table.At(h)

		switch tok.Kind {
		case token.LParen:
			stack = append(stack, token.RParen)
			cur = append(cur, tok)
		case token.LBrace:
			stack = append(stack, token.RBrace)
			cur = append(cur, tok)
		case token.LBracket:
			stack = append(stack, token.RBracket)
			cur = append(cur, tok)

		case token.RParen:
			if len(stack) == 0 {
				args = append(args, cur)
				return args, tok.Next, nil
			}
			if stack[len(stack)-1] != token.RParen {
				return nil, token.Nil, r.fatalf(diag.LexicalExpectation, tok.Loc, "mismatched ')' in macro arguments")
			}
			stack = stack[:len(stack)-1]
			cur = append(cur, tok)

		case token.RBrace, token.RBracket:
			if len(stack) == 0 || stack[len(stack)-1] != tok.Kind {
				return nil, token.Nil, r.fatalf(diag.LexicalExpectation, tok.Loc, "mismatched %q in macro arguments", tok.Kind)
			}
			stack = stack[:len(stack)-1]
			cur = append(cur, tok)

		case token.Comma:
			if len(stack) == 0 && !(variadicIndex >= 0 && argIndex >= variadicIndex) {
				args = append(args, cur)
				cur = nil
				argIndex++
			} else {
				cur = append(cur, tok)
			}

		default:
			cur = append(cur, tok)
		}

		h = tok.Next
	}
}

// scratchList copies toks into a fresh, self-contained token.Table/List
// terminated by a synthetic EOF, so a macro argument (or a merged-paste
// identifier) can be resolved in isolation without disturbing the tokens'
// position in their owning file's chain.
func scratchList(toks []token.Token) *token.List {
	tbl := &token.Table{}
	list := token.NewList(tbl)
	for _, t := range toks {
		list.Append(tbl.New(t))
	}
	list.Append(tbl.New(token.Token{Kind: token.EOF}))
	return list
}
