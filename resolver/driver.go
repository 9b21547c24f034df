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
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/token"
)

// resolveList resolves list from its first token up to (but excluding) its
// last, returning a freshly allocated buffer (spec.md §4.3's driver loop:
// "Initialize current = tokens.first. Loop while current != tokens.last").
// lookForKeyword is true only for the one-token rescan list built after a
// `##` paste (spec.md §4.3.5 step 7).
func (r *Resolver) resolveList(list *token.List, lookForKeyword bool) (*rtoken.Buffer, error) {
	buf := rtoken.New()
	if err := r.resolveListInto(list, buf, lookForKeyword); err != nil {
		return nil, err
	}
	return buf, nil
}

// resolveListInto resolves list, appending its output to buf in place. This
// is how an #if branch's body is resolved directly into the parent's
// buffer rather than a separate one that's merged afterward (spec.md
// §4.3.2: "resolve the body tokens with the parent resolver's output
// buffer").
func (r *Resolver) resolveListInto(list *token.List, buf *rtoken.Buffer, lookForKeyword bool) error {
	if list == nil || list.First.IsNil() {
		return nil
	}
	table := list.Table
	cur := list.First
	for cur != list.Last {
		next, err := r.dispatchOne(table, cur, buf, lookForKeyword)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// dispatchOne processes the single token at h per spec.md §4.3's dispatch
// table and returns the handle the driver loop should resume at. Most
// kinds simply resume at the token's own Next; macro calls, conditionals,
// stringification, and pasting each consume a variable number of
// additional tokens and return accordingly.
func (r *Resolver) dispatchOne(table *token.Table, h token.Handle, buf *rtoken.Buffer, lookForKeyword bool) (token.Handle, error) {
	tok := *table.At(h)

	switch tok.Kind {
	case token.Ident:
		return r.expandIdent(table, tok, buf, lookForKeyword)

	case token.MacroDefined:
		r.evalMacroDefined(tok, buf)
		return tok.Next, nil

	case token.MacroParam, token.MacroParamVariadic:
		if err := r.spliceParam(tok, buf); err != nil {
			return token.Nil, err
		}
		return tok.Next, nil

	case token.PPDefine:
		r.registerDefine(h, tok)
		return tok.Next, nil

	case token.PPIf, token.PPIfdef, token.PPIfndef:
		return r.resolveConditionalGroup(table, h, buf)

	case token.PPInclude:
		if err := r.resolveInclude(tok, buf); err != nil {
			return token.Nil, err
		}
		return tok.Next, nil

	case token.PPUndef:
		r.undef(tok)
		return tok.Next, nil

	case token.PPError:
		return token.Nil, r.userError(tok)

	case token.PPWarning:
		r.userWarning(tok)
		return tok.Next, nil

	case token.PPEmbed, token.PPLine, token.PPPragma:
		return token.Nil, r.fatalf(diag.DirectiveUnsupported, tok.Loc, "%s is not implemented", tok.Kind)

	case token.Hashtag:
		return r.stringify(table, h, buf)

	case token.HashtagHashtag:
		return r.paste(table, h, buf)

	case token.EOT, token.PPElif, token.PPElifdef, token.PPElifndef, token.PPElse:
		// These are consumed only by resolveConditionalGroup; reaching them
		// directly here means the main loop resumed past a group boundary,
		// and they contribute nothing on their own.
		return tok.Next, nil

	default:
		buf.Push(tok)
		return tok.Next, nil
	}
}

func (r *Resolver) evalMacroDefined(tok token.Token, buf *rtoken.Buffer) {
	name, _ := tok.Payload.(*token.Name)
	text := "0"
	if name != nil && r.file.IsDefined(name.Text) {
		text = "1"
	}
	buf.Push(token.Token{
		Kind:    token.Number,
		Loc:     tok.Loc,
		Text:    text,
		Payload: &token.NumberLiteral{Text: text, Base: token.Decimal},
	})
}

func (r *Resolver) registerDefine(h token.Handle, tok token.Token) {
	def, ok := tok.Payload.(*token.Define)
	if !ok {
		return
	}
	r.file.Define(def.Name, def, h)
}

func (r *Resolver) undef(tok token.Token) {
	name, ok := tok.Payload.(*token.Name)
	if !ok {
		return
	}
	r.file.Undef(name.Text)
}

func (r *Resolver) userError(tok token.Token) error {
	msg, _ := tok.Payload.(*token.Message)
	text := ""
	if msg != nil {
		text = msg.Text
	}
	return r.fatalf(diag.UserError, tok.Loc, "%s", text)
}

func (r *Resolver) userWarning(tok token.Token) {
	msg, _ := tok.Payload.(*token.Message)
	text := ""
	if msg != nil {
		text = msg.Text
	}
	r.diags.Warning(diag.Diagnostic{Kind: diag.UserWarning, Message: text, Span: tok.Loc})
}

func (r *Resolver) lookupParam(tok token.Token) (paramResolved, error) {
	ref, ok := tok.Payload.(*token.ParamRef)
	if !ok {
		return paramResolved{}, r.fatalf(diag.MacroOperand, tok.Loc, "malformed macro parameter token")
	}
	if r.macroCall.IsEmpty() {
		return paramResolved{}, r.fatalf(diag.MacroOperand, tok.Loc, "macro parameter referenced outside a macro body")
	}
	p := r.macroCall.Params().At(ref.Index)
	return paramResolved{name: p.Name, buf: p.Resolved}, nil
}

// paramResolved is the subset of macroenv.Param this package reads; kept
// distinct so callers don't need to import macroenv just to read a field.
type paramResolved struct {
	name string
	buf  *rtoken.Buffer
}

func (r *Resolver) spliceParam(tok token.Token, buf *rtoken.Buffer) error {
	p, err := r.lookupParam(tok)
	if err != nil {
		return err
	}
	buf.Merge(p.buf)
	return nil
}
