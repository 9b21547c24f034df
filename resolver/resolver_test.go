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

package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/registry"
	"github.com/cpre/cpre/resolver"
	"github.com/cpre/cpre/token"
	"github.com/cpre/cpre/token/keyword"
)

// --- token builders -------------------------------------------------------

func identTok(text string) token.Token { return token.Token{Kind: token.Ident, Text: text} }

func numTok(text string) token.Token {
	return token.Token{Kind: token.Number, Text: text, Payload: &token.NumberLiteral{Text: text, Base: token.Decimal}}
}

func punctTok(k token.Kind, text string) token.Token { return token.Token{Kind: k, Text: text} }

func paramTok(i int) token.Token {
	return token.Token{Kind: token.MacroParam, Payload: &token.ParamRef{Index: i}}
}

// buildBody terminates a nested token list (a #define body, an #if
// condition, a branch body) with an EOT sentinel, matching spec.md §3.1.
func buildBody(tbl *token.Table, toks ...token.Token) *token.List {
	list := token.NewList(tbl)
	for _, t := range toks {
		list.Append(tbl.New(t))
	}
	list.Append(tbl.New(token.Token{Kind: token.EOT, Payload: &token.EOTInfo{Context: token.EOTOther}}))
	return list
}

// buildFile terminates the top-level file list with EOF.
func buildFile(tbl *token.Table, toks ...token.Token) *token.List {
	list := token.NewList(tbl)
	for _, t := range toks {
		list.Append(tbl.New(t))
	}
	list.Append(tbl.New(token.Token{Kind: token.EOF}))
	return list
}

// newFile wires a manually constructed token list into a registry.File so
// it can be resolved.
func newFile(reg *registry.Registry, tbl *token.Table, list *token.List) *registry.File {
	f := reg.NewFile("a.c", nil, token.Source, nil)
	f.Table = tbl
	f.Tokens = list
	return f
}

type noFS struct{}

func (noFS) Exists(string) bool          { return false }
func (noFS) Read(string) ([]byte, error) { return nil, errors.New("not found") }

type noScanner struct{}

func (noScanner) Scan([]byte, token.FileID, *token.Table) (*token.List, error) {
	return nil, errors.New("unused")
}

func newResolver(f *registry.File, h *diag.Handler) *resolver.Resolver {
	reg := f // unused placeholder to keep signature obvious
	_ = reg
	return nil
}

// --- scenario 1: object-like macro --------------------------------------

func TestObjectLikeMacro(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{
		Name: "N",
		Body: buildBody(tbl, numTok("3")),
	}}

	list := buildFile(tbl, define,
		identTok("int"), identTok("a"),
		punctTok(token.LBracket, "["), identTok("N"), punctTok(token.RBracket, "]"),
		punctTok(token.Semicolon, ";"))

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)
	require.Equal(t, 0, h.ErrorCount())

	got := out.Slice()
	require.Len(t, got, 6)
	assert.Equal(t, "int", got[0].Text)
	assert.Equal(t, "a", got[1].Text)
	assert.Equal(t, token.LBracket, got[2].Kind)
	assert.Equal(t, "3", got[3].Text)
	assert.Equal(t, token.RBracket, got[4].Kind)
	assert.Equal(t, token.Semicolon, got[5].Kind)
}

// --- scenario 2: function-like macro, recursive argument resolution -----

func TestFunctionLikeMacroExpansion(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	body := buildBody(tbl,
		punctTok(token.LParen, "("), punctTok(token.LParen, "("), paramTok(0), punctTok(token.RParen, ")"),
		punctTok(token.Star, "*"),
		punctTok(token.LParen, "("), paramTok(0), punctTok(token.RParen, ")"), punctTok(token.RParen, ")"),
	)
	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{
		Name:   "SQ",
		Params: []token.DefineParam{{Name: "x"}},
		Body:   body,
	}}

	list := buildFile(tbl, define,
		identTok("SQ"), punctTok(token.LParen, "("),
		numTok("1"), punctTok(token.Plus, "+"), numTok("2"),
		punctTok(token.RParen, ")"),
	)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tok := range out.Slice() {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.LParen, token.LParen, token.Number, token.Plus, token.Number, token.RParen,
		token.Star,
		token.LParen, token.Number, token.Plus, token.Number, token.RParen, token.RParen,
	}, kinds)
}

// --- scenario 3: token pasting -------------------------------------------

func TestTokenPasting(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	body := buildBody(tbl, paramTok(0), punctTok(token.HashtagHashtag, "##"), paramTok(1))
	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{
		Name:   "GLUE",
		Params: []token.DefineParam{{Name: "a"}, {Name: "b"}},
		Body:   body,
	}}

	list := buildFile(tbl, define,
		identTok("GLUE"), punctTok(token.LParen, "("),
		identTok("foo"), punctTok(token.Comma, ","), identTok("bar"),
		punctTok(token.RParen, ")"),
	)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())
	assert.Equal(t, "foobar", out.Get(0).Text)
	assert.Equal(t, token.Ident, out.Get(0).Kind)
}

// --- keyword re-classification after paste -------------------------------

func TestPasteKeywordReclassification(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	body := buildBody(tbl, paramTok(0), punctTok(token.HashtagHashtag, "##"), identTok("nt"))
	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{
		Name:   "K",
		Params: []token.DefineParam{{Name: "a"}},
		Body:   body,
	}}

	list := buildFile(tbl, define,
		identTok("K"), punctTok(token.LParen, "("), identTok("i"), punctTok(token.RParen, ")"),
	)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())
	got := out.Get(0)
	assert.Equal(t, "int", got.Text)
	assert.Equal(t, keyword.Int, got.Keyword)
	assert.True(t, got.IsKeyword())
}

// --- stringification ------------------------------------------------------

func TestStringification(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	body := buildBody(tbl, punctTok(token.Hashtag, "#"), paramTok(0))
	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{
		Name:   "STR",
		Params: []token.DefineParam{{Name: "x"}},
		Body:   body,
	}}

	list := buildFile(tbl, define,
		identTok("STR"), punctTok(token.LParen, "("),
		identTok("hello"), identTok("world"),
		punctTok(token.RParen, ")"),
	)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())
	got := out.Get(0)
	assert.Equal(t, token.String, got.Kind)
	assert.Equal(t, "hello world", got.Text)
}

// --- variadic capture -------------------------------------------------------

func TestVariadicCapture(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	variadicParam := token.Token{Kind: token.MacroParamVariadic, Payload: &token.ParamRef{Index: 0}}
	body := buildBody(tbl, variadicParam)
	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{
		Name:       "P",
		Params:     []token.DefineParam{{Name: "__VA_ARGS__", IsVariadic: true}},
		IsVariadic: true,
		Body:       body,
	}}

	list := buildFile(tbl, define,
		identTok("P"), punctTok(token.LParen, "("),
		identTok("a"), punctTok(token.Comma, ","), identTok("b"), punctTok(token.Comma, ","), identTok("c"),
		punctTok(token.RParen, ")"),
	)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)

	var texts []string
	for _, tok := range out.Slice() {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"a", ",", "b", ",", "c"}, texts)
}

// --- arity enforcement ------------------------------------------------------

func TestArityEnforcement(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	body := buildBody(tbl, paramTok(0), punctTok(token.Plus, "+"), paramTok(1))
	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{
		Name:   "F",
		Params: []token.DefineParam{{Name: "a"}, {Name: "b"}},
		Body:   body,
	}}

	list := buildFile(tbl, define,
		identTok("F"), punctTok(token.LParen, "("), numTok("1"), punctTok(token.RParen, ")"),
	)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	_, err := res.Resolve()
	require.Error(t, err)
	var d diag.Diagnostic
	require.True(t, errors.As(err, &d))
	assert.Equal(t, diag.MacroArity, d.Kind)
}

// --- conditional selection --------------------------------------------------

func TestConditionalIfElse(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	cond := buildBody(tbl, numTok("1"), punctTok(token.Plus, "+"), numTok("1"), punctTok(token.Eq, "=="), numTok("2"))
	ifBody := buildBody(tbl, identTok("A"))
	elseBody := buildBody(tbl, identTok("B"))

	ifTok := token.Token{Kind: token.PPIf, Payload: &token.Conditional{Cond: cond, Body: ifBody}}
	elseTok := token.Token{Kind: token.PPElse, Payload: &token.Else{Body: elseBody}}

	list := buildFile(tbl, ifTok, elseTok)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())
	assert.Equal(t, "A", out.Get(0).Text)
}

func TestConditionalIfdefFalls(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	ifBody := buildBody(tbl, identTok("A"))
	elseBody := buildBody(tbl, identTok("B"))

	ifdefTok := token.Token{Kind: token.PPIfdef, Payload: &token.IdentConditional{Name: "X", Body: ifBody}}
	elseTok := token.Token{Kind: token.PPElse, Payload: &token.Else{Body: elseBody}}

	list := buildFile(tbl, ifdefTok, elseTok)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)
	require.Equal(t, 1, out.Count())
	assert.Equal(t, "B", out.Get(0).Text)
}

// --- defined probe + undef --------------------------------------------------

func TestDefinedProbeAndUndef(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	define := token.Token{Kind: token.PPDefine, Payload: &token.Define{Name: "X", Body: buildBody(tbl)}}
	undef := token.Token{Kind: token.PPUndef, Payload: &token.Name{Text: "X"}}

	cond1 := buildBody(tbl, token.Token{Kind: token.MacroDefined, Payload: &token.Name{Text: "X"}})
	body1 := buildBody(tbl, identTok("DEFINED"))
	if1 := token.Token{Kind: token.PPIf, Payload: &token.Conditional{Cond: cond1, Body: body1}}

	cond2 := buildBody(tbl, token.Token{Kind: token.MacroDefined, Payload: &token.Name{Text: "X"}})
	body2 := buildBody(tbl, identTok("STILL_DEFINED"))
	elseBody2 := buildBody(tbl, identTok("NOT_DEFINED"))
	if2 := token.Token{Kind: token.PPIf, Payload: &token.Conditional{Cond: cond2, Body: body2}}
	else2 := token.Token{Kind: token.PPElse, Payload: &token.Else{Body: elseBody2}}

	list := buildFile(tbl, define, if1, undef, if2, else2)

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)

	var texts []string
	for _, tok := range out.Slice() {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"DEFINED", "NOT_DEFINED"}, texts)
}

// --- idempotence on non-preprocessor input ----------------------------------

func TestIdempotenceOnPlainTokens(t *testing.T) {
	tbl := &token.Table{}
	reg := registry.New()

	list := buildFile(tbl, identTok("foo"), punctTok(token.Plus, "+"), numTok("1"), punctTok(token.Semicolon, ";"))

	f := newFile(reg, tbl, list)
	h := diag.NewHandler(nil)
	res := resolver.New(reg, f, h, noFS{}, noScanner{}, nil)

	out, err := res.Resolve()
	require.NoError(t, err)

	got := out.Slice()
	require.Len(t, got, 4)
	assert.Equal(t, "foo", got[0].Text)
	assert.Equal(t, token.Plus, got[1].Kind)
	assert.Equal(t, "1", got[2].Text)
	assert.Equal(t, token.Semicolon, got[3].Kind)
}
