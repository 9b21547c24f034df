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

package ifeval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpre/cpre/ifeval"
	"github.com/cpre/cpre/token"
)

type fakeEnv map[string]bool

func (e fakeEnv) Defined(name string) bool { return e[name] }

func num(text string) token.Token {
	return token.Token{Kind: token.Number, Text: text, Payload: &token.NumberLiteral{Text: text, Base: token.Decimal}}
}

func ident(text string) token.Token {
	return token.Token{Kind: token.Ident, Text: text}
}

func punct(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Text: text}
}

func TestEvalArithmetic(t *testing.T) {
	// 1+1==2
	toks := []token.Token{num("1"), punct(token.Plus, "+"), num("1"), punct(token.Eq, "=="), num("2")}
	v, truthy, err := ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	assert.True(t, truthy)
}

func TestEvalPrecedence(t *testing.T) {
	// 2+3*4 == 14
	toks := []token.Token{num("2"), punct(token.Plus, "+"), num("3"), punct(token.Star, "*"), num("4")}
	v, _, err := ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(14), v)
}

func TestEvalDefined(t *testing.T) {
	toks := []token.Token{
		ident("defined"), punct(token.LParen, "("), ident("FOO"), punct(token.RParen, ")"),
	}
	_, truthy, err := ifeval.Eval(toks, fakeEnv{"FOO": true})
	require.NoError(t, err)
	assert.True(t, truthy)

	_, truthy, err = ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.False(t, truthy)
}

func TestEvalDefinedNoParen(t *testing.T) {
	toks := []token.Token{ident("defined"), ident("FOO")}
	_, truthy, err := ifeval.Eval(toks, fakeEnv{"FOO": true})
	require.NoError(t, err)
	assert.True(t, truthy)
}

func TestEvalUndefinedIdentFoldsToZero(t *testing.T) {
	toks := []token.Token{ident("UNKNOWN")}
	v, truthy, err := ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
	assert.False(t, truthy)
}

func TestEvalTernary(t *testing.T) {
	// 1 ? 2 : 3
	toks := []token.Token{num("1"), punct(token.Question, "?"), num("2"), punct(token.Colon, ":"), num("3")}
	v, _, err := ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestEvalLogicalShortCircuit(t *testing.T) {
	// 0 && (1/0) must not evaluate the division at all, but even if it did,
	// division by zero folds to 0 rather than panicking (see ast.go).
	toks := []token.Token{
		num("0"), punct(token.AmpAmp, "&&"),
		punct(token.LParen, "("), num("1"), punct(token.Slash, "/"), num("0"), punct(token.RParen, ")"),
	}
	v, truthy, err := ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
	assert.False(t, truthy)
}

func TestEvalUnary(t *testing.T) {
	toks := []token.Token{punct(token.Bang, "!"), num("0")}
	v, truthy, err := ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	assert.True(t, truthy)
}

func TestParseTrailingTokensIsError(t *testing.T) {
	toks := []token.Token{num("1"), num("2")}
	_, err := ifeval.Parse(toks)
	require.Error(t, err)
	var invalid *ifeval.ErrInvalid
	assert.ErrorAs(t, err, &invalid)
}

func TestParseEmptyIsError(t *testing.T) {
	_, err := ifeval.Parse(nil)
	require.Error(t, err)
}

func TestEvalHex(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Number, Text: "0x10", Payload: &token.NumberLiteral{Text: "0x10", Base: token.Hex}},
	}
	v, _, err := ifeval.Eval(toks, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, int64(16), v)
}
