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

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpre/cpre/token"
	"github.com/cpre/cpre/token/keyword"
)

func mkIdent(tbl *token.Table, name string) token.Handle {
	return tbl.New(token.Token{Kind: token.Ident, Text: name})
}

func TestListAppendAndSlice(t *testing.T) {
	var tbl token.Table
	list := token.NewList(&tbl)
	assert.True(t, list.IsEmpty())

	a := mkIdent(&tbl, "a")
	b := mkIdent(&tbl, "b")
	c := mkIdent(&tbl, "c")
	list.Append(a)
	list.Append(b)
	list.Append(c)

	assert.False(t, list.IsEmpty())
	require.Equal(t, []token.Handle{a, b, c}, list.Slice())
}

func TestListInsertAfter(t *testing.T) {
	var tbl token.Table
	list := token.NewList(&tbl)
	a := mkIdent(&tbl, "a")
	c := mkIdent(&tbl, "c")
	list.Append(a)
	list.Append(c)

	b := mkIdent(&tbl, "b")
	require.True(t, list.InsertAfter(a, b))
	require.Equal(t, []token.Handle{a, b, c}, list.Slice())

	// Inserting after the last element updates Last.
	d := mkIdent(&tbl, "d")
	require.True(t, list.InsertAfter(c, d))
	require.Equal(t, []token.Handle{a, b, c, d}, list.Slice())
	assert.Equal(t, d, list.Last)
}

func TestListInsertAfterMiss(t *testing.T) {
	var tbl token.Table
	list := token.NewList(&tbl)
	a := mkIdent(&tbl, "a")
	list.Append(a)

	other := mkIdent(&tbl, "z")
	missing := mkIdent(&tbl, "missing")
	assert.False(t, list.InsertAfter(missing, other))
}

func TestListRemoveIfMatches(t *testing.T) {
	var tbl token.Table
	list := token.NewList(&tbl)
	a := mkIdent(&tbl, "a")
	b := mkIdent(&tbl, "b")
	c := mkIdent(&tbl, "c")
	list.Append(a)
	list.Append(b)
	list.Append(c)

	removed, ok := list.RemoveIfMatches(b)
	require.True(t, ok)
	assert.Equal(t, b, removed)
	assert.Equal(t, []token.Handle{a, c}, list.Slice())

	// Removing the head.
	removed, ok = list.RemoveIfMatches(a)
	require.True(t, ok)
	assert.Equal(t, a, removed)
	assert.Equal(t, []token.Handle{c}, list.Slice())
	assert.Equal(t, c, list.First)

	// Removing the only element empties the list.
	_, ok = list.RemoveIfMatches(c)
	require.True(t, ok)
	assert.True(t, list.IsEmpty())

	_, ok = list.RemoveIfMatches(a)
	assert.False(t, ok)
}

func TestPrintable(t *testing.T) {
	num := token.Token{
		Kind:    token.Number,
		Payload: &token.NumberLiteral{Text: "42", Suffix: "u"},
	}
	assert.Equal(t, "42u", num.Printable())

	str := token.Token{Kind: token.String, Text: "hi"}
	assert.Equal(t, `"hi"`, str.Printable())

	ident := token.Token{Kind: token.Ident, Text: "foo"}
	assert.Equal(t, "foo", ident.Printable())
}

func TestWithKeyword(t *testing.T) {
	id := token.Token{Kind: token.Ident, Text: "int"}
	assert.False(t, id.IsKeyword())

	reclassified := id.WithKeyword(keyword.Lookup("int"))
	assert.True(t, reclassified.IsKeyword())
	assert.Equal(t, keyword.Int, reclassified.Keyword)
}
