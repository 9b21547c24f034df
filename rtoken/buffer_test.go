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

package rtoken_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/token"
)

func ident(name string) token.Token {
	return token.Token{Kind: token.Ident, Text: name}
}

func TestBufferBasic(t *testing.T) {
	b := rtoken.New()
	assert.Equal(t, 0, b.Count())

	b.Push(ident("a"))
	b.Push(ident("b"))
	require.Equal(t, 2, b.Count())
	assert.Equal(t, "a", b.Get(0).Text)

	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.Text)

	b.Replace(0, ident("z"))
	assert.Equal(t, "z", b.Get(0).Text)

	b.Remove(0)
	require.Equal(t, 1, b.Count())
	assert.Equal(t, "b", b.Get(0).Text)
}

func TestInsertAfterMany(t *testing.T) {
	b := rtoken.New()
	b.Push(ident("a"))
	b.Push(ident("d"))

	mid := rtoken.New()
	mid.Push(ident("b"))
	mid.Push(ident("c"))

	b.InsertAfterMany(mid, 0)

	var got []string
	for _, tok := range b.Slice() {
		got = append(got, tok.Text)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestPopTrailingEOF(t *testing.T) {
	b := rtoken.New()
	b.Push(ident("a"))
	b.Push(token.Token{Kind: token.EOT})
	b.PopTrailingEOF()
	require.Equal(t, 1, b.Count())
	assert.Equal(t, "a", b.Get(0).Text)

	// No-op when the last token isn't a terminator.
	b.PopTrailingEOF()
	require.Equal(t, 1, b.Count())
}

func TestMerge(t *testing.T) {
	a := rtoken.New()
	a.Push(ident("a"))
	b := rtoken.New()
	b.Push(ident("b"))
	a.Merge(b)

	require.Equal(t, 2, a.Count())
	assert.Equal(t, "b", a.Get(1).Text)
}
