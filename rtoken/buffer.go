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

// Package rtoken implements ResolvedTokens (spec.md §3.3): the growable,
// shareable output sequence the resolver produces and the parser consumes.
//
// spec.md §9 notes that the source shares ResolvedTokens across
// sub-resolvers by reference counting, and directs a Go-style rewrite to use
// "immutable slices over a per-compilation arena, plus clone-on-splice
// (cheap because tokens are small)". [Buffer] follows that guidance
// directly: it is a plain growable []token.Token, and Merge/InsertAfterMany
// copy token values rather than sharing a backing array, which is cheap
// because token.Token is a small value type.
package rtoken

import "github.com/cpre/cpre/token"

// Buffer is the flat, ordered sequence of fully-resolved tokens produced by
// the resolver (spec.md §3.3).
type Buffer struct {
	entries []token.Token
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Push appends tok to the buffer.
func (b *Buffer) Push(tok token.Token) {
	b.entries = append(b.entries, tok)
}

// Get returns the token at index i. Panics if i is out of range.
func (b *Buffer) Get(i int) token.Token {
	return b.entries[i]
}

// Last returns the final token in the buffer and whether the buffer was
// non-empty.
func (b *Buffer) Last() (token.Token, bool) {
	if len(b.entries) == 0 {
		return token.Token{}, false
	}
	return b.entries[len(b.entries)-1], true
}

// Count returns the number of tokens in the buffer.
func (b *Buffer) Count() int {
	return len(b.entries)
}

// Replace overwrites the token at index i.
func (b *Buffer) Replace(i int, tok token.Token) {
	b.entries[i] = tok
}

// Remove deletes the token at index i, shifting subsequent tokens left.
func (b *Buffer) Remove(i int) {
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
}

// Pop removes and returns the last token. Panics if the buffer is empty.
func (b *Buffer) Pop() token.Token {
	last := b.entries[len(b.entries)-1]
	b.entries = b.entries[:len(b.entries)-1]
	return last
}

// InsertAfterMany splices the contents of other into the receiver
// immediately after index i; every element previously at an index > i
// shifts right by other.Count(). This is how the resolver re-inserts the
// output of a `##` re-tokenization, or an #include's contents, back into
// the parent buffer (spec.md §4.2).
func (b *Buffer) InsertAfterMany(other *Buffer, i int) {
	if other.Count() == 0 {
		return
	}
	tail := append([]token.Token(nil), b.entries[i+1:]...)
	b.entries = append(b.entries[:i+1], other.entries...)
	b.entries = append(b.entries, tail...)
}

// PopTrailingEOF removes a trailing EOT/EOF token, if the last entry is one.
// Called after every splice to avoid stray terminators between spliced
// contents (spec.md §4.2).
func (b *Buffer) PopTrailingEOF() {
	if len(b.entries) == 0 {
		return
	}
	last := b.entries[len(b.entries)-1]
	if last.Kind == token.EOF || last.Kind == token.EOT {
		b.entries = b.entries[:len(b.entries)-1]
	}
}

// Merge appends the contents of other to the receiver. Per spec.md §4.2,
// this "shares refs (does not copy contents)" in the source; here, where
// sharing a Token means copying a small value, Merge simply appends.
func (b *Buffer) Merge(other *Buffer) {
	b.entries = append(b.entries, other.entries...)
}

// Slice returns the buffer's tokens as a plain, read-only slice. Intended
// for tests and for handing the final resolved sequence to the parser.
func (b *Buffer) Slice() []token.Token {
	return b.entries
}
