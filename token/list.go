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

package token

import "iter"

// List is an intrusive singly-linked chain of tokens over a shared Table
// (spec.md §3.2). Every walk over a List must terminate at an EOF token;
// this package does not enforce that invariant itself (the scanner and the
// resolver are responsible for it), since enforcing it here would mean
// scanning the whole chain on every mutation.
type List struct {
	Table       *Table
	First, Last Handle
}

// NewList returns an empty list over t.
func NewList(t *Table) *List {
	return &List{Table: t}
}

// IsEmpty reports whether the list has no tokens.
func (l *List) IsEmpty() bool {
	return l.First.IsNil() && l.Last.IsNil()
}

// Append adds h to the end of the list.
func (l *List) Append(h Handle) {
	if l.IsEmpty() {
		l.First, l.Last = h, h
		return
	}
	l.Table.At(l.Last).Next = h
	l.Last = h
}

// InsertAfter inserts newTok immediately after the first token equal to
// match (by Handle identity, i.e. arena position — the Go analogue of the
// source's pointer-identity comparison). Returns false if match was not
// found.
func (l *List) InsertAfter(match, newTok Handle) bool {
	cur := l.First
	for !cur.IsNil() {
		if cur == match {
			tok := l.Table.At(cur)
			next := tok.Next
			tok.Next = newTok
			l.Table.At(newTok).Next = next
			if cur == l.Last {
				l.Last = newTok
			}
			return true
		}
		cur = l.Table.At(cur).Next
	}
	return false
}

// RemoveIfMatches unlinks the first token equal to match and returns its
// handle. Returns (Nil, false) on a miss.
func (l *List) RemoveIfMatches(match Handle) (Handle, bool) {
	if l.IsEmpty() {
		return Nil, false
	}
	if l.First == match {
		tok := l.Table.At(match)
		l.First = tok.Next
		if l.Last == match {
			l.Last = Nil
		}
		tok.Next = Nil
		return match, true
	}

	prev := l.First
	cur := l.Table.At(prev).Next
	for !cur.IsNil() {
		if cur == match {
			tok := l.Table.At(cur)
			l.Table.At(prev).Next = tok.Next
			if l.Last == cur {
				l.Last = prev
			}
			tok.Next = Nil
			return cur, true
		}
		prev = cur
		cur = l.Table.At(cur).Next
	}
	return Nil, false
}

// All iterates the handles of this list in chain order, head to tail
// inclusive.
func (l *List) All() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		cur := l.First
		for !cur.IsNil() {
			if !yield(cur) {
				return
			}
			cur = l.Table.At(cur).Next
		}
	}
}

// Slice materializes the list into a plain handle slice. Intended for tests
// and debugging; the resolver itself should prefer All to avoid allocating.
func (l *List) Slice() []Handle {
	var out []Handle
	for h := range l.All() {
		out = append(out, h)
	}
	return out
}
