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

import "github.com/cpre/cpre/internal/arena"

// Table is the arena that owns every Token for one scanned file. Macro
// bodies, #if conditions, and conditional-branch bodies are sub-Lists over
// the same Table: a Handle minted while scanning a file remains valid for
// the lifetime of that file's Table, which is the whole compilation.
type Table struct {
	arena arena.Arena[Token]
}

// New allocates tok in the table and returns its Handle.
func (t *Table) New(tok Token) Handle {
	return t.arena.New(tok)
}

// At dereferences h. Panics if h is Nil or was not allocated by t.
func (t *Table) At(h Handle) *Token {
	return h.In(&t.arena)
}

// Len returns the number of tokens allocated in this table.
func (t *Table) Len() int {
	return t.arena.Len()
}
