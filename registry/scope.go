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

package registry

import "sort"

// Category is one of the per-kind declaration tables a Scope keeps
// (spec.md §3.5).
type Category int

const (
	Enums Category = iota
	Structs
	Unions
	Typedefs
	Functions
	Labels
	Variables
	EnumVariants

	numCategories
)

func (c Category) String() string {
	switch c {
	case Enums:
		return "enum"
	case Structs:
		return "struct"
	case Unions:
		return "union"
	case Typedefs:
		return "typedef"
	case Functions:
		return "function"
	case Labels:
		return "label"
	case Variables:
		return "variable"
	case EnumVariants:
		return "enum-variant"
	default:
		return "unknown-category"
	}
}

// Entry is a scope-local reference to a declaration living in some other
// package's storage (the parser's AST, or the monomorphization visitor's
// gen-decl vectors). spec.md §3.5: "a scope-local entry holds (file-id,
// vector-index, all-decls-index) so that replacing a prototype with a
// definition rewrites both the per-kind vector and the flat all-decls
// vector atomically."
//
// registry deliberately does not know what a "declaration" looks like — the
// AST type is owned by the parser, an external collaborator per spec.md §6
// — so Entry carries only the coordinates a caller needs to find one.
type Entry struct {
	File          FileID
	VecIndex      int
	AllDeclsIndex int
}

// Scope is one lexical scope: a parent link, an id, and the eight
// per-category name→Entry tables of spec.md §3.5.
type Scope struct {
	Parent *Scope
	ID     int

	tables [numCategories]map[string]Entry
}

func newScope(parent *Scope, id int) *Scope {
	s := &Scope{Parent: parent, ID: id}
	for i := range s.tables {
		s.tables[i] = make(map[string]Entry)
	}
	return s
}

// NewChild creates a new scope nested under s.
func (s *Scope) NewChild(id int) *Scope {
	return newScope(s, id)
}

// Lookup searches this scope, then its ancestors, for name in category cat.
func (s *Scope) Lookup(cat Category, name string) (Entry, *Scope, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if e, ok := cur.tables[cat][name]; ok {
			return e, cur, true
		}
	}
	return Entry{}, nil, false
}

// LookupLocal searches only this scope (not ancestors).
func (s *Scope) LookupLocal(cat Category, name string) (Entry, bool) {
	e, ok := s.tables[cat][name]
	return e, ok
}

// Insert records name as bound to e in category cat, in this scope. If name
// is already bound in this scope, the existing entry is overwritten — this
// is how "replacing a prototype with a definition" (spec.md glossary) is
// implemented: the caller re-Inserts with the definition's coordinates.
func (s *Scope) Insert(cat Category, name string, e Entry) {
	s.tables[cat][name] = e
}

// Names returns every name bound in this scope (not ancestors) for cat, for
// deterministic iteration in tests and dumps.
func (s *Scope) Names(cat Category) []string {
	names := make([]string, 0, len(s.tables[cat]))
	for name := range s.tables[cat] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
