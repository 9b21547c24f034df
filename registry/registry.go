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

// Package registry implements the file/scope registry (spec.md §3.5): the
// process-wide — here, per-[Registry] — set of scanned translation units,
// their defines tables, include ledgers, and scope trees.
//
// spec.md §9 directs replacing "global file registry with shared defines"
// with "an explicit Compilation context passed by reference", which is what
// [Registry] is: every constructor in this module takes one explicitly, and
// nothing in this package is package-level mutable state.
package registry

import (
	"fmt"
	"sync"

	"github.com/petermattis/goid"
	"github.com/tidwall/btree"

	"github.com/cpre/cpre/token"
)

// FileID re-exports token.FileID: the resolver, registry, and diagnostics
// all need to name "which translation unit", so it lives in the lowest
// package (token) that all three import.
type FileID = token.FileID

// IncludeRecord is one entry in a file's include ledger (spec.md §3.5):
// which kind of directive pulled the header in, and how many times it has
// been included (needed to distinguish a harmless re-include behind an
// include guard from a genuine repeat compile of un-guarded content).
type IncludeRecord struct {
	Kind   string // "include", "embed" (reserved), etc.
	Repeat int
}

// Define is a registry-owned, shareable reference to a #define: the
// defining token plus the id of the file that owns it (spec.md §3.5).
type Define struct {
	Body   *token.Define
	Owner  FileID
	Handle token.Handle
}

// File represents one translation unit (spec.md §3.5).
type File struct {
	ID    FileID
	Path  string
	Bytes []byte

	Table  *token.Table
	Tokens *token.List

	Defines  btree.Map[string, *Define]
	Includes btree.Map[string, *IncludeRecord]

	Root *Scope

	registry *Registry
	// Owner is set when this File is a header reached transitively via
	// #include; nil for a top-level source file.
	Owner *File
}

// Registry is the process-wide (here: per-compilation) set of scanned
// translation units, indexed by path, plus the next-FileID counter.
//
// Registry enforces spec.md §5's "no locking: the entire pipeline runs on
// one thread" as a runtime assertion rather than a comment: it records the
// id of the goroutine that created it and panics if a mutating method is
// ever called from a different one. This is cheap (goid just reads a field
// off the running goroutine's g struct) and catches accidental concurrent
// use immediately instead of producing a data race that only shows up under
// -race.
type Registry struct {
	mu        sync.Mutex // guards nextIdx; see NewFile
	owner     int64
	byPath    btree.Map[string, *File]
	nextIdx   [2]uint32 // indexed by token.FileKind
	builtins  *File
}

// New returns an empty Registry owned by the calling goroutine.
func New() *Registry {
	r := &Registry{owner: goid.Get()}
	r.builtins = &File{
		ID:       token.BuiltinFile,
		Path:     "<builtin>",
		Table:    &token.Table{},
		registry: r,
	}
	r.builtins.Tokens = token.NewList(r.builtins.Table)
	r.byPath.Set(r.builtins.Path, r.builtins)
	return r
}

func (r *Registry) assertOwner() {
	if got := goid.Get(); got != r.owner {
		panic(fmt.Sprintf("registry: accessed from goroutine %d, but was created on %d "+
			"(spec.md §5: a compilation is single-threaded and cooperative)", got, r.owner))
	}
}

// Builtins returns the reserved header (FileID{0, Header}) that predefined
// macros and declarations live in (spec.md §3.5).
func (r *Registry) Builtins() *File {
	return r.builtins
}

// Lookup returns the File previously registered at path, if any.
func (r *Registry) Lookup(path string) (*File, bool) {
	r.assertOwner()
	return r.byPath.Get(path)
}

// NewFile allocates and registers a File for path. Fails (via panic, caught
// by callers that already validated the path doesn't exist) if path is
// already registered; callers must Lookup first.
func (r *Registry) NewFile(path string, src []byte, kind token.FileKind, owner *File) *File {
	r.assertOwner()
	if _, ok := r.byPath.Get(path); ok {
		panic("registry: NewFile called twice for " + path)
	}

	r.mu.Lock()
	num := r.nextIdx[kind] + 1
	r.nextIdx[kind] = num
	r.mu.Unlock()

	f := &File{
		ID:       FileID{Num: num, Kind: kind},
		Path:     path,
		Bytes:    src,
		Table:    &token.Table{},
		registry: r,
		Owner:    owner,
	}
	f.Tokens = token.NewList(f.Table)
	f.Root = newScope(nil, 0)
	r.byPath.Set(path, f)
	return f
}

// Files returns every registered file, in path order (btree iteration is
// ordered, giving deterministic diagnostics across runs).
func (r *Registry) Files() []*File {
	r.assertOwner()
	var out []*File
	r.byPath.Scan(func(_ string, f *File) bool {
		out = append(out, f)
		return true
	})
	return out
}
