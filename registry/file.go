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

import "github.com/cpre/cpre/token"

// Define registers or replaces the #define named name, owned by f. Per
// spec.md §5, "defines are intentionally not file-local after inclusion —
// matching C semantics": when this File is reached via #include, the
// including file's resolver mutates the *including* file's Defines table,
// not f's — f.Define exists for the file currently being resolved to record
// its own #defines as they're encountered.
func (f *File) Define(name string, body *token.Define, handle token.Handle) {
	f.Defines.Set(name, &Define{Body: body, Owner: f.ID, Handle: handle})
}

// Undef removes name from f's defines table, per spec.md §4.3 PPUndef
// handling.
func (f *File) Undef(name string) {
	f.Defines.Delete(name)
}

// LookupDefine returns the #define bound to name in f, if any.
func (f *File) LookupDefine(name string) (*Define, bool) {
	return f.Defines.Get(name)
}

// IsDefined is the predicate behind #ifdef/#ifndef and the `defined(X)`
// operator (spec.md §4.4).
func (f *File) IsDefined(name string) bool {
	_, ok := f.Defines.Get(name)
	return ok
}

// RecordInclude notes that f included a header at path via the named
// directive kind ("include" or, reserved for future use, "embed"),
// returning the (possibly pre-existing) ledger record so callers can
// inspect the repeat count (spec.md §3.5, used by the include-dedup
// testable property).
func (f *File) RecordInclude(path, kind string) *IncludeRecord {
	rec, ok := f.Includes.Get(path)
	if !ok {
		rec = &IncludeRecord{Kind: kind}
		f.Includes.Set(path, rec)
	}
	rec.Repeat++
	return rec
}
