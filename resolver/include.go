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

package resolver

import (
	"path/filepath"

	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/token"
)

// resolveInclude implements spec.md §4.3.3: locate the header on the
// configured search path (system include directories first, then the
// including file's own directory, per spec.md §9's resolved open
// question), reuse a cached registry.File on a repeat include, otherwise
// read and scan it and register the result, then splice its resolved
// tokens into buf.
func (r *Resolver) resolveInclude(tok token.Token, buf *rtoken.Buffer) error {
	inc, ok := tok.Payload.(*token.Include)
	if !ok {
		return r.fatalf(diag.IncludeMiss, tok.Loc, "malformed #include")
	}

	resolved, found := r.locateInclude(inc.Path)
	if !found {
		return r.fatalf(diag.IncludeMiss, tok.Loc, "cannot find %q on any include path", inc.Path)
	}

	file, ok := r.reg.Lookup(resolved)
	if !ok {
		src, err := r.fs.Read(resolved)
		if err != nil {
			return r.fatalf(diag.IncludeMiss, tok.Loc, "cannot read %q: %v", resolved, err)
		}
		file = r.reg.NewFile(resolved, src, token.Header, r.file)
		list, err := r.scanner.Scan(src, file.ID, file.Table)
		if err != nil {
			return r.fatalf(diag.IncludeMiss, tok.Loc, "scanning %q: %v", resolved, err)
		}
		file.Tokens = list
	}

	r.file.RecordInclude(resolved, "include")

	child, err := r.enter()
	if err != nil {
		return err
	}
	child.file = file
	if err := child.resolveListInto(file.Tokens, buf, false); err != nil {
		return err
	}
	buf.PopTrailingEOF()
	return nil
}

func (r *Resolver) locateInclude(path string) (string, bool) {
	for _, dir := range r.includeDirs {
		candidate := filepath.Join(dir, path)
		if r.fs.Exists(candidate) {
			return candidate, true
		}
	}
	candidate := filepath.Join(filepath.Dir(r.file.Path), path)
	if r.fs.Exists(candidate) {
		return candidate, true
	}
	return "", false
}
