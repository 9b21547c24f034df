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

// Package sourceio defines the two external collaborators spec.md §6 says
// the resolver consumes but never implements itself: a file system (for
// #include resolution) and a scanner (for turning a file's bytes into a
// token.List). Both are narrow interfaces so tests can substitute
// in-memory fakes, matching the reporter.Reporter-style external-collaborator
// pattern used throughout this module.
package sourceio

import (
	"os"

	"github.com/cpre/cpre/token"
)

// FileSystem resolves #include paths to bytes (spec.md §6: "exists(path) →
// bool, read(path) → bytes").
type FileSystem interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
}

// Scanner turns a file's source bytes into a token.List, owned by the given
// table. spec.md §6: "given a source buffer, produces a TokenList... The
// resolver assumes literals are pre-categorized." Lexing a full C token
// grammar is outside this module's scope (spec.md §1 treats the scanner as
// mechanical); Scanner exists so the resolver and registry can be wired and
// tested against fakes without depending on a concrete lexer.
type Scanner interface {
	Scan(src []byte, file token.FileID, table *token.Table) (*token.List, error)
}

// OSFileSystem is a FileSystem backed by the local file system.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileSystem) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
