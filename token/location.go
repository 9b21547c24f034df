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

import "fmt"

// FileKind distinguishes a header from a source file within a compilation.
type FileKind uint8

const (
	// Header is a file reached only via #include.
	Header FileKind = iota
	// Source is a file named directly on the command line.
	Source
)

func (k FileKind) String() string {
	if k == Header {
		return "header"
	}
	return "source"
}

// BuiltinFile is the reserved FileID for predefined/builtin declarations
// (spec.md §3.5: "Predefined/builtin declarations live in a reserved header
// id (0)").
var BuiltinFile = FileID{Num: 0, Kind: Header}

// FileID identifies a single translation unit within a compilation: a
// numeric id plus whether it is a header or a source file.
type FileID struct {
	Num  uint32
	Kind FileKind
}

func (id FileID) String() string {
	return fmt.Sprintf("%s#%d", id.Kind, id.Num)
}

// Location is the source span of a token: which file it came from, and its
// line/column/byte-offset extent.
type Location struct {
	File FileID

	StartLine, StartCol int
	EndLine, EndCol      int
	StartByte, EndByte   int
}

// Zero reports whether this is the unset location, used for synthetic
// tokens minted by the resolver (e.g. the result of token pasting) that do
// not correspond 1:1 to scanned source text.
func (l Location) Zero() bool {
	return l == Location{}
}

// Span returns a location that spans from the start of a to the end of b.
// a and b must belong to the same file.
func Span(a, b Location) Location {
	return Location{
		File:      a.File,
		StartLine: a.StartLine,
		StartCol:  a.StartCol,
		EndLine:   b.EndLine,
		EndCol:    b.EndCol,
		StartByte: a.StartByte,
		EndByte:   b.EndByte,
	}
}
