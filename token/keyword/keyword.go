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

// Package keyword enumerates the reserved words of C recognized once the
// preprocessor resolver hands a token stream to the parser.
//
// Keywords occupy a contiguous range of the Keyword space so that "is this
// a keyword" is a single range check, per spec.md §3.1's KEYWORD_MIN/MAX
// requirement.
package keyword

import "fmt"

// Keyword identifies a reserved word of C.
//
// The zero value, Unknown, is not a keyword.
type Keyword uint8

const (
	Unknown Keyword = iota

	// keywordMin is a sentinel; do not use directly.
	keywordMin

	Auto
	Break
	Case
	Char
	Const
	Continue
	Default
	Do
	Double
	Else
	Enum
	Extern
	Float
	For
	Goto
	If
	Inline
	Int
	Long
	Register
	Restrict
	Return
	Short
	Signed
	Sizeof
	Static
	Struct
	Switch
	Typedef
	Union
	Unsigned
	Void
	Volatile
	While

	// C11/C99 additions.
	Alignas
	Alignof
	Atomic
	Bool
	Complex
	Generic
	Imaginary
	Noreturn
	StaticAssert
	ThreadLocal

	// keywordMax is a sentinel; do not use directly.
	keywordMax
)

// Min and Max bound the contiguous keyword range, mirroring spec.md's
// KEYWORD_MIN/KEYWORD_MAX sentinels.
const (
	Min = keywordMin + 1
	Max = keywordMax - 1
)

// IsKeyword reports whether k falls within [Min, Max].
func (k Keyword) IsKeyword() bool {
	return k >= Min && k <= Max
}

var names = [...]string{
	Auto:         "auto",
	Break:        "break",
	Case:         "case",
	Char:         "char",
	Const:        "const",
	Continue:     "continue",
	Default:      "default",
	Do:           "do",
	Double:       "double",
	Else:         "else",
	Enum:         "enum",
	Extern:       "extern",
	Float:        "float",
	For:          "for",
	Goto:         "goto",
	If:           "if",
	Inline:       "inline",
	Int:          "int",
	Long:         "long",
	Register:     "register",
	Restrict:     "restrict",
	Return:       "return",
	Short:        "short",
	Signed:       "signed",
	Sizeof:       "sizeof",
	Static:       "static",
	Struct:       "struct",
	Switch:       "switch",
	Typedef:      "typedef",
	Union:        "union",
	Unsigned:     "unsigned",
	Void:         "void",
	Volatile:     "volatile",
	While:        "while",
	Alignas:      "_Alignas",
	Alignof:      "_Alignof",
	Atomic:       "_Atomic",
	Bool:         "_Bool",
	Complex:      "_Complex",
	Generic:      "_Generic",
	Imaginary:    "_Imaginary",
	Noreturn:     "_Noreturn",
	StaticAssert: "_Static_assert",
	ThreadLocal:  "_Thread_local",
}

var byName map[string]Keyword

func init() {
	byName = make(map[string]Keyword, len(names))
	for k, name := range names {
		if name != "" {
			byName[name] = Keyword(k)
		}
	}
}

// Lookup returns the keyword named by text, or Unknown if text is not a
// reserved word.
func Lookup(text string) Keyword {
	return byName[text]
}

// String implements [fmt.Stringer].
func (k Keyword) String() string {
	if int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return fmt.Sprintf("keyword.Keyword(%d)", int(k))
}
