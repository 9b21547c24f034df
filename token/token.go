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

// Package token defines the lexical token model shared by the scanner, the
// preprocessor resolver, and the parser.
//
// spec.md §9 directs that the source's intrusive, reference-counted token
// chain be replaced with "an owned arena of tokens indexed by handles"; this
// package is that replacement. A [Table] is the arena that owns a file's (or
// a macro body's, or a conditional branch's) tokens, and a [Handle] is the
// compressed pointer into it. A Token's Next field is itself a Handle, so
// the intrusive chain described in spec.md §3.1 survives intact, just
// without manual reference counting: the owning Table is the sole owner of
// every Token reachable from it.
package token

import (
	"github.com/cpre/cpre/internal/arena"
	"github.com/cpre/cpre/token/keyword"
)

// Handle is a compressed pointer to a Token's storage inside a Table.
type Handle = arena.Pointer[Token]

// Nil is the nil Handle.
var Nil Handle

// Payload is implemented by the rich, per-directive data that spec.md §3.1
// says certain token variants carry (a #define's parameter list and body,
// an #if's condition tokens, etc). Most token kinds carry no payload.
type Payload interface {
	isPayload()
}

// DefineParam is one formal parameter of a #define (spec.md §3.6).
type DefineParam struct {
	Name       string
	IsVariadic bool
	IsUsed     bool
}

// Define is the payload of a PPDefine token.
type Define struct {
	Name       string
	Params     []DefineParam
	IsVariadic bool
	Body       *List
}

func (*Define) isPayload() {}

// Conditional is the payload of PPIf/PPElif tokens.
type Conditional struct {
	Cond *List
	Body *List
}

func (*Conditional) isPayload() {}

// IdentConditional is the payload of PPIfdef/PPIfndef/PPElifdef/PPElifndef
// tokens.
type IdentConditional struct {
	Name string
	Body *List
}

func (*IdentConditional) isPayload() {}

// Else is the payload of a PPElse token.
type Else struct {
	Body *List
}

func (*Else) isPayload() {}

// Include is the payload of a PPInclude token.
type Include struct {
	Path string
}

func (*Include) isPayload() {}

// Message is the payload of PPError/PPWarning tokens.
type Message struct {
	Text string
}

func (*Message) isPayload() {}

// Name is the payload of a PPUndef or MacroDefined token.
type Name struct {
	Text string
}

func (*Name) isPayload() {}

// ParamRef is the payload of a MacroParam token: an index into the owning
// define's parameter list.
type ParamRef struct {
	Index int
}

func (*ParamRef) isPayload() {}

// EOTContext distinguishes why an EOT (end-of-token) sentinel was emitted.
type EOTContext uint8

const (
	EOTOther EOTContext = iota
	EOTDefine
	EOTStringification
)

// EOTInfo is the payload of an EOT token.
type EOTInfo struct {
	Context EOTContext
}

func (*EOTInfo) isPayload() {}

// NumberLiteral is the payload of a Number token (spec.md §3.1: "value
// string + suffix tag"; octal/hex/binary share this layout via Base).
type NumberLiteral struct {
	Text   string
	Suffix string
	Base   NumberBase
}

func (*NumberLiteral) isPayload() {}

// FloatLiteral is the payload of a Float token.
type FloatLiteral struct {
	Text   string
	Suffix string
}

func (*FloatLiteral) isPayload() {}

// Token is a lexical token, addressed through a [Table] by [Handle]. Next is
// the intrusive chain successor described in spec.md §3.1; it is Nil at the
// end of a list.
type Token struct {
	Kind    Kind
	Loc     Location
	Text    string
	Keyword keyword.Keyword
	Next    Handle
	Payload Payload
}

// WithKeyword returns a copy of t reclassified as the given keyword. This is
// how the resolver implements "keyword re-classification after paste"
// (spec.md §4.3.5 step 7): the merged identifier's text is looked up in the
// keyword table and, if found, the result carries that keyword.
func (t Token) WithKeyword(k keyword.Keyword) Token {
	t.Keyword = k
	return t
}

// IsKeyword reports whether this token is an identifier that has been
// classified as a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind == Ident && t.Keyword.IsKeyword()
}

// Printable renders the token's text the way stringification (#) and
// pasting (##) do: identifiers and keywords produce their name, integer
// literals include their suffix, character literals their raw form, and
// strings their surrounding quotes (spec.md §4.3.4).
func (t Token) Printable() string {
	switch t.Kind {
	case Number:
		if n, ok := t.Payload.(*NumberLiteral); ok {
			return n.Text + n.Suffix
		}
		return t.Text
	case Float:
		if f, ok := t.Payload.(*FloatLiteral); ok {
			return f.Text + f.Suffix
		}
		return t.Text
	case String:
		return `"` + t.Text + `"`
	case Char:
		return "'" + t.Text + "'"
	default:
		return t.Text
	}
}
