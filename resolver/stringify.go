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
	"strings"

	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/token"
)

// stringify implements spec.md §4.3.4: '#' immediately followed by a macro
// parameter becomes a single string literal joining the parameter's
// already-resolved tokens' printable forms with single spaces.
func (r *Resolver) stringify(table *token.Table, hashH token.Handle, buf *rtoken.Buffer) (token.Handle, error) {
	hashTok := table.At(hashH)

	operandH := hashTok.Next
	operand, ok := peekAt(table, operandH)
	if !ok {
		return token.Nil, r.fatalf(diag.MacroOperand, hashTok.Loc, "'#' must be followed by a macro parameter")
	}
	if operand.Kind != token.MacroParam && operand.Kind != token.MacroParamVariadic {
		return token.Nil, r.fatalf(diag.MacroOperand, operand.Loc, "'#' operand must be a macro parameter")
	}

	p, err := r.lookupParam(operand)
	if err != nil {
		return token.Nil, err
	}

	buf.Push(token.Token{
		Kind: token.String,
		Loc:  token.Span(hashTok.Loc, operand.Loc),
		Text: joinPrintable(p.buf.Slice()),
	})
	return operand.Next, nil
}

func joinPrintable(toks []token.Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Printable()
	}
	return strings.Join(parts, " ")
}
