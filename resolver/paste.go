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
	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/token"
)

// paste implements spec.md §4.3.5. The previously emitted token is the left
// operand; the token after '##' is resolved in isolation to obtain the
// right operand; the two are joined, preserving the left operand's kind,
// and the merged token replaces the left operand in place. Once a chain of
// pastes (`a##b##c`) has fully unwound, the merged identifier is rescanned
// with keyword lookup enabled so a pasted keyword (e.g. `i` ## `nt`) is
// reclassified.
func (r *Resolver) paste(table *token.Table, hashH token.Handle, buf *rtoken.Buffer) (token.Handle, error) {
	hashTok := table.At(hashH)

	if buf.Count() == 0 {
		return token.Nil, r.fatalf(diag.MacroOperand, hashTok.Loc, "'##' has no left operand")
	}
	lhs := buf.Get(buf.Count() - 1)
	if !isPasteLHS(lhs.Kind) {
		return token.Nil, r.fatalf(diag.MacroOperand, lhs.Loc, "'##' left operand must be an identifier or numeric literal")
	}

	r.countMergedID++

	rhsH := hashTok.Next
	if rhsH.IsNil() {
		return token.Nil, r.fatalf(diag.MacroOperand, hashTok.Loc, "'##' has no right operand")
	}
	rhsBuf := rtoken.New()
	next, err := r.dispatchOne(table, rhsH, rhsBuf, false)
	if err != nil {
		return token.Nil, err
	}
	if rhsBuf.Count() != 1 {
		return token.Nil, r.fatalf(diag.MacroOperand, hashTok.Loc, "'##' right operand did not resolve to a single token")
	}
	rhs := rhsBuf.Get(0)
	if !isPasteRHS(rhs.Kind) {
		return token.Nil, r.fatalf(diag.MacroOperand, rhs.Loc, "'##' right operand must be an identifier or integer literal")
	}

	merged := token.Token{
		Kind: lhs.Kind,
		Loc:  token.Span(lhs.Loc, rhs.Loc),
		Text: lhs.Printable() + rhs.Printable(),
	}
	buf.Replace(buf.Count()-1, merged)

	r.countMergedID--
	if r.countMergedID == 0 {
		rescanned, err := r.rescanMerged(merged)
		if err != nil {
			return token.Nil, err
		}
		buf.Replace(buf.Count()-1, rescanned)
	}

	return next, nil
}

func isPasteLHS(k token.Kind) bool {
	return k == token.Ident || k == token.Number || k == token.Float
}

func isPasteRHS(k token.Kind) bool {
	return k == token.Ident || k == token.Number
}

// rescanMerged re-resolves a single merged identifier with keyword lookup
// enabled (spec.md §4.3.5 step 7). Non-identifier merges (e.g. two pasted
// number literals) pass through unchanged.
func (r *Resolver) rescanMerged(merged token.Token) (token.Token, error) {
	if merged.Kind != token.Ident {
		return merged, nil
	}
	child, err := r.enter()
	if err != nil {
		return token.Token{}, err
	}
	buf, err := child.resolveList(scratchList([]token.Token{merged}), true)
	if err != nil {
		return token.Token{}, err
	}
	if buf.Count() != 1 {
		return merged, nil
	}
	return buf.Get(0), nil
}
