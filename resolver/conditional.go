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
	"github.com/cpre/cpre/ifeval"
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/token"
)

// resolveConditionalGroup implements spec.md §4.3.2. start is the first
// directive of an #if/#ifdef/#ifndef group; its siblings (#elif*/#else) are
// reached by following Next, since each directive's own body lives in its
// payload rather than the main chain. Exactly one branch's body is resolved
// directly into out; the returned handle is where the main driver loop
// should resume (the first token after the group's last sibling).
func (r *Resolver) resolveConditionalGroup(table *token.Table, start token.Handle, out *rtoken.Buffer) (token.Handle, error) {
	cur := start
	for {
		tok := *table.At(cur)

		var taken bool
		var body *token.List

		switch tok.Kind {
		case token.PPIf, token.PPElif:
			cond, ok := tok.Payload.(*token.Conditional)
			if !ok {
				return token.Nil, r.fatalf(diag.ConstExprInvalid, tok.Loc, "malformed #if/#elif condition")
			}
			v, err := r.evalIfCond(cond.Cond)
			if err != nil {
				return token.Nil, err
			}
			taken, body = v, cond.Body

		case token.PPIfdef, token.PPElifdef:
			id, ok := tok.Payload.(*token.IdentConditional)
			if !ok {
				return token.Nil, r.fatalf(diag.LexicalExpectation, tok.Loc, "malformed #ifdef/#elifdef")
			}
			taken, body = r.file.IsDefined(id.Name), id.Body

		case token.PPIfndef, token.PPElifndef:
			id, ok := tok.Payload.(*token.IdentConditional)
			if !ok {
				return token.Nil, r.fatalf(diag.LexicalExpectation, tok.Loc, "malformed #ifndef/#elifndef")
			}
			taken, body = !r.file.IsDefined(id.Name), id.Body

		case token.PPElse:
			els, ok := tok.Payload.(*token.Else)
			if !ok {
				return token.Nil, r.fatalf(diag.LexicalExpectation, tok.Loc, "malformed #else")
			}
			taken, body = true, els.Body

		default:
			// Reached the token after the group's last sibling: nothing
			// more to consider.
			return cur, nil
		}

		if taken {
			if body != nil {
				if err := r.resolveListInto(body, out, false); err != nil {
					return token.Nil, err
				}
			}
			return skipToGroupEnd(table, cur), nil
		}

		cur = tok.Next
	}
}

// skipToGroupEnd follows Next past any remaining #elif*/#else siblings once
// a branch has already been taken, landing on the token that follows them.
func skipToGroupEnd(table *token.Table, cur token.Handle) token.Handle {
	for {
		tok := table.At(cur)
		switch tok.Kind {
		case token.PPIf, token.PPIfdef, token.PPIfndef,
			token.PPElif, token.PPElifdef, token.PPElifndef, token.PPElse:
			cur = tok.Next
		default:
			return cur
		}
	}
}

// evalIfCond resolves cond (expanding any macros and MACRO_DEFINED probes it
// contains) and folds the result with the #if constant-expression evaluator
// (spec.md §4.4).
func (r *Resolver) evalIfCond(cond *token.List) (bool, error) {
	buf, err := r.resolveList(cond, false)
	if err != nil {
		return false, err
	}
	_, truthy, err := ifeval.Eval(buf.Slice(), fileEnv{r.file})
	if err != nil {
		return false, r.fatalf(diag.ConstExprInvalid, token.Location{}, "%v", err)
	}
	return truthy, nil
}
