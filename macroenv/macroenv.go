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

// Package macroenv implements the macro call environment (spec.md §3.4): the
// stack of per-parameter resolved-token sequences bound while a macro's body
// is being expanded.
package macroenv

import "github.com/cpre/cpre/rtoken"

// Param owns one already-resolved actual argument.
type Param struct {
	Name     string
	Resolved *rtoken.Buffer
}

// paramNode is a node in the Params singly linked list.
type paramNode struct {
	param Param
	next  *paramNode
}

// Params is a singly linked list of macro call parameters with O(1) append
// and O(n) indexed lookup, per spec.md §3.4.
type Params struct {
	head, tail *paramNode
	length     int
}

// Append adds p to the end of the list in O(1).
func (l *Params) Append(p Param) {
	n := &paramNode{param: p}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.length++
}

// Len returns the number of parameters.
func (l *Params) Len() int {
	return l.length
}

// At returns the i'th parameter in O(n). Panics if i is out of range.
func (l *Params) At(i int) Param {
	n := l.head
	for ; i > 0; i-- {
		n = n.next
	}
	return n.param
}

// ByName returns the parameter with the given name, if any.
func (l *Params) ByName(name string) (Param, bool) {
	for n := l.head; n != nil; n = n.next {
		if n.param.Name == name {
			return n.param, true
		}
	}
	return Param{}, false
}

// Call is the bound invocation environment of a currently-expanding macro:
// either empty (a zero-argument invocation with no parens) or a list of
// resolved parameters (spec.md §3.4). The zero value is the empty call.
type Call struct {
	params *Params
}

// EmptyCall returns the zero-argument invocation environment.
func EmptyCall() Call {
	return Call{}
}

// NewCall wraps params as a non-empty invocation environment.
func NewCall(params *Params) Call {
	return Call{params: params}
}

// IsEmpty reports whether this call carries no parameters.
func (c Call) IsEmpty() bool {
	return c.params == nil || c.params.Len() == 0
}

// Params returns the bound parameters, or nil for an empty call.
func (c Call) Params() *Params {
	return c.params
}
