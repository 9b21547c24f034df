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

// Package resolver implements the resolver core (spec.md §4.3): the central
// loop that walks a file's token list, expands macros, evaluates
// conditional directives, resolves #include, and performs stringification
// and token pasting, producing a flat rtoken.Buffer for the parser.
//
// The resolver is single-threaded and cooperative (spec.md §5): every
// nested expansion — a macro call's arguments, a macro's body, the rescan
// of a pasted token, an included file's tokens — is a direct recursive call
// into a child Resolver sharing the same registry, diagnostics handler, and
// file system/scanner collaborators. spec.md §9 directs capping that
// recursion rather than letting a pathological input overflow the stack;
// MaxDepth is that cap. An #if branch's body and condition are resolved by
// the same Resolver, not a child, so conditional nesting does not count
// toward MaxDepth.
package resolver

import (
	"fmt"

	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/macroenv"
	"github.com/cpre/cpre/registry"
	"github.com/cpre/cpre/rtoken"
	"github.com/cpre/cpre/sourceio"
	"github.com/cpre/cpre/token"
)

// MaxDepth bounds nested macro/paste/include recursion. Exceeding it
// is reported as a diag.RecursionLimit diagnostic rather than left to crash
// the process, per spec.md §9's design note on recursive expansion.
const MaxDepth = 256

// Resolver resolves one file's (or one nested body's) token list.
type Resolver struct {
	reg         *registry.Registry
	file        *registry.File
	diags       *diag.Handler
	fs          sourceio.FileSystem
	scanner     sourceio.Scanner
	includeDirs []string

	macroCall     macroenv.Call
	countMergedID int
	depth         int
}

// New returns a Resolver over file, ready to resolve file.Tokens.
// includeDirs is the ordered list of system include directories consulted
// before the including file's own directory (spec.md §9's resolved open
// question on include search order).
func New(reg *registry.Registry, file *registry.File, diags *diag.Handler, fs sourceio.FileSystem, scanner sourceio.Scanner, includeDirs []string) *Resolver {
	return &Resolver{
		reg:         reg,
		file:        file,
		diags:       diags,
		fs:          fs,
		scanner:     scanner,
		includeDirs: includeDirs,
		macroCall:   macroenv.EmptyCall(),
	}
}

// Resolve runs the driver loop over r's file and returns the fully resolved
// token sequence.
func (r *Resolver) Resolve() (*rtoken.Buffer, error) {
	return r.resolveList(r.file.Tokens, false)
}

// enter returns a child Resolver for a nested expansion (a macro argument,
// a macro body, an included file), sharing every collaborator but starting
// from an empty macro call and a deeper recursion count. Returns an error
// if doing so would exceed MaxDepth.
func (r *Resolver) enter() (*Resolver, error) {
	if r.depth+1 > MaxDepth {
		return nil, r.fatalf(diag.RecursionLimit, token.Location{},
			"expansion exceeded the maximum recursion depth (%d)", MaxDepth)
	}
	c := *r
	c.depth = r.depth + 1
	c.macroCall = macroenv.EmptyCall()
	c.countMergedID = 0
	return &c, nil
}

// fatalf reports a diagnostic as an error and returns it; callers treat the
// return value as the abort signal for the current translation unit, per
// spec.md §7's fatal propagation policy.
func (r *Resolver) fatalf(kind diag.Kind, loc token.Location, format string, args ...any) error {
	d := diag.Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: loc}
	r.diags.Error(d)
	return d
}

// fileEnv adapts a registry.File to ifeval.Env so #if conditions can query
// the current defines table.
type fileEnv struct {
	file *registry.File
}

func (e fileEnv) Defined(name string) bool {
	return e.file.IsDefined(name)
}
