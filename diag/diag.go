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

// Package diag defines the diagnostics sink the resolver and monomorphizer
// report through (spec.md §6, §7). Neither the resolver nor the mono
// visitor formats output themselves; they build [Diagnostic] values and
// hand them to a [Sink].
//
// The split between the narrow [Sink] interface and the [Handler] that
// accumulates error/warning counts is grounded on the teacher's
// reporter.Reporter / reporter.Handler split: callers supply the policy
// (where diagnostics go), and the Handler supplies the bookkeeping (how many
// errors have been seen, used to decide the process exit code).
package diag

import "github.com/cpre/cpre/token"

// Kind identifies the error/warning taxonomy of spec.md §7.
type Kind int

const (
	_ Kind = iota
	LexicalExpectation
	MacroArity
	MacroOperand
	IncludeMiss
	DirectiveUnsupported
	ConstExprInvalid
	UserError
	UserWarning
	SymbolRedefinition

	// RecursionLimit is not one of spec.md §7's named kinds; it backs spec.md
	// §9's design note that recursive macro/include expansion should convert
	// a would-be stack overflow into a reported diagnostic rather than
	// crashing the process.
	RecursionLimit

	// GenericInstantiation is not one of spec.md §7's named kinds; it covers
	// spec.md §4.5's generate_function_gen/generate_type_gen failure modes:
	// a generic call/reference naming a base declaration that doesn't exist,
	// naming a prototype with no body to instantiate, or supplying a number
	// of generic arguments inconsistent with the base declaration's generic
	// parameter list.
	GenericInstantiation
)

func (k Kind) String() string {
	switch k {
	case LexicalExpectation:
		return "LexicalExpectation"
	case MacroArity:
		return "MacroArity"
	case MacroOperand:
		return "MacroOperand"
	case IncludeMiss:
		return "IncludeMiss"
	case DirectiveUnsupported:
		return "DirectiveUnsupported"
	case ConstExprInvalid:
		return "ConstExprInvalid"
	case UserError:
		return "UserError"
	case UserWarning:
		return "UserWarning"
	case SymbolRedefinition:
		return "SymbolRedefinition"
	case RecursionLimit:
		return "RecursionLimit"
	case GenericInstantiation:
		return "GenericInstantiation"
	default:
		return "Unknown"
	}
}

// Level is the severity of a Diagnostic.
type Level int8

const (
	Error Level = iota
	Warning
)

// Diagnostic is a single error or warning, always carrying a source span
// per spec.md §6 ("accepts error/warning records referencing a Location and
// a message/kind").
type Diagnostic struct {
	Kind    Kind
	Level   Level
	Message string
	Span    token.Location
}

func (d Diagnostic) Error() string {
	return d.Message
}

// Sink is the narrow external-collaborator interface the resolver and mono
// visitor report through; spec.md §6 says "the resolver never formats
// output itself."
type Sink interface {
	Error(d Diagnostic)
	Warning(d Diagnostic)
}

// Handler accumulates error/warning counts on top of a Sink, matching
// spec.md §5's "count_error/count_warning are shared by sub-resolvers via a
// parent pointer" — here, a child resolver simply holds a pointer to the
// same Handler as its parent, so nested failures accumulate into the same
// counts without any parent-chain walking.
type Handler struct {
	sink     Sink
	errors   int
	warnings int
}

// NewHandler wraps sink. A nil sink discards diagnostics but still counts
// them.
func NewHandler(sink Sink) *Handler {
	return &Handler{sink: sink}
}

// Error reports d as an error and increments the error count.
func (h *Handler) Error(d Diagnostic) {
	d.Level = Error
	h.errors++
	if h.sink != nil {
		h.sink.Error(d)
	}
}

// Warning reports d as a warning and increments the warning count.
func (h *Handler) Warning(d Diagnostic) {
	d.Level = Warning
	h.warnings++
	if h.sink != nil {
		h.sink.Warning(d)
	}
}

// ErrorCount returns the number of errors reported so far.
func (h *Handler) ErrorCount() int {
	return h.errors
}

// WarningCount returns the number of warnings reported so far.
func (h *Handler) WarningCount() int {
	return h.warnings
}

// Failed reports whether any error has been reported; per spec.md §7 this is
// exactly the condition under which the driver should exit non-zero.
func (h *Handler) Failed() bool {
	return h.errors > 0
}
