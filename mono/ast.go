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

// Package mono implements the generic monomorphization visitor of spec.md
// §4.5: given the parsed AST of the non-C language (an external
// collaborator's output per spec.md §6, represented here by the minimal
// node set the visitor needs to dispatch on), it discovers every concrete
// instantiation of a generic function, struct, union, or typedef and
// inserts a specialized declaration into the scope where the use was
// first found.
//
// The non-C language's surface syntax is out of scope (spec.md's
// Non-goals); this package's AST types carry only what visit_data_type,
// visit_function_body, and visit_global_decl need to dispatch and
// substitute, not a full expression/statement grammar.
package mono

// DataTypeKind is the dispatch tag of spec.md §4.5's visit_data_type.
type DataTypeKind int

const (
	Scalar DataTypeKind = iota
	Array
	Function
	Ptr
	Struct
	Union
	Typedef
	// TypeParam is a reference to one of the enclosing declaration's own
	// generic parameter names (e.g. "T" inside `struct Box<T> { T val; }`);
	// it is eliminated by substitution before a specialization is cloned.
	TypeParam
)

// DataType is a node in a declaration's type expression.
type DataType struct {
	Kind DataTypeKind

	// Scalar, Struct/Union/Typedef (by name), TypeParam: the referenced name.
	Name string

	Elem   *DataType   // Array element type, Ptr pointee (nil for void*).
	Return *DataType   // Function return type.
	Params []*DataType // Function parameter types.

	// GenericArgs is non-empty when Name refers to a generic struct, union,
	// or typedef instantiated with these arguments (spec.md §4.5's
	// "STRUCT/UNION/TYPEDEF with a name and generic params" case).
	GenericArgs []*DataType
}

// GlobalDeclKind distinguishes the four instantiable declaration shapes of
// spec.md §4.5 plus plain variables (visited for uses but never themselves
// instantiated).
type GlobalDeclKind int

const (
	FunctionDecl GlobalDeclKind = iota
	StructDecl
	UnionDecl
	TypedefDecl
	VariableDecl
)

// Field is one member of a struct or union declaration. Parent and Next
// link anonymous nested struct/union fields back to their enclosing
// field and sibling, so generate_type_gen's clone can rebuild the same
// nesting shape after substitution (spec.md §4.5).
type Field struct {
	Name      string
	Type      *DataType
	Anonymous bool
	Parent    *Field
	Next      *Field
}

// GlobalDecl is one top-level (file-scope) declaration.
type GlobalDecl struct {
	Kind GlobalDeclKind
	Name string

	// GenericParams is the ordered list of this declaration's own generic
	// parameter names; empty for a non-generic (or already-instantiated)
	// declaration.
	GenericParams []string
	IsPrototype   bool

	ReturnType *DataType   // FunctionDecl
	Params     []*DataType // FunctionDecl
	Body       *FunctionBody

	Fields []*Field // StructDecl, UnionDecl

	Aliased *DataType // TypedefDecl

	VarType *DataType // VariableDecl
}

// IsGeneric reports whether d still has unbound generic parameters — the
// template a concrete instantiation is cloned from, not a specialization
// itself (spec.md §4.5's "declarations that are themselves generic").
func (d *GlobalDecl) IsGeneric() bool {
	return len(d.GenericParams) > 0
}

// FunctionBody is the sequence of items visit_function_body walks:
// declarations, expressions, and control-flow statements (spec.md §4.5).
type FunctionBody struct {
	Items []BodyItem
}

// BodyItem is one element of a FunctionBody.
type BodyItem interface{ isBodyItem() }

// LocalDecl is a local variable declaration inside a function body.
type LocalDecl struct {
	Type *DataType
}

func (*LocalDecl) isBodyItem() {}

// ExprStmt wraps a bare expression statement.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) isBodyItem() {}

// ControlStmt is an if/while/for/block-shaped statement; SubBodies holds
// the nested bodies it descends into (spec.md §4.5: "Control-flow
// statements descend into their sub-bodies").
type ControlStmt struct {
	SubBodies []*FunctionBody
}

func (*ControlStmt) isBodyItem() {}

// Expr is an expression appearing inside a function body.
type Expr interface{ isExpr() }

// CallExpr is a call expression, optionally instantiating a generic
// function (spec.md §4.5: "For each call expression with generic
// parameters, invoke generate_function_gen with the callee's name and the
// call's generic arguments").
type CallExpr struct {
	Callee      string
	GenericArgs []*DataType
	Args        []Expr
}

func (*CallExpr) isExpr() {}

// NameExpr is a bare identifier reference; it carries no generic
// arguments of its own and exists so CallExpr.Args has somewhere to put a
// plain variable reference without needing the full expression grammar
// spec.md's Non-goals exclude.
type NameExpr struct {
	Name string
}

func (*NameExpr) isExpr() {}
