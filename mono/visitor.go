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

package mono

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/registry"
)

// Visitor runs spec.md §4.5's monomorphization pass over one file's parsed
// declarations. It owns the storage for every declaration it places into
// scope — both the file's own top-level declarations (handed in by the
// external parser collaborator, spec.md §6) and the specializations it
// generates — since registry.Scope itself only stores coordinates, not
// declaration bodies (registry.Entry's doc comment).
type Visitor struct {
	reg   *registry.Registry
	file  *registry.File
	diags *diag.Handler

	scope       *registry.Scope
	decls       []*GlobalDecl
	declaredLen int // len(decls) once VisitFile's original declarations are registered; everything after is a generated specialization
}

// New returns a Visitor that will report through diags and store generated
// declarations against file.
func New(reg *registry.Registry, file *registry.File, diags *diag.Handler) *Visitor {
	return &Visitor{reg: reg, file: file, diags: diags}
}

// VisitFile runs the pass over decls, a file's top-level declarations, in
// the scope rooted at root. Per spec.md §4.5's "Scope discipline", the
// current scope is set on entry and cleared on exit.
func (v *Visitor) VisitFile(root *registry.Scope, decls []*GlobalDecl) error {
	v.scope = root
	defer func() { v.scope = nil }()

	for _, d := range decls {
		v.declare(d)
	}
	v.declaredLen = len(v.decls)
	for _, d := range decls {
		if err := v.visitGlobalDecl(d, nil); err != nil {
			return err
		}
	}
	return nil
}

func categoryFor(kind GlobalDeclKind) registry.Category {
	switch kind {
	case StructDecl:
		return registry.Structs
	case UnionDecl:
		return registry.Unions
	case TypedefDecl:
		return registry.Typedefs
	case VariableDecl:
		return registry.Variables
	default:
		return registry.Functions
	}
}

func declKindForDataType(k DataTypeKind) GlobalDeclKind {
	switch k {
	case Union:
		return UnionDecl
	case Typedef:
		return TypedefDecl
	default:
		return StructDecl
	}
}

// declare inserts d into the current scope under its own name and records
// its storage slot, so a later Lookup can find the *GlobalDecl behind a
// registry.Entry's coordinates.
func (v *Visitor) declare(d *GlobalDecl) {
	idx := len(v.decls)
	v.decls = append(v.decls, d)
	v.scope.Insert(categoryFor(d.Kind), d.Name, registry.Entry{File: v.file.ID, VecIndex: idx, AllDeclsIndex: idx})
}

// Specializations returns every declaration this Visitor has generated so
// far (excluding the file's original declarations passed to VisitFile),
// sorted by mangled name for deterministic dumps and test assertions —
// generation order depends on the order call sites and type references
// were discovered during the walk, which isn't itself meaningful.
func (v *Visitor) Specializations() []*GlobalDecl {
	out := append([]*GlobalDecl(nil), v.decls[v.declaredLen:]...)
	slices.SortFunc(out, func(a, b *GlobalDecl) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Lookup returns the declaration (base or specialization) bound to name in
// the current scope's category for kind, if any.
func (v *Visitor) Lookup(kind GlobalDeclKind, name string) (*GlobalDecl, bool) {
	return v.lookup(categoryFor(kind), name)
}

// InstantiateFunction forces instantiation of function name with the given
// concrete (already-substituted) generic arguments, returning the existing
// specialization if one was already generated. This is generate_function_gen
// (spec.md §4.5) exposed for driver code that wants to request a named
// specialization explicitly, outside of discovering it via a call
// expression during VisitFile.
func (v *Visitor) InstantiateFunction(name string, args []*DataType) (*GlobalDecl, error) {
	return v.generateFunctionGen(name, args)
}

// InstantiateType forces instantiation of the struct, union, or typedef
// named name (generate_type_gen, spec.md §4.5), mirroring
// InstantiateFunction for type declarations.
func (v *Visitor) InstantiateType(kind GlobalDeclKind, name string, args []*DataType) (*GlobalDecl, error) {
	return v.generateTypeGen(kind, name, args)
}

func (v *Visitor) lookup(cat registry.Category, name string) (*GlobalDecl, bool) {
	e, _, ok := v.scope.Lookup(cat, name)
	if !ok {
		return nil, false
	}
	return v.decls[e.VecIndex], true
}

// visitGlobalDecl implements spec.md §4.5's visit_global_decl: it skips
// generic templates (only a concrete instantiation, reached with a
// non-nil subst, or an already-non-generic declaration is eligible),
// prototypes, and — by construction, since only top-level declarations are
// ever passed here — locals.
func (v *Visitor) visitGlobalDecl(decl *GlobalDecl, subst Subst) error {
	if decl.IsGeneric() && subst == nil {
		return nil
	}
	if decl.IsPrototype {
		return nil
	}

	switch decl.Kind {
	case FunctionDecl:
		if _, err := v.visitDataType(decl.ReturnType, subst); err != nil {
			return err
		}
		for _, p := range decl.Params {
			if _, err := v.visitDataType(p, subst); err != nil {
				return err
			}
		}
		if decl.Body != nil {
			return v.visitFunctionBody(decl.Body, subst)
		}
		return nil

	case StructDecl, UnionDecl:
		for _, f := range decl.Fields {
			if _, err := v.visitDataType(f.Type, subst); err != nil {
				return err
			}
		}
		return nil

	case TypedefDecl:
		_, err := v.visitDataType(decl.Aliased, subst)
		return err

	case VariableDecl:
		_, err := v.visitDataType(decl.VarType, subst)
		return err

	default:
		return nil
	}
}

// visitDataType implements spec.md §4.5's visit_data_type dispatch. For a
// named struct/union/typedef reference carrying generic arguments, it
// resolves those arguments against subst and triggers generate_type_gen,
// returning a reference to the resulting specialization in place of dt.
func (v *Visitor) visitDataType(dt *DataType, subst Subst) (*DataType, error) {
	if dt == nil {
		return nil, nil
	}
	switch dt.Kind {
	case Array:
		if _, err := v.visitDataType(dt.Elem, subst); err != nil {
			return nil, err
		}
	case Function:
		if _, err := v.visitDataType(dt.Return, subst); err != nil {
			return nil, err
		}
		for _, p := range dt.Params {
			if _, err := v.visitDataType(p, subst); err != nil {
				return nil, err
			}
		}
	case Ptr:
		if dt.Elem != nil {
			if _, err := v.visitDataType(dt.Elem, subst); err != nil {
				return nil, err
			}
		}
	case Struct, Union, Typedef:
		if dt.Name != "" && len(dt.GenericArgs) > 0 {
			resolved := make([]*DataType, len(dt.GenericArgs))
			for i, a := range dt.GenericArgs {
				resolved[i] = substituteDataType(a, subst)
			}
			gen, err := v.generateTypeGen(declKindForDataType(dt.Kind), dt.Name, resolved)
			if err != nil {
				return nil, err
			}
			return &DataType{Kind: dt.Kind, Name: gen.Name}, nil
		}
	}
	return dt, nil
}

// visitFunctionBody implements spec.md §4.5's visit_function_body.
func (v *Visitor) visitFunctionBody(body *FunctionBody, subst Subst) error {
	if body == nil {
		return nil
	}
	for _, item := range body.Items {
		switch it := item.(type) {
		case *LocalDecl:
			if _, err := v.visitDataType(it.Type, subst); err != nil {
				return err
			}
		case *ExprStmt:
			if err := v.visitExpr(it.Expr, subst); err != nil {
				return err
			}
		case *ControlStmt:
			for _, sub := range it.SubBodies {
				if err := v.visitFunctionBody(sub, subst); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (v *Visitor) visitExpr(e Expr, subst Subst) error {
	call, ok := e.(*CallExpr)
	if !ok {
		return nil
	}
	for _, a := range call.Args {
		if err := v.visitExpr(a, subst); err != nil {
			return err
		}
	}
	if len(call.GenericArgs) == 0 {
		return nil
	}
	resolved := make([]*DataType, len(call.GenericArgs))
	for i, a := range call.GenericArgs {
		resolved[i] = substituteDataType(a, subst)
	}
	_, err := v.generateFunctionGen(call.Callee, resolved)
	return err
}

// generateFunctionGen implements spec.md §4.5's generate_function_gen.
// resolvedArgs are the call's generic arguments after substitution against
// the caller's own bindings (the "unresolved_generic_params ... against the
// caller's decl_generic_params/called_generic_params" step happens in the
// caller, visitExpr, before this is invoked).
func (v *Visitor) generateFunctionGen(name string, resolvedArgs []*DataType) (*GlobalDecl, error) {
	base, ok := v.lookup(registry.Functions, name)
	if !ok {
		return nil, v.errorf("generic function %q has no declaration in scope", name)
	}
	if base.IsPrototype {
		return nil, v.errorf("generic function %q has no body to instantiate", name)
	}
	if len(resolvedArgs) != len(base.GenericParams) {
		return nil, v.errorf("generic function %q expects %d generic argument(s), got %d",
			name, len(base.GenericParams), len(resolvedArgs))
	}

	key := Key{Base: name, Args: canonicalizeAll(resolvedArgs)}
	mangled := Mangle(key)
	if existing, ok := v.lookup(registry.Functions, mangled); ok {
		return existing, nil
	}

	subst := bindParams(base.GenericParams, resolvedArgs)
	clone := &GlobalDecl{
		Kind:       FunctionDecl,
		Name:       mangled,
		ReturnType: substituteDataType(base.ReturnType, subst),
		Body:       base.Body,
	}
	clone.Params = make([]*DataType, len(base.Params))
	for i, p := range base.Params {
		clone.Params[i] = substituteDataType(p, subst)
	}

	// Declare before recursing: a self- or mutually-recursive generic call
	// (F[T] calling F[T] or F[T] calling G[T] calling F[T]) finds this
	// mangled name already in scope on the way back in and dedups instead
	// of recursing forever (spec.md §4.5's termination argument).
	v.declare(clone)

	if err := v.visitFunctionBody(clone.Body, subst); err != nil {
		return nil, err
	}
	return clone, nil
}

// generateTypeGen implements spec.md §4.5's generate_type_gen for struct,
// union, and typedef declarations.
func (v *Visitor) generateTypeGen(kind GlobalDeclKind, name string, resolvedArgs []*DataType) (*GlobalDecl, error) {
	cat := categoryFor(kind)
	base, ok := v.lookup(cat, name)
	if !ok {
		return nil, v.errorf("generic %s %q has no declaration in scope", cat, name)
	}
	if len(resolvedArgs) != len(base.GenericParams) {
		return nil, v.errorf("generic %s %q expects %d generic argument(s), got %d",
			cat, name, len(base.GenericParams), len(resolvedArgs))
	}

	key := Key{Base: name, Args: canonicalizeAll(resolvedArgs)}
	mangled := Mangle(key)
	if existing, ok := v.lookup(cat, mangled); ok {
		return existing, nil
	}

	subst := bindParams(base.GenericParams, resolvedArgs)
	var clone *GlobalDecl
	switch kind {
	case StructDecl, UnionDecl:
		clone = &GlobalDecl{Kind: kind, Name: mangled, Fields: cloneFields(base.Fields, subst)}
	case TypedefDecl:
		clone = &GlobalDecl{Kind: TypedefDecl, Name: mangled, Aliased: substituteDataType(base.Aliased, subst)}
	default:
		return nil, v.errorf("generate_type_gen called with non-type kind")
	}

	v.declare(clone)

	// Re-visit the clone so a generic reference nested inside its fields or
	// aliased type cascades into its own instantiation (spec.md §4.5:
	// "the aliased data type is substituted and re-visited to cascade
	// instantiation into its components").
	if err := v.visitGlobalDecl(clone, subst); err != nil {
		return nil, err
	}
	return clone, nil
}

func (v *Visitor) errorf(format string, args ...any) error {
	d := diag.Diagnostic{Kind: diag.GenericInstantiation, Message: fmt.Sprintf(format, args...)}
	v.diags.Error(d)
	return d
}
