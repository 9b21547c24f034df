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

package mono_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpre/cpre/diag"
	"github.com/cpre/cpre/mono"
	"github.com/cpre/cpre/registry"
	"github.com/cpre/cpre/token"
)

func scalar(name string) *mono.DataType { return &mono.DataType{Kind: mono.Scalar, Name: name} }
func typeParam(name string) *mono.DataType {
	return &mono.DataType{Kind: mono.TypeParam, Name: name}
}

func newVisitor(t *testing.T) (*mono.Visitor, *registry.File, *diag.Handler) {
	t.Helper()
	reg := registry.New()
	file := reg.NewFile("a.nc", nil, token.Source, nil)
	h := diag.NewHandler(nil)
	return mono.New(reg, file, h), file, h
}

func TestStructInstantiationDiscoveredViaVariable(t *testing.T) {
	v, file, h := newVisitor(t)

	box := &mono.GlobalDecl{
		Kind:          mono.StructDecl,
		Name:          "Box",
		GenericParams: []string{"T"},
		Fields:        []*mono.Field{{Name: "value", Type: typeParam("T")}},
	}
	boxInt := &mono.DataType{Kind: mono.Struct, Name: "Box", GenericArgs: []*mono.DataType{scalar("int")}}
	a := &mono.GlobalDecl{Kind: mono.VariableDecl, Name: "a", VarType: boxInt}
	b := &mono.GlobalDecl{Kind: mono.VariableDecl, Name: "b", VarType: boxInt}

	err := v.VisitFile(file.Root, []*mono.GlobalDecl{box, a, b})
	require.NoError(t, err)
	require.Equal(t, 0, h.ErrorCount())

	gen, ok := v.Lookup(mono.StructDecl, "Box$int")
	require.True(t, ok)
	require.Len(t, gen.Fields, 1)
	assert.Equal(t, "int", gen.Fields[0].Type.Name)
	assert.Equal(t, mono.Scalar, gen.Fields[0].Type.Kind)
}

func TestInstantiateTypeDedup(t *testing.T) {
	v, file, _ := newVisitor(t)
	box := &mono.GlobalDecl{
		Kind:          mono.StructDecl,
		Name:          "Box",
		GenericParams: []string{"T"},
		Fields:        []*mono.Field{{Name: "value", Type: typeParam("T")}},
	}
	require.NoError(t, v.VisitFile(file.Root, []*mono.GlobalDecl{box}))

	first, err := v.InstantiateType(mono.StructDecl, "Box", []*mono.DataType{scalar("int")})
	require.NoError(t, err)
	second, err := v.InstantiateType(mono.StructDecl, "Box", []*mono.DataType{scalar("int")})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestFunctionInstantiationAndTransitivity(t *testing.T) {
	v, file, h := newVisitor(t)

	g := &mono.GlobalDecl{
		Kind:          mono.FunctionDecl,
		Name:          "G",
		GenericParams: []string{"T"},
		Params:        []*mono.DataType{typeParam("T")},
		ReturnType:    typeParam("T"),
		Body:          &mono.FunctionBody{},
	}
	f := &mono.GlobalDecl{
		Kind:          mono.FunctionDecl,
		Name:          "F",
		GenericParams: []string{"T"},
		Params:        []*mono.DataType{typeParam("T")},
		ReturnType:    typeParam("T"),
		Body: &mono.FunctionBody{Items: []mono.BodyItem{
			&mono.ExprStmt{Expr: &mono.CallExpr{Callee: "G", GenericArgs: []*mono.DataType{typeParam("T")}}},
		}},
	}
	main := &mono.GlobalDecl{
		Kind: mono.FunctionDecl,
		Name: "main",
		Body: &mono.FunctionBody{Items: []mono.BodyItem{
			&mono.ExprStmt{Expr: &mono.CallExpr{Callee: "F", GenericArgs: []*mono.DataType{scalar("int")}}},
		}},
	}

	err := v.VisitFile(file.Root, []*mono.GlobalDecl{g, f, main})
	require.NoError(t, err)
	require.Equal(t, 0, h.ErrorCount())

	_, ok := v.Lookup(mono.FunctionDecl, "F$int")
	assert.True(t, ok, "F$int should be instantiated directly")
	_, ok = v.Lookup(mono.FunctionDecl, "G$int")
	assert.True(t, ok, "G$int should be instantiated transitively through F's body")

	specs := v.Specializations()
	require.Len(t, specs, 2)
	assert.Equal(t, "F$int", specs[0].Name)
	assert.Equal(t, "G$int", specs[1].Name)
}

func TestMissingBaseError(t *testing.T) {
	v, file, _ := newVisitor(t)
	require.NoError(t, v.VisitFile(file.Root, nil))

	_, err := v.InstantiateFunction("Nope", []*mono.DataType{scalar("int")})
	require.Error(t, err)
	var d diag.Diagnostic
	require.True(t, errors.As(err, &d))
	assert.Equal(t, diag.GenericInstantiation, d.Kind)
}

func TestPrototypeInstantiationError(t *testing.T) {
	v, file, _ := newVisitor(t)
	proto := &mono.GlobalDecl{
		Kind:          mono.FunctionDecl,
		Name:          "Decl",
		GenericParams: []string{"T"},
		IsPrototype:   true,
	}
	require.NoError(t, v.VisitFile(file.Root, []*mono.GlobalDecl{proto}))

	_, err := v.InstantiateFunction("Decl", []*mono.DataType{scalar("int")})
	require.Error(t, err)
}

func TestArityMismatchError(t *testing.T) {
	v, file, _ := newVisitor(t)
	one := &mono.GlobalDecl{
		Kind:          mono.FunctionDecl,
		Name:          "One",
		GenericParams: []string{"T"},
		Params:        []*mono.DataType{typeParam("T")},
		Body:          &mono.FunctionBody{},
	}
	require.NoError(t, v.VisitFile(file.Root, []*mono.GlobalDecl{one}))

	_, err := v.InstantiateFunction("One", []*mono.DataType{scalar("int"), scalar("float")})
	require.Error(t, err)
	var d diag.Diagnostic
	require.True(t, errors.As(err, &d))
	assert.Equal(t, diag.GenericInstantiation, d.Kind)
}

func TestAnonymousNestedFieldCloningPreservesLinks(t *testing.T) {
	v, file, h := newVisitor(t)

	fa := &mono.Field{Name: "a", Type: typeParam("T")}
	fb := &mono.Field{Name: "", Anonymous: true, Type: scalar("dummy")}
	fc := &mono.Field{Name: "c", Type: typeParam("T"), Next: fb}
	pair := &mono.GlobalDecl{
		Kind:          mono.StructDecl,
		Name:          "Pair",
		GenericParams: []string{"T"},
		Fields:        []*mono.Field{fa, fb, fc},
	}

	require.NoError(t, v.VisitFile(file.Root, []*mono.GlobalDecl{pair}))
	require.Equal(t, 0, h.ErrorCount())

	gen, err := v.InstantiateType(mono.StructDecl, "Pair", []*mono.DataType{scalar("int")})
	require.NoError(t, err)
	require.Len(t, gen.Fields, 3)

	clonedA, clonedB, clonedC := gen.Fields[0], gen.Fields[1], gen.Fields[2]
	assert.Equal(t, "int", clonedA.Type.Name)
	assert.True(t, clonedB.Anonymous)
	assert.Equal(t, "dummy", clonedB.Type.Name)
	assert.Equal(t, "int", clonedC.Type.Name)
	assert.Same(t, clonedB, clonedC.Next)
}
