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

// Subst binds a generic declaration's parameter names to concrete types
// for the duration of one visit. spec.md §4.5's termination argument rests
// on every recursive call either extending Subst with new concrete
// bindings or carrying one that's already fully concrete — never widening
// the set of free parameters.
type Subst map[string]*DataType

// substituteDataType clones dt, replacing every TypeParam leaf bound in
// subst with its concrete type. It does not itself trigger instantiation
// of a generic struct/union/typedef reference found along the way — that
// is visitDataType's job, invoked separately once the substituted type is
// actually visited. Keeping substitution pure from instantiation matches
// generate_function_gen's own staging: "substitute ... to obtain concrete
// params" (step 2) happens before "recursively visit its body" (step 5).
func substituteDataType(dt *DataType, subst Subst) *DataType {
	if dt == nil {
		return nil
	}
	switch dt.Kind {
	case TypeParam:
		if bound, ok := subst[dt.Name]; ok {
			return bound
		}
		return dt
	case Array:
		return &DataType{Kind: Array, Elem: substituteDataType(dt.Elem, subst)}
	case Ptr:
		if dt.Elem == nil {
			return dt
		}
		return &DataType{Kind: Ptr, Elem: substituteDataType(dt.Elem, subst)}
	case Function:
		params := make([]*DataType, len(dt.Params))
		for i, p := range dt.Params {
			params[i] = substituteDataType(p, subst)
		}
		return &DataType{Kind: Function, Return: substituteDataType(dt.Return, subst), Params: params}
	case Struct, Union, Typedef:
		if len(dt.GenericArgs) == 0 {
			return dt
		}
		args := make([]*DataType, len(dt.GenericArgs))
		for i, a := range dt.GenericArgs {
			args[i] = substituteDataType(a, subst)
		}
		return &DataType{Kind: dt.Kind, Name: dt.Name, GenericArgs: args}
	default: // Scalar
		return dt
	}
}

// bindParams pairs names (a base declaration's GenericParams) positionally
// with args (the already-substituted, concrete call-site arguments) to
// build the Subst a clone's body is visited under.
func bindParams(names []string, args []*DataType) Subst {
	s := make(Subst, len(names))
	for i, n := range names {
		s[n] = args[i]
	}
	return s
}

// cloneFields copies fields with each Type substituted under subst,
// rebuilding the Parent/Next linkage between the clones so anonymous
// nested struct/union fields keep their original nesting shape (spec.md
// §4.5's generate_type_gen contract for struct/union).
func cloneFields(fields []*Field, subst Subst) []*Field {
	cloned := make([]*Field, len(fields))
	index := make(map[*Field]*Field, len(fields))
	for i, f := range fields {
		cloned[i] = &Field{Name: f.Name, Anonymous: f.Anonymous, Type: substituteDataType(f.Type, subst)}
		index[f] = cloned[i]
	}
	for i, f := range fields {
		if f.Parent != nil {
			cloned[i].Parent = index[f.Parent]
		}
		if f.Next != nil {
			cloned[i].Next = index[f.Next]
		}
	}
	return cloned
}
