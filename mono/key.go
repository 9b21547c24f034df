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

import "strings"

// CanonicalType is the canonical textual rendering of a fully-substituted
// (generic-parameter-free) DataType, used as one component of a Key and,
// transitively, of a mangled specialization name (spec.md §3.7).
type CanonicalType string

// Key identifies one concrete instantiation by the tuple spec.md §3.7
// names: a base declaration name plus its ordered substituted generic
// arguments.
type Key struct {
	Base string
	Args []CanonicalType
}

// Mangle serializes k to the canonical specialization name: the base name
// followed by each argument's canonical form, joined with '$'. Canonicalize
// wraps a nested generic argument's own mangled name in parentheses, so its
// '$' separators stay distinguishable from this key's and two distinct Keys
// whose names contain no '$' or parentheses never collide (spec.md §3.7,
// §6 "File formats").
func Mangle(k Key) string {
	if len(k.Args) == 0 {
		return k.Base
	}
	var b strings.Builder
	b.WriteString(k.Base)
	for _, a := range k.Args {
		b.WriteByte('$')
		b.WriteString(string(a))
	}
	return b.String()
}

// Canonicalize renders dt, which must contain no remaining TypeParam
// nodes, to its CanonicalType form. Struct/union/typedef references with
// generic arguments render as their own mangled name in parentheses, since by the time a
// type reaches here any generic reference it names has already been
// instantiated to a concrete specialization.
func Canonicalize(dt *DataType) CanonicalType {
	if dt == nil {
		return ""
	}
	switch dt.Kind {
	case Scalar:
		return CanonicalType(dt.Name)
	case Ptr:
		return CanonicalType("ptr<" + string(Canonicalize(dt.Elem)) + ">")
	case Array:
		return CanonicalType("array<" + string(Canonicalize(dt.Elem)) + ">")
	case Function:
		parts := make([]string, len(dt.Params))
		for i, p := range dt.Params {
			parts[i] = string(Canonicalize(p))
		}
		return CanonicalType("fn<" + string(Canonicalize(dt.Return)) + "(" + strings.Join(parts, ",") + ")>")
	case Struct, Union, Typedef:
		if len(dt.GenericArgs) == 0 {
			return CanonicalType(dt.Name)
		}
		args := make([]CanonicalType, len(dt.GenericArgs))
		for i, a := range dt.GenericArgs {
			args[i] = Canonicalize(a)
		}
		return CanonicalType("(" + Mangle(Key{Base: dt.Name, Args: args}) + ")")
	case TypeParam:
		// Defensive: reaching here means a caller canonicalized a type
		// before fully substituting it.
		return CanonicalType("?" + dt.Name)
	default:
		return CanonicalType(dt.Name)
	}
}

func canonicalizeAll(dts []*DataType) []CanonicalType {
	out := make([]CanonicalType, len(dts))
	for i, dt := range dts {
		out[i] = Canonicalize(dt)
	}
	return out
}
