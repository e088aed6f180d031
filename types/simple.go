// Copyright 2018 Google LLC
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

// Package types implements CML's structural type system: a closed set
// of ground forms (SimpleType), a sum-type algebra over them
// (ExprType), and the single-variant recursively-concrete subset used
// as conversion targets (ConcreteType). Mirrors
// checker/types.go Kind-based type representation.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind enumerates the closed set of ground type forms.
type Kind int

const (
	Never Kind = iota
	None
	Int
	Bool
	String
	LinExpr
	Constraint
	EmptyList
	List
	Object
	Tuple
	Struct
	Custom
)

func (k Kind) String() string {
	switch k {
	case Never:
		return "Never"
	case None:
		return "None"
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case LinExpr:
		return "LinExpr"
	case Constraint:
		return "Constraint"
	case EmptyList:
		return "EmptyList"
	case List:
		return "List"
	case Object:
		return "Object"
	case Tuple:
		return "Tuple"
	case Struct:
		return "Struct"
	case Custom:
		return "Custom"
	default:
		return "?"
	}
}

// SimpleType is one ground form of CML's type grammar.
type SimpleType struct {
	Kind Kind

	// List
	Elem *ExprType

	// Object, Custom
	ObjectName string // Object(name)
	Module     string // Custom(module, name, variant?)
	Name       string // Custom(module, name, variant?)
	Variant    string // Custom's optional variant tag
	HasVariant bool

	// Tuple
	Elems []ExprType

	// Struct
	Fields map[string]ExprType
}

// Ground constructors for the non-compound forms.
func NeverType() SimpleType     { return SimpleType{Kind: Never} }
func NoneType() SimpleType      { return SimpleType{Kind: None} }
func IntType() SimpleType       { return SimpleType{Kind: Int} }
func BoolType() SimpleType      { return SimpleType{Kind: Bool} }
func StringType() SimpleType    { return SimpleType{Kind: String} }
func LinExprType() SimpleType   { return SimpleType{Kind: LinExpr} }
func ConstraintType() SimpleType { return SimpleType{Kind: Constraint} }
func EmptyListType() SimpleType { return SimpleType{Kind: EmptyList} }

// ListType builds List(elem).
func ListType(elem ExprType) SimpleType {
	return SimpleType{Kind: List, Elem: &elem}
}

// ObjectType builds Object(name).
func ObjectType(name string) SimpleType {
	return SimpleType{Kind: Object, ObjectName: name}
}

// TupleType builds Tuple([elems...]).
func TupleType(elems ...ExprType) SimpleType {
	return SimpleType{Kind: Tuple, Elems: elems}
}

// StructType builds Struct({fields...}).
func StructType(fields map[string]ExprType) SimpleType {
	return SimpleType{Kind: Struct, Fields: fields}
}

// CustomType builds Custom(module, name) with no variant selected
// (the enum's root type).
func CustomType(module, name string) SimpleType {
	return SimpleType{Kind: Custom, Module: module, Name: name}
}

// CustomVariantType builds Custom(module, name, Some(variant)).
func CustomVariantType(module, name, variant string) SimpleType {
	return SimpleType{Kind: Custom, Module: module, Name: name, Variant: variant, HasVariant: true}
}

// String renders the type using CML surface syntax where practical.
func (t SimpleType) String() string {
	switch t.Kind {
	case List:
		return fmt.Sprintf("[%s]", t.Elem.String())
	case Object:
		return t.ObjectName
	case Tuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case Struct:
		keys := make([]string, 0, len(t.Fields))
		for k := range t.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, t.Fields[k].String())
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case Custom:
		if t.HasVariant {
			return fmt.Sprintf("%s.%s::%s", t.Module, t.Name, t.Variant)
		}
		return fmt.Sprintf("%s.%s", t.Module, t.Name)
	default:
		return t.Kind.String()
	}
}

// Equal reports structural equality.
func (t SimpleType) Equal(other SimpleType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case List:
		return t.Elem.Equal(*other.Elem)
	case Object:
		return t.ObjectName == other.ObjectName
	case Tuple:
		if len(t.Elems) != len(other.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	case Struct:
		if len(t.Fields) != len(other.Fields) {
			return false
		}
		for k, v := range t.Fields {
			ov, ok := other.Fields[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	case Custom:
		return t.Module == other.Module && t.Name == other.Name &&
			t.HasVariant == other.HasVariant && t.Variant == other.Variant
	default:
		return true
	}
}

// IsSubtype implements a ⊑ b.
func IsSubtype(a, b SimpleType) bool {
	if a.Kind == Never {
		return true
	}
	if a.Equal(b) {
		return true
	}
	if a.Kind == EmptyList && b.Kind == List {
		return true
	}
	if a.Kind == List && b.Kind == List {
		return a.Elem.IsSubtype(*b.Elem)
	}
	if a.Kind == Tuple && b.Kind == Tuple && len(a.Elems) == len(b.Elems) {
		for i := range a.Elems {
			if !a.Elems[i].IsSubtype(b.Elems[i]) {
				return false
			}
		}
		return true
	}
	if a.Kind == Custom && b.Kind == Custom && a.Module == b.Module && a.Name == b.Name {
		// Custom(m,r,Some(v)) ⊑ Custom(m,r,None): an enum variant fits its root.
		return a.HasVariant && !b.HasVariant
	}
	return false
}
