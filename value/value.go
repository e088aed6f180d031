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

// Package value implements ExprValue, the runtime value algebra CML
// expressions evaluate to, mirrored one-for-one against the types
// package's SimpleType variants. Mirrors
// common/types package: one Go type per variant, a shared Value marker
// interface, and singleton-style constructors.
package value

import (
	"fmt"

	"github.com/collomatique/cml/ilp"
	"github.com/collomatique/cml/types"
)

// Value is any CML runtime value.
type Value interface {
	isValue()
	// String renders the value for diagnostics and for implicit
	// string conversion: any value can be stringified.
	String() string
}

// None is the unit value of the None type.
type None struct{}

func (None) isValue()       {}
func (None) String() string { return "none" }

// Int is a 32-bit CML integer.
type Int int32

func (Int) isValue() {}
func (i Int) String() string { return fmt.Sprintf("%d", int32(i)) }

// Bool is a CML boolean.
type Bool bool

func (Bool) isValue() {}
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String is a CML string.
type String string

func (String) isValue()       {}
func (s String) String() string { return string(s) }

// LinExpr wraps a linear expression over decision-variable keys.
type LinExpr struct {
	Expr ilp.LinExpr[ilp.IlpVar]
}

func (LinExpr) isValue() {}
func (l LinExpr) String() string { return l.Expr.String() }

// ConstraintWithOrigin pairs one atomic linear constraint with the
// (possibly absent) provenance that produced it.
type ConstraintWithOrigin struct {
	Constraint ilp.Constraint[ilp.IlpVar]
	Origin     *Origin
}

// Constraint is a *list* of atomic constraints, each independently
// tagged with an origin.
type Constraint []ConstraintWithOrigin

func (Constraint) isValue() {}
func (c Constraint) String() string {
	s := ""
	for i, atom := range c {
		if i > 0 {
			s += "\n"
		}
		s += atom.Constraint.String()
	}
	return s
}

// Object is an opaque handle into the external EvalObject environment,
// tagged with its declared CML type name.
type Object struct {
	TypeName string
	Handle   interface{}
}

func (Object) isValue() {}
func (o Object) String() string { return fmt.Sprintf("%s#%v", o.TypeName, o.Handle) }

// List is a homogeneous CML list value; ElemType is the static element
// type used by fits_in_typ.
type List struct {
	ElemType types.ExprType
	Elems    []Value
}

func (List) isValue() {}
func (l List) String() string {
	s := "["
	for i, e := range l.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// Tuple is a fixed-arity heterogeneous CML value.
type Tuple struct {
	Elems []Value
}

func (Tuple) isValue() {}
func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// Struct is a named-field CML value.
type Struct struct {
	Fields map[string]Value
}

func (Struct) isValue() {}
func (s Struct) String() string {
	return fmt.Sprintf("{%v}", s.Fields)
}

// Custom is a value of a user-declared enum-like type, tagged with the
// concrete variant that produced it.
type Custom struct {
	Module, Name, Variant string
	Inner                 Value
}

func (Custom) isValue() {}
func (c Custom) String() string { return fmt.Sprintf("%s.%s::%s(%s)", c.Module, c.Name, c.Variant, c.Inner) }
