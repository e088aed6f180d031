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

package ast

import "github.com/collomatique/cml/common"

// TypeExpr is the surface-syntax spelling of a type annotation: a
// ground name (Int, Bool, String, LinExpr, Constraint, or a module type
// name) plus, for compound forms, nested type arguments. The checker
// (package checker) resolves a TypeExpr into a types.ExprType.
type TypeExpr struct {
	Span common.Span
	Name string // "Int", "Bool", "String", "LinExpr", "Constraint", "List", "Tuple", "Struct", or a declared/object type name
	Elem *TypeExpr
	Elems []*TypeExpr
	Fields map[string]*TypeExpr
	// Sum holds the variants of a written sum type "A | B | C"; nil
	// when the annotation is a single ground form.
	Sum []*TypeExpr
	// Optional marks a trailing "?" on the annotation (sugar for "T | None").
	Optional bool
}
