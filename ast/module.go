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

// Param is one parameter of a `let` function declaration.
type Param struct {
	Name string
	Type *TypeExpr
}

// FuncDecl is a top-level `[pub] let name(params) -> T = body;`.
type FuncDecl struct {
	Span       common.Span
	Pub        bool
	Name       string
	Params     []Param
	ReturnType *TypeExpr
	Body       *Expr
	// Docstring holds the triple-slash comment lines attached to this
	// declaration, verbatim, newline-joined.
	Docstring string
}

// ReifyDecl is a top-level `reify f as $Name;`.
type ReifyDecl struct {
	Span     common.Span
	FuncName string
	AsName   string
}

// ImportDecl is a top-level module import.
type ImportDecl struct {
	Span   common.Span
	Module string
}

// CustomTypeDecl declares an enum-like custom type with named variants,
// each carrying an inner payload type.
type CustomTypeDecl struct {
	Span     common.Span
	Name     string
	Variants []CustomVariantDecl
}

// CustomVariantDecl is one variant of a CustomTypeDecl.
type CustomVariantDecl struct {
	Name    string
	Payload *TypeExpr // nil for a unit variant
}

// Module is one parsed CML source file's top-level statement list.
type Module struct {
	Name      string
	Imports   []ImportDecl
	Functions []FuncDecl
	Reifies   []ReifyDecl
	Types     []CustomTypeDecl
}
