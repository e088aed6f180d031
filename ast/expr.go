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

// Package ast defines CML's span-annotated abstract syntax tree: one
// exported Kind enum, one node type per surface form, and a monotonic
// ID generator so each node can be addressed throughout the checker and
// evaluator independently of its place in the tree.
package ast

import "github.com/collomatique/cml/common"

// ExprKind enumerates the surface-syntax forms of the language.
type ExprKind int

const (
	UnspecifiedKind ExprKind = iota
	LiteralKind
	IdentKind
	UnaryKind
	BinaryKind
	PathKind
	CallKind
	UserVarCallKind
	ListKind
	TupleKind
	StructKind
	RangeKind
	ComprehensionKind
	QuantifierKind
	IfKind
	LetKind
	MatchKind
	ObjectSetKind
)

// LitKind distinguishes the primitive literal forms.
type LitKind int

const (
	IntLit LitKind = iota
	BoolLit
	StringLit
	NoneLit
)

// QuantifierOp distinguishes `forall` from `sum`.
type QuantifierOp int

const (
	Forall QuantifierOp = iota
	Sum
)

// ForBinder is one `for x in coll` clause of a comprehension or
// quantifier; multiple binders evaluate outer-to-inner.
type ForBinder struct {
	Name       string
	Collection *Expr
}

// StructFieldInit is one `name: value` entry of a struct literal.
type StructFieldInit struct {
	Name  string
	Value *Expr
}

// MatchBranch is one `ident [as T] [into T] [where e] { body }` arm
// A branch with no AsType is the catch-all: it binds the
// scrutinee and always succeeds.
type MatchBranch struct {
	BindName string
	AsType   *TypeExpr
	IntoType *TypeExpr
	Where    *Expr
	Body     *Expr
	Span     common.Span
}

// IsCatchAll reports whether this branch has no `as` clause.
func (b MatchBranch) IsCatchAll() bool { return b.AsType == nil }

// Expr is one node of the CML AST. Only the fields relevant to Kind are
// populated; this is a single concrete tagged struct rather than a
// Kind-interface hierarchy, since there is no need to exchange nodes
// across a wire format.
type Expr struct {
	ID   int64
	Kind ExprKind
	Span common.Span

	// LiteralKind
	Lit    LitKind
	Int    int32
	Bool   bool
	Str    string

	// IdentKind; also ObjectSetKind's type name (`@[Name]`)
	Name string

	// UnaryKind ("not", "-", "card" for |_|)
	Op      string
	Operand *Expr

	// BinaryKind (incl. "in", set ops, comparisons, arithmetic, constraints)
	LHS, RHS *Expr

	// PathKind: Base.Fields[0].Fields[1]...
	Base   *Expr
	Fields []string

	// CallKind / UserVarCallKind: FuncName(Args...) or $Name(Args...)
	FuncName string
	Args     []*Expr

	// ListKind / TupleKind
	Elems []*Expr

	// StructKind
	StructFields []StructFieldInit

	// RangeKind: [Lo..Hi)
	Lo, Hi *Expr

	// ComprehensionKind: [Body for b1 for b2... where Where]
	Binders []ForBinder
	Where   *Expr
	Body    *Expr

	// QuantifierKind: forall/sum x in coll [where w] { body }
	QuantOp QuantifierOp

	// IfKind
	Cond, Then, Else *Expr

	// LetKind: let Name = Value in Body
	LetValue *Expr

	// MatchKind
	Scrutinee *Expr
	Branches  []MatchBranch
}

// IDGenerator produces monotonically increasing node ids, matching the
// teacher's common/ast.IDGenerator contract.
type IDGenerator func() int64

// NewIDGenerator returns a generator starting at 1.
func NewIDGenerator() IDGenerator {
	var next int64
	return func() int64 {
		next++
		return next
	}
}
