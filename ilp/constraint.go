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

package ilp

import "fmt"

// Op is the relational operator of a canonicalised Constraint.
type Op int

const (
	// LE means "Expr <= 0".
	LE Op = iota
	// EQ means "Expr == 0".
	EQ
)

func (o Op) String() string {
	if o == EQ {
		return "=="
	}
	return "<="
}

// Constraint is one atomic linear constraint, canonicalised to the form
// `expr OP 0` with expr's constant term extracted into Expr.Const().
type Constraint[V comparable] struct {
	Expr LinExpr[V]
	Op   Op
}

// NewLE builds "lhs <= rhs" canonicalised to "(lhs-rhs) <= 0".
func NewLE[V comparable](lhs, rhs LinExpr[V]) Constraint[V] {
	return Constraint[V]{Expr: lhs.Sub(rhs), Op: LE}
}

// NewEQ builds "lhs == rhs" canonicalised to "(lhs-rhs) == 0".
func NewEQ[V comparable](lhs, rhs LinExpr[V]) Constraint[V] {
	return Constraint[V]{Expr: lhs.Sub(rhs), Op: EQ}
}

func (c Constraint[V]) String() string {
	return fmt.Sprintf("%s %s 0", c.Expr.String(), c.Op.String())
}

// Equal reports whether two constraints have the same operator and an
// equal canonical expression.
func (c Constraint[V]) Equal(other Constraint[V]) bool {
	return c.Op == other.Op && c.Expr.Equal(other.Expr)
}
