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

import (
	"fmt"
	"sort"
	"strings"
)

// LinExpr is a formal linear combination Σ cᵢ·vᵢ + k over comparable
// variable keys V.
type LinExpr[V comparable] struct {
	coeffs map[V]float64
	k      float64
}

// ConstLinExpr builds a constant-only expression.
func ConstLinExpr[V comparable](k float64) LinExpr[V] {
	return LinExpr[V]{k: k}
}

// VarLinExpr builds the expression "1·v".
func VarLinExpr[V comparable](v V) LinExpr[V] {
	return LinExpr[V]{coeffs: map[V]float64{v: 1}}
}

// Const returns the constant term.
func (e LinExpr[V]) Const() float64 { return e.k }

// Coeff returns the coefficient of v (zero if absent).
func (e LinExpr[V]) Coeff(v V) float64 { return e.coeffs[v] }

// Vars returns the set of variable keys with a nonzero coefficient.
func (e LinExpr[V]) Vars() []V {
	vars := make([]V, 0, len(e.coeffs))
	for v := range e.coeffs {
		vars = append(vars, v)
	}
	return vars
}

// Add returns e + other.
func (e LinExpr[V]) Add(other LinExpr[V]) LinExpr[V] {
	result := e.clone()
	for v, c := range other.coeffs {
		result.coeffs[v] += c
	}
	result.k += other.k
	return result.canonical()
}

// Sub returns e - other.
func (e LinExpr[V]) Sub(other LinExpr[V]) LinExpr[V] {
	result := e.clone()
	for v, c := range other.coeffs {
		result.coeffs[v] -= c
	}
	result.k -= other.k
	return result.canonical()
}

// Scale returns e scaled by a constant factor.
func (e LinExpr[V]) Scale(factor float64) LinExpr[V] {
	result := LinExpr[V]{coeffs: make(map[V]float64, len(e.coeffs)), k: e.k * factor}
	for v, c := range e.coeffs {
		result.coeffs[v] = c * factor
	}
	return result.canonical()
}

// Negate returns -e.
func (e LinExpr[V]) Negate() LinExpr[V] { return e.Scale(-1) }

func (e LinExpr[V]) clone() LinExpr[V] {
	result := LinExpr[V]{coeffs: make(map[V]float64, len(e.coeffs)), k: e.k}
	for v, c := range e.coeffs {
		result.coeffs[v] = c
	}
	return result
}

// canonical drops zero coefficients so Equal can compare maps directly.
func (e LinExpr[V]) canonical() LinExpr[V] {
	for v, c := range e.coeffs {
		if c == 0 {
			delete(e.coeffs, v)
		}
	}
	return e
}

// Equal reports structural equality in canonical form.
func (e LinExpr[V]) Equal(other LinExpr[V]) bool {
	a, b := e.canonical(), other.canonical()
	if a.k != b.k || len(a.coeffs) != len(b.coeffs) {
		return false
	}
	for v, c := range a.coeffs {
		if b.coeffs[v] != c {
			return false
		}
	}
	return true
}

// IsConstant reports whether the expression has no variable terms.
func (e LinExpr[V]) IsConstant() bool {
	return len(e.canonical().coeffs) == 0
}

// String renders the expression deterministically (sorted by key's own
// String() so output is stable across runs).
func (e LinExpr[V]) String() string {
	type term struct {
		key string
		c   float64
	}
	terms := make([]term, 0, len(e.coeffs))
	for v, c := range e.coeffs {
		if c == 0 {
			continue
		}
		terms = append(terms, term{key: fmt.Sprintf("%v", v), c: c})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].key < terms[j].key })

	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%g*%s", t.c, t.key)
	}
	if e.k != 0 || len(terms) == 0 {
		if len(terms) > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "%g", e.k)
	}
	return b.String()
}
