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
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateConstraint is the sentinel wrapped by AddConstraint when a
// constraint's canonical form was already recorded, so callers that
// expect families of constraints to occasionally coincide can treat it
// as a no-op rather than a hard failure.
var ErrDuplicateConstraint = errors.New("ilp: duplicate constraint")

// Builder accepts decision-variable declarations and constraints one by
// one, rejecting duplicates and malformed inputs, and finally emits a
// validated Problem.
type Builder struct {
	domains map[IlpVar]Variable
	leq     []Constraint[IlpVar]
	eq      []Constraint[IlpVar]
	seen    map[string]bool
	dense   bool
}

// NewBuilder returns an empty Builder that assembles sparse matrices.
func NewBuilder() *Builder {
	return &Builder{
		domains: map[IlpVar]Variable{},
		seen:    map[string]bool{},
	}
}

// UseDenseRepr switches the Builder to emit DenseMatrix instead of
// SparseMatrix, exercising the interchangeable MatRepr trait.
func (b *Builder) UseDenseRepr() *Builder {
	b.dense = true
	return b
}

// Declare registers a decision variable's domain, rejecting an empty
// domain outright.
func (b *Builder) Declare(v IlpVar, variable Variable) error {
	if variable.Domain.Empty() {
		return fmt.Errorf("ilp: empty domain for variable %s", v)
	}
	if existing, ok := b.domains[v]; ok && existing != variable {
		return fmt.Errorf("ilp: conflicting redeclaration of variable %s", v)
	}
	b.domains[v] = variable
	return nil
}

// AddConstraint records one constraint. It does not declare the
// variables the constraint mentions: every one of them must be
// Declared before Build, which otherwise reports an undeclared
// variable. Duplicate constraints (by canonical form) are rejected.
func (b *Builder) AddConstraint(c Constraint[IlpVar]) error {
	key := c.String()
	if b.seen[key] {
		return fmt.Errorf("%w: %s", ErrDuplicateConstraint, key)
	}
	b.seen[key] = true
	switch c.Op {
	case LE:
		b.leq = append(b.leq, c)
	case EQ:
		b.eq = append(b.eq, c)
	default:
		return fmt.Errorf("ilp: unknown constraint operator")
	}
	return nil
}

// Build assembles the final Problem: variables are ordered per
// IlpVar.Less, and every constraint's coefficients are projected onto
// that column order.
func (b *Builder) Build() (*Problem, error) {
	vars := make([]IlpVar, 0, len(b.domains))
	for v := range b.domains {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Less(vars[j]) })

	index := make(map[IlpVar]int, len(vars))
	domains := make([]Variable, len(vars))
	for i, v := range vars {
		index[v] = i
		domains[i] = b.domains[v]
	}

	leqMat, leqConst, err := b.project(b.leq, index)
	if err != nil {
		return nil, err
	}
	eqMat, eqConst, err := b.project(b.eq, index)
	if err != nil {
		return nil, err
	}

	return &Problem{
		Vars:         vars,
		Domains:      domains,
		LeqMat:       leqMat,
		LeqConstants: leqConst,
		EqMat:        eqMat,
		EqConstants:  eqConst,
	}, nil
}

func (b *Builder) project(rows []Constraint[IlpVar], index map[IlpVar]int) (MatRepr, []float64, error) {
	var mat interface {
		MatRepr
		Set(row, col int, value float64)
	}
	if b.dense {
		mat = NewDenseMatrix(len(rows), len(index))
	} else {
		mat = NewSparseMatrix(len(rows), len(index))
	}
	constants := make([]float64, len(rows))
	for i, c := range rows {
		constants[i] = c.Expr.Const()
		for _, v := range c.Expr.Vars() {
			col, ok := index[v]
			if !ok {
				return nil, nil, fmt.Errorf("ilp: constraint references undeclared variable %s", v)
			}
			mat.Set(i, col, c.Expr.Coeff(v))
		}
	}
	return mat, constants, nil
}
