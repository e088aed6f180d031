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

import "sort"

// Configuration is a total assignment x: column -> value over a
// Problem's decision variables.
type Configuration struct {
	values map[int]float64
}

// NewConfiguration returns the all-zero configuration.
func NewConfiguration() *Configuration {
	return &Configuration{values: map[int]float64{}}
}

// Get returns the value assigned to column, defaulting to zero.
func (c *Configuration) Get(column int) float64 {
	return c.values[column]
}

// Set assigns column := value and returns the previous value, so callers
// can feed the delta into a Precomp.
func (c *Configuration) Set(column int, value float64) (previous float64) {
	previous = c.values[column]
	if value == 0 {
		delete(c.values, column)
	} else {
		c.values[column] = value
	}
	return previous
}

// Clone returns an independent copy.
func (c *Configuration) Clone() *Configuration {
	values := make(map[int]float64, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	return &Configuration{values: values}
}

// Vector materializes the configuration as a dense []float64 of the
// given length, for matrix multiplication.
func (c *Configuration) Vector(n int) []float64 {
	x := make([]float64, n)
	for col, v := range c.values {
		if col < n {
			x[col] = v
		}
	}
	return x
}

// Compare gives configurations a deterministic lexicographic order on
// the column vector, enabling reproducible solver iteration.
func (c *Configuration) Compare(other *Configuration) int {
	cols := map[int]bool{}
	for k := range c.values {
		cols[k] = true
	}
	for k := range other.values {
		cols[k] = true
	}
	ordered := make([]int, 0, len(cols))
	for k := range cols {
		ordered = append(ordered, k)
	}
	sort.Ints(ordered)
	for _, col := range ordered {
		a, b := c.values[col], other.values[col]
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// Precomp is the cached A·x product for both of a Problem's matrices,
// kept in sync incrementally as a Configuration is mutated.
type Precomp struct {
	problem *Problem
	leq     []float64
	eq      []float64
}

// Update applies a single column reassignment to the cached products:
// A[:,col]·(newValue-oldValue), in O(nonzeros in that column).
func (p *Precomp) Update(col int, oldValue, newValue float64) {
	dv := newValue - oldValue
	if dv == 0 {
		return
	}
	for i, delta := range p.problem.LeqMat.ColumnDelta(col, dv) {
		p.leq[i] += delta
	}
	for i, delta := range p.problem.EqMat.ColumnDelta(col, dv) {
		p.eq[i] += delta
	}
}

// SetAndUpdate is the usual pairing of Configuration.Set with a Precomp
// refresh for the same column.
func (p *Precomp) SetAndUpdate(cfg *Configuration, col int, value float64) {
	old := cfg.Set(col, value)
	p.Update(col, old, value)
}

// IsFeasible reports whether every LEQ row is <=0 and every EQ row is
// exactly 0, using the cached products.
func (p *Precomp) IsFeasible() bool {
	for i, v := range p.leq {
		if v+p.problem.LeqConstants[i] > 0 {
			return false
		}
	}
	for i, v := range p.eq {
		if v+p.problem.EqConstants[i] != 0 {
			return false
		}
	}
	return true
}

// ConstraintRef identifies a single row of one of the Problem's two
// matrices, used as the key of ComputeLHS's result map.
type ConstraintRef struct {
	EQ  bool
	Row int
}

// ComputeLHS returns, for every constraint, its current residual: the
// LHS of the canonical `expr {<=|==} 0` form. Negative is slack,
// zero is tight, positive is a violation of that magnitude.
func (p *Precomp) ComputeLHS() map[ConstraintRef]float64 {
	result := make(map[ConstraintRef]float64, len(p.leq)+len(p.eq))
	for i, v := range p.leq {
		result[ConstraintRef{Row: i}] = v + p.problem.LeqConstants[i]
	}
	for i, v := range p.eq {
		result[ConstraintRef{EQ: true, Row: i}] = v + p.problem.EqConstants[i]
	}
	return result
}
