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

// Problem is a validated ILP instance: an ordered set of decision
// variables, and the two constraint matrices (LEQ, EQ; sparse or dense
// depending on the Builder's setting) with their constant
// vectors that express every constraint in the canonical A·x + c {≤|=} 0
// form.
type Problem struct {
	// Vars is the total, deterministic order columns are numbered by —
	// the Problem is byte-stable for identical inputs.
	Vars []IlpVar
	// Domains gives the declared domain for each entry of Vars.
	Domains []Variable

	LeqMat       MatRepr
	LeqConstants []float64

	EqMat       MatRepr
	EqConstants []float64

	index map[IlpVar]int
}

// ColumnOf returns the column assigned to v, or -1 if v is not part of
// this Problem.
func (p *Problem) ColumnOf(v IlpVar) int {
	if p.index == nil {
		p.index = make(map[IlpVar]int, len(p.Vars))
		for i, v := range p.Vars {
			p.index[v] = i
		}
	}
	if col, ok := p.index[v]; ok {
		return col
	}
	return -1
}

// NewPrecomp builds the cached A·x products for both matrices at the
// given starting configuration.
func (p *Problem) NewPrecomp(cfg *Configuration) *Precomp {
	x := cfg.Vector(len(p.Vars))
	return &Precomp{
		problem: p,
		leq:     p.LeqMat.Mul(x),
		eq:      p.EqMat.Mul(x),
	}
}
