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
	"testing"

	"github.com/stretchr/testify/require"
)

func v(name string) IlpVar { return NewBaseVar(name, "") }

func TestLinExprArithmetic(t *testing.T) {
	a := VarLinExpr[IlpVar](v("a"))
	b := VarLinExpr[IlpVar](v("b"))

	sum := a.Add(b).Add(ConstLinExpr[IlpVar](3))
	require.Equal(t, 1.0, sum.Coeff(v("a")))
	require.Equal(t, 1.0, sum.Coeff(v("b")))
	require.Equal(t, 3.0, sum.Const())

	scaled := a.Scale(2)
	require.Equal(t, 2.0, scaled.Coeff(v("a")))

	require.True(t, a.Add(b).Equal(b.Add(a)))
	require.False(t, a.Equal(b))
}

func TestConstraintCanonicalization(t *testing.T) {
	lhs := VarLinExpr[IlpVar](v("x")).Add(ConstLinExpr[IlpVar](5))
	rhs := ConstLinExpr[IlpVar](1)
	c := NewLE(lhs, rhs)
	require.Equal(t, 4.0, c.Expr.Const())
	require.Equal(t, 1.0, c.Expr.Coeff(v("x")))
}

func TestBuilderRejectsEmptyDomainAndDuplicates(t *testing.T) {
	b := NewBuilder()
	require.Error(t, b.Declare(v("x"), Variable{Domain: Domain{Kind: Integer, Min: 5, Max: 1}}))

	require.NoError(t, b.Declare(v("x"), Variable{Domain: IntegerDomain(0, 3)}))
	c := NewLE(VarLinExpr[IlpVar](v("x")), ConstLinExpr[IlpVar](2))
	require.NoError(t, b.AddConstraint(c))
	require.Error(t, b.AddConstraint(c))
}

func TestProblemColumnOrderIsDeterministic(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Declare(v("b"), Variable{Domain: BinaryDomain()}))
	require.NoError(t, b.Declare(v("a"), Variable{Domain: BinaryDomain()}))
	p, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []IlpVar{v("a"), v("b")}, p.Vars)
}

func TestPrecompIncrementalUpdateMatchesFullRecompute(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Declare(v("x"), Variable{Domain: IntegerDomain(0, 5)}))
	require.NoError(t, b.Declare(t2Name(), Variable{Domain: IntegerDomain(0, 5)}))
	require.NoError(t, b.AddConstraint(NewLE(
		VarLinExpr[IlpVar](v("x")).Add(VarLinExpr[IlpVar](t2Name())),
		ConstLinExpr[IlpVar](4))))
	p, err := b.Build()
	require.NoError(t, err)

	cfg := NewConfiguration()
	precomp := p.NewPrecomp(cfg)
	require.True(t, precomp.IsFeasible())

	xCol := p.ColumnOf(v("x"))
	precomp.SetAndUpdate(cfg, xCol, 5)
	require.False(t, precomp.IsFeasible())

	// Recompute from scratch and confirm the incremental cache agrees.
	fresh := p.NewPrecomp(cfg)
	require.Equal(t, fresh.ComputeLHS(), precomp.ComputeLHS())
}

func t2Name() IlpVar { return v("y") }
