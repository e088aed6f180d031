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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizationDropsSubtypes(t *testing.T) {
	sum := NewExprType(EmptyListType(), ListType(Single(IntType())))
	require.Len(t, sum.Variants(), 1)
	require.True(t, sum.Variants()[0].Equal(ListType(Single(IntType()))))
}

func TestCanonicalizationDedups(t *testing.T) {
	sum := NewExprType(IntType(), IntType(), BoolType())
	require.Len(t, sum.Variants(), 2)
}

func TestUnionThenSubtractLeavesNonOverlapping(t *testing.T) {
	a := NewExprType(IntType(), BoolType())
	b := NewExprType(BoolType(), StringType())
	union := a.UnifyWith(b)
	result, ok := union.Subtract(b)
	require.True(t, ok)
	require.True(t, result.Equal(Single(IntType())))
}

func TestSubtractToEmptyReturnsFalse(t *testing.T) {
	a := Single(BoolType())
	_, ok := a.Subtract(a)
	require.False(t, ok)
}

func TestConcreteRoundTrip(t *testing.T) {
	simple := ListType(Single(IntType()))
	concrete, ok := IntoConcrete(simple)
	require.True(t, ok)
	require.True(t, concrete.Simple().Equal(simple))

	sumType := Single(IntType()).UnifyWith(Single(BoolType()))
	asSimple, ok := sumType.AsSimple()
	require.False(t, ok)
	_ = asSimple
}

func TestIntConvertibleToLinExpr(t *testing.T) {
	target, ok := IntoConcrete(LinExprType())
	require.True(t, ok)
	require.True(t, ConvertibleTo(IntType(), target))
	require.False(t, ConvertibleTo(BoolType(), target))
}

func TestAnyConvertsToString(t *testing.T) {
	target, ok := IntoConcrete(StringType())
	require.True(t, ok)
	require.True(t, ConvertibleTo(IntType(), target))
	require.True(t, ConvertibleTo(ListType(Single(BoolType())), target))
}

func TestCustomVariantSubtypesRoot(t *testing.T) {
	variant := CustomVariantType("m", "Status", "Active")
	root := CustomType("m", "Status")
	require.True(t, IsSubtype(variant, root))
	require.False(t, IsSubtype(root, variant))
}

func TestCrossCheckProducesSmallestSum(t *testing.T) {
	ints := Single(IntType())
	linexprs := Single(LinExprType())
	rule := func(a, b SimpleType) (SimpleType, bool) {
		if a.Kind == Int && b.Kind == Int {
			return IntType(), true
		}
		if (a.Kind == Int && b.Kind == LinExpr) || (a.Kind == LinExpr && b.Kind == Int) {
			return LinExprType(), true
		}
		return SimpleType{}, false
	}
	result, ok := ints.CrossCheck(ints.UnifyWith(linexprs), rule)
	require.True(t, ok)
	require.True(t, result.Equal(NewExprType(IntType(), LinExprType())))
}
