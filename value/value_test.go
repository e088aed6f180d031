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

package value

import (
	"testing"

	"github.com/collomatique/cml/ilp"
	"github.com/stretchr/testify/require"
)

func TestPromoteIntToConstantLinExpr(t *testing.T) {
	promoted := PromoteToLinExpr(Int(42))
	le, ok := promoted.(LinExpr)
	require.True(t, ok)
	require.Equal(t, 42.0, le.Expr.Const())
}

func TestInnermostOriginWins(t *testing.T) {
	inner := Constraint{{Constraint: ilp.NewLE(ilp.ConstLinExpr[ilp.IlpVar](1), ilp.ConstLinExpr[ilp.IlpVar](2))}}
	stampedByF := StampOrigin(inner, Origin{FunctionName: "f"}).(Constraint)
	require.Equal(t, "f", stampedByF[0].Origin.FunctionName)

	// g wraps f's already-stamped result: g must not overwrite it.
	stampedByG := StampOrigin(stampedByF, Origin{FunctionName: "g"}).(Constraint)
	require.Equal(t, "f", stampedByG[0].Origin.FunctionName)
}

func TestConcatConstraintsOfZeroIsEmpty(t *testing.T) {
	result := ConcatConstraints(nil, nil)
	require.Empty(t, result)
}

func TestConvertToStringIsStructural(t *testing.T) {
	v := List{Elems: []Value{Int(1), Bool(true)}}
	require.Equal(t, String("[1, true]"), ConvertToString(v))
}
