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

package checker

import (
	"testing"

	"github.com/collomatique/cml/common"
	"github.com/collomatique/cml/evalvar"
	"github.com/collomatique/cml/parser"
	"github.com/collomatique/cml/types"
	"github.com/stretchr/testify/require"
)

func checkSrc(t *testing.T, src string) (*CheckedModule, *common.Errors) {
	t.Helper()
	mod, perrs := parser.ParseModule(common.NewSource("<test>", src), "test")
	require.True(t, perrs.Empty(), perrs.String())
	return Check(mod, "test")
}

func TestCheckSimpleArithmeticFunc(t *testing.T) {
	_, errs := checkSrc(t, `let f(x: Int, y: Int) -> Int = x + y;`)
	require.True(t, errs.Empty(), errs.String())
}

func TestCheckReturnTypeMismatchIsReported(t *testing.T) {
	_, errs := checkSrc(t, `let f(x: Int) -> Bool = x + 1;`)
	require.False(t, errs.Empty())
}

func TestCheckUnresolvedNameIsReported(t *testing.T) {
	_, errs := checkSrc(t, `let f() -> Int = y;`)
	require.False(t, errs.Empty())
}

func TestCheckLinExprPromotion(t *testing.T) {
	_, errs := checkSrc(t, `let f(x: Int) -> LinExpr = x + $C(1);`)
	require.True(t, errs.Empty(), errs.String())
}

func TestCheckConstraintOperator(t *testing.T) {
	_, errs := checkSrc(t, `let f(x: Int) -> Constraint = x <== 10;`)
	require.True(t, errs.Empty(), errs.String())
}

func TestCheckMatchExhaustiveRequiresCatchAll(t *testing.T) {
	src := `
type Color = Red | Green | Blue;
let f(c: Color) -> Int = match c { r as Red { 1 }, g as Green { 2 } };
`
	_, errs := checkSrc(t, src)
	require.False(t, errs.Empty())
}

func TestCheckMatchWithCatchAllIsExhaustive(t *testing.T) {
	src := `
type Color = Red | Green | Blue;
let f(c: Color) -> Int = match c { r as Red { 1 }, other { 0 } };
`
	_, errs := checkSrc(t, src)
	require.True(t, errs.Empty(), errs.String())
}

func TestCheckForallAndSum(t *testing.T) {
	src := `let f(xs: List<Int>) -> Bool = forall x in xs where x > 0 { x > 0 } and sum x in xs { x } === 0;`
	_, errs := checkSrc(t, src)
	require.False(t, errs.Empty())
}

func TestCheckVarCallArityMismatch(t *testing.T) {
	mod, perrs := parser.ParseModule(common.NewSource("<test>", `let f() -> LinExpr = $X(1, 2);`), "test")
	require.True(t, perrs.Empty(), perrs.String())

	schema := map[string][]evalvar.FieldType{
		"X": {{Name: "day", Kind: evalvar.IntField}},
	}
	_, errs := Check(mod, "test", WithVarSchema(schema))
	require.False(t, errs.Empty())
}

func TestCheckVarCallFieldTypeMismatch(t *testing.T) {
	mod, perrs := parser.ParseModule(common.NewSource("<test>", `let f() -> LinExpr = $X(true);`), "test")
	require.True(t, perrs.Empty(), perrs.String())

	schema := map[string][]evalvar.FieldType{
		"X": {{Name: "day", Kind: evalvar.IntField}},
	}
	_, errs := Check(mod, "test", WithVarSchema(schema))
	require.False(t, errs.Empty())
}

func TestCheckVarCallMatchesSchema(t *testing.T) {
	mod, perrs := parser.ParseModule(common.NewSource("<test>", `let f() -> LinExpr = $X(1);`), "test")
	require.True(t, perrs.Empty(), perrs.String())

	schema := map[string][]evalvar.FieldType{
		"X": {{Name: "day", Kind: evalvar.IntField}},
	}
	_, errs := Check(mod, "test", WithVarSchema(schema))
	require.True(t, errs.Empty(), errs.String())
}

func TestCheckUndeclaredVarCallWithSchemaIsReported(t *testing.T) {
	mod, perrs := parser.ParseModule(common.NewSource("<test>", `let f() -> LinExpr = $Y(1);`), "test")
	require.True(t, perrs.Empty(), perrs.String())

	_, errs := Check(mod, "test", WithVarSchema(map[string][]evalvar.FieldType{}))
	require.False(t, errs.Empty())
}

func TestCheckObjectSetUnknownTypeIsReported(t *testing.T) {
	mod, perrs := parser.ParseModule(common.NewSource("<test>", `let f() -> LinExpr = sum g in @[Group] { 1 };`), "test")
	require.True(t, perrs.Empty(), perrs.String())

	_, errs := Check(mod, "test", WithObjectSchemas(map[string]map[string]types.ExprType{
		"Student": {},
	}))
	require.False(t, errs.Empty())
}

func TestCheckObjectSetMatchesSchema(t *testing.T) {
	mod, perrs := parser.ParseModule(common.NewSource("<test>", `let f() -> LinExpr = sum g in @[Group] { 1 };`), "test")
	require.True(t, perrs.Empty(), perrs.String())

	_, errs := Check(mod, "test", WithObjectSchemas(map[string]map[string]types.ExprType{
		"Group": {},
	}))
	require.True(t, errs.Empty(), errs.String())
}

func TestCheckCallArityMismatch(t *testing.T) {
	src := `
let g(x: Int) -> Int = x;
let f() -> Int = g(1, 2);
`
	_, errs := checkSrc(t, src)
	require.False(t, errs.Empty())
}
