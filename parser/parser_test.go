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

package parser

import (
	"testing"

	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/common"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, errs := ParseModule(common.NewSource("<test>", src), "test")
	require.True(t, errs.Empty(), errs.String())
	return mod
}

func TestParseSimpleFunc(t *testing.T) {
	mod := parse(t, `let f(x: Int) -> Int = x + 1;`)
	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	require.Equal(t, "f", fn.Name)
	require.False(t, fn.Pub)
	require.Equal(t, ast.BinaryKind, fn.Body.Kind)
	require.Equal(t, "+", fn.Body.Op)
}

func TestParsePubFuncWithDocstring(t *testing.T) {
	mod := parse(t, "/// doubles its argument\npub let f(x: Int) -> Int = x * 2;")
	require.Len(t, mod.Functions, 1)
	require.True(t, mod.Functions[0].Pub)
	require.Equal(t, "doubles its argument", mod.Functions[0].Docstring)
}

func TestParseOperatorPrecedence(t *testing.T) {
	mod := parse(t, `let f() -> Int = 1 + 2 * 3;`)
	body := mod.Functions[0].Body
	require.Equal(t, "+", body.Op)
	require.Equal(t, ast.LiteralKind, body.LHS.Kind)
	require.Equal(t, "*", body.RHS.Op)
}

func TestParseQuantifier(t *testing.T) {
	mod := parse(t, `let f(xs: List<Int>) -> Bool = forall x in xs where x > 0 { x > 0 };`)
	body := mod.Functions[0].Body
	require.Equal(t, ast.QuantifierKind, body.Kind)
	require.Equal(t, ast.Forall, body.QuantOp)
	require.Len(t, body.Binders, 1)
	require.Equal(t, "x", body.Binders[0].Name)
	require.NotNil(t, body.Where)
}

func TestParseObjectSet(t *testing.T) {
	mod := parse(t, `let f() -> Int = sum g in @[Group] { 1 };`)
	body := mod.Functions[0].Body
	require.Equal(t, ast.QuantifierKind, body.Kind)
	require.Len(t, body.Binders, 1)
	coll := body.Binders[0].Collection
	require.Equal(t, ast.ObjectSetKind, coll.Kind)
	require.Equal(t, "Group", coll.Name)
}

func TestParseComprehensionAndRange(t *testing.T) {
	mod := parse(t, `let f() -> List<Int> = [x * 2 for x in [0..10]];`)
	body := mod.Functions[0].Body
	require.Equal(t, ast.ComprehensionKind, body.Kind)
	require.Len(t, body.Binders, 1)
	require.Equal(t, ast.RangeKind, body.Binders[0].Collection.Kind)
}

func TestParseMatchCatchAll(t *testing.T) {
	mod := parse(t, `let f(x: Int | Bool) -> Int = match x { i as Int { i }, other { 0 } };`)
	body := mod.Functions[0].Body
	require.Equal(t, ast.MatchKind, body.Kind)
	require.Len(t, body.Branches, 2)
	require.False(t, body.Branches[0].IsCatchAll())
	require.True(t, body.Branches[1].IsCatchAll())
}

func TestParseUserVarCall(t *testing.T) {
	mod := parse(t, `let f() -> LinExpr = $X(1, "a");`)
	body := mod.Functions[0].Body
	require.Equal(t, ast.UserVarCallKind, body.Kind)
	require.Equal(t, "X", body.FuncName)
	require.Len(t, body.Args, 2)
}

func TestParseCustomTypeAndReify(t *testing.T) {
	mod := parse(t, `type Color = Red | Green | Blue; reify mkColor as $Color;`)
	require.Len(t, mod.Types, 1)
	require.Equal(t, "Color", mod.Types[0].Name)
	require.Len(t, mod.Types[0].Variants, 3)
	require.Len(t, mod.Reifies, 1)
	require.Equal(t, "Color", mod.Reifies[0].AsName)
}

func TestParseSyntaxErrorIsReportedNotPanicked(t *testing.T) {
	_, errs := ParseModule(common.NewSource("<test>", `let f( -> Int = 1;`), "test")
	require.False(t, errs.Empty())
}
