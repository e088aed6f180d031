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

package eval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/checker"
	"github.com/collomatique/cml/common"
	"github.com/collomatique/cml/evalvar"
	"github.com/collomatique/cml/parser"
	"github.com/collomatique/cml/value"
)

// fakeObjects is a minimal EvalObject backed by a fixed set of handles
// per type name, for exercising `@[TypeName]` without a colloscope.Env.
type fakeObjects struct {
	handles map[string][]evalvar.Handle
}

func (f fakeObjects) Field(typeName string, handle interface{}, field string) (value.Value, error) {
	return nil, fmt.Errorf("fakeObjects: unexpected field access %s.%s", typeName, field)
}

func (f fakeObjects) ObjectsOfType(typeName string) ([]evalvar.Handle, error) {
	handles, ok := f.handles[typeName]
	if !ok {
		return nil, fmt.Errorf("fakeObjects: unknown type %q", typeName)
	}
	return handles, nil
}

// compileAndEval parses and checks src, then evaluates fnName with args
// against the resulting module, failing the test on any parse/check
// error.
func compileAndEval(t *testing.T, src, fnName string, args []value.Value, opts ...checker.Option) value.Value {
	t.Helper()
	tree, perrs := parser.ParseModule(common.NewSource("<test>", src), "test")
	require.True(t, perrs.Empty(), perrs.String())
	checked, cerrs := checker.Check(tree, "test", opts...)
	require.True(t, cerrs.Empty(), cerrs.String())

	fn, ok := checked.Funcs[fnName]
	require.True(t, ok, "no such function %q", fnName)

	ev := NewEvaluator(checked, tree, nil)
	result, err := ev.Eval(fn.Decl, args)
	require.NoError(t, err)
	return result
}

func TestEvalLiteralInt(t *testing.T) {
	result := compileAndEval(t, `let f() -> Int = 42;`, "f", nil)
	require.Equal(t, value.Int(42), result)
}

func TestEvalCallToAnotherFunction(t *testing.T) {
	src := `
let double(x: Int) -> Int = x * 2;
let f() -> Int = double(21);
`
	result := compileAndEval(t, src, "f", nil)
	require.Equal(t, value.Int(42), result)
}

func TestEvalListComprehension(t *testing.T) {
	result := compileAndEval(t, `let f() -> [Int] = [x * 2 for x in [1..5]];`, "f", nil)
	list, ok := result.(value.List)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Int(2), value.Int(4), value.Int(6), value.Int(8)}, list.Elems)
}

func TestEvalBooleanComparisons(t *testing.T) {
	src := `let f(x: Int) -> Bool = x > 0 and x < 10;`
	require.Equal(t, value.Bool(true), compileAndEval(t, src, "f", []value.Value{value.Int(5)}))
	require.Equal(t, value.Bool(false), compileAndEval(t, src, "f", []value.Value{value.Int(15)}))
}

func TestEvalUserVarSumConstraintHasOneAtomWithEmptyArgs(t *testing.T) {
	schema := map[string][]evalvar.FieldType{
		"V": {{Name: "i", Kind: evalvar.IntField}},
	}
	src := `let g() -> Constraint = sum i in [0..3] { $V(i) } === 1;`
	result := compileAndEval(t, src, "g", nil, checker.WithVarSchema(schema))

	c, ok := result.(value.Constraint)
	require.True(t, ok)
	require.Len(t, c, 1)
	require.Equal(t, "1*$V(0) + 1*$V(1) + 1*$V(2) + -1 == 0", c[0].Constraint.String())
	require.NotNil(t, c[0].Origin)
	require.Equal(t, "g", c[0].Origin.FunctionName)
	require.Empty(t, c[0].Origin.ArgumentValues)
}

func TestEvalOriginDocstringSubstitutesBacktickExpr(t *testing.T) {
	src := "/// `x` must be smaller than 1.\n" +
		"let h(x: Int) -> Constraint = x <== 1;\n" +
		"let f() -> Constraint = h(1) and h(2);\n"
	result := compileAndEval(t, src, "f", nil)

	c, ok := result.(value.Constraint)
	require.True(t, ok)
	require.Len(t, c, 2)
	require.Equal(t, "h", c[0].Origin.FunctionName)
	require.Equal(t, "1 must be smaller than 1.", c[0].Origin.PrettyDocstring)
	require.Equal(t, "h", c[1].Origin.FunctionName)
	require.Equal(t, "2 must be smaller than 1.", c[1].Origin.PrettyDocstring)
}

func TestEvalInnermostOriginWins(t *testing.T) {
	src := `
let f(x: Int) -> Constraint = x <== 1;
let g(x: Int) -> Constraint = f(x + 1);
`
	result := compileAndEval(t, src, "g", []value.Value{value.Int(0)})

	c, ok := result.(value.Constraint)
	require.True(t, ok)
	require.Len(t, c, 1)
	require.Equal(t, "f", c[0].Origin.FunctionName)
}

func TestEvalMatchDispatchesFirstMatchingBranch(t *testing.T) {
	src := `
type Color = Red | Green | Blue;
let f(c: Color) -> Int = match c { r as Red { 1 }, other { 0 } };
`
	require.Equal(t, value.Int(1), compileAndEval(t, src, "f", []value.Value{
		value.Custom{Module: "test", Name: "Color", Variant: "Red", Inner: value.None{}},
	}))
	require.Equal(t, value.Int(0), compileAndEval(t, src, "f", []value.Value{
		value.Custom{Module: "test", Name: "Color", Variant: "Blue", Inner: value.None{}},
	}))
}

func TestEvalDivisionByZeroErrors(t *testing.T) {
	tree, perrs := parser.ParseModule(common.NewSource("<test>", `let f(x: Int) -> Int = x / 0;`), "test")
	require.True(t, perrs.Empty(), perrs.String())
	checked, cerrs := checker.Check(tree, "test")
	require.True(t, cerrs.Empty(), cerrs.String())

	ev := NewEvaluator(checked, tree, nil)
	_, err := ev.Eval(checked.Funcs["f"].Decl, []value.Value{value.Int(1)})
	require.Error(t, err)
}

func TestEvalObjectSetReturnsEveryHandle(t *testing.T) {
	objects := fakeObjects{handles: map[string][]evalvar.Handle{
		"Group": {{ID: "A", Value: "a"}, {ID: "B", Value: "b"}},
	}}
	ev := NewEvaluator(nil, &ast.Module{}, objects)

	result, err := ev.evalObjectSet(&ast.Expr{Kind: ast.ObjectSetKind, Name: "Group"})
	require.NoError(t, err)

	list, ok := result.(value.List)
	require.True(t, ok)
	require.Equal(t, []value.Value{
		value.Object{TypeName: "Group", Handle: "a"},
		value.Object{TypeName: "Group", Handle: "b"},
	}, list.Elems)
}

func TestEvalObjectSetUnknownTypeErrors(t *testing.T) {
	ev := NewEvaluator(nil, &ast.Module{}, fakeObjects{handles: map[string][]evalvar.Handle{}})
	_, err := ev.evalObjectSet(&ast.Expr{Kind: ast.ObjectSetKind, Name: "Student"})
	require.Error(t, err)
}
