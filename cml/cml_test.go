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

package cml

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collomatique/cml/value"
)

func TestCompileModuleReportsErrors(t *testing.T) {
	_, errs := CompileModule("<test>", `let f(x: Int) -> Bool = x + 1;`)
	require.False(t, errs.Empty())
}

func TestCompileModuleAndEvaluate(t *testing.T) {
	mod, errs := CompileModule("<test>", `pub let f(x: Int, y: Int) -> Int = x + y;`)
	require.True(t, errs.Empty(), errs.String())

	result, err := Evaluate(mod, nil, "f", []value.Value{value.Int(2), value.Int(3)})
	require.NoError(t, err)
	require.Equal(t, value.Int(5), result)
}

func TestEvaluateUnknownFunctionErrors(t *testing.T) {
	mod, errs := CompileModule("<test>", `pub let f() -> Int = 1;`)
	require.True(t, errs.Empty(), errs.String())

	_, err := Evaluate(mod, nil, "g", nil)
	require.Error(t, err)
}

func TestBuildILPFoldsPublicConstraintFunctions(t *testing.T) {
	mod, errs := CompileModule("<test>", `pub let bound() -> Constraint = $X(1) <== 10;`)
	require.True(t, errs.Empty(), errs.String())

	problem, err := BuildILP(mod, nil)
	require.NoError(t, err)
	require.Len(t, problem.Vars, 1)
	require.Equal(t, "$X(1)", problem.Vars[0].String())
}

func TestBuildILPSkipsNonNullaryFunctions(t *testing.T) {
	mod, errs := CompileModule("<test>", `pub let bound(n: Int) -> Constraint = $X(n) <== 10;`)
	require.True(t, errs.Empty(), errs.String())

	problem, err := BuildILP(mod, nil)
	require.NoError(t, err)
	require.Empty(t, problem.Vars)
}
