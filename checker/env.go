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

// Package checker elaborates a parsed ast.Module: it resolves surface
// TypeExpr annotations into types.ExprType, infers a type for every
// expression node, and reports every semantic diagnostic it finds
// through a shared common.Errors accumulator rather than stopping at
// the first one.
package checker

import "github.com/collomatique/cml/types"

// env is an immutable, linked binding scope: looking up a name walks
// outward from the innermost `let`/binder/parameter scope to the
// function's parameter scope.
type env struct {
	name   string
	typ    types.ExprType
	parent *env
}

func (e *env) lookup(name string) (types.ExprType, bool) {
	for s := e; s != nil; s = s.parent {
		if s.name == name {
			return s.typ, true
		}
	}
	return types.ExprType{}, false
}

func (e *env) bind(name string, t types.ExprType) *env {
	return &env{name: name, typ: t, parent: e}
}
