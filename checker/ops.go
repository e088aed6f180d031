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
	"github.com/collomatique/cml/operators"
	"github.com/collomatique/cml/types"
)

// linearizable reports whether a ground type promotes to LinExpr for
// arithmetic and constraint formation: Int promotes, LinExpr is already
// there, nothing else does.
func linearizable(k types.Kind) bool {
	return k == types.Int || k == types.LinExpr
}

func binaryOpRule(op string) func(a, b types.SimpleType) (types.SimpleType, bool) {
	if operators.IsConstraint(op) {
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if linearizable(a.Kind) && linearizable(b.Kind) {
				return types.ConstraintType(), true
			}
			return types.SimpleType{}, false
		}
	}
	if operators.IsComparison(op) && op != "==" && op != "!=" {
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if a.Kind == types.Int && b.Kind == types.Int {
				return types.BoolType(), true
			}
			return types.SimpleType{}, false
		}
	}
	switch op {
	case "+", "-", "*":
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if a.Kind == types.Int && b.Kind == types.Int {
				return types.IntType(), true
			}
			if linearizable(a.Kind) && linearizable(b.Kind) {
				return types.LinExprType(), true
			}
			return types.SimpleType{}, false
		}
	case "/", "%":
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if a.Kind == types.Int && b.Kind == types.Int {
				return types.IntType(), true
			}
			return types.SimpleType{}, false
		}
	case "==", "!=":
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if a.Equal(b) {
				return types.BoolType(), true
			}
			return types.SimpleType{}, false
		}
	case "and":
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if a.Kind == types.Bool && b.Kind == types.Bool {
				return types.BoolType(), true
			}
			if a.Kind == types.Constraint && b.Kind == types.Constraint {
				return types.ConstraintType(), true
			}
			return types.SimpleType{}, false
		}
	case "or":
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if a.Kind == types.Bool && b.Kind == types.Bool {
				return types.BoolType(), true
			}
			return types.SimpleType{}, false
		}
	case "in":
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if b.Kind == types.List && types.IsSubtype(a, *b.Elem) {
				return types.BoolType(), true
			}
			return types.SimpleType{}, false
		}
	case "union", "inter", "\\":
		return func(a, b types.SimpleType) (types.SimpleType, bool) {
			if a.Kind != types.List || b.Kind != types.List {
				return types.SimpleType{}, false
			}
			return types.ListType(a.Elem.UnifyWith(*b.Elem)), true
		}
	default:
		return func(a, b types.SimpleType) (types.SimpleType, bool) { return types.SimpleType{}, false }
	}
}
