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
	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/ilp"
	"github.com/collomatique/cml/types"
	"github.com/collomatique/cml/value"
)

func (ev *Evaluator) evalQuantifier(e *env, expr *ast.Expr) (value.Value, error) {
	envs, err := ev.expandBinders(e, expr.Binders)
	if err != nil {
		return nil, err
	}
	switch expr.QuantOp {
	case ast.Forall:
		for _, inner := range envs {
			ok, err := ev.evalWhere(inner, expr.Where)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			v, err := ev.evalExpr(inner, expr.Body)
			if err != nil {
				return nil, err
			}
			if !bool(v.(value.Bool)) {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil
	case ast.Sum:
		total := ilp.ConstLinExpr[ilp.IlpVar](0)
		for _, inner := range envs {
			ok, err := ev.evalWhere(inner, expr.Where)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			v, err := ev.evalExpr(inner, expr.Body)
			if err != nil {
				return nil, err
			}
			total = total.Add(asLinExpr(v))
		}
		return value.LinExpr{Expr: total}, nil
	}
	return nil, newEvalError(expr.Span, KindTypeConversion, "unhandled quantifier operator")
}

func (ev *Evaluator) evalComprehension(e *env, expr *ast.Expr) (value.Value, error) {
	envs, err := ev.expandBinders(e, expr.Binders)
	if err != nil {
		return nil, err
	}
	var elems []value.Value
	for _, inner := range envs {
		ok, err := ev.evalWhere(inner, expr.Where)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		v, err := ev.evalExpr(inner, expr.Body)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	elemType := ev.mod.NodeType(expr)
	if v, ok := elemType.AsSimple(); ok && v.Kind == types.List && v.Elem != nil {
		elemType = *v.Elem
	}
	return value.List{ElemType: elemType, Elems: elems}, nil
}

// expandBinders evaluates each `for name in collection` clause
// outer-to-inner, producing the flattened cross product of bindings as
// a list of environments, one per combination.
func (ev *Evaluator) expandBinders(e *env, binders []ast.ForBinder) ([]*env, error) {
	envs := []*env{e}
	for _, b := range binders {
		var next []*env
		for _, inner := range envs {
			collV, err := ev.evalExpr(inner, b.Collection)
			if err != nil {
				return nil, err
			}
			list := collV.(value.List)
			for _, item := range list.Elems {
				next = append(next, inner.bind(b.Name, item))
			}
		}
		envs = next
	}
	return envs, nil
}

func (ev *Evaluator) evalWhere(e *env, where *ast.Expr) (bool, error) {
	if where == nil {
		return true, nil
	}
	v, err := ev.evalExpr(e, where)
	if err != nil {
		return false, err
	}
	return bool(v.(value.Bool)), nil
}

func (ev *Evaluator) evalMatch(e *env, expr *ast.Expr) (value.Value, error) {
	scrut, err := ev.evalExpr(e, expr.Scrutinee)
	if err != nil {
		return nil, err
	}
	scrutT := value.TypeOf(scrut)
	for _, br := range expr.Branches {
		bound := scrut
		if !br.IsCatchAll() {
			asT := ev.mod.ResolveType(br.AsType)
			if !scrutT.IsSubtype(asT) {
				continue
			}
			if br.IntoType != nil {
				bound = convertValue(scrut, ev.mod.ResolveType(br.IntoType))
			}
		}
		matched, result, err := ev.evalMatchBranch(e, br, bound)
		if err != nil {
			return nil, err
		}
		if matched {
			return result, nil
		}
	}
	return nil, newEvalError(expr.Span, KindMatchExhaustion, "no branch matched scrutinee of type %s", scrutT)
}

// evalMatchBranch tries one branch against an already-narrowed bound
// value. A branch whose `where` guard fails is a miss, not a hard
// error: matching falls through to the next branch, exactly as if this
// branch's as-type hadn't covered the scrutinee.
func (ev *Evaluator) evalMatchBranch(e *env, br ast.MatchBranch, bound value.Value) (bool, value.Value, error) {
	inner := e.bind(br.BindName, bound)
	ok, err := ev.evalWhere(inner, br.Where)
	if err != nil {
		return false, nil, err
	}
	if !ok {
		return false, nil, nil
	}
	result, err := ev.evalExpr(inner, br.Body)
	if err != nil {
		return false, nil, err
	}
	return true, result, nil
}

// convertValue implements the runtime half of types.ConvertibleTo: the
// identity, Int->LinExpr and any->String legs the checker already
// validated statically. Other legs (list/tuple elementwise, Custom
// wrap/unwrap) pass the value through unchanged since its dynamic shape
// already satisfies the static conversion the checker proved.
func convertValue(v value.Value, target types.ExprType) value.Value {
	simple, ok := target.AsSimple()
	if !ok {
		return v
	}
	switch simple.Kind {
	case types.LinExpr:
		return value.PromoteToLinExpr(v)
	case types.String:
		return value.ConvertToString(v)
	default:
		return v
	}
}
