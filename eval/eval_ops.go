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
	"github.com/collomatique/cml/common"
	"github.com/collomatique/cml/ilp"
	"github.com/collomatique/cml/operators"
	"github.com/collomatique/cml/value"
)

func (ev *Evaluator) evalUnary(e *env, expr *ast.Expr) (value.Value, error) {
	v, err := ev.evalExpr(e, expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case "not":
		return value.Bool(!bool(v.(value.Bool))), nil
	case "-":
		switch x := v.(type) {
		case value.Int:
			return value.Int(-x), nil
		case value.LinExpr:
			return value.LinExpr{Expr: x.Expr.Negate()}, nil
		}
	case "card":
		return value.Int(int32(len(v.(value.List).Elems))), nil
	}
	return nil, newEvalError(expr.Span, KindTypeConversion, "unary %q not defined for %T", expr.Op, v)
}

func (ev *Evaluator) evalBinary(e *env, expr *ast.Expr) (value.Value, error) {
	lv, err := ev.evalExpr(e, expr.LHS)
	if err != nil {
		return nil, err
	}
	rv, err := ev.evalExpr(e, expr.RHS)
	if err != nil {
		return nil, err
	}
	if operators.IsConstraint(expr.Op) {
		return evalConstraintOp(expr.Op, lv, rv), nil
	}
	switch expr.Op {
	case "and":
		if lb, ok := lv.(value.Bool); ok {
			return value.Bool(bool(lb) && bool(rv.(value.Bool))), nil
		}
		return value.ConcatConstraints(lv.(value.Constraint), rv.(value.Constraint)), nil
	case "or":
		return value.Bool(bool(lv.(value.Bool)) || bool(rv.(value.Bool))), nil
	case "+", "-", "*":
		return evalArith(expr.Span, expr.Op, lv, rv)
	case "/":
		r := int32(rv.(value.Int))
		if r == 0 {
			return nil, newEvalError(expr.Span, KindDivisionByZero, "division by zero")
		}
		return value.Int(int32(lv.(value.Int)) / r), nil
	case "%":
		r := int32(rv.(value.Int))
		if r == 0 {
			return nil, newEvalError(expr.Span, KindDivisionByZero, "division by zero")
		}
		return value.Int(int32(lv.(value.Int)) % r), nil
	case "==":
		return value.Bool(valueEqual(lv, rv)), nil
	case "!=":
		return value.Bool(!valueEqual(lv, rv)), nil
	case "<", "<=", ">", ">=":
		return evalIntCompare(expr.Op, int32(lv.(value.Int)), int32(rv.(value.Int))), nil
	case "in":
		return value.Bool(listContains(rv.(value.List), lv)), nil
	case "union":
		return listUnion(lv.(value.List), rv.(value.List)), nil
	case "inter":
		return listInter(lv.(value.List), rv.(value.List)), nil
	case "\\":
		return listDifference(lv.(value.List), rv.(value.List)), nil
	}
	return nil, newEvalError(expr.Span, KindTypeConversion, "binary operator %q not implemented", expr.Op)
}

func asLinExpr(v value.Value) ilp.LinExpr[ilp.IlpVar] {
	if i, ok := v.(value.Int); ok {
		return ilp.ConstLinExpr[ilp.IlpVar](float64(i))
	}
	return v.(value.LinExpr).Expr
}

func evalArith(span common.Span, op string, lv, rv value.Value) (value.Value, error) {
	li, lok := lv.(value.Int)
	ri, rok := rv.(value.Int)
	if lok && rok {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		}
	}
	le, re := asLinExpr(lv), asLinExpr(rv)
	switch op {
	case "+":
		return value.LinExpr{Expr: le.Add(re)}, nil
	case "-":
		return value.LinExpr{Expr: le.Sub(re)}, nil
	case "*":
		// Linear programs admit only constant*variable multiplication;
		// the checker only lets this reach eval when one side is a
		// constant Int promoted to LinExpr.
		if lc, ok := lv.(value.Int); ok {
			return value.LinExpr{Expr: re.Scale(float64(lc))}, nil
		}
		rc := rv.(value.Int)
		return value.LinExpr{Expr: le.Scale(float64(rc))}, nil
	}
	return nil, newEvalError(span, KindTypeConversion, "unreachable arithmetic operator %q", op)
}

func evalIntCompare(op string, l, r int32) value.Bool {
	switch op {
	case "<":
		return value.Bool(l < r)
	case "<=":
		return value.Bool(l <= r)
	case ">":
		return value.Bool(l > r)
	case ">=":
		return value.Bool(l >= r)
	}
	return false
}

func evalConstraintOp(op string, lv, rv value.Value) value.Value {
	le, re := asLinExpr(lv), asLinExpr(rv)
	var c ilp.Constraint[ilp.IlpVar]
	switch op {
	case "===":
		c = ilp.NewEQ(le, re)
	case "<==":
		c = ilp.NewLE(le, re)
	case ">==":
		c = ilp.NewLE(re, le)
	}
	return value.Constraint{{Constraint: c}}
}

func valueEqual(a, b value.Value) bool {
	switch x := a.(type) {
	case value.Int:
		y, ok := b.(value.Int)
		return ok && x == y
	case value.Bool:
		y, ok := b.(value.Bool)
		return ok && x == y
	case value.String:
		y, ok := b.(value.String)
		return ok && x == y
	case value.Tuple:
		y, ok := b.(value.Tuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !valueEqual(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return a.String() == b.String()
	}
}

func listContains(l value.List, v value.Value) bool {
	for _, e := range l.Elems {
		if valueEqual(e, v) {
			return true
		}
	}
	return false
}

func listUnion(a, b value.List) value.List {
	result := append([]value.Value{}, a.Elems...)
	for _, e := range b.Elems {
		if !listContains(a, e) {
			result = append(result, e)
		}
	}
	return value.List{ElemType: a.ElemType.UnifyWith(b.ElemType), Elems: result}
}

func listInter(a, b value.List) value.List {
	var result []value.Value
	for _, e := range a.Elems {
		if listContains(b, e) {
			result = append(result, e)
		}
	}
	return value.List{ElemType: a.ElemType.UnifyWith(b.ElemType), Elems: result}
}

func listDifference(a, b value.List) value.List {
	var result []value.Value
	for _, e := range a.Elems {
		if !listContains(b, e) {
			result = append(result, e)
		}
	}
	return value.List{ElemType: a.ElemType, Elems: result}
}
