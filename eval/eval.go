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
	"strings"

	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/checker"
	"github.com/collomatique/cml/ilp"
	"github.com/collomatique/cml/parser"
	"github.com/collomatique/cml/types"
	"github.com/collomatique/cml/value"
)

// Evaluator walks a checker.CheckedModule's function bodies against
// concrete argument values. It is single-threaded, eager, and
// deterministic: the same module and arguments always evaluate to the
// same result in the same number of steps.
type Evaluator struct {
	mod     *checker.CheckedModule
	ast     *ast.Module
	objects EvalObject
	cache   *Cache
	// reified maps a `reify f as $Name` alias to the function it wraps,
	// keyed by the as-name: a $Name(...) call dispatches here before
	// falling back to a plain user variable.
	reified map[string]*ast.FuncDecl
	// callStack records the enclosing function names, innermost last,
	// so reified variable keys can be scoped to their calling context.
	callStack []string
}

// NewEvaluator builds an Evaluator over a checked module, its AST (for
// reify aliases and docstrings), and the embedder's object capability.
func NewEvaluator(mod *checker.CheckedModule, tree *ast.Module, objects EvalObject) *Evaluator {
	ev := &Evaluator{mod: mod, ast: tree, objects: objects, reified: map[string]*ast.FuncDecl{}}
	for _, r := range tree.Reifies {
		if fn, ok := mod.Funcs[r.FuncName]; ok {
			ev.reified[r.AsName] = fn.Decl
		}
	}
	return ev
}

// Eval runs fn with args bound to its parameters, using a fresh Cache
// for this call tree.
func (ev *Evaluator) Eval(fn *ast.FuncDecl, args []value.Value) (value.Value, error) {
	return ev.EvalWithCache(fn, args, NewCache())
}

// EvalWithCache is Eval with an explicit, caller-owned Cache, for
// callers that want to reuse field-access/pretty-print memoization
// across several top-level calls that share the same object graph.
func (ev *Evaluator) EvalWithCache(fn *ast.FuncDecl, args []value.Value, cache *Cache) (value.Value, error) {
	ev.cache = cache
	var e *env
	for i, p := range fn.Params {
		e = e.bind(p.Name, args[i])
	}
	ev.callStack = append(ev.callStack, fn.Name)
	defer func() { ev.callStack = ev.callStack[:len(ev.callStack)-1] }()
	result, err := ev.evalExpr(e, fn.Body)
	if err != nil {
		return nil, err
	}
	docstring, err := ev.renderDocstring(e, fn, args)
	if err != nil {
		return nil, err
	}
	origin := value.Origin{
		FunctionName:    fn.Name,
		ArgumentValues:  args,
		PrettyDocstring: docstring,
	}
	return value.StampOrigin(result, origin), nil
}

// renderDocstring re-evaluates every `` `expr` `` placeholder in fn's
// docstring against e (the function's parameter bindings) and splices
// the stringified result back in, per spec §3.2's origin docstring
// contract.
func (ev *Evaluator) renderDocstring(e *env, fn *ast.FuncDecl, args []value.Value) (string, error) {
	if fn.Docstring == "" {
		return "", nil
	}
	key := docKey{funcName: fn.Name, argsRepr: argsRepr(args)}
	if s, ok := ev.cache.prettyPrint[key]; ok {
		return s, nil
	}
	rendered, err := ev.substitutePlaceholders(e, fn.Docstring)
	if err != nil {
		return "", err
	}
	ev.cache.prettyPrint[key] = rendered
	return rendered, nil
}

// substitutePlaceholders scans doc for `` `expr` `` segments, parses and
// evaluates each as a standalone CML expression against e, and replaces
// the segment (backticks included) with the evaluated value's string
// form.
func (ev *Evaluator) substitutePlaceholders(e *env, doc string) (string, error) {
	var b strings.Builder
	rest := doc
	for {
		open := strings.IndexByte(rest, '`')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		after := rest[open+1:]
		shut := strings.IndexByte(after, '`')
		if shut < 0 {
			b.WriteByte('`')
			b.WriteString(after)
			break
		}
		placeholder := after[:shut]
		expr, perr := parser.ParseStandaloneExpr(placeholder)
		if perr != nil {
			return "", fmt.Errorf("docstring placeholder `%s`: %w", placeholder, perr)
		}
		v, verr := ev.evalExpr(e, expr)
		if verr != nil {
			return "", verr
		}
		b.WriteString(value.ConvertToString(v).String())
		rest = after[shut+1:]
	}
	return b.String(), nil
}

func argsRepr(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.ConvertToString(a).String()
	}
	return strings.Join(parts, ",")
}

func (ev *Evaluator) currentCallerID() string {
	if len(ev.callStack) == 0 {
		return ""
	}
	return ev.callStack[len(ev.callStack)-1]
}

func (ev *Evaluator) evalExpr(e *env, expr *ast.Expr) (value.Value, error) {
	switch expr.Kind {
	case ast.LiteralKind:
		return ev.evalLiteral(expr), nil
	case ast.IdentKind:
		v, ok := e.lookup(expr.Name)
		if !ok {
			return nil, newEvalError(expr.Span, KindFieldNotFound, "unresolved name %q at eval time", expr.Name)
		}
		return v, nil
	case ast.UnaryKind:
		return ev.evalUnary(e, expr)
	case ast.BinaryKind:
		return ev.evalBinary(e, expr)
	case ast.PathKind:
		return ev.evalPath(e, expr)
	case ast.CallKind:
		return ev.evalCall(e, expr)
	case ast.UserVarCallKind:
		return ev.evalUserVarCall(e, expr)
	case ast.ListKind:
		return ev.evalList(e, expr)
	case ast.TupleKind:
		elems := make([]value.Value, len(expr.Elems))
		for i, el := range expr.Elems {
			v, err := ev.evalExpr(e, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.Tuple{Elems: elems}, nil
	case ast.StructKind:
		fields := make(map[string]value.Value, len(expr.StructFields))
		for _, f := range expr.StructFields {
			v, err := ev.evalExpr(e, f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
		}
		return value.Struct{Fields: fields}, nil
	case ast.RangeKind:
		return ev.evalRange(e, expr)
	case ast.ComprehensionKind:
		return ev.evalComprehension(e, expr)
	case ast.QuantifierKind:
		return ev.evalQuantifier(e, expr)
	case ast.IfKind:
		return ev.evalIf(e, expr)
	case ast.LetKind:
		val, err := ev.evalExpr(e, expr.LetValue)
		if err != nil {
			return nil, err
		}
		return ev.evalExpr(e.bind(expr.Name, val), expr.Body)
	case ast.MatchKind:
		return ev.evalMatch(e, expr)
	case ast.ObjectSetKind:
		return ev.evalObjectSet(expr)
	}
	return nil, newEvalError(expr.Span, KindTypeConversion, "unhandled expression kind %v", expr.Kind)
}

// evalObjectSet resolves `@[TypeName]` to the list of every live handle
// of that type, as reported by the embedder's EvalObject.ObjectsOfType.
func (ev *Evaluator) evalObjectSet(expr *ast.Expr) (value.Value, error) {
	if ev.objects == nil {
		return nil, newEvalError(expr.Span, KindFieldNotFound, "@[%s]: no object environment configured", expr.Name)
	}
	handles, err := ev.objects.ObjectsOfType(expr.Name)
	if err != nil {
		return nil, newEvalError(expr.Span, KindFieldNotFound, "@[%s]: %v", expr.Name, err)
	}
	elems := make([]value.Value, len(handles))
	for i, h := range handles {
		elems[i] = value.Object{TypeName: expr.Name, Handle: h.Value}
	}
	return value.List{ElemType: types.Single(types.ObjectType(expr.Name)), Elems: elems}, nil
}

func (ev *Evaluator) evalLiteral(expr *ast.Expr) value.Value {
	switch expr.Lit {
	case ast.IntLit:
		return value.Int(expr.Int)
	case ast.BoolLit:
		return value.Bool(expr.Bool)
	case ast.StringLit:
		return value.String(expr.Str)
	default:
		return value.None{}
	}
}

func (ev *Evaluator) evalIf(e *env, expr *ast.Expr) (value.Value, error) {
	cond, err := ev.evalExpr(e, expr.Cond)
	if err != nil {
		return nil, err
	}
	if bool(cond.(value.Bool)) {
		return ev.evalExpr(e, expr.Then)
	}
	return ev.evalExpr(e, expr.Else)
}

func (ev *Evaluator) evalRange(e *env, expr *ast.Expr) (value.Value, error) {
	lo, err := ev.evalExpr(e, expr.Lo)
	if err != nil {
		return nil, err
	}
	hi, err := ev.evalExpr(e, expr.Hi)
	if err != nil {
		return nil, err
	}
	l, h := int32(lo.(value.Int)), int32(hi.(value.Int))
	var elems []value.Value
	for i := l; i < h; i++ {
		elems = append(elems, value.Int(i))
	}
	return value.List{ElemType: types.Single(types.IntType()), Elems: elems}, nil
}

func (ev *Evaluator) evalList(e *env, expr *ast.Expr) (value.Value, error) {
	elems := make([]value.Value, len(expr.Elems))
	for i, el := range expr.Elems {
		v, err := ev.evalExpr(e, el)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	nt := ev.mod.NodeType(expr)
	elemType := nt
	if v, ok := nt.AsSimple(); ok && v.Elem != nil {
		elemType = *v.Elem
	}
	return value.List{ElemType: elemType, Elems: elems}, nil
}

func (ev *Evaluator) evalPath(e *env, expr *ast.Expr) (value.Value, error) {
	v, err := ev.evalExpr(e, expr.Base)
	if err != nil {
		return nil, err
	}
	for _, field := range expr.Fields {
		switch obj := v.(type) {
		case value.Struct:
			fv, ok := obj.Fields[field]
			if !ok {
				return nil, newEvalError(expr.Span, KindFieldNotFound, "struct has no field %q", field)
			}
			v = fv
		case value.Object:
			key := fieldKey{typeName: obj.TypeName, handle: obj.Handle, field: field}
			if cached, ok := ev.cache.fieldAccess[key]; ok {
				v = cached
				continue
			}
			fv, ferr := ev.objects.Field(obj.TypeName, obj.Handle, field)
			if ferr != nil {
				return nil, newEvalError(expr.Span, KindFieldNotFound, "%s.%s: %v", obj.TypeName, field, ferr)
			}
			ev.cache.fieldAccess[key] = fv
			v = fv
		default:
			return nil, newEvalError(expr.Span, KindFieldNotFound, "value has no field %q", field)
		}
	}
	return v, nil
}

func (ev *Evaluator) evalCall(e *env, expr *ast.Expr) (value.Value, error) {
	sig, ok := ev.mod.Funcs[expr.FuncName]
	if !ok {
		return nil, newEvalError(expr.Span, KindFieldNotFound, "call to unresolved function %q", expr.FuncName)
	}
	args := make([]value.Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := ev.evalExpr(e, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ev.EvalWithCache(sig.Decl, args, ev.cache)
}

func (ev *Evaluator) evalUserVarCall(e *env, expr *ast.Expr) (value.Value, error) {
	args := make([]value.Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := ev.evalExpr(e, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	repr := argsRepr(args)
	if _, isReified := ev.reified[expr.FuncName]; isReified {
		v := ilp.NewScriptVar(ev.moduleName(), expr.FuncName, repr, ev.currentCallerID())
		return value.LinExpr{Expr: ilp.VarLinExpr[ilp.IlpVar](v)}, nil
	}
	v := ilp.NewBaseVar(expr.FuncName, repr)
	return value.LinExpr{Expr: ilp.VarLinExpr[ilp.IlpVar](v)}, nil
}

func (ev *Evaluator) moduleName() string {
	return ev.ast.Name
}
