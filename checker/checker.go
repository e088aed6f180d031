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
	"github.com/stoewer/go-strcase"

	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/common"
	"github.com/collomatique/cml/evalvar"
	"github.com/collomatique/cml/types"
)

// FuncSig is a module-level function's resolved signature.
type FuncSig struct {
	Decl       *ast.FuncDecl
	ParamTypes []types.ExprType
	ReturnType types.ExprType
}

// CheckedModule is the output of Check: every node's inferred type,
// alongside the resolved function and custom-type tables the evaluator
// and the colloscope compiler both need.
type CheckedModule struct {
	Funcs       map[string]*FuncSig
	CustomTypes map[string]*CustomTypeInfo
	NodeTypes   map[int64]types.ExprType
}

// NodeType returns the type inferred for expr during Check, or the
// empty ExprType if expr was never visited (e.g. belongs to another
// module's tree).
func (m *CheckedModule) NodeType(expr *ast.Expr) types.ExprType {
	return m.NodeTypes[expr.ID]
}

// ResolveType re-resolves a surface TypeExpr using this module's custom
// type table. The evaluator uses this to test a match branch's `as`
// clause against a scrutinee's dynamic type, without needing to carry
// a full Checker around.
func (m *CheckedModule) ResolveType(te *ast.TypeExpr) types.ExprType {
	c := &Checker{errs: common.NewErrors(), customTypes: m.CustomTypes}
	return c.resolveTypeExpr(te)
}

// Checker carries the elaboration state for a single module.
type Checker struct {
	mod           *ast.Module
	errs          *common.Errors
	customTypes   map[string]*CustomTypeInfo
	funcs         map[string]*FuncSig
	nodeTypes     map[int64]types.ExprType
	moduleName    string
	objectSchemas map[string]map[string]types.ExprType
	varSchema     map[string][]evalvar.FieldType
}

// Option configures a Check call, the way cel.Env options configure
// cel-go's checker. There are no config files: every knob is
// programmatic, consistent with the core being a library rather than
// a CLI tool (spec §6).
type Option func(*Checker)

// WithObjectSchemas registers the field schema of every Object(name)
// type the module's expressions may path into, per the EvalObject
// contract's type_schemas() (spec §6.1). Embedders such as the
// colloscope compiler pass this so `slot.week`-style paths type-check.
func WithObjectSchemas(schemas map[string]map[string]types.ExprType) Option {
	return func(c *Checker) { c.objectSchemas = schemas }
}

// WithVarSchema registers the per-variant field schema an embedder's
// evalvar.Schema exposes via FieldSchema, so `$Name(args)` call sites
// are checked for arity and (for Int/Bool fields) a plausible argument
// type the way inferCall checks an ordinary function call.
func WithVarSchema(schema map[string][]evalvar.FieldType) Option {
	return func(c *Checker) { c.varSchema = schema }
}

// Check elaborates mod: resolves its custom types and function
// signatures, then infers (and validates) a type for every function
// body. All diagnostics are appended to errs; Check never returns
// early on the first error so a whole module is reported in one pass.
func Check(mod *ast.Module, moduleName string, opts ...Option) (*CheckedModule, *common.Errors) {
	errs := common.NewErrors()
	c := &Checker{
		mod: mod, errs: errs, moduleName: moduleName,
		customTypes: map[string]*CustomTypeInfo{},
		funcs:       map[string]*FuncSig{},
		nodeTypes:   map[int64]types.ExprType{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.declareCustomTypes()
	c.declareFuncSigs()
	for _, fn := range mod.Functions {
		c.checkFunc(fn)
	}
	return &CheckedModule{Funcs: c.funcs, CustomTypes: c.customTypes, NodeTypes: c.nodeTypes}, errs
}

func (c *Checker) declareCustomTypes() {
	for _, td := range c.mod.Types {
		if _, dup := c.customTypes[td.Name]; dup {
			c.errs.ReportError(td.Span, "duplicate type declaration %q", td.Name)
			continue
		}
		info := &CustomTypeInfo{Module: c.moduleName, Name: td.Name, Variants: map[string]types.ExprType{}}
		c.customTypes[td.Name] = info
	}
	// Resolve payload types in a second pass so variants can reference
	// sibling custom types declared later in the same module.
	for _, td := range c.mod.Types {
		info := c.customTypes[td.Name]
		if info == nil {
			continue
		}
		for _, v := range td.Variants {
			if _, dup := info.Variants[v.Name]; dup {
				c.errs.ReportError(td.Span, "duplicate variant %q in type %q", v.Name, td.Name)
				continue
			}
			payload := types.Single(types.NoneType())
			if v.Payload != nil {
				payload = c.resolveTypeExpr(v.Payload)
			}
			info.Variants[v.Name] = payload
			info.Order = append(info.Order, v.Name)
		}
	}
}

func (c *Checker) declareFuncSigs() {
	for _, fn := range c.mod.Functions {
		if _, dup := c.funcs[fn.Name]; dup {
			c.errs.ReportError(fn.Span, "duplicate function declaration %q", fn.Name)
			continue
		}
		params := make([]types.ExprType, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = c.resolveTypeExpr(p.Type)
		}
		c.funcs[fn.Name] = &FuncSig{Decl: fn, ParamTypes: params, ReturnType: c.resolveTypeExpr(fn.ReturnType)}
	}
}

func (c *Checker) checkFunc(fn ast.FuncDecl) {
	sig := c.funcs[fn.Name]
	if sig == nil {
		return
	}
	var e *env
	for i, p := range fn.Params {
		e = e.bind(p.Name, sig.ParamTypes[i])
	}
	bodyType := c.infer(e, fn.Body)
	if !bodyType.IsSubtype(sig.ReturnType) {
		c.errs.ReportError(fn.Body.Span, "%s", newSemError(fn.Body.Span, KindTypeMismatch,
			"function %q returns %s, declared return type is %s", fn.Name, bodyType, sig.ReturnType).Error())
	}
}

// infer computes (and memoizes) the type of expr under env e, reporting
// every mistake it finds without aborting the rest of the tree.
func (c *Checker) infer(e *env, expr *ast.Expr) types.ExprType {
	t := c.inferUncached(e, expr)
	c.nodeTypes[expr.ID] = t
	return t
}

func (c *Checker) inferUncached(e *env, expr *ast.Expr) types.ExprType {
	switch expr.Kind {
	case ast.LiteralKind:
		switch expr.Lit {
		case ast.IntLit:
			return types.Single(types.IntType())
		case ast.BoolLit:
			return types.Single(types.BoolType())
		case ast.StringLit:
			return types.Single(types.StringType())
		case ast.NoneLit:
			return types.Single(types.NoneType())
		}
	case ast.IdentKind:
		if t, ok := e.lookup(expr.Name); ok {
			return t
		}
		c.errs.ReportError(expr.Span, "unresolved name %q", expr.Name)
		return types.Single(types.NeverType())
	case ast.UnaryKind:
		return c.inferUnary(e, expr)
	case ast.BinaryKind:
		return c.inferBinary(e, expr)
	case ast.PathKind:
		return c.inferPath(e, expr)
	case ast.CallKind:
		return c.inferCall(e, expr)
	case ast.UserVarCallKind:
		argTypes := make([]types.ExprType, len(expr.Args))
		for i, a := range expr.Args {
			argTypes[i] = c.infer(e, a)
		}
		c.checkVarCall(expr, argTypes)
		return types.Single(types.LinExprType())
	case ast.ListKind:
		return c.inferList(e, expr)
	case ast.TupleKind:
		elems := make([]types.ExprType, len(expr.Elems))
		for i, el := range expr.Elems {
			elems[i] = c.infer(e, el)
		}
		return types.Single(types.TupleType(elems...))
	case ast.StructKind:
		fields := make(map[string]types.ExprType, len(expr.StructFields))
		for _, f := range expr.StructFields {
			fields[f.Name] = c.infer(e, f.Value)
		}
		return types.Single(types.StructType(fields))
	case ast.RangeKind:
		c.expectInt(e, expr.Lo)
		c.expectInt(e, expr.Hi)
		return types.Single(types.ListType(types.Single(types.IntType())))
	case ast.ComprehensionKind:
		inner := c.bindForBinders(e, expr.Binders)
		if expr.Where != nil {
			c.expectBool(inner, expr.Where)
		}
		elem := c.infer(inner, expr.Body)
		return types.Single(types.ListType(elem))
	case ast.QuantifierKind:
		return c.inferQuantifier(e, expr)
	case ast.IfKind:
		c.expectBool(e, expr.Cond)
		thenT := c.infer(e, expr.Then)
		elseT := c.infer(e, expr.Else)
		return thenT.UnifyWith(elseT)
	case ast.LetKind:
		valT := c.infer(e, expr.LetValue)
		return c.infer(e.bind(expr.Name, valT), expr.Body)
	case ast.MatchKind:
		return c.inferMatch(e, expr)
	case ast.ObjectSetKind:
		if c.objectSchemas != nil {
			if _, ok := c.objectSchemas[expr.Name]; !ok {
				c.errs.ReportError(expr.Span, "unknown object type %q", expr.Name)
			}
		}
		return types.Single(types.ListType(types.Single(types.ObjectType(expr.Name))))
	}
	return types.Single(types.NeverType())
}

func (c *Checker) expectBool(e *env, expr *ast.Expr) {
	t := c.infer(e, expr)
	if !t.IsSubtype(types.Single(types.BoolType())) {
		c.errs.ReportError(expr.Span, "expected Bool, found %s", t)
	}
}

func (c *Checker) expectInt(e *env, expr *ast.Expr) {
	t := c.infer(e, expr)
	if !t.IsSubtype(types.Single(types.IntType())) {
		c.errs.ReportError(expr.Span, "expected Int, found %s", t)
	}
}

func (c *Checker) inferUnary(e *env, expr *ast.Expr) types.ExprType {
	operandType := c.infer(e, expr.Operand)
	switch expr.Op {
	case "not":
		c.expectBool(e, expr.Operand)
		return types.Single(types.BoolType())
	case "-":
		result, ok := operandType.CrossCheck(operandType, func(a, _ types.SimpleType) (types.SimpleType, bool) {
			if a.Kind == types.Int {
				return types.IntType(), true
			}
			if linearizable(a.Kind) {
				return types.LinExprType(), true
			}
			return types.SimpleType{}, false
		})
		if !ok {
			c.errs.ReportError(expr.Span, "unary - not defined for %s", operandType)
			return types.Single(types.NeverType())
		}
		return dedupUnary(result)
	case "card":
		for _, v := range operandType.Variants() {
			if v.Kind != types.List && v.Kind != types.EmptyList {
				c.errs.ReportError(expr.Span, "cardinality operator requires a list, found %s", operandType)
				break
			}
		}
		return types.Single(types.IntType())
	}
	return types.Single(types.NeverType())
}

// dedupUnary collapses a CrossCheck(t,t,...) result, which duplicates
// every surviving variant against itself.
func dedupUnary(t types.ExprType) types.ExprType {
	return types.NewExprType(t.Variants()...)
}

func (c *Checker) inferBinary(e *env, expr *ast.Expr) types.ExprType {
	lt := c.infer(e, expr.LHS)
	rt := c.infer(e, expr.RHS)
	result, ok := lt.CrossCheck(rt, binaryOpRule(expr.Op))
	if !ok {
		c.errs.ReportError(expr.Span, "operator %q not defined for %s and %s", expr.Op, lt, rt)
		return types.Single(types.NeverType())
	}
	return result
}

func (c *Checker) inferPath(e *env, expr *ast.Expr) types.ExprType {
	t := c.infer(e, expr.Base)
	cur := t
	for _, field := range expr.Fields {
		next, ok := c.fieldType(cur, field)
		if !ok {
			c.errs.ReportError(expr.Span, "type %s has no field %q", cur, field)
			return types.Single(types.NeverType())
		}
		cur = next
	}
	return cur
}

func (c *Checker) fieldType(t types.ExprType, field string) (types.ExprType, bool) {
	var results []types.SimpleType
	for _, v := range t.Variants() {
		switch v.Kind {
		case types.Struct:
			if ft, ok := v.Fields[field]; ok {
				results = append(results, ft.Variants()...)
			}
		case types.Object:
			if schema, ok := c.objectSchemas[v.ObjectName]; ok {
				if ft, ok := schema[field]; ok {
					results = append(results, ft.Variants()...)
				}
			}
		}
	}
	if len(results) == 0 {
		return types.ExprType{}, false
	}
	return types.NewExprType(results...), true
}

func (c *Checker) inferCall(e *env, expr *ast.Expr) types.ExprType {
	sig, ok := c.funcs[expr.FuncName]
	if !ok {
		c.errs.ReportError(expr.Span, "call to unresolved function %q", expr.FuncName)
		for _, a := range expr.Args {
			c.infer(e, a)
		}
		return types.Single(types.NeverType())
	}
	if len(expr.Args) != len(sig.ParamTypes) {
		c.errs.ReportError(expr.Span, "%s expects %d argument(s), got %d", expr.FuncName, len(sig.ParamTypes), len(expr.Args))
	}
	for i, a := range expr.Args {
		at := c.infer(e, a)
		if i < len(sig.ParamTypes) && !at.IsSubtype(sig.ParamTypes[i]) {
			c.errs.ReportError(a.Span, "argument %d to %s: expected %s, found %s", i+1, expr.FuncName, sig.ParamTypes[i], at)
		}
	}
	return sig.ReturnType
}

// checkVarCall validates a `$Name(args)` call against the registered
// variant field schema: arity, and for Int/Bool fields a matching
// argument type. Object fields are not checked here since their
// concrete handle type only exists at evaluation time.
func (c *Checker) checkVarCall(expr *ast.Expr, argTypes []types.ExprType) {
	if c.varSchema == nil {
		return
	}
	fields, ok := c.varSchema[expr.FuncName]
	if !ok {
		c.errs.ReportError(expr.Span, "undeclared user variable $%s", expr.FuncName)
		return
	}
	if len(argTypes) != len(fields) {
		c.errs.ReportError(expr.Span, "$%s expects %d field(s), got %d", expr.FuncName, len(fields), len(argTypes))
		return
	}
	for i, f := range fields {
		at := argTypes[i]
		fieldName := strcase.UpperCamelCase(f.Name)
		switch f.Kind {
		case evalvar.IntField:
			if !at.IsSubtype(types.Single(types.IntType())) {
				c.errs.ReportError(expr.Args[i].Span, "$%s.%s expects Int, found %s", expr.FuncName, fieldName, at)
			}
		case evalvar.BoolField:
			if !at.IsSubtype(types.Single(types.BoolType())) {
				c.errs.ReportError(expr.Args[i].Span, "$%s.%s expects Bool, found %s", expr.FuncName, fieldName, at)
			}
		}
	}
}

func (c *Checker) inferList(e *env, expr *ast.Expr) types.ExprType {
	if len(expr.Elems) == 0 {
		return types.Single(types.EmptyListType())
	}
	elem := types.ExprType{}
	for _, el := range expr.Elems {
		elem = elem.UnifyWith(c.infer(e, el))
	}
	return types.Single(types.ListType(elem))
}

func (c *Checker) bindForBinders(e *env, binders []ast.ForBinder) *env {
	for _, b := range binders {
		collType := c.infer(e, b.Collection)
		elem := types.Single(types.NeverType())
		for _, v := range collType.Variants() {
			if v.Kind == types.List {
				elem = elem.UnifyWith(*v.Elem)
			} else if v.Kind != types.EmptyList {
				c.errs.ReportError(b.Collection.Span, "for-binder requires a list, found %s", collType)
			}
		}
		e = e.bind(b.Name, elem)
	}
	return e
}

func (c *Checker) inferQuantifier(e *env, expr *ast.Expr) types.ExprType {
	inner := c.bindForBinders(e, expr.Binders)
	if expr.Where != nil {
		c.expectBool(inner, expr.Where)
	}
	switch expr.QuantOp {
	case ast.Forall:
		c.expectBool(inner, expr.Body)
		return types.Single(types.BoolType())
	case ast.Sum:
		bodyT := c.infer(inner, expr.Body)
		if !bodyT.IsSubtype(types.NewExprType(types.IntType(), types.LinExprType())) {
			c.errs.ReportError(expr.Body.Span, "sum body must be Int or LinExpr, found %s", bodyT)
		}
		return types.Single(types.LinExprType())
	}
	return types.Single(types.NeverType())
}

// inferMatch elaborates a match expression and enforces exhaustiveness:
// the union of every branch's as-type must cover the scrutinee's static
// type, unless the last branch has no as-type (a catch-all).
func (c *Checker) inferMatch(e *env, expr *ast.Expr) types.ExprType {
	scrutT := c.infer(e, expr.Scrutinee)
	var result types.ExprType
	var covered types.ExprType
	hasCatchAll := false
	for i, br := range expr.Branches {
		if br.IsCatchAll() {
			if i != len(expr.Branches)-1 {
				c.errs.ReportError(br.Span, "catch-all branch must be last")
			}
			hasCatchAll = true
			branchEnv := e.bind(br.BindName, scrutT)
			if br.Where != nil {
				c.expectBool(branchEnv, br.Where)
			}
			result = result.UnifyWith(c.infer(branchEnv, br.Body))
			continue
		}
		asT := c.resolveTypeExpr(br.AsType)
		covered = covered.UnifyWith(asT)
		branchEnv := e.bind(br.BindName, asT)
		if br.IntoType != nil {
			intoT := c.resolveTypeExpr(br.IntoType)
			if concrete, ok := intoT.AsSimple(); ok {
				if target, ok := types.IntoConcrete(concrete); ok {
					if !types.ExprTypeConvertibleTo(asT, target) {
						c.errs.ReportError(br.Span, "branch binding %s cannot be converted into %s", asT, intoT)
					}
				}
			}
			branchEnv = e.bind(br.BindName, intoT)
		}
		if br.Where != nil {
			c.expectBool(branchEnv, br.Where)
		}
		result = result.UnifyWith(c.infer(branchEnv, br.Body))
	}
	if !hasCatchAll {
		if remainder, uncovered := scrutT.Subtract(covered); uncovered {
			c.errs.ReportError(expr.Span, "%s", newSemError(expr.Span, KindNonExhaustiveMatch,
				"match over %s is not exhaustive: %s is not covered by any branch", scrutT, remainder).Error())
		}
	}
	return result
}
