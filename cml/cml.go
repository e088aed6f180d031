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

// Package cml is the embedding facade over the core: parse, check,
// evaluate and fold a module's public constraint-returning functions
// into an ilp.Problem, the way cel-go's top-level cel package wraps
// its parser/checker/interpreter trio behind a small surface.
package cml

import (
	"fmt"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/checker"
	"github.com/collomatique/cml/colloscope"
	"github.com/collomatique/cml/common"
	"github.com/collomatique/cml/eval"
	"github.com/collomatique/cml/ilp"
	"github.com/collomatique/cml/parser"
	"github.com/collomatique/cml/types"
	"github.com/collomatique/cml/value"
)

// Module bundles a parsed-and-checked CML source: the surface AST the
// evaluator needs for docstrings and reify aliases, plus the checked
// module the evaluator and ILP builder both consult for resolved
// signatures and node types.
type Module struct {
	AST     *ast.Module
	Checked *checker.CheckedModule
}

// CompileModule parses and type-checks one named source, returning
// every diagnostic found by either stage. A non-nil Module is always
// returned (mirroring ParseModule's and Check's never-nil-on-error
// contract) so callers can inspect whatever information survived.
func CompileModule(name, source string, opts ...checker.Option) (*Module, *common.Errors) {
	glog.V(1).Infof("cml: parsing module %q", name)
	src := common.NewSource(name, source)
	tree, perrs := parser.ParseModule(src, name)

	glog.V(1).Infof("cml: checking module %q", name)
	checked, cerrs := checker.Check(tree, name, opts...)

	all := common.NewErrors()
	for _, e := range perrs.GetErrors() {
		all.ReportError(e.Span, "%s", e.Message)
	}
	for _, e := range cerrs.GetErrors() {
		all.ReportError(e.Span, "%s", e.Message)
	}
	return &Module{AST: tree, Checked: checked}, all
}

// Evaluate runs one public function by name with the given arguments
// against a compiled module, using objects to resolve any Object(...)
// field access the body performs.
func Evaluate(mod *Module, objects eval.EvalObject, fnName string, args []value.Value) (value.Value, error) {
	sig, ok := mod.Checked.Funcs[fnName]
	if !ok {
		return nil, fmt.Errorf("cml: no such function %q", fnName)
	}
	if len(args) != len(sig.ParamTypes) {
		return nil, fmt.Errorf("cml: %s expects %d argument(s), got %d", fnName, len(sig.ParamTypes), len(args))
	}
	ev := eval.NewEvaluator(mod.Checked, mod.AST, objects)
	glog.V(1).Infof("cml: evaluating %s.%s", mod.AST.Name, fnName)
	return ev.Eval(sig.Decl, args)
}

// BuildILP folds every public, parameterless, Constraint-returning
// function declared in mod into one ilp.Problem: each such function is
// a named constraint group, per spec §6.3 ("every public nullary
// function returning Constraint contributes its atoms to the
// program"). Functions that are not nullary, not public, or do not
// return Constraint are skipped.
func BuildILP(mod *Module, objects eval.EvalObject) (*ilp.Problem, error) {
	b := ilp.NewBuilder()
	glog.V(1).Infof("cml: building ILP for module %q", mod.AST.Name)

	var candidates []*ast.FuncDecl
	for _, fn := range mod.AST.Functions {
		if !fn.Pub || len(fn.Params) != 0 {
			continue
		}
		sig, ok := mod.Checked.Funcs[fn.Name]
		if !ok || !isConstraintOnly(sig.ReturnType) {
			continue
		}
		candidates = append(candidates, sig.Decl)
	}

	// Each candidate's body is evaluated independently, so the batch
	// runs concurrently with its own Evaluator per goroutine (mirroring
	// Tangerg-lynx's errgroup-based segment processing); folding the
	// results into the shared Builder stays sequential below.
	results := make([]value.Constraint, len(candidates))
	var g errgroup.Group
	for i, fn := range candidates {
		i, fn := i, fn
		g.Go(func() error {
			ev := eval.NewEvaluator(mod.Checked, mod.AST, objects)
			result, err := ev.Eval(fn, nil)
			if err != nil {
				return fmt.Errorf("cml: evaluating %s: %w", fn.Name, err)
			}
			cs, ok := result.(value.Constraint)
			if !ok {
				return fmt.Errorf("cml: %s did not evaluate to a Constraint", fn.Name)
			}
			results[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, cs := range results {
		glog.V(1).Infof("cml: folding %d atom(s) from %s", len(cs), candidates[i].Name)
		for _, atom := range cs {
			declareFreeVars(b, atom.Constraint)
			if err := b.AddConstraint(atom.Constraint); err != nil {
				return nil, fmt.Errorf("cml: %s: %w", candidates[i].Name, err)
			}
		}
	}
	return b.Build()
}

// isConstraintOnly reports whether t is exactly the single-variant
// Constraint type, the only return type BuildILP folds.
func isConstraintOnly(t types.ExprType) bool {
	variants := t.Variants()
	return len(variants) == 1 && variants[0].Kind == types.Constraint
}

// declareFreeVars registers every variable c mentions as an Integer
// decision variable over [0, 2^30] if it was not already declared,
// since Builder.AddConstraint declares nothing and Build rejects
// undeclared variables.
func declareFreeVars(b *ilp.Builder, c ilp.Constraint[ilp.IlpVar]) {
	for _, v := range c.Expr.Vars() {
		_ = b.Declare(v, ilp.Variable{Domain: ilp.IntegerDomain(0, 1<<30), Name: v.String()})
	}
}

// BuildColloscope compiles a concrete scheduling snapshot straight to
// an ilp.Problem, delegating to the colloscope package's own compiler
// stages (translate, validate, materialise, build).
func BuildColloscope(params *colloscope.Params, opts ...colloscope.Option) (*ilp.Problem, []colloscope.Translator, error) {
	return colloscope.Compile(params, opts...)
}
