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

package evalvar

import (
	"fmt"

	"github.com/collomatique/cml/ilp"
)

// EvalVar is the three-function contract spec §4.4/§6.2 asks any
// mechanism to expose: a static field schema for the semantic checker,
// a materialised variable set for the ILP builder, and a fix hook the
// builder consults for keys it chose not to materialise.
type EvalVar interface {
	FieldSchema() map[string][]FieldType
	Vars(env Env) (map[Key]ilp.Variable, error)
	Fix(k Key, env Env) (*float64, error)
}

// Schema is a concrete EvalVar built from one or more declared
// Variants, standing in for a Rust enum with one variant per
// `$Name` — the runtime counterpart of the teacher corpus's
// `#[derive(EvalVar)]` macro.
type Schema struct {
	variants map[string]*Variant
	order    []string
}

// NewSchema collects a set of declared variants into one EvalVar.
// Duplicate variant names are rejected.
func NewSchema(variants ...*Variant) (*Schema, error) {
	s := &Schema{variants: map[string]*Variant{}}
	for _, v := range variants {
		if _, dup := s.variants[v.name]; dup {
			return nil, fmt.Errorf("evalvar: duplicate variant %q", v.name)
		}
		s.variants[v.name] = v
		s.order = append(s.order, v.name)
	}
	return s, nil
}

// FieldSchema returns the static per-variant field-type list the
// semantic checker validates `$Name(args)` call sites against.
func (s *Schema) FieldSchema() map[string][]FieldType {
	out := make(map[string][]FieldType, len(s.variants))
	for name, v := range s.variants {
		types := make([]FieldType, len(v.fields))
		for i, f := range v.fields {
			ft := f.typ
			ft.Name = f.name
			types[i] = ft
		}
		out[name] = types
	}
	return out
}

// Vars enumerates every decision variable this schema materialises:
// the cartesian product over variants and, per variant, over each
// field's admissible values, excluding any key whose defer_fix
// strategy resolves to Some(_) (spec §4.4, testable properties 5-6).
func (s *Schema) Vars(env Env) (map[Key]ilp.Variable, error) {
	out := map[Key]ilp.Variable{}
	for _, name := range s.order {
		v := s.variants[name]
		keys, err := v.enumerate(env)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if v.kind == deferFix {
				fixed, err := v.defer_(k, env)
				if err != nil {
					return nil, err
				}
				if fixed != nil {
					continue
				}
			}
			out[k] = ilp.Variable{Domain: v.domain, Name: k.String()}
		}
	}
	return out, nil
}

// Fix reports whether k should be fixed rather than solved for: for a
// fix_with variant, only when at least one Int field lies outside its
// declared range; for a defer_fix variant, whatever the declared
// total function returns.
func (s *Schema) Fix(k Key, env Env) (*float64, error) {
	v, ok := s.variants[k.Variant]
	if !ok {
		return nil, fmt.Errorf("evalvar: fix on undeclared variant %q", k.Variant)
	}
	switch v.kind {
	case deferFix:
		return v.defer_(k, env)
	default:
		outOfRange, err := v.anyIntFieldOutOfRange(k, env)
		if err != nil {
			return nil, err
		}
		if !outOfRange {
			return nil, nil
		}
		val, err := v.fixWith(k, env)
		if err != nil {
			return nil, err
		}
		return &val, nil
	}
}

// enumerate computes every candidate Key for one variant: the
// cartesian product of its fields' admissible values, evaluated
// outer-field-first to match the rest of the evaluator's left-to-right
// comprehension order (spec §5).
func (v *Variant) enumerate(env Env) ([]Key, error) {
	combos := [][]FieldValue{{}}
	for _, f := range v.fields {
		values, err := f.values(env)
		if err != nil {
			return nil, err
		}
		var next [][]FieldValue
		for _, prefix := range combos {
			for _, val := range values {
				entry := make([]FieldValue, len(prefix)+1)
				copy(entry, prefix)
				entry[len(prefix)] = val
				next = append(next, entry)
			}
		}
		combos = next
	}
	keys := make([]Key, len(combos))
	for i, c := range combos {
		keys[i] = Key{Variant: v.name, Fields: c}
	}
	sortKeys(keys)
	return keys, nil
}

func (f fieldDecl) values(env Env) ([]FieldValue, error) {
	switch f.typ.Kind {
	case IntField:
		rng, err := f.rng(env)
		if err != nil {
			return nil, err
		}
		out := make([]FieldValue, 0, rng.Max-rng.Min+1)
		for i := rng.Min; i <= rng.Max; i++ {
			out = append(out, FieldValue{Kind: IntField, Int: i})
		}
		return out, nil
	case BoolField:
		return []FieldValue{{Kind: BoolField, Bool: false}, {Kind: BoolField, Bool: true}}, nil
	case ObjectField:
		handles, err := env.ObjectsOfType(f.typ.ObjectType)
		if err != nil {
			return nil, err
		}
		out := make([]FieldValue, len(handles))
		for i, h := range handles {
			out[i] = FieldValue{Kind: ObjectField, Object: h}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("evalvar: unknown field kind %v", f.typ.Kind)
	}
}

// anyIntFieldOutOfRange reports whether any of k's Int fields lies
// outside its declared range, re-resolving dynamic ranges against env.
func (v *Variant) anyIntFieldOutOfRange(k Key, env Env) (bool, error) {
	for i, f := range v.fields {
		if f.typ.Kind != IntField {
			continue
		}
		rng, err := f.rng(env)
		if err != nil {
			return false, err
		}
		if !rng.Contains(k.Fields[i].Int) {
			return true, nil
		}
	}
	return false, nil
}
