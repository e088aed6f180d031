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

// Package evalvar materialises the abstract user variables a CML
// module declares with `$Name(...)` into a concrete, enumerable set of
// ILP decision variables. The teacher corpus generates the
// three-function contract below (field_schema/vars/fix) with a derive
// macro over a Rust enum; Go has no such facility, so this package
// offers the same contract through a small runtime builder DSL
// (Declare) instead, per SPEC_FULL.md's design-note resolution.
package evalvar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/collomatique/cml/ilp"
)

// FieldKind is the closed set of types a $Name(...) parameter field can
// declare, per spec §3.5.
type FieldKind int

const (
	IntField FieldKind = iota
	BoolField
	ObjectField
)

func (k FieldKind) String() string {
	switch k {
	case IntField:
		return "Int"
	case BoolField:
		return "Bool"
	case ObjectField:
		return "Object"
	default:
		return "?"
	}
}

// FieldType is one parameter field's static schema entry: its declared
// name, its kind, and the declared object type name when Kind is
// ObjectField.
type FieldType struct {
	Name       string
	Kind       FieldKind
	ObjectType string
}

// Env is the capability set evalvar needs from the embedder to
// enumerate decision variables: object lookup by declared CML type
// name. Field-level Int ranges are supplied directly as RangeFuncs
// closed over whatever environment the caller already holds, so Env
// stays minimal rather than growing a method per declaration.
type Env interface {
	// ObjectsOfType enumerates every live handle of the given declared
	// type name. Returns ErrUnknownType if the name cannot be resolved.
	ObjectsOfType(typeName string) ([]Handle, error)
}

// Handle is an opaque embedder-owned object reference, tagged with a
// stable string so it can take part in a Key's total order.
type Handle struct {
	ID    string
	Value interface{}
}

// ErrUnknownType is returned by an Env when a variant's Object field
// names a type the environment cannot resolve — mirrors §4.4's "vars
// returns Err(TypeId) when an Object field's type name cannot be
// resolved by env.type_id_to_name".
type ErrUnknownType struct {
	TypeName string
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("evalvar: unknown object type %q", e.TypeName)
}

// IntRange is the admissible (inclusive) range of an Int field.
type IntRange struct {
	Min, Max int
}

// Contains reports whether v lies within the range.
func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// RangeFunc resolves an Int field's range, possibly against env —
// "a range, which may be static or evaluated against the environment"
// per spec §3.5.
type RangeFunc func(env Env) (IntRange, error)

// StaticRange builds a RangeFunc that ignores env.
func StaticRange(min, max int) RangeFunc {
	return func(Env) (IntRange, error) { return IntRange{Min: min, Max: max}, nil }
}

// FieldValue is one concrete argument bound to a field in a materialised Key.
type FieldValue struct {
	Kind   FieldKind
	Int    int
	Bool   bool
	Object Handle
}

func (v FieldValue) String() string {
	switch v.Kind {
	case IntField:
		return strconv.Itoa(v.Int)
	case BoolField:
		if v.Bool {
			return "true"
		}
		return "false"
	case ObjectField:
		return v.Object.ID
	default:
		return "?"
	}
}

// Key is one materialised instance of a declared variant: its name
// plus an ordered list of concrete field values. Key is the type this
// package's callers use as the map key for Vars' result and as the
// argument to Fix.
type Key struct {
	Variant string
	Fields  []FieldValue
}

// ArgsRepr renders the field values the same way eval renders a
// `$Name(args...)` call's evaluated arguments (comma-joined, no
// spaces), so an IlpVar built from a materialised Key lines up with the
// IlpVar the evaluator built for the same logical call.
func (k Key) ArgsRepr() string {
	parts := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

// IlpVar returns the ilp.IlpVar this Key corresponds to.
func (k Key) IlpVar() ilp.IlpVar {
	return ilp.NewBaseVar(k.Variant, k.ArgsRepr())
}

// String renders the Key the way a CML call site would: "$Name(a,b,c)".
func (k Key) String() string {
	return fmt.Sprintf("$%s(%s)", k.Variant, k.ArgsRepr())
}

// Less gives Key a total order so Vars can be returned sorted
// (mirroring the BTreeMap<Self, Variable> of the original contract).
func (k Key) Less(other Key) bool {
	if k.Variant != other.Variant {
		return k.Variant < other.Variant
	}
	return k.String() < other.String()
}

// sortKeys returns ks sorted by Less, for deterministic iteration order.
func sortKeys(ks []Key) {
	sort.Slice(ks, func(i, j int) bool { return ks[i].Less(ks[j]) })
}
