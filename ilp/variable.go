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

// Package ilp provides the math core of the platform: linear
// expressions and constraints over abstract variable keys, and the
// sparse/dense matrix machinery used to assemble and incrementally
// re-evaluate an integer linear program.
package ilp

import "fmt"

// DomainKind enumerates the three decision-variable domains a Problem
// can declare.
type DomainKind int

const (
	// Binary variables take values in {0, 1}.
	Binary DomainKind = iota
	// Integer variables take integral values in [Min, Max].
	Integer
	// Continuous variables take real values in [Min, Max].
	Continuous
)

func (k DomainKind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// Domain describes the admissible values of a decision variable.
type Domain struct {
	Kind     DomainKind
	Min, Max float64
}

// BinaryDomain is the {0,1} domain.
func BinaryDomain() Domain { return Domain{Kind: Binary, Min: 0, Max: 1} }

// IntegerDomain builds an Integer domain over [min, max].
func IntegerDomain(min, max int) Domain {
	return Domain{Kind: Integer, Min: float64(min), Max: float64(max)}
}

// ContinuousDomain builds a Continuous domain over [min, max].
func ContinuousDomain(min, max float64) Domain {
	return Domain{Kind: Continuous, Min: min, Max: max}
}

// Empty reports whether the domain admits no value at all, which the
// Builder rejects as a malformed input.
func (d Domain) Empty() bool {
	return d.Max < d.Min
}

// Variable is a decision-variable declaration: a domain plus an
// optional display name.
type Variable struct {
	Domain Domain
	Name   string
}

// VarTag discriminates the two origins a decision-variable key can have.
type VarTag int

const (
	// BaseTag marks a variable declared directly in CML via `$Name(...)`.
	BaseTag VarTag = iota
	// ScriptTag marks a variable materialised from a reified function.
	ScriptTag
)

// ExternVar identifies a user-variable instance: its declared name and
// the canonical string encoding of its call arguments.
type ExternVar struct {
	Name     string
	ArgsRepr string
}

func (v ExternVar) String() string {
	if v.ArgsRepr == "" {
		return fmt.Sprintf("$%s()", v.Name)
	}
	return fmt.Sprintf("$%s(%s)", v.Name, v.ArgsRepr)
}

// ScriptVar identifies a reified-function instance.
type ScriptVar struct {
	Module   string
	Name     string
	ArgsRepr string
	CallerID string
}

func (v ScriptVar) String() string {
	caller := ""
	if v.CallerID != "" {
		caller = "@" + v.CallerID
	}
	return fmt.Sprintf("%s.%s(%s)%s", v.Module, v.Name, v.ArgsRepr, caller)
}

// IlpVar is a stable, totally-ordered, comparable key for a decision
// variable. It is comparable (string-only fields throughout) so it can
// be used directly as a Go map key, matching the BTreeMap<Self, ...>
// usage for variable keys that must double as map keys.
type IlpVar struct {
	Tag    VarTag
	Base   ExternVar
	Script ScriptVar
}

// NewBaseVar wraps an ExternVar as an IlpVar.
func NewBaseVar(name, argsRepr string) IlpVar {
	return IlpVar{Tag: BaseTag, Base: ExternVar{Name: name, ArgsRepr: argsRepr}}
}

// NewScriptVar wraps a ScriptVar as an IlpVar.
func NewScriptVar(module, name, argsRepr, callerID string) IlpVar {
	return IlpVar{Tag: ScriptTag, Script: ScriptVar{Module: module, Name: name, ArgsRepr: argsRepr, CallerID: callerID}}
}

func (v IlpVar) String() string {
	if v.Tag == BaseTag {
		return v.Base.String()
	}
	return v.Script.String()
}

// Less gives IlpVar a total order: Base variables sort before Script
// variables, then lexicographically by their rendered form. This order
// is what fixes the column numbering of a built Problem: decision
// variable ordering in the assembled matrix is determined solely by
// this total order on variable keys.
func (v IlpVar) Less(other IlpVar) bool {
	if v.Tag != other.Tag {
		return v.Tag < other.Tag
	}
	return v.String() < other.String()
}
