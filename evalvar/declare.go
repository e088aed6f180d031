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

import "github.com/collomatique/cml/ilp"

// fixKind discriminates the two fix strategies a variant declares, per
// spec §3.5: "a fix strategy: either fix_with(expr)... or
// defer_fix(expr)...".
type fixKind int

const (
	fixWith fixKind = iota
	deferFix
)

// FixWithFunc computes the "out of range" fix value for a fix_with
// variant: it is only consulted when Fix has already determined at
// least one Int field lies outside its declared range.
type FixWithFunc func(k Key, env Env) (float64, error)

// DeferFixFunc is a defer_fix variant's total function: it always
// runs, and a non-nil result both fixes the key and excludes it from
// materialisation.
type DeferFixFunc func(k Key, env Env) (*float64, error)

// fieldDecl is one declared parameter field of a variant.
type fieldDecl struct {
	name  string
	typ   FieldType
	rng   RangeFunc // only meaningful for IntField
}

// Variant is one declared `$Name` user-variable family.
type Variant struct {
	name    string
	fields  []fieldDecl
	domain  ilp.Domain
	kind    fixKind
	fixWith FixWithFunc
	defer_  DeferFixFunc
}

// VariantBuilder incrementally builds a Variant.
type VariantBuilder struct {
	v *Variant
}

// Declare starts a new variant named name. Variables materialised from
// it default to the Binary domain, matching the 0/1 assignment
// variables that dominate the colloscope compiler's usage; call Domain
// to override.
func Declare(name string) *VariantBuilder {
	return &VariantBuilder{v: &Variant{name: name, domain: ilp.BinaryDomain()}}
}

// IntField appends an Int-typed field with the given range.
func (b *VariantBuilder) IntField(name string, rng RangeFunc) *VariantBuilder {
	b.v.fields = append(b.v.fields, fieldDecl{name: name, typ: FieldType{Kind: IntField}, rng: rng})
	return b
}

// BoolField appends a Bool-typed field.
func (b *VariantBuilder) BoolField(name string) *VariantBuilder {
	b.v.fields = append(b.v.fields, fieldDecl{name: name, typ: FieldType{Kind: BoolField}})
	return b
}

// ObjectField appends an Object(typeName)-typed field.
func (b *VariantBuilder) ObjectField(name, typeName string) *VariantBuilder {
	b.v.fields = append(b.v.fields, fieldDecl{name: name, typ: FieldType{Kind: ObjectField, ObjectType: typeName}})
	return b
}

// Domain overrides the default Binary domain materialised variables
// are declared with.
func (b *VariantBuilder) Domain(d ilp.Domain) *VariantBuilder {
	b.v.domain = d
	return b
}

// FixWith declares the variant's fix strategy as fix_with(expr): out of
// range Int-field combinations are fixed to expr's value rather than
// materialised.
func (b *VariantBuilder) FixWith(fn FixWithFunc) *VariantBuilder {
	b.v.kind = fixWith
	b.v.fixWith = fn
	return b
}

// DeferFix declares the variant's fix strategy as defer_fix(expr): expr
// runs for every candidate key, and any Some(_) result both fixes and
// excludes that key from materialisation.
func (b *VariantBuilder) DeferFix(fn DeferFixFunc) *VariantBuilder {
	b.v.kind = deferFix
	b.v.defer_ = fn
	return b
}

// Build finalises the variant declaration.
func (b *VariantBuilder) Build() *Variant {
	if b.v.kind == fixWith && b.v.fixWith == nil {
		b.v.fixWith = func(Key, Env) (float64, error) { return 0, nil }
	}
	if b.v.kind == deferFix && b.v.defer_ == nil {
		b.v.defer_ = func(Key, Env) (*float64, error) { return nil, nil }
	}
	return b.v
}
