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

package types

// ConcreteType is a single-variant SimpleType that is recursively
// concrete, used as the target of a conversion.
type ConcreteType struct {
	simple SimpleType
}

// AsSimple returns the sum's single variant if the sum has exactly one,
// regardless of whether it is concrete.
func (t ExprType) AsSimple() (SimpleType, bool) {
	if len(t.variants) != 1 {
		return SimpleType{}, false
	}
	return t.variants[0], true
}

// IntoConcrete converts a single SimpleType variant into a ConcreteType
// iff it is recursively concrete: T.AsSimple()?.IntoConcrete() round-trips
// to Some(T) exactly when T is concrete.
func IntoConcrete(s SimpleType) (ConcreteType, bool) {
	if !isConcreteSimple(s) {
		return ConcreteType{}, false
	}
	return ConcreteType{simple: s}, true
}

// Simple unwraps back to the underlying SimpleType.
func (c ConcreteType) Simple() SimpleType { return c.simple }

// ExprType promotes a ConcreteType to its singleton sum.
func (c ConcreteType) ExprType() ExprType { return Single(c.simple) }

func (c ConcreteType) String() string { return c.simple.String() }
