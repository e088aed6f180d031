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

// ConvertibleTo implements a →* T, the convertibility relation:
// identity, Int→LinExpr, EmptyList→List(T), elementwise list/tuple
// conversion, any→String, and Custom wrap/unwrap across a validated
// root/variant boundary.
func ConvertibleTo(a SimpleType, target ConcreteType) bool {
	t := target.Simple()
	if a.Equal(t) {
		return true
	}
	if t.Kind == String {
		return true
	}
	if a.Kind == Int && t.Kind == LinExpr {
		return true
	}
	if a.Kind == EmptyList && t.Kind == List {
		return true
	}
	if a.Kind == List && t.Kind == List {
		return ExprTypeConvertibleTo(*a.Elem, ConcreteType{simple: *t.Elem.variantOrNever()})
	}
	if a.Kind == Tuple && t.Kind == Tuple && len(a.Elems) == len(t.Elems) {
		for i := range a.Elems {
			elemTarget, ok := IntoConcrete(*t.Elems[i].variantOrNever())
			if !ok || !ExprTypeConvertibleTo(a.Elems[i], elemTarget) {
				return false
			}
		}
		return true
	}
	if a.Kind == Custom && t.Kind == Custom && a.Module == t.Module && a.Name == t.Name {
		// Wrap (root -> variant) or unwrap (variant -> root) across the
		// validated structural boundary; the evaluator validates the
		// concrete variant tag dynamically.
		return true
	}
	return false
}

// ExprTypeConvertibleTo reports whether every variant of a sum is
// convertible to the concrete target.
func ExprTypeConvertibleTo(a ExprType, target ConcreteType) bool {
	for _, v := range a.variants {
		if !ConvertibleTo(v, target) {
			return false
		}
	}
	return true
}

// variantOrNever returns the sum's single variant, or Never if the sum
// is not a singleton (used internally where a concrete element type is
// expected but the sum may not strictly be concrete yet).
func (t *ExprType) variantOrNever() *SimpleType {
	if len(t.variants) == 1 {
		return &t.variants[0]
	}
	never := NeverType()
	return &never
}
