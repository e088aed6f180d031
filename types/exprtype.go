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

import "strings"

// ExprType is a non-empty, ordered, canonicalised sum of SimpleType
// variants: no two variants are equal, and no variant is a
// proper subtype of another in the same sum.
type ExprType struct {
	variants []SimpleType
}

// NewExprType builds a canonical sum from one or more variants.
func NewExprType(variants ...SimpleType) ExprType {
	return ExprType{}.unionAll(variants)
}

// Single is a convenience constructor for a one-variant sum.
func Single(t SimpleType) ExprType { return NewExprType(t) }

// Variants returns the canonical variant list; callers must not mutate it.
func (t ExprType) Variants() []SimpleType { return t.variants }

// unionAll adds every variant in vs to t and re-canonicalises.
func (t ExprType) unionAll(vs []SimpleType) ExprType {
	all := append(append([]SimpleType{}, t.variants...), vs...)
	return canonicalize(all)
}

// canonicalize removes duplicate variants and any variant that is a
// proper subtype of another variant present in the set (the "antichain
// under ⊑" invariant).
func canonicalize(variants []SimpleType) ExprType {
	dedup := make([]SimpleType, 0, len(variants))
	for _, v := range variants {
		found := false
		for _, d := range dedup {
			if d.Equal(v) {
				found = true
				break
			}
		}
		if !found {
			dedup = append(dedup, v)
		}
	}
	kept := make([]SimpleType, 0, len(dedup))
	for i, v := range dedup {
		subsumed := false
		for j, w := range dedup {
			if i == j {
				continue
			}
			if IsSubtype(v, w) && !IsSubtype(w, v) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		kept = []SimpleType{NeverType()}
	}
	return ExprType{variants: kept}
}

// UnifyWith computes the canonicalised union of two sums, used for
// branch-body unification in `if`, `match`, and list-literal elements.
func (t ExprType) UnifyWith(other ExprType) ExprType {
	return t.unionAll(other.variants)
}

// Subtract removes every variant of t that is ⊑ some variant of other,
// returning (result, false) if nothing survives.
func (t ExprType) Subtract(other ExprType) (ExprType, bool) {
	kept := make([]SimpleType, 0, len(t.variants))
	for _, v := range t.variants {
		subsumed := false
		for _, o := range other.variants {
			if IsSubtype(v, o) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return ExprType{}, false
	}
	return canonicalize(kept), true
}

// IsSubtype implements sum subtyping: every variant of t is ⊑ some
// variant of other.
func (t ExprType) IsSubtype(other ExprType) bool {
	for _, v := range t.variants {
		ok := false
		for _, o := range other.variants {
			if IsSubtype(v, o) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Equal reports whether two sums have the same canonical variant set.
func (t ExprType) Equal(other ExprType) bool {
	return t.IsSubtype(other) && other.IsSubtype(t)
}

// OverlapsWith reports whether any variant of t is related (either
// direction of ⊑) to any variant of other; used by match exhaustiveness
// and branch-type refinement.
func (t ExprType) OverlapsWith(other ExprType) bool {
	for _, v := range t.variants {
		for _, o := range other.variants {
			if IsSubtype(v, o) || IsSubtype(o, v) || v.Equal(o) {
				return true
			}
		}
	}
	return false
}

// CrossCheck applies a binary semantic rule pairwise over the cartesian
// product of t's and other's variants, returning the smallest sum
// containing every non-nil result. Used for binary operator typing:
// each combination that the rule does not handle should return
// (SimpleType{}, false).
func (t ExprType) CrossCheck(other ExprType, rule func(a, b SimpleType) (SimpleType, bool)) (ExprType, bool) {
	var results []SimpleType
	for _, a := range t.variants {
		for _, b := range other.variants {
			if r, ok := rule(a, b); ok {
				results = append(results, r)
			}
		}
	}
	if len(results) == 0 {
		return ExprType{}, false
	}
	return canonicalize(results), true
}

// IsConcrete reports whether the sum has exactly one variant and that
// variant is recursively concrete (no nested sums beyond ExprType's own
// use inside List/Tuple/Struct, which recurse through IsConcrete too).
func (t ExprType) IsConcrete() bool {
	return len(t.variants) == 1 && isConcreteSimple(t.variants[0])
}

func isConcreteSimple(s SimpleType) bool {
	switch s.Kind {
	case List:
		return s.Elem.IsConcrete()
	case Tuple:
		for _, e := range s.Elems {
			if !e.IsConcrete() {
				return false
			}
		}
		return true
	case Struct:
		for _, e := range s.Fields {
			if !e.IsConcrete() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t ExprType) String() string {
	parts := make([]string, len(t.variants))
	for i, v := range t.variants {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}
