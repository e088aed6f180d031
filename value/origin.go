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

package value

// Origin records where an atomic constraint came from, for diagnostics
// : the enclosing function, its concrete argument values,
// and a pretty-printed docstring with `expr` placeholders substituted.
type Origin struct {
	FunctionName    string
	ArgumentValues  []Value
	PrettyDocstring string
}

// StampOrigin walks v, setting origin on every Constraint atom that has
// no origin yet. Already-stamped atoms are left untouched, which gives
// the "innermost wins" semantics: a
// constraint produced by an inner call keeps its own origin even as it
// propagates up through outer callers.
func StampOrigin(v Value, origin Origin) Value {
	switch x := v.(type) {
	case Constraint:
		stamped := make(Constraint, len(x))
		for i, atom := range x {
			if atom.Origin == nil {
				o := origin
				atom.Origin = &o
			}
			stamped[i] = atom
		}
		return stamped
	case List:
		elems := make([]Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = StampOrigin(e, origin)
		}
		return List{ElemType: x.ElemType, Elems: elems}
	case Tuple:
		elems := make([]Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = StampOrigin(e, origin)
		}
		return Tuple{Elems: elems}
	case Struct:
		fields := make(map[string]Value, len(x.Fields))
		for k, e := range x.Fields {
			fields[k] = StampOrigin(e, origin)
		}
		return Struct{Fields: fields}
	case Custom:
		return Custom{Module: x.Module, Name: x.Name, Variant: x.Variant, Inner: StampOrigin(x.Inner, origin)}
	default:
		return v
	}
}

// ConcatConstraints implements `and` over two Constraint values:
// concatenation, treating Constraint as a list. `and` over zero
// Constraint values is the empty list.
func ConcatConstraints(a, b Constraint) Constraint {
	result := make(Constraint, 0, len(a)+len(b))
	result = append(result, a...)
	result = append(result, b...)
	return result
}
