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

import "github.com/collomatique/cml/types"

// TypeOf computes the dynamic (always concrete, single-variant) type of
// a runtime value. Used to check the invariant that:
// typeof(evaluate(e, env)) ⊑ typeof_static(e).
func TypeOf(v Value) types.ExprType {
	switch x := v.(type) {
	case None:
		return types.Single(types.NoneType())
	case Int:
		return types.Single(types.IntType())
	case Bool:
		return types.Single(types.BoolType())
	case String:
		return types.Single(types.StringType())
	case LinExpr:
		return types.Single(types.LinExprType())
	case Constraint:
		return types.Single(types.ConstraintType())
	case Object:
		return types.Single(types.ObjectType(x.TypeName))
	case List:
		if len(x.Elems) == 0 {
			return types.Single(types.EmptyListType())
		}
		return types.Single(types.ListType(x.ElemType))
	case Tuple:
		elemTypes := make([]types.ExprType, len(x.Elems))
		for i, e := range x.Elems {
			elemTypes[i] = TypeOf(e)
		}
		return types.Single(types.TupleType(elemTypes...))
	case Struct:
		fields := make(map[string]types.ExprType, len(x.Fields))
		for k, v := range x.Fields {
			fields[k] = TypeOf(v)
		}
		return types.Single(types.StructType(fields))
	case Custom:
		return types.Single(types.CustomVariantType(x.Module, x.Name, x.Variant))
	default:
		return types.Single(types.NeverType())
	}
}

// FitsInTyp reports whether every element of elems has a dynamic type
// that is a subtype of elemType, the "uniform element type at the point
// of use" invariant.
func FitsInTyp(elems []Value, elemType types.ExprType) bool {
	for _, e := range elems {
		if !TypeOf(e).IsSubtype(elemType) {
			return false
		}
	}
	return true
}
