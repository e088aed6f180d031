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

import (
	"fmt"
	"sort"
	"strings"

	"github.com/collomatique/cml/ilp"
	"github.com/collomatique/cml/types"
)

// PromoteToLinExpr implements the evaluator's linearity-preservation
// contract: any Int used where a LinExpr is expected is
// promoted to a constant LinExpr, and the promotion extends through
// nested lists, tuples and struct fields.
func PromoteToLinExpr(v Value) Value {
	switch x := v.(type) {
	case Int:
		return LinExpr{Expr: ilp.ConstLinExpr[ilp.IlpVar](float64(x))}
	case List:
		elems := make([]Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = PromoteToLinExpr(e)
		}
		elemType := x.ElemType
		if elemType.Variants()[0].Kind == types.Int {
			elemType = types.Single(types.LinExprType())
		}
		return List{ElemType: elemType, Elems: elems}
	case Tuple:
		elems := make([]Value, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = PromoteToLinExpr(e)
		}
		return Tuple{Elems: elems}
	case Struct:
		fields := make(map[string]Value, len(x.Fields))
		for k, e := range x.Fields {
			fields[k] = PromoteToLinExpr(e)
		}
		return Struct{Fields: fields}
	default:
		return v
	}
}

// ConvertToString implements structural stringification: every value
// can be converted.
func ConvertToString(v Value) String {
	switch x := v.(type) {
	case String:
		return x
	case List:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			parts[i] = string(ConvertToString(e))
		}
		return String("[" + strings.Join(parts, ", ") + "]")
	case Tuple:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			parts[i] = string(ConvertToString(e))
		}
		return String("(" + strings.Join(parts, ", ") + ")")
	case Struct:
		keys := make([]string, 0, len(x.Fields))
		for k := range x.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, ConvertToString(x.Fields[k]))
		}
		return String("{" + strings.Join(parts, ", ") + "}")
	default:
		return String(v.String())
	}
}

// ConvertEmptyList converts an EmptyList value to List(elemType), per
// the EmptyList -> List(T) convertibility rule.
func ConvertEmptyList(elemType types.ExprType) List {
	return List{ElemType: elemType, Elems: nil}
}
