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

package checker

import (
	"github.com/collomatique/cml/ast"
	"github.com/collomatique/cml/types"
)

// CustomTypeInfo is the checker's resolved view of a module's `type`
// declaration: the payload type carried by each named variant.
type CustomTypeInfo struct {
	Module   string
	Name     string
	Variants map[string]types.ExprType
	Order    []string
}

// variantUnion expands a declared type to the canonical sum of all its
// variants, each tagged with its own name: `type Color = Red | Green |
// Blue` resolves to Custom(m,Color,Red) | Custom(m,Color,Green) |
// Custom(m,Color,Blue), not the untagged root, so that a match over it
// can be proven exhaustive variant by variant.
func (c *CustomTypeInfo) variantUnion() types.ExprType {
	var u types.ExprType
	for _, name := range c.Order {
		u = u.UnifyWith(types.Single(types.CustomVariantType(c.Module, c.Name, name)))
	}
	return u
}

// resolveTypeExpr turns a parsed TypeExpr into a types.ExprType,
// looking up declared custom types and reporting any unresolved name.
func (c *Checker) resolveTypeExpr(te *ast.TypeExpr) types.ExprType {
	if te == nil {
		return types.Single(types.NoneType())
	}
	var base types.ExprType
	switch {
	case len(te.Sum) > 0:
		base = types.ExprType{}
		for _, v := range te.Sum {
			base = base.UnifyWith(c.resolveTypeExpr(v))
		}
	case c.customTypes[te.Name] != nil:
		base = c.customTypes[te.Name].variantUnion()
	default:
		if simple, ok := c.resolveVariantName(te.Name); ok {
			base = types.Single(simple)
		} else {
			base = types.Single(c.resolveSimple(te))
		}
	}
	if te.Optional {
		base = base.UnifyWith(types.Single(types.NoneType()))
	}
	return base
}

// resolveVariantName looks up name as a bare variant of some declared
// type, the `as Red` match-branch spelling where Red names one variant
// rather than the whole sum. Ambiguous names (two declared types
// sharing a variant name) resolve to none, falling through to
// resolveSimple's unresolved-name error.
func (c *Checker) resolveVariantName(name string) (types.SimpleType, bool) {
	var owner *CustomTypeInfo
	for _, info := range c.customTypes {
		if _, ok := info.Variants[name]; ok {
			if owner != nil {
				return types.SimpleType{}, false
			}
			owner = info
		}
	}
	if owner == nil {
		return types.SimpleType{}, false
	}
	return types.CustomVariantType(owner.Module, owner.Name, name), true
}

func (c *Checker) resolveSimple(te *ast.TypeExpr) types.SimpleType {
	switch te.Name {
	case "Int":
		return types.IntType()
	case "Bool":
		return types.BoolType()
	case "String":
		return types.StringType()
	case "LinExpr":
		return types.LinExprType()
	case "Constraint":
		return types.ConstraintType()
	case "List":
		if te.Elem == nil {
			c.errs.ReportError(te.Span, "List<T> requires a type argument")
			return types.NeverType()
		}
		return types.ListType(c.resolveTypeExpr(te.Elem))
	case "Tuple":
		elems := make([]types.ExprType, len(te.Elems))
		for i, e := range te.Elems {
			elems[i] = c.resolveTypeExpr(e)
		}
		return types.TupleType(elems...)
	case "Struct":
		fields := make(map[string]types.ExprType, len(te.Fields))
		for k, v := range te.Fields {
			fields[k] = c.resolveTypeExpr(v)
		}
		return types.StructType(fields)
	default:
		// Declared type and variant names are both intercepted in
		// resolveTypeExpr before reaching here.
		c.errs.ReportError(te.Span, "unresolved type name %q", te.Name)
		return types.NeverType()
	}
}
