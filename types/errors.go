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

import "fmt"

// TypeMismatch reports that an expression's type did not fit an
// expected shape.
type TypeMismatch struct {
	Expected ExprType
	Found    ExprType
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
}

// ArityMismatch reports a call with the wrong number of arguments.
type ArityMismatch struct {
	FuncName string
	Want     int
	Got      int
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.FuncName, e.Want, e.Got)
}

// OptionMarkerOnNone reports a redundant or invalid optional marker.
type OptionMarkerOnNone struct {
	Type ExprType
}

func (e *OptionMarkerOnNone) Error() string {
	return fmt.Sprintf("optional marker applied to %s, which is already None-only", e.Type)
}

// MultipleTypeInSum reports a declared sum listing the same SimpleType twice.
type MultipleTypeInSum struct {
	Type SimpleType
}

func (e *MultipleTypeInSum) Error() string {
	return fmt.Sprintf("type %s appears more than once in sum", e.Type)
}

// SubtypeAndTypePresent reports a declared sum where one listed variant
// is a subtype of another, which the canonical constructor would
// otherwise silently drop.
type SubtypeAndTypePresent struct {
	Sub, Super SimpleType
}

func (e *SubtypeAndTypePresent) Error() string {
	return fmt.Sprintf("%s is already covered by %s in this sum", e.Sub, e.Super)
}

// NonConvertibleType reports a requested conversion with no rule
// connecting the source and target types.
type NonConvertibleType struct {
	From ExprType
	To   ConcreteType
}

func (e *NonConvertibleType) Error() string {
	return fmt.Sprintf("%s cannot be converted to %s", e.From, e.To)
}
