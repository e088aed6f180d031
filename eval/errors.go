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

// Package eval implements CML's evaluator: a single-threaded, eager,
// deterministic tree-walking interpreter over a checked ast.Module.
package eval

import (
	"fmt"

	"github.com/collomatique/cml/common"
)

// EvalError is the family of runtime faults the evaluator can raise.
// Unlike checker.SemError these surface only while a concrete function
// call is being evaluated, never during static elaboration.
type EvalError struct {
	Span common.Span
	Kind string
	msg  string
}

func (e *EvalError) Error() string { return e.msg }

func newEvalError(span common.Span, kind, format string, args ...interface{}) *EvalError {
	return &EvalError{Span: span, Kind: kind, msg: fmt.Sprintf(format, args...)}
}

const (
	KindDivisionByZero  = "DivisionByZero"
	KindMatchExhaustion = "MatchExhaustion"
	KindTypeConversion  = "TypeConversion"
	KindFieldNotFound   = "FieldNotFound"
)
