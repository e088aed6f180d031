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
	"fmt"

	"github.com/collomatique/cml/common"
)

// SemError is the family of semantic diagnostics the checker records.
// Each variant carries enough structure for a caller to act on it
// programmatically; their Error() strings are also what common.Errors
// renders to users.
type SemError struct {
	Span common.Span
	Kind string
	msg  string
}

func (e *SemError) Error() string { return e.msg }

func newSemError(span common.Span, kind, format string, args ...interface{}) *SemError {
	return &SemError{Span: span, Kind: kind, msg: fmt.Sprintf(format, args...)}
}

const (
	KindUnresolvedName     = "UnresolvedName"
	KindUnresolvedType     = "UnresolvedType"
	KindArityMismatch      = "ArityMismatch"
	KindTypeMismatch       = "TypeMismatch"
	KindNoSuchOperator     = "NoSuchOperator"
	KindNoSuchField        = "NoSuchField"
	KindNonExhaustiveMatch = "NonExhaustiveMatch"
	KindRedundantBranch    = "RedundantBranch"
	KindDuplicateDecl      = "DuplicateDecl"
)
