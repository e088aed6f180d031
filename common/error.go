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

package common

import (
	"fmt"
	"strings"
)

// Error represents a single diagnostic tied to a span of source text.
type Error struct {
	Span    Span
	Message string
}

// Error implements the error interface so *Error can be returned or
// wrapped with fmt.Errorf("%w") at fail-fast boundaries.
func (e *Error) Error() string {
	return e.ToDisplayString()
}

// ToDisplayString renders the error with a source snippet and a caret
// pointing at the offending column.
func (e *Error) ToDisplayString() string {
	if e.Span.Source == nil {
		return fmt.Sprintf("ERROR: %s", e.Message)
	}
	line, column := e.Span.Source.Position(e.Span.Start)
	result := fmt.Sprintf("ERROR: %s:%d:%d: %s", e.Span.Source.Name(), line, column, e.Message)
	if snippet, found := e.Span.Source.Snippet(line); found {
		result += "\n | " + snippet
		result += "\n | " + strings.Repeat(".", column) + "^"
	}
	return result
}
