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

import "fmt"

// Errors is the accumulator used by the parser and the checker: both
// report every diagnostic they find in a single pass rather than
// stopping at the first one.
type Errors struct {
	errors []*Error
}

// NewErrors returns an empty Errors accumulator.
func NewErrors() *Errors {
	return &Errors{}
}

// ReportError records a formatted diagnostic at the given span.
func (e *Errors) ReportError(span Span, format string, args ...interface{}) {
	e.errors = append(e.errors, &Error{Span: span, Message: fmt.Sprintf(format, args...)})
}

// GetErrors returns all diagnostics accumulated so far, in report order.
func (e *Errors) GetErrors() []*Error {
	return e.errors[:]
}

// Empty reports whether no diagnostics were recorded.
func (e *Errors) Empty() bool {
	return len(e.errors) == 0
}

// String renders all diagnostics, one per line.
func (e *Errors) String() string {
	result := ""
	for i, err := range e.errors {
		if i > 0 {
			result += "\n"
		}
		result += err.ToDisplayString()
	}
	return result
}
