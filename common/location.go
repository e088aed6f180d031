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

// Span identifies a contiguous run of a Source, used to tag every AST
// node and diagnostic with where it came from.
type Span struct {
	Source     *Source
	Start, End int32
}

// NoSpan is used for synthesized nodes with no originating source text
// (e.g. docstring re-evaluation placeholders).
var NoSpan = Span{}

// String renders the span as "name:line:column".
func (s Span) String() string {
	if s.Source == nil {
		return "<none>"
	}
	line, col := s.Source.Position(s.Start)
	return fmt.Sprintf("%s:%d:%d", s.Source.Name(), line, col)
}

// Text returns the slice of source text covered by the span.
func (s Span) Text() string {
	if s.Source == nil || s.Start < 0 || s.End > int32(len(s.Source.Content())) {
		return ""
	}
	return s.Source.Content()[s.Start:s.End]
}
