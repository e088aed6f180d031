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

// Package common defines types shared by the CML parser, checker and
// evaluator: source text, spans, and the diagnostic error collector.
package common

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Source wraps a named piece of CML text together with a precomputed
// line index, so that byte offsets produced by the lexer can be turned
// into human-readable line/column pairs cheaply and repeatedly.
type Source struct {
	name       string
	content    string
	lineOffset []int32
}

// NewSource normalises the content to NFC (matching the use of
// golang.org/x/text for rune-aware source handling) and indexes line
// starts for O(log n) offset-to-position lookups.
func NewSource(name, content string) *Source {
	normalized := norm.NFC.String(content)
	s := &Source{name: name, content: normalized}
	s.lineOffset = append(s.lineOffset, 0)
	for i, r := range normalized {
		if r == '\n' {
			s.lineOffset = append(s.lineOffset, int32(i+1))
		}
	}
	return s
}

// Name returns the source's display name (e.g. a file path or "<module>").
func (s *Source) Name() string { return s.name }

// Content returns the normalized source text.
func (s *Source) Content() string { return s.content }

// Position converts a zero-based byte offset into a 1-based line and a
// 0-based column, mirroring common/location.go's Line()/Column() shape.
func (s *Source) Position(offset int32) (line, column int) {
	lo, hi := 0, len(s.lineOffset)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineOffset[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, int(offset - s.lineOffset[lo])
}

// Snippet returns the raw text of the given 1-based line, if present.
func (s *Source) Snippet(line int) (string, bool) {
	if line < 1 || line > len(s.lineOffset) {
		return "", false
	}
	start := s.lineOffset[line-1]
	end := int32(len(s.content))
	if line < len(s.lineOffset) {
		end = s.lineOffset[line] - 1
	}
	if start > end {
		return "", false
	}
	return strings.TrimRight(s.content[start:end], "\r"), true
}
