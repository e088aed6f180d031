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

package parser

import (
	"fmt"

	"github.com/collomatique/cml/common"
)

// ParseError is a single syntactic diagnostic: what token was expected
// and where parsing actually was. Parser never returns these directly;
// they accumulate into the common.Errors passed back from ParseModule.
type ParseError struct {
	Span     common.Span
	Expected string
	Found    string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %q", e.Span, e.Expected, e.Found)
}
