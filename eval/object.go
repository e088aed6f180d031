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

package eval

import (
	"github.com/collomatique/cml/evalvar"
	"github.com/collomatique/cml/value"
)

// EvalObject is the capability an embedder supplies so CML code can
// read fields off opaque domain objects (e.g. a student, a subject)
// without the evaluator knowing their Go representation. The
// colloscope package is the one concrete implementation in this
// module; other embedders can supply their own.
type EvalObject interface {
	// Field reads one named field off handle, whose declared CML type
	// is typeName, returning the CML value of that field.
	Field(typeName string, handle interface{}, field string) (value.Value, error)

	// ObjectsOfType returns every live handle of the named type, for
	// `@[TypeName]` to quantify over.
	ObjectsOfType(typeName string) ([]evalvar.Handle, error)
}
