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

import "github.com/collomatique/cml/value"

// fieldKey identifies one Object.field lookup for the field-access cache.
type fieldKey struct {
	typeName string
	handle   interface{}
	field    string
}

// docKey identifies one rendered-docstring lookup for the pretty-print
// cache: the same function called with the same stringified arguments
// renders to the same origin text.
type docKey struct {
	funcName string
	argsRepr string
}

// Cache holds per-evaluation memoization state. A fresh *Cache must be
// created for each top-level Eval call and threaded unshared through
// the whole call tree, so unrelated evaluations never see each other's
// cached object lookups.
type Cache struct {
	fieldAccess map[fieldKey]value.Value
	prettyPrint map[docKey]string
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{fieldAccess: map[fieldKey]value.Value{}, prettyPrint: map[docKey]string{}}
}
