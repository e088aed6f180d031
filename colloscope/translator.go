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

package colloscope

import "github.com/collomatique/cml/ilp"

// Translator maps solver-level decision variables back to the domain
// tuple that produced them, one implementation per constraint family
// (spec §4.6): "each family registers a translator".
type Translator interface {
	// Family names the constraint family this translator belongs to.
	Family() string
	// Lookup resolves v to the domain tuple this translator recognises
	// it from, if any.
	Lookup(v ilp.IlpVar) (interface{}, bool)
}

// GroupSlotTuple names the (group-list, group, slot) a GroupSlot
// variable stands for.
type GroupSlotTuple struct {
	GroupListID GroupListID
	GroupID     GroupID
	SlotID      SlotID
}

// GroupMemberTuple names the (group-list, group, student) a
// GroupMember variable stands for.
type GroupMemberTuple struct {
	GroupListID GroupListID
	GroupID     GroupID
	StudentID   StudentID
}

// AttendTuple names the (student, group-list, group, slot) an Attend
// variable stands for.
type AttendTuple struct {
	StudentID   StudentID
	GroupListID GroupListID
	GroupID     GroupID
	SlotID      SlotID
}

// mapTranslator is the common shape behind every family below: a
// static family name plus a lookup table built once at compile time.
type mapTranslator struct {
	family string
	byVar  map[ilp.IlpVar]interface{}
}

func (t *mapTranslator) Family() string { return t.family }

func (t *mapTranslator) Lookup(v ilp.IlpVar) (interface{}, bool) {
	tuple, ok := t.byVar[v]
	return tuple, ok
}

func newMapTranslator(family string) *mapTranslator {
	return &mapTranslator{family: family, byVar: map[ilp.IlpVar]interface{}{}}
}
