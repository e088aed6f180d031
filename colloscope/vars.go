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

import (
	"github.com/collomatique/cml/evalvar"
)

// Decision-variable families, grounded on
// collomatique_solver_colloscopes::base::variables::MainVariable in
// solver-glue/colloscopes.rs: the original splits variables into a
// "main" family (group membership and group/slot assignment) and a
// "structure" family (the AND-linearisation helpers that make
// attendance linear). This package keeps that split as three evalvar
// variants: GroupMember, GroupSlot and Attend.
const (
	varGroupMember = "GroupMember"
	varGroupSlot   = "GroupSlot"
	varAttend      = "Attend"
)

func groupRefOf(fv evalvar.FieldValue) groupRef   { return fv.Object.Value.(objHandle).id.(groupRef) }
func studentIDOf(fv evalvar.FieldValue) StudentID { return fv.Object.Value.(objHandle).id.(StudentID) }
func slotIDOf(fv evalvar.FieldValue) SlotID       { return fv.Object.Value.(objHandle).id.(SlotID) }

// groupMemberFixedValue reports the constant GroupMember(group,student)
// must take, or nil if it is a free decision variable:
//   - sealed group: fixed to 1 if student is in the group's prefilled
//     roster, else fixed to 0 (spec §4.6 "sealed groups").
//   - non-sealed group: fixed to 1 if student is prefilled into this
//     group, fixed to 0 if student is prefilled into a *different*
//     group of the same list, fixed to 0 if student isn't even on the
//     group-list's roster, otherwise free.
func groupMemberFixedValue(p *Params, g groupRef, student StudentID) *float64 {
	gl, ok := p.groupList(g.GroupList)
	if !ok {
		return constPtr(0)
	}
	grp, ok := gl.group(g.Group)
	if !ok {
		return constPtr(0)
	}
	onRoster := false
	for _, s := range gl.Students {
		if s == student {
			onRoster = true
			break
		}
	}
	if !onRoster {
		return constPtr(0)
	}
	if grp.Sealed {
		if grp.isPrefilled(student) {
			return constPtr(1)
		}
		return constPtr(0)
	}
	if grp.isPrefilled(student) {
		return constPtr(1)
	}
	for _, other := range gl.Groups {
		if other.ID != grp.ID && other.isPrefilled(student) {
			return constPtr(0)
		}
	}
	return nil
}

// groupSlotFixedValue reports the constant GroupSlot(group,slot) must
// take, or nil if the group may freely be scheduled into that slot:
// fixed to 0 whenever the slot's subject doesn't draw from this
// group's list at all.
func groupSlotFixedValue(p *Params, g groupRef, slot SlotID) *float64 {
	var sl *Slot
	for i := range p.Slots {
		if p.Slots[i].ID == slot {
			sl = &p.Slots[i]
			break
		}
	}
	if sl == nil {
		return constPtr(0)
	}
	for _, subj := range p.subjectsUsingGroupList(g.GroupList) {
		if subj.ID == sl.SubjectID {
			return nil
		}
	}
	return constPtr(0)
}

func constPtr(v float64) *float64 { return &v }

// declareSchema builds the evalvar.Schema materialising every decision
// variable the compiler's constraint families reference.
func declareSchema(p *Params) (*evalvar.Schema, error) {
	groupMember := evalvar.Declare(varGroupMember).
		ObjectField("group", "Group").
		ObjectField("student", "Student").
		DeferFix(func(k evalvar.Key, env evalvar.Env) (*float64, error) {
			return groupMemberFixedValue(p, groupRefOf(k.Fields[0]), studentIDOf(k.Fields[1])), nil
		}).
		Build()

	groupSlot := evalvar.Declare(varGroupSlot).
		ObjectField("group", "Group").
		ObjectField("slot", "Slot").
		DeferFix(func(k evalvar.Key, env evalvar.Env) (*float64, error) {
			return groupSlotFixedValue(p, groupRefOf(k.Fields[0]), slotIDOf(k.Fields[1])), nil
		}).
		Build()

	attend := evalvar.Declare(varAttend).
		ObjectField("student", "Student").
		ObjectField("group", "Group").
		ObjectField("slot", "Slot").
		DeferFix(func(k evalvar.Key, env evalvar.Env) (*float64, error) {
			student := studentIDOf(k.Fields[0])
			g := groupRefOf(k.Fields[1])
			slot := slotIDOf(k.Fields[2])
			return attendFixedValue(p, g, student, slot), nil
		}).
		Build()

	return evalvar.NewSchema(groupMember, groupSlot, attend)
}

// attendFixedValue mirrors the AND of GroupMember and GroupSlot: fixed
// to 0 as soon as either factor is known-zero, fixed to their product
// once both factors are constants, otherwise free — in which case
// compile.go links Attend to the two factors with explicit linear
// constraints instead (the standard AND-linearisation of a product of
// two binaries).
func attendFixedValue(p *Params, g groupRef, student StudentID, slot SlotID) *float64 {
	mv := groupMemberFixedValue(p, g, student)
	sv := groupSlotFixedValue(p, g, slot)
	if mv != nil && *mv == 0 {
		return constPtr(0)
	}
	if sv != nil && *sv == 0 {
		return constPtr(0)
	}
	if mv != nil && sv != nil {
		return constPtr(*mv * *sv)
	}
	return nil
}
