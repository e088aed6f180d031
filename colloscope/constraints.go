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
	"errors"
	"sort"

	"github.com/collomatique/cml/evalvar"
	"github.com/collomatique/cml/ilp"
)

// addBound adds c to the builder, treating an exact duplicate as a
// no-op: StudentsPerGroups and StudentsPerGroupsForSubject legitimately
// emit the same bound when a subject's limits mirror its group-list's,
// and the second registration carries no new information.
func (c *compiler) addBound(bound ilp.Constraint[ilp.IlpVar]) error {
	err := c.b.AddConstraint(bound)
	if err == nil || errors.Is(err, ilp.ErrDuplicateConstraint) {
		return nil
	}
	return err
}

// The eight constraint families below mirror
// solver-glue/colloscopes.rs's ColloscopeTranslator enum one for one:
// each adds whatever linear constraints its semantics require (some
// add none, being fully enforced by validate) and registers a
// Translator so a solution's raw variable assignment can be read back
// as domain facts.

// addAttendLinks registers the AND-linearisation for every Attend key
// that was materialised as a free variable, linking it to its
// GroupMember and GroupSlot factors. Keys defer_fix already resolved
// to a constant need no linking.
func (c *compiler) addAttendLinks() error {
	keys := make([]evalvar.Key, 0, len(c.vars))
	for k := range c.vars {
		if k.Variant == varAttend {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	for _, k := range keys {
		student := studentIDOf(k.Fields[0])
		g := groupRefOf(k.Fields[1])
		slot := slotIDOf(k.Fields[2])
		if err := c.addLinkingConstraints(student, g, slot); err != nil {
			return err
		}
	}
	return nil
}

// addGroupsPerSlot bounds how many groups concurrently interrogate at
// each slot to its subject's GroupsPerSlot.
func (c *compiler) addGroupsPerSlot() error {
	t := newMapTranslator("GroupsPerSlot")
	for _, slot := range c.params.Slots {
		subj, ok := c.subjectOf(slot.SubjectID)
		if !ok {
			continue
		}
		sum := ilp.ConstLinExpr[ilp.IlpVar](0)
		for _, g := range c.groupsForGroupList(subj.GroupListID) {
			sum = sum.Add(c.slotExpr(g, slot.ID))
			t.byVar[groupSlotKey(g, slot.ID).IlpVar()] = GroupSlotTuple{g.GroupList, g.Group, slot.ID}
		}
		if err := c.b.AddConstraint(ilp.NewLE(sum, ilp.ConstLinExpr[ilp.IlpVar](float64(subj.GroupsPerSlot)))); err != nil {
			return err
		}
	}
	c.translators = append(c.translators, t)
	return nil
}

// addStudentsPerGroup bounds each non-sealed group's membership count
// to its group-list's StudentsPerGroupMin/Max; sealed groups are
// already fully fixed so need no ILP constraint here.
func (c *compiler) addStudentsPerGroup() error {
	t := newMapTranslator("StudentsPerGroups")
	for _, gl := range c.params.GroupLists {
		for _, g := range gl.Groups {
			ref := groupRef{gl.ID, g.ID}
			for _, student := range gl.Students {
				t.byVar[groupMemberKey(ref, student).IlpVar()] = GroupMemberTuple{gl.ID, g.ID, student}
			}
			if g.Sealed {
				continue
			}
			sum := ilp.ConstLinExpr[ilp.IlpVar](0)
			for _, student := range gl.Students {
				sum = sum.Add(c.memberExpr(ref, student))
			}
			if err := c.addBound(ilp.NewLE(sum, ilp.ConstLinExpr[ilp.IlpVar](float64(gl.StudentsPerGroupMax)))); err != nil {
				return err
			}
			if err := c.addBound(ilp.NewLE(ilp.ConstLinExpr[ilp.IlpVar](float64(gl.StudentsPerGroupMin)), sum)); err != nil {
				return err
			}
		}
	}
	c.translators = append(c.translators, t)
	return nil
}

// addGroupCount is structural: the number of groups a list may declare
// is checked once in validate, so this family adds no constraints and
// registers an empty translator purely to keep the eight-family
// enumeration complete.
func (c *compiler) addGroupCount() {
	c.translators = append(c.translators, newMapTranslator("GroupCount"))
}

// addSealedGroups is structural: sealed membership is fixed entirely
// through groupMemberFixedValue, so this family adds no constraints.
func (c *compiler) addSealedGroups() {
	c.translators = append(c.translators, newMapTranslator("SealedGroups"))
}

// addStudentsPerGroupForSubject re-applies the per-group student-count bounds
// using a subject's own (possibly stricter) limits rather than the
// group-list's.
func (c *compiler) addStudentsPerGroupForSubject() error {
	t := newMapTranslator("StudentsPerGroupsForSubject")
	for _, subj := range c.params.Subjects {
		gl, ok := c.params.groupList(subj.GroupListID)
		if !ok {
			continue
		}
		for _, g := range gl.Groups {
			if g.Sealed {
				continue
			}
			ref := groupRef{gl.ID, g.ID}
			sum := ilp.ConstLinExpr[ilp.IlpVar](0)
			for _, student := range gl.Students {
				sum = sum.Add(c.memberExpr(ref, student))
				t.byVar[groupMemberKey(ref, student).IlpVar()] = GroupMemberTuple{gl.ID, g.ID, student}
			}
			if err := c.addBound(ilp.NewLE(sum, ilp.ConstLinExpr[ilp.IlpVar](float64(subj.StudentsPerGroupMax)))); err != nil {
				return err
			}
			if err := c.addBound(ilp.NewLE(ilp.ConstLinExpr[ilp.IlpVar](float64(subj.StudentsPerGroupMin)), sum)); err != nil {
				return err
			}
		}
	}
	c.translators = append(c.translators, t)
	return nil
}

// addStrictLimits caps each student's total interrogation count per
// day and per week to Settings' global limits.
func (c *compiler) addStrictLimits() error {
	t := newMapTranslator("StrictLimits")
	if c.params.Settings.MaxInterrogationsPerDay > 0 {
		for _, dayKey := range c.distinctDays() {
			slots := c.params.slotsOnDay(dayKey.week, dayKey.day)
			for _, student := range c.params.Students {
				sum := ilp.ConstLinExpr[ilp.IlpVar](0)
				for _, slot := range slots {
					for _, g := range c.groupsForSlot(slot) {
						sum = sum.Add(c.attendExpr(student.ID, g, slot.ID))
						t.byVar[attendKey(student.ID, g, slot.ID).IlpVar()] = AttendTuple{student.ID, g.GroupList, g.Group, slot.ID}
					}
				}
				if err := c.addBound(ilp.NewLE(sum, ilp.ConstLinExpr[ilp.IlpVar](float64(c.params.Settings.MaxInterrogationsPerDay)))); err != nil {
					return err
				}
			}
		}
	}
	if c.params.Settings.MaxInterrogationsPerWeek > 0 {
		for _, week := range c.distinctWeeks() {
			slots := c.params.slotsInWeek(week)
			for _, student := range c.params.Students {
				sum := ilp.ConstLinExpr[ilp.IlpVar](0)
				for _, slot := range slots {
					for _, g := range c.groupsForSlot(slot) {
						sum = sum.Add(c.attendExpr(student.ID, g, slot.ID))
						t.byVar[attendKey(student.ID, g, slot.ID).IlpVar()] = AttendTuple{student.ID, g.GroupList, g.Group, slot.ID}
					}
				}
				if err := c.addBound(ilp.NewLE(sum, ilp.ConstLinExpr[ilp.IlpVar](float64(c.params.Settings.MaxInterrogationsPerWeek)))); err != nil {
					return err
				}
			}
		}
	}
	c.translators = append(c.translators, t)
	return nil
}

// addOneInterrogationAtATime forbids a student from attending two
// slots scheduled at the same (week, day, start) coordinate.
func (c *compiler) addOneInterrogationAtATime() error {
	t := newMapTranslator("OneInterrogationAtATime")
	for _, bucket := range c.simultaneousSlots() {
		if len(bucket) < 2 {
			continue
		}
		for _, student := range c.params.Students {
			sum := ilp.ConstLinExpr[ilp.IlpVar](0)
			for _, slot := range bucket {
				for _, g := range c.groupsForSlot(slot) {
					sum = sum.Add(c.attendExpr(student.ID, g, slot.ID))
					t.byVar[attendKey(student.ID, g, slot.ID).IlpVar()] = AttendTuple{student.ID, g.GroupList, g.Group, slot.ID}
				}
			}
			if err := c.addBound(ilp.NewLE(sum, ilp.ConstLinExpr[ilp.IlpVar](1))); err != nil {
				return err
			}
		}
	}
	c.translators = append(c.translators, t)
	return nil
}

// addIncompatForSingleWeek forbids a student from attending two slots
// of the same incompatibility group within the same week.
func (c *compiler) addIncompatForSingleWeek() error {
	t := newMapTranslator("IncompatForSingleWeek")
	for _, ig := range c.params.IncompatGroups {
		byWeek := map[int][]Slot{}
		var weeks []int
		for _, sid := range ig.SlotIDs {
			if slot, ok := c.slotByID(sid); ok {
				if _, seen := byWeek[slot.Week]; !seen {
					weeks = append(weeks, slot.Week)
				}
				byWeek[slot.Week] = append(byWeek[slot.Week], slot)
			}
		}
		for _, week := range weeks {
			slots := byWeek[week]
			if len(slots) < 2 {
				continue
			}
			for _, student := range c.params.Students {
				sum := ilp.ConstLinExpr[ilp.IlpVar](0)
				for _, slot := range slots {
					for _, g := range c.groupsForSlot(slot) {
						sum = sum.Add(c.attendExpr(student.ID, g, slot.ID))
						t.byVar[attendKey(student.ID, g, slot.ID).IlpVar()] = AttendTuple{student.ID, g.GroupList, g.Group, slot.ID}
					}
				}
				if err := c.addBound(ilp.NewLE(sum, ilp.ConstLinExpr[ilp.IlpVar](1))); err != nil {
					return err
				}
			}
		}
	}
	c.translators = append(c.translators, t)
	return nil
}

func (c *compiler) subjectOf(id SubjectID) (Subject, bool) {
	for _, s := range c.params.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

func (c *compiler) slotByID(id SlotID) (Slot, bool) {
	for _, s := range c.params.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

func (c *compiler) groupsForGroupList(id GroupListID) []groupRef {
	gl, ok := c.params.groupList(id)
	if !ok {
		return nil
	}
	out := make([]groupRef, len(gl.Groups))
	for i, g := range gl.Groups {
		out[i] = groupRef{gl.ID, g.ID}
	}
	return out
}

// groupsForSlot lists the groups eligible to attend slot: every group
// of the group-list its subject draws from.
func (c *compiler) groupsForSlot(slot Slot) []groupRef {
	subj, ok := c.subjectOf(slot.SubjectID)
	if !ok {
		return nil
	}
	return c.groupsForGroupList(subj.GroupListID)
}

type dayKey struct{ week, day int }

func (c *compiler) distinctDays() []dayKey {
	seen := map[dayKey]bool{}
	var out []dayKey
	for _, s := range c.params.Slots {
		k := dayKey{s.Week, s.Day}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func (c *compiler) distinctWeeks() []int {
	seen := map[int]bool{}
	var out []int
	for _, s := range c.params.Slots {
		if !seen[s.Week] {
			seen[s.Week] = true
			out = append(out, s.Week)
		}
	}
	return out
}

// simultaneousSlots buckets every slot by its (week, day, start)
// coordinate.
func (c *compiler) simultaneousSlots() [][]Slot {
	type key struct{ week, day, start int }
	buckets := map[key][]Slot{}
	var order []key
	for _, s := range c.params.Slots {
		k := key{s.Week, s.Day, s.Start}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], s)
	}
	out := make([][]Slot, len(order))
	for i, k := range order {
		out[i] = buckets[k]
	}
	return out
}
