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

// Package colloscope compiles a concrete school-scheduling problem
// (periods, subjects, teachers, students, slots, group-lists, and
// incompatibility groups) into an ilp.Problem, grounded on
// solver-glue/colloscopes.rs and state-colloscopes/colloscopes.rs from
// the original implementation. The persistent data model itself
// (student/teacher/colloscope CRUD, undo/redo) is out of scope per
// spec §1; this package only consumes a snapshot of it through Params.
package colloscope

// SubjectID, PeriodID, ... are opaque identifiers into the persistent
// data model the embedder owns; the compiler never interprets them
// beyond equality and use as a BTreeMap-style key.
type (
	SubjectID   int
	PeriodID    int
	TeacherID   int
	StudentID   int
	SlotID      int
	GroupListID int
	GroupID     int
	IncompatID  int
)

// WeekMask is a period's per-week interrogation-on/off flag, one entry
// per week of the period (spec §4.6: "for each period, a concrete
// week mask"), grounded on ops/src/slots.rs's explicit week modelling
// (kept here as a first-class named type per SPEC_FULL.md's
// supplemented-features section, rather than an implicit bitset).
type WeekMask []bool

// On reports whether interrogations run in the given week.
func (m WeekMask) On(week int) bool {
	return week >= 0 && week < len(m) && m[week]
}

// Period is one scheduling period (e.g. a term) with its week count
// and mask.
type Period struct {
	ID   PeriodID
	Name string
	Mask WeekMask
}

// Subject is one interrogation subject: its period, the group-list
// students are drawn from, how many groups can interrogate
// concurrently per slot, and the per-group student-count bounds this
// subject imposes (which may differ from the group-list's own bounds
// — see "students per group for subject").
type Subject struct {
	ID                  SubjectID
	Name                string
	PeriodID            PeriodID
	GroupListID         GroupListID
	GroupsPerSlot       int
	StudentsPerGroupMin int
	StudentsPerGroupMax int
}

// Teacher interrogates students at a Slot.
type Teacher struct {
	ID   TeacherID
	Name string
}

// Student is a student enrolled in one or more subjects.
type Student struct {
	ID   StudentID
	Name string
}

// Slot is one concrete interrogation opportunity: a subject, a
// teacher, and the week it falls in. Day/Start are opaque scheduling
// coordinates used only to group slots for the strict-limits and
// one-interrogation-at-a-time constraint families.
type Slot struct {
	ID        SlotID
	SubjectID SubjectID
	TeacherID TeacherID
	Week      int
	Day       int
	Start     int
}

// Group is one group of students within a GroupList. Sealed groups'
// membership is fully fixed (never solved for); a non-sealed group may
// still carry Prefilled students that the solver must keep assigned.
type Group struct {
	ID        GroupID
	Name      string
	Sealed    bool
	Prefilled []StudentID
}

// GroupList is the roster of students split into Groups for one or
// more subjects that share the same grouping.
type GroupList struct {
	ID                  GroupListID
	Name                string
	Students            []StudentID
	Groups              []Group
	StudentsPerGroupMin int
	StudentsPerGroupMax int
	// MaxGroups bounds how many groups this list may declare; zero
	// means unbounded. Exceeding it is TooManyPrefilledGroups.
	MaxGroups int
}

// IncompatGroup names a set of slots that cannot both be occupied in
// the same week (e.g. two slots sharing a teacher or a room).
type IncompatGroup struct {
	ID       IncompatID
	PeriodID PeriodID
	SlotIDs  []SlotID
}

// Settings carries the global caps the strict-limits family enforces.
type Settings struct {
	MaxInterrogationsPerDay  int
	MaxInterrogationsPerWeek int
}

// Params is the full snapshot of persistent scheduling data the
// compiler consumes, per spec §4.6's input description.
type Params struct {
	Periods        []Period
	Subjects       []Subject
	Teachers       []Teacher
	Students       []Student
	Slots          []Slot
	GroupLists     []GroupList
	IncompatGroups []IncompatGroup
	Settings       Settings
}

func (p *Params) period(id PeriodID) (Period, bool) {
	for _, pr := range p.Periods {
		if pr.ID == id {
			return pr, true
		}
	}
	return Period{}, false
}

func (p *Params) groupList(id GroupListID) (*GroupList, bool) {
	for i := range p.GroupLists {
		if p.GroupLists[i].ID == id {
			return &p.GroupLists[i], true
		}
	}
	return nil, false
}

func (g *GroupList) group(id GroupID) (*Group, bool) {
	for i := range g.Groups {
		if g.Groups[i].ID == id {
			return &g.Groups[i], true
		}
	}
	return nil, false
}

func (g *Group) isPrefilled(s StudentID) bool {
	for _, p := range g.Prefilled {
		if p == s {
			return true
		}
	}
	return false
}

func (p *Params) slotsInWeek(week int) []Slot {
	var out []Slot
	for _, s := range p.Slots {
		if s.Week == week {
			out = append(out, s)
		}
	}
	return out
}

func (p *Params) slotsOnDay(week, day int) []Slot {
	var out []Slot
	for _, s := range p.Slots {
		if s.Week == week && s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

// subjectsUsingGroupList returns every subject that draws its students
// from the given group-list, used by the "students per group for
// subject" family.
func (p *Params) subjectsUsingGroupList(id GroupListID) []Subject {
	var out []Subject
	for _, s := range p.Subjects {
		if s.GroupListID == id {
			out = append(out, s)
		}
	}
	return out
}
