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

import "fmt"

// CompileError is the family ColloscopeCompileError instantiates: every
// member carries the offending domain identifier(s), grounded
// one-for-one on solver-glue/colloscopes.rs's `Error` enum.
type CompileError interface {
	error
	isCompileError()
}

type baseErr struct{ msg string }

func (e baseErr) Error() string  { return e.msg }
func (baseErr) isCompileError()  {}

// NoSubject reports that the problem declares no interrogation subjects at all.
type NoSubject struct{ baseErr }

func newNoSubject() *NoSubject {
	return &NoSubject{baseErr{"there should be at least one subject with interrogations"}}
}

// MissingGroupList reports a subject whose GroupListID does not resolve.
type MissingGroupList struct {
	baseErr
	SubjectID SubjectID
	PeriodID  PeriodID
}

func newMissingGroupList(subj SubjectID, period PeriodID) *MissingGroupList {
	return &MissingGroupList{
		baseErr:   baseErr{fmt.Sprintf("subject %v has no associated group list for period %v", subj, period)},
		SubjectID: subj, PeriodID: period,
	}
}

// GroupListDoesNotContainAllStudents reports a subject whose group list
// has prefilled groups naming students absent from the list's own
// Students roster; Missing lists those students.
type GroupListDoesNotContainAllStudents struct {
	baseErr
	SubjectID   SubjectID
	GroupListID GroupListID
	Missing     []StudentID
}

func newGroupListDoesNotContainAllStudents(subj SubjectID, gl GroupListID, missing []StudentID) *GroupListDoesNotContainAllStudents {
	return &GroupListDoesNotContainAllStudents{
		baseErr:     baseErr{fmt.Sprintf("some students prefilled for subject %v do not appear in the roster of group list %v", subj, gl)},
		SubjectID:   subj, GroupListID: gl, Missing: missing,
	}
}

// TooManyStudentsInPrefilledGroup reports a non-sealed group whose
// prefilled roster already exceeds the group-list's StudentsPerGroupMax.
type TooManyStudentsInPrefilledGroup struct {
	baseErr
	GroupListID GroupListID
	GroupID     GroupID
	Count, Max  int
}

func newTooManyStudentsInPrefilledGroup(gl GroupListID, g GroupID, count, max int) *TooManyStudentsInPrefilledGroup {
	return &TooManyStudentsInPrefilledGroup{
		baseErr:     baseErr{fmt.Sprintf("prefilled group %v exceeds the maximum number of students per group (group list %v)", g, gl)},
		GroupListID: gl, GroupID: g, Count: count, Max: max,
	}
}

// TooFewStudentsInSealedGroup reports a sealed group whose fixed
// roster is below the group-list's StudentsPerGroupMin.
type TooFewStudentsInSealedGroup struct {
	baseErr
	GroupListID GroupListID
	GroupID     GroupID
	Count, Min  int
}

func newTooFewStudentsInSealedGroup(gl GroupListID, g GroupID, count, min int) *TooFewStudentsInSealedGroup {
	return &TooFewStudentsInSealedGroup{
		baseErr:     baseErr{fmt.Sprintf("sealed group %v does not have enough students (group list %v)", g, gl)},
		GroupListID: gl, GroupID: g, Count: count, Min: min,
	}
}

// TooManyStudentsInPrefilledGroupForSubject is TooManyStudentsInPrefilledGroup
// specialised against a subject's own (possibly stricter) bounds.
type TooManyStudentsInPrefilledGroupForSubject struct {
	baseErr
	SubjectID  SubjectID
	GroupID    GroupID
	Count, Max int
}

func newTooManyStudentsInPrefilledGroupForSubject(subj SubjectID, g GroupID, count, max int) *TooManyStudentsInPrefilledGroupForSubject {
	return &TooManyStudentsInPrefilledGroupForSubject{
		baseErr:    baseErr{fmt.Sprintf("prefilled group %v exceeds the maximum number of students per group when specialised for subject %v", g, subj)},
		SubjectID:  subj, GroupID: g, Count: count, Max: max,
	}
}

// TooFewStudentsInSealedGroupForSubject is TooFewStudentsInSealedGroup
// specialised against a subject's own (possibly stricter) bounds.
type TooFewStudentsInSealedGroupForSubject struct {
	baseErr
	SubjectID  SubjectID
	GroupID    GroupID
	Count, Min int
}

func newTooFewStudentsInSealedGroupForSubject(subj SubjectID, g GroupID, count, min int) *TooFewStudentsInSealedGroupForSubject {
	return &TooFewStudentsInSealedGroupForSubject{
		baseErr:    baseErr{fmt.Sprintf("sealed group %v does not have enough students when specialised for subject %v", g, subj)},
		SubjectID:  subj, GroupID: g, Count: count, Min: min,
	}
}

// TooManyPrefilledGroups reports a group-list declaring more groups
// than its MaxGroups cap allows.
type TooManyPrefilledGroups struct {
	baseErr
	GroupListID GroupListID
	Max         int
	Count       int
}

func newTooManyPrefilledGroups(gl GroupListID, max, count int) *TooManyPrefilledGroups {
	return &TooManyPrefilledGroups{
		baseErr:     baseErr{fmt.Sprintf("group list %v has a maximum number of groups of %d but has %d groups", gl, max, count)},
		GroupListID: gl, Max: max, Count: count,
	}
}
