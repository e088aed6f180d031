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
	"testing"

	"github.com/stretchr/testify/require"
)

// minimalParams builds a tiny but complete scheduling instance: one
// subject, one group list with two non-sealed groups, two students and
// two slots in the same week.
func minimalParams() *Params {
	return &Params{
		Periods:  []Period{{ID: 1, Name: "term1", Mask: WeekMask{true, true}}},
		Subjects: []Subject{{ID: 1, Name: "maths", PeriodID: 1, GroupListID: 1, GroupsPerSlot: 1, StudentsPerGroupMin: 1, StudentsPerGroupMax: 2}},
		Teachers: []Teacher{{ID: 1, Name: "Dupont"}},
		Students: []Student{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
		Slots: []Slot{
			{ID: 1, SubjectID: 1, TeacherID: 1, Week: 0, Day: 0, Start: 8},
			{ID: 2, SubjectID: 1, TeacherID: 1, Week: 0, Day: 0, Start: 9},
		},
		GroupLists: []GroupList{{
			ID:                  1,
			Name:                "maths groups",
			Students:            []StudentID{1, 2},
			Groups:              []Group{{ID: 1, Name: "G1"}, {ID: 2, Name: "G2"}},
			StudentsPerGroupMin: 1,
			StudentsPerGroupMax: 2,
		}},
		Settings: Settings{MaxInterrogationsPerDay: 1, MaxInterrogationsPerWeek: 1},
	}
}

func TestCompileMinimalParamsSucceeds(t *testing.T) {
	problem, translators, err := Compile(minimalParams())
	require.NoError(t, err)
	require.NotNil(t, problem)
	require.NotEmpty(t, problem.Vars)
	require.Len(t, translators, 8)
}

func TestCompileIsDeterministicAcrossRuns(t *testing.T) {
	first, _, err := Compile(minimalParams())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, _, err := Compile(minimalParams())
		require.NoError(t, err)
		require.Equal(t, first.Vars, again.Vars)
		require.Equal(t, first.LeqMat, again.LeqMat)
		require.Equal(t, first.LeqConstants, again.LeqConstants)
		require.Equal(t, first.EqMat, again.EqMat)
	}
}

func TestCompileNoSubjectFails(t *testing.T) {
	p := minimalParams()
	p.Subjects = nil
	_, _, err := Compile(p)
	require.Error(t, err)
	var target *NoSubject
	require.ErrorAs(t, err, &target)
}

func TestCompileMissingGroupListFails(t *testing.T) {
	p := minimalParams()
	p.Subjects[0].GroupListID = 99
	_, _, err := Compile(p)
	require.Error(t, err)
	var target *MissingGroupList
	require.ErrorAs(t, err, &target)
}

func TestCompileGroupListDoesNotContainAllStudentsFails(t *testing.T) {
	p := minimalParams()
	p.GroupLists[0].Groups[0].Prefilled = []StudentID{42}
	_, _, err := Compile(p)
	require.Error(t, err)
	var target *GroupListDoesNotContainAllStudents
	require.ErrorAs(t, err, &target)
}

func TestCompileTooManyStudentsInPrefilledGroupFails(t *testing.T) {
	p := minimalParams()
	p.GroupLists[0].StudentsPerGroupMax = 1
	p.GroupLists[0].Groups[0].Prefilled = []StudentID{1, 2}
	_, _, err := Compile(p)
	require.Error(t, err)
	var target *TooManyStudentsInPrefilledGroup
	require.ErrorAs(t, err, &target)
}

func TestCompileTooFewStudentsInSealedGroupFails(t *testing.T) {
	p := minimalParams()
	p.GroupLists[0].Groups[0].Sealed = true
	p.GroupLists[0].Groups[0].Prefilled = nil
	p.GroupLists[0].StudentsPerGroupMin = 1
	_, _, err := Compile(p)
	require.Error(t, err)
	var target *TooFewStudentsInSealedGroup
	require.ErrorAs(t, err, &target)
}

func TestCompileTooManyPrefilledGroupsFails(t *testing.T) {
	p := minimalParams()
	p.GroupLists[0].MaxGroups = 1
	_, _, err := Compile(p)
	require.Error(t, err)
	var target *TooManyPrefilledGroups
	require.ErrorAs(t, err, &target)
}

func TestVarSchemaExposesAllThreeVariants(t *testing.T) {
	schema, err := VarSchema(minimalParams())
	require.NoError(t, err)
	require.Contains(t, schema, varGroupMember)
	require.Contains(t, schema, varGroupSlot)
	require.Contains(t, schema, varAttend)
	require.Len(t, schema[varAttend], 3)
}

func TestAttendFixedValueIsZeroWhenEitherFactorIsZero(t *testing.T) {
	p := minimalParams()
	p.GroupLists[0].Groups[0].Sealed = true
	p.GroupLists[0].Groups[0].Prefilled = []StudentID{1, 2}

	// G1 is sealed with both students prefilled in: GroupMember fixes to 1.
	g1 := groupMemberFixedValue(p, groupRef{GroupList: 1, Group: 1}, 1)
	require.NotNil(t, g1)
	require.Equal(t, 1.0, *g1)

	// G2 is non-sealed, but every student is already prefilled into the
	// sibling sealed group G1, so GroupMember(G2,student) fixes to 0 and
	// Attend(student,G2,slot) must follow regardless of GroupSlot.
	g2 := groupRef{GroupList: 1, Group: 2}
	v := attendFixedValue(p, g2, 1, 1)
	require.NotNil(t, v)
	require.Equal(t, 0.0, *v)
}
