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

// validate runs stage 2 of the compiler (spec §4.6): invariant checks
// over the raw Params, surfaced as the typed errors
// solver-glue/colloscopes.rs's `Error` enum enumerates.
func validate(p *Params) error {
	if len(p.Subjects) == 0 {
		return newNoSubject()
	}

	for _, subj := range p.Subjects {
		gl, ok := p.groupList(subj.GroupListID)
		if !ok {
			return newMissingGroupList(subj.ID, subj.PeriodID)
		}

		if missing := rosterGaps(gl); len(missing) > 0 {
			return newGroupListDoesNotContainAllStudents(subj.ID, gl.ID, missing)
		}

		if gl.MaxGroups > 0 && len(gl.Groups) > gl.MaxGroups {
			return newTooManyPrefilledGroups(gl.ID, gl.MaxGroups, len(gl.Groups))
		}

		for _, g := range gl.Groups {
			count := len(g.Prefilled)
			if !g.Sealed && count > gl.StudentsPerGroupMax {
				return newTooManyStudentsInPrefilledGroup(gl.ID, g.ID, count, gl.StudentsPerGroupMax)
			}
			if g.Sealed && count < gl.StudentsPerGroupMin {
				return newTooFewStudentsInSealedGroup(gl.ID, g.ID, count, gl.StudentsPerGroupMin)
			}
			if !g.Sealed && count > subj.StudentsPerGroupMax {
				return newTooManyStudentsInPrefilledGroupForSubject(subj.ID, g.ID, count, subj.StudentsPerGroupMax)
			}
			if g.Sealed && count < subj.StudentsPerGroupMin {
				return newTooFewStudentsInSealedGroupForSubject(subj.ID, g.ID, count, subj.StudentsPerGroupMin)
			}
		}
	}
	return nil
}

// rosterGaps returns every prefilled student who is not present in the
// group-list's own Students roster.
func rosterGaps(gl *GroupList) []StudentID {
	onRoster := make(map[StudentID]bool, len(gl.Students))
	for _, s := range gl.Students {
		onRoster[s] = true
	}
	var missing []StudentID
	seen := map[StudentID]bool{}
	for _, g := range gl.Groups {
		for _, s := range g.Prefilled {
			if !onRoster[s] && !seen[s] {
				missing = append(missing, s)
				seen[s] = true
			}
		}
	}
	return missing
}
