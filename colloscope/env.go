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
	"fmt"

	"github.com/collomatique/cml/evalvar"
	"github.com/collomatique/cml/types"
	"github.com/collomatique/cml/value"
)

// objHandle is the concrete handle wrapped by every value.Object and
// evalvar.Handle this package produces: a declared type name plus the
// underlying domain identifier.
type objHandle struct {
	typeName string
	id       interface{}
}

func (h objHandle) String() string { return fmt.Sprintf("%s#%v", h.typeName, h.id) }

// Env adapts a Params snapshot to both capability sets the rest of the
// core needs from an embedder: evalvar.Env (decision-variable
// materialisation) and eval.EvalObject (CML field access), per spec
// §6.1 and §6.2.
type Env struct {
	params *Params
}

// NewEnv wraps params for consumption by the checker, evaluator and
// evalvar materialiser.
func NewEnv(params *Params) *Env { return &Env{params: params} }

// ObjectsOfType implements evalvar.Env.
func (e *Env) ObjectsOfType(typeName string) ([]evalvar.Handle, error) {
	switch typeName {
	case "Student":
		out := make([]evalvar.Handle, len(e.params.Students))
		for i, s := range e.params.Students {
			out[i] = handle(typeName, s.ID)
		}
		return out, nil
	case "Teacher":
		out := make([]evalvar.Handle, len(e.params.Teachers))
		for i, t := range e.params.Teachers {
			out[i] = handle(typeName, t.ID)
		}
		return out, nil
	case "Subject":
		out := make([]evalvar.Handle, len(e.params.Subjects))
		for i, s := range e.params.Subjects {
			out[i] = handle(typeName, s.ID)
		}
		return out, nil
	case "Slot":
		out := make([]evalvar.Handle, len(e.params.Slots))
		for i, s := range e.params.Slots {
			out[i] = handle(typeName, s.ID)
		}
		return out, nil
	case "GroupList":
		out := make([]evalvar.Handle, len(e.params.GroupLists))
		for i, g := range e.params.GroupLists {
			out[i] = handle(typeName, g.ID)
		}
		return out, nil
	case "Group":
		var out []evalvar.Handle
		for _, gl := range e.params.GroupLists {
			for _, g := range gl.Groups {
				out = append(out, handle(typeName, groupRef{gl.ID, g.ID}))
			}
		}
		return out, nil
	default:
		return nil, &evalvar.ErrUnknownType{TypeName: typeName}
	}
}

// groupRef identifies a Group across the ambient GroupList it belongs to.
type groupRef struct {
	GroupList GroupListID
	Group     GroupID
}

func (r groupRef) String() string { return fmt.Sprintf("%v.%v", r.GroupList, r.Group) }

func handle(typeName string, id interface{}) evalvar.Handle {
	return evalvar.Handle{ID: fmt.Sprintf("%s#%v", typeName, id), Value: objHandle{typeName: typeName, id: id}}
}

// Field implements eval.EvalObject: reading a scalar or object-valued
// field off one of this package's opaque handles.
func (e *Env) Field(typeName string, raw interface{}, field string) (value.Value, error) {
	h, ok := raw.(objHandle)
	if !ok {
		return nil, fmt.Errorf("colloscope: unexpected handle representation %T", raw)
	}
	switch typeName {
	case "Student":
		id := h.id.(StudentID)
		for _, s := range e.params.Students {
			if s.ID == id {
				return studentField(s, field)
			}
		}
	case "Teacher":
		id := h.id.(TeacherID)
		for _, t := range e.params.Teachers {
			if t.ID == id {
				return teacherField(t, field)
			}
		}
	case "Subject":
		id := h.id.(SubjectID)
		for _, s := range e.params.Subjects {
			if s.ID == id {
				return subjectField(s, field)
			}
		}
	case "Slot":
		id := h.id.(SlotID)
		for _, s := range e.params.Slots {
			if s.ID == id {
				return slotField(s, field)
			}
		}
	case "GroupList":
		id := h.id.(GroupListID)
		if gl, ok := e.params.groupList(id); ok {
			return groupListField(*gl, field)
		}
	case "Group":
		ref := h.id.(groupRef)
		if gl, ok := e.params.groupList(ref.GroupList); ok {
			if g, ok := gl.group(ref.Group); ok {
				return groupField(*g, field)
			}
		}
	}
	return nil, fmt.Errorf("colloscope: %s.%s: object not found", typeName, field)
}

func studentField(s Student, field string) (value.Value, error) {
	switch field {
	case "name":
		return value.String(s.Name), nil
	default:
		return nil, fmt.Errorf("Student has no field %q", field)
	}
}

func teacherField(t Teacher, field string) (value.Value, error) {
	switch field {
	case "name":
		return value.String(t.Name), nil
	default:
		return nil, fmt.Errorf("Teacher has no field %q", field)
	}
}

func subjectField(s Subject, field string) (value.Value, error) {
	switch field {
	case "name":
		return value.String(s.Name), nil
	case "groups_per_slot":
		return value.Int(s.GroupsPerSlot), nil
	case "students_per_group_min":
		return value.Int(s.StudentsPerGroupMin), nil
	case "students_per_group_max":
		return value.Int(s.StudentsPerGroupMax), nil
	default:
		return nil, fmt.Errorf("Subject has no field %q", field)
	}
}

func slotField(s Slot, field string) (value.Value, error) {
	switch field {
	case "week":
		return value.Int(s.Week), nil
	case "day":
		return value.Int(s.Day), nil
	case "start":
		return value.Int(s.Start), nil
	default:
		return nil, fmt.Errorf("Slot has no field %q", field)
	}
}

func groupListField(gl GroupList, field string) (value.Value, error) {
	switch field {
	case "name":
		return value.String(gl.Name), nil
	case "students_per_group_min":
		return value.Int(gl.StudentsPerGroupMin), nil
	case "students_per_group_max":
		return value.Int(gl.StudentsPerGroupMax), nil
	default:
		return nil, fmt.Errorf("GroupList has no field %q", field)
	}
}

func groupField(g Group, field string) (value.Value, error) {
	switch field {
	case "name":
		return value.String(g.Name), nil
	case "sealed":
		return value.Bool(g.Sealed), nil
	default:
		return nil, fmt.Errorf("Group has no field %q", field)
	}
}

// TypeSchemas implements the type_schemas() half of the EvalObject
// contract (spec §6.1): the checker validates `obj.field`-style paths
// against this table via checker.WithObjectSchemas.
func TypeSchemas() map[string]map[string]types.ExprType {
	str := types.Single(types.StringType())
	i := types.Single(types.IntType())
	b := types.Single(types.BoolType())
	return map[string]map[string]types.ExprType{
		"Student": {"name": str},
		"Teacher": {"name": str},
		"Subject": {
			"name": str, "groups_per_slot": i,
			"students_per_group_min": i, "students_per_group_max": i,
		},
		"Slot":      {"week": i, "day": i, "start": i},
		"GroupList": {"name": str, "students_per_group_min": i, "students_per_group_max": i},
		"Group":     {"name": str, "sealed": b},
	}
}
