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

package evalvar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeEnv struct {
	groups []Handle
}

func (e fakeEnv) ObjectsOfType(typeName string) ([]Handle, error) {
	switch typeName {
	case "Group":
		return e.groups, nil
	default:
		return nil, &ErrUnknownType{TypeName: typeName}
	}
}

func TestSchemaVarsExcludesDeferFixed(t *testing.T) {
	v := Declare("InGroup").
		IntField("week", StaticRange(0, 2)).
		ObjectField("group", "Group").
		DeferFix(func(k Key, env Env) (*float64, error) {
			if k.Fields[0].Int == 1 {
				zero := 0.0
				return &zero, nil
			}
			return nil, nil
		}).
		Build()
	schema, err := NewSchema(v)
	require.NoError(t, err)

	env := fakeEnv{groups: []Handle{{ID: "g0"}, {ID: "g1"}}}
	vars, err := schema.Vars(env)
	require.NoError(t, err)

	// week=1 combinations (2 groups) excluded for every group: property 5
	// ("for every key in vars(), fix(key) == None") and property 6 ("for
	// every key not in vars(), fix(key) == Some(_)") both hold.
	require.Len(t, vars, 4)
	for k := range vars {
		fix, err := schema.Fix(k, env)
		require.NoError(t, err)
		require.Nil(t, fix)
		require.NotEqual(t, 1, k.Fields[0].Int)
	}

	excluded := Key{Variant: "InGroup", Fields: []FieldValue{{Kind: IntField, Int: 1}, {Kind: ObjectField, Object: Handle{ID: "g0"}}}}
	_, present := vars[excluded]
	require.False(t, present)
	fix, err := schema.Fix(excluded, env)
	require.NoError(t, err)
	require.NotNil(t, fix)
	require.Equal(t, 0.0, *fix)
}

func TestSchemaFixWithOutOfRange(t *testing.T) {
	v := Declare("Hour").
		IntField("h", StaticRange(8, 17)).
		FixWith(func(k Key, env Env) (float64, error) { return -1, nil }).
		Build()
	schema, err := NewSchema(v)
	require.NoError(t, err)

	env := fakeEnv{}
	vars, err := schema.Vars(env)
	require.NoError(t, err)
	require.Len(t, vars, 10)

	for k := range vars {
		fix, err := schema.Fix(k, env)
		require.NoError(t, err)
		require.Nil(t, fix)
	}

	oor := Key{Variant: "Hour", Fields: []FieldValue{{Kind: IntField, Int: 23}}}
	fix, err := schema.Fix(oor, env)
	require.NoError(t, err)
	require.NotNil(t, fix)
	require.Equal(t, -1.0, *fix)
}

func TestFieldSchema(t *testing.T) {
	v := Declare("Assign").
		BoolField("flag").
		ObjectField("student", "Student").
		FixWith(nil).
		Build()
	schema, err := NewSchema(v)
	require.NoError(t, err)

	fs := schema.FieldSchema()
	require.Equal(t, []FieldType{{Name: "flag", Kind: BoolField}, {Name: "student", Kind: ObjectField, ObjectType: "Student"}}, fs["Assign"])
}

func TestDuplicateVariantRejected(t *testing.T) {
	v1 := Declare("X").FixWith(nil).Build()
	v2 := Declare("X").FixWith(nil).Build()
	_, err := NewSchema(v1, v2)
	require.Error(t, err)
}
