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

	"github.com/golang/glog"

	"github.com/collomatique/cml/evalvar"
	"github.com/collomatique/cml/ilp"
)

// Option configures Compile, the way checker.Option configures Check.
type Option func(*compiler)

// WithDenseRepr switches the assembled ilp.Problem to the dense
// (ndarray-style) matrix representation instead of the default sparse
// one, exercising ilp.Builder's interchangeable MatRepr trait.
func WithDenseRepr() Option {
	return func(c *compiler) { c.dense = true }
}

type compiler struct {
	params *Params
	env    *Env
	schema *evalvar.Schema
	vars   map[evalvar.Key]ilp.Variable
	b      *ilp.Builder

	translators []Translator
	dense       bool
}

// Compile runs every stage of §4.6 against params: translate, validate,
// materialise decision variables, add every constraint family, and
// emit the final ilp.Problem with its translators.
func Compile(params *Params, opts ...Option) (*ilp.Problem, []Translator, error) {
	glog.V(1).Infof("colloscope: compiling %d subjects, %d group lists", len(params.Subjects), len(params.GroupLists))

	if err := validate(params); err != nil {
		return nil, nil, err
	}
	glog.V(1).Info("colloscope: validation passed")

	schema, err := declareSchema(params)
	if err != nil {
		return nil, nil, fmt.Errorf("colloscope: declaring variables: %w", err)
	}

	env := NewEnv(params)
	vars, err := schema.Vars(env)
	if err != nil {
		return nil, nil, fmt.Errorf("colloscope: materialising variables: %w", err)
	}
	glog.V(1).Infof("colloscope: materialised %d decision variables", len(vars))

	b := ilp.NewBuilder()
	if len(opts) > 0 {
		c := &compiler{}
		for _, opt := range opts {
			opt(c)
		}
		if c.dense {
			b = b.UseDenseRepr()
		}
	}
	for k, v := range vars {
		if err := b.Declare(k.IlpVar(), v); err != nil {
			return nil, nil, fmt.Errorf("colloscope: %w", err)
		}
	}

	c := &compiler{params: params, env: env, schema: schema, vars: vars, b: b}

	if err := c.addAttendLinks(); err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}
	if err := c.addGroupsPerSlot(); err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}
	if err := c.addStudentsPerGroup(); err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}
	c.addGroupCount()
	c.addSealedGroups()
	if err := c.addStudentsPerGroupForSubject(); err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}
	if err := c.addStrictLimits(); err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}
	if err := c.addOneInterrogationAtATime(); err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}
	if err := c.addIncompatForSingleWeek(); err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}

	problem, err := c.b.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("colloscope: %w", err)
	}
	glog.V(1).Infof("colloscope: built problem with %d variables, %d translators", len(problem.Vars), len(c.translators))
	return problem, c.translators, nil
}

// VarSchema reports the field schema of every decision-variable family
// this package materialises, for an embedder to pass to
// checker.WithVarSchema so `$GroupMember(...)`-style CML call sites
// type-check against the same variants Compile itself builds.
func VarSchema(params *Params) (map[string][]evalvar.FieldType, error) {
	schema, err := declareSchema(params)
	if err != nil {
		return nil, fmt.Errorf("colloscope: declaring variables: %w", err)
	}
	return schema.FieldSchema(), nil
}

// memberExpr returns the LinExpr standing for GroupMember(g,student):
// the decision variable itself when it was materialised, or its fixed
// constant otherwise.
func (c *compiler) memberExpr(g groupRef, student StudentID) ilp.LinExpr[ilp.IlpVar] {
	key := groupMemberKey(g, student)
	if _, ok := c.vars[key]; ok {
		return ilp.VarLinExpr[ilp.IlpVar](key.IlpVar())
	}
	if v := groupMemberFixedValue(c.params, g, student); v != nil {
		return ilp.ConstLinExpr[ilp.IlpVar](*v)
	}
	return ilp.ConstLinExpr[ilp.IlpVar](0)
}

// slotExpr returns the LinExpr standing for GroupSlot(g,slot).
func (c *compiler) slotExpr(g groupRef, slot SlotID) ilp.LinExpr[ilp.IlpVar] {
	key := groupSlotKey(g, slot)
	if _, ok := c.vars[key]; ok {
		return ilp.VarLinExpr[ilp.IlpVar](key.IlpVar())
	}
	if v := groupSlotFixedValue(c.params, g, slot); v != nil {
		return ilp.ConstLinExpr[ilp.IlpVar](*v)
	}
	return ilp.ConstLinExpr[ilp.IlpVar](0)
}

// attendExpr returns the LinExpr standing for Attend(student,g,slot).
func (c *compiler) attendExpr(student StudentID, g groupRef, slot SlotID) ilp.LinExpr[ilp.IlpVar] {
	key := attendKey(student, g, slot)
	if _, ok := c.vars[key]; ok {
		return ilp.VarLinExpr[ilp.IlpVar](key.IlpVar())
	}
	if v := attendFixedValue(c.params, g, student, slot); v != nil {
		return ilp.ConstLinExpr[ilp.IlpVar](*v)
	}
	return ilp.ConstLinExpr[ilp.IlpVar](0)
}

func groupMemberKey(g groupRef, student StudentID) evalvar.Key {
	return evalvar.Key{Variant: varGroupMember, Fields: []evalvar.FieldValue{
		{Kind: evalvar.ObjectField, Object: handle("Group", g)},
		{Kind: evalvar.ObjectField, Object: handle("Student", student)},
	}}
}

func groupSlotKey(g groupRef, slot SlotID) evalvar.Key {
	return evalvar.Key{Variant: varGroupSlot, Fields: []evalvar.FieldValue{
		{Kind: evalvar.ObjectField, Object: handle("Group", g)},
		{Kind: evalvar.ObjectField, Object: handle("Slot", slot)},
	}}
}

func attendKey(student StudentID, g groupRef, slot SlotID) evalvar.Key {
	return evalvar.Key{Variant: varAttend, Fields: []evalvar.FieldValue{
		{Kind: evalvar.ObjectField, Object: handle("Student", student)},
		{Kind: evalvar.ObjectField, Object: handle("Group", g)},
		{Kind: evalvar.ObjectField, Object: handle("Slot", slot)},
	}}
}

// addLinkingConstraints registers the standard AND-linearisation for
// one (student,group,slot) triple whose Attend variable is free:
// Attend <= member, Attend <= slot, Attend >= member+slot-1.
func (c *compiler) addLinkingConstraints(student StudentID, g groupRef, slot SlotID) error {
	key := attendKey(student, g, slot)
	if _, ok := c.vars[key]; !ok {
		return nil // fixed, nothing to link
	}
	attend := ilp.VarLinExpr[ilp.IlpVar](key.IlpVar())
	member := c.memberExpr(g, student)
	slotExpr := c.slotExpr(g, slot)

	if err := c.b.AddConstraint(ilp.NewLE(attend, member)); err != nil {
		return err
	}
	if err := c.b.AddConstraint(ilp.NewLE(attend, slotExpr)); err != nil {
		return err
	}
	rhs := member.Add(slotExpr).Sub(ilp.ConstLinExpr[ilp.IlpVar](1))
	return c.b.AddConstraint(ilp.NewLE(rhs, attend))
}
