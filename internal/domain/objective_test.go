package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// chain builds a parentOf lookup from a child->parent map.
func chain(parents map[string]string) func(id string) (*string, bool) {
	return func(id string) (*string, bool) {
		p, ok := parents[id]
		if !ok {
			return nil, false
		}
		if p == "" {
			return nil, true
		}
		return &p, true
	}
}

func TestWouldCycle_DirectLoop(t *testing.T) {
	// b's parent is a; making a's parent b closes the loop
	parent := "b"
	assert.True(t, WouldCycle("a", &parent, chain(map[string]string{"a": "", "b": "a"})))
}

func TestWouldCycle_DeepLoop(t *testing.T) {
	// a <- b <- c; re-parenting a under c cycles
	parent := "c"
	lookup := chain(map[string]string{"a": "", "b": "a", "c": "b"})
	assert.True(t, WouldCycle("a", &parent, lookup))
}

func TestWouldCycle_SiblingIsFine(t *testing.T) {
	parent := "b"
	lookup := chain(map[string]string{"a": "root", "b": "root", "root": ""})
	assert.False(t, WouldCycle("a", &parent, lookup))
}

func TestWouldCycle_NilParentIsRoot(t *testing.T) {
	assert.False(t, WouldCycle("a", nil, chain(nil)))
}

func TestWouldCycle_UnknownAncestorStops(t *testing.T) {
	parent := "ghost"
	assert.False(t, WouldCycle("a", &parent, chain(map[string]string{"a": ""})))
}

func TestObjectiveValidate_SelfParentRejected(t *testing.T) {
	self := "obj-1"
	o := &Objective{ID: "obj-1", YearPlanID: "plan-1", Title: "Knots", ParentID: &self}
	assert.ErrorIs(t, o.Validate(), ErrValidation)
}

func TestObjectiveValidate_TitleRequired(t *testing.T) {
	o := &Objective{YearPlanID: "plan-1"}
	assert.ErrorIs(t, o.Validate(), ErrValidation)
}
