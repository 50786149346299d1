package service

import (
	"context"
	"testing"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectiveService_Create_WithParentChain(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewObjectiveService(env.objectives, env.plans, env.achievements, nil)
	plan := createCalendar(t, env)

	root := testutil.NewTestObjective(plan.ID, "Outdoor skills")
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, root))

	child := testutil.NewTestObjective(plan.ID, "Knots", testutil.WithObjectiveParent(root.ID))
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, child))

	all, err := svc.ListByPlan(ctx, testutil.TestOrg, plan.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestObjectiveService_Create_UnknownParentRejected(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewObjectiveService(env.objectives, env.plans, env.achievements, nil)
	plan := createCalendar(t, env)

	o := testutil.NewTestObjective(plan.ID, "Orphan", testutil.WithObjectiveParent("no-such-id"))
	err := svc.Create(ctx, testutil.TestOrg, o)
	assert.Error(t, err)
}

func TestObjectiveService_Update_CycleRejected(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewObjectiveService(env.objectives, env.plans, env.achievements, nil)
	plan := createCalendar(t, env)

	a := testutil.NewTestObjective(plan.ID, "A")
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, a))
	b := testutil.NewTestObjective(plan.ID, "B", testutil.WithObjectiveParent(a.ID))
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, b))
	c := testutil.NewTestObjective(plan.ID, "C", testutil.WithObjectiveParent(b.ID))
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, c))

	// Re-parenting A under its grandchild would close the loop.
	a.ParentID = &c.ID
	err := svc.Update(ctx, testutil.TestOrg, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	fetched, err := svc.GetByID(ctx, testutil.TestOrg, a.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ParentID, "A should still be a root")
}

func TestObjectiveService_Update_SelfParentRejected(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewObjectiveService(env.objectives, env.plans, env.achievements, nil)
	plan := createCalendar(t, env)

	o := testutil.NewTestObjective(plan.ID, "Narcissus")
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, o))

	o.ParentID = &o.ID
	err := svc.Update(ctx, testutil.TestOrg, o)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestObjectiveService_Delete_ReparentsChildren(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewObjectiveService(env.objectives, env.plans, env.achievements, nil)
	plan := createCalendar(t, env)

	root := testutil.NewTestObjective(plan.ID, "Root")
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, root))
	middle := testutil.NewTestObjective(plan.ID, "Middle", testutil.WithObjectiveParent(root.ID))
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, middle))
	leaf := testutil.NewTestObjective(plan.ID, "Leaf", testutil.WithObjectiveParent(middle.ID))
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, leaf))

	require.NoError(t, svc.Delete(ctx, testutil.TestOrg, middle.ID))

	fetched, err := svc.GetByID(ctx, testutil.TestOrg, leaf.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ParentID)
	assert.Equal(t, root.ID, *fetched.ParentID, "leaf should move up to its grandparent")
}

func TestObjectiveService_Delete_BlockedByAchievements(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewObjectiveService(env.objectives, env.plans, env.achievements, nil)
	plan := createCalendar(t, env)

	o := testutil.NewTestObjective(plan.ID, "Completed by someone")
	require.NoError(t, svc.Create(ctx, testutil.TestOrg, o))

	grants := NewAchievementService(env.achievements, env.objectives, env.plans, nil)
	outcomes, err := grants.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-1"},
	})
	require.NoError(t, err)
	require.Equal(t, domain.GrantGranted, outcomes[0].Status)

	err = svc.Delete(ctx, testutil.TestOrg, o.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.GetByID(ctx, testutil.TestOrg, o.ID)
	assert.NoError(t, err, "objective should survive the blocked delete")
}
