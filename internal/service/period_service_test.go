package service

import (
	"context"
	"testing"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCalendar(t *testing.T, env *testEnv) *domain.YearPlan {
	t.Helper()
	plan := testutil.NewTestPlan("Autumn 2025")
	_, err := NewPlanService(env.plans, env.uow, nil).Create(context.Background(), plan)
	require.NoError(t, err)
	return plan
}

func TestPeriodService_Create_ClaimsMeetingsInRange(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewPeriodService(env.periods, env.plans, env.meetings, env.uow, nil)
	plan := createCalendar(t, env)

	period := testutil.NewTestPeriod(plan.ID, "First half",
		testutil.Date(2025, 9, 1), testutil.Date(2025, 9, 15))
	claimed, err := svc.Create(ctx, testutil.TestOrg, period)
	require.NoError(t, err)
	assert.Equal(t, 2, claimed, "Sep 2 and Sep 9 fall in range")

	meetings, err := env.meetings.ListByPeriod(ctx, period.ID)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	for _, m := range meetings {
		assert.True(t, period.Contains(m.MeetingDate))
	}
}

func TestPeriodService_Create_FirstClaimWins(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewPeriodService(env.periods, env.plans, env.meetings, env.uow, nil)
	plan := createCalendar(t, env)

	first := testutil.NewTestPeriod(plan.ID, "First",
		testutil.Date(2025, 9, 1), testutil.Date(2025, 9, 20))
	claimed, err := svc.Create(ctx, testutil.TestOrg, first)
	require.NoError(t, err)
	assert.Equal(t, 3, claimed)

	// Overlaps the first period entirely; only the still-unassigned
	// meetings are available to it.
	second := testutil.NewTestPeriod(plan.ID, "Second",
		testutil.Date(2025, 9, 1), testutil.Date(2025, 9, 30))
	claimed, err = svc.Create(ctx, testutil.TestOrg, second)
	require.NoError(t, err)
	assert.Equal(t, 2, claimed, "Sep 23 and Sep 30 were still free")

	firstMeetings, err := env.meetings.ListByPeriod(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, firstMeetings, 3, "existing assignments are never stolen")
}

func TestPeriodService_Create_OutsideOrgRejected(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewPeriodService(env.periods, env.plans, env.meetings, env.uow, nil)
	plan := createCalendar(t, env)

	period := testutil.NewTestPeriod(plan.ID, "Sneaky",
		testutil.Date(2025, 9, 1), testutil.Date(2025, 9, 30))
	_, err := svc.Create(ctx, "org-other", period)
	require.Error(t, err)

	periods, err := env.periods.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestPeriodService_Delete_UnlinksMeetings(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewPeriodService(env.periods, env.plans, env.meetings, env.uow, nil)
	plan := createCalendar(t, env)

	period := testutil.NewTestPeriod(plan.ID, "Whole season",
		testutil.Date(2025, 9, 1), testutil.Date(2025, 9, 30))
	claimed, err := svc.Create(ctx, testutil.TestOrg, period)
	require.NoError(t, err)
	require.Equal(t, 5, claimed)

	require.NoError(t, svc.Delete(ctx, testutil.TestOrg, period.ID))

	meetings, err := env.meetings.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, meetings, 5, "meetings survive their period")
	for _, m := range meetings {
		assert.Nil(t, m.PeriodID)
	}
}
