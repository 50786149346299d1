package service

import (
	"context"
	"testing"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDistributionService(env *testEnv, clock Clock) DistributionService {
	return NewDistributionService(env.rules, env.plans, env.periods, env.meetings,
		env.activities, env.uow, clock)
}

// tenWeekPlan creates a season with exactly ten Tuesday meetings.
func tenWeekPlan(t *testing.T, env *testEnv) *domain.YearPlan {
	t.Helper()
	plan := testutil.NewTestPlan("Ten weeks",
		testutil.WithPlanRange(testutil.Date(2025, 9, 2), testutil.Date(2025, 11, 4)))
	_, err := NewPlanService(env.plans, env.uow, nil).Create(context.Background(), plan)
	require.NoError(t, err)
	return plan
}

func TestDistributionService_Preview_EvenlySpacedAcrossYear(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newDistributionService(env, clockAt(testutil.Date(2025, 9, 1)))
	plan := tenWeekPlan(t, env)

	rule := testutil.NewTestRule(plan.ID, "First aid drill", domain.ScopeYear, domain.PlaceEvenlySpaced, 3)
	require.NoError(t, svc.CreateRule(ctx, testutil.TestOrg, rule))

	placements, err := svc.Preview(ctx, testutil.TestOrg, rule.ID)
	require.NoError(t, err)
	require.Len(t, placements, 3)

	// Indices 0, 4 and 9 of the ten-meeting season.
	assert.Equal(t, "2025-09-02", placements[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2025-09-30", placements[1].Date.Format(domain.DateLayout))
	assert.Equal(t, "2025-11-04", placements[2].Date.Format(domain.DateLayout))

	agenda, err := env.activities.ListByMeeting(ctx, placements[0].MeetingID)
	require.NoError(t, err)
	assert.Empty(t, agenda, "preview must not write anything")
}

func TestDistributionService_Apply_MaterializesSeries(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newDistributionService(env, clockAt(testutil.Date(2025, 9, 1)))
	plan := tenWeekPlan(t, env)

	item := testutil.NewTestLibraryItem("First aid drill")
	require.NoError(t, env.library.Create(ctx, item))

	rule := testutil.NewTestRule(plan.ID, "First aid drill", domain.ScopeYear, domain.PlaceEvenlySpaced, 3)
	rule.ActivityLibraryID = &item.ID
	require.NoError(t, svc.CreateRule(ctx, testutil.TestOrg, rule))

	placements, err := svc.Apply(ctx, testutil.TestOrg, rule.ID)
	require.NoError(t, err)
	require.Len(t, placements, 3)

	for i, p := range placements {
		agenda, err := env.activities.ListByMeeting(ctx, p.MeetingID)
		require.NoError(t, err)
		require.Len(t, agenda, 1)
		assert.Equal(t, "First aid drill", agenda[0].Name)
		require.NotNil(t, agenda[0].SeriesID)
		assert.Equal(t, rule.ID, *agenda[0].SeriesID)
		assert.Equal(t, i+1, agenda[0].SeriesOccurrence)
	}

	used, err := env.library.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, used.TimesUsed)
	require.NotNil(t, used.LastUsedDate)
}

func TestDistributionService_Apply_SecondRunPlacesNothing(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newDistributionService(env, clockAt(testutil.Date(2025, 9, 1)))
	plan := tenWeekPlan(t, env)

	rule := testutil.NewTestRule(plan.ID, "Flag ceremony", domain.ScopeYear, domain.PlaceNearStart, 2)
	require.NoError(t, svc.CreateRule(ctx, testutil.TestOrg, rule))

	first, err := svc.Apply(ctx, testutil.TestOrg, rule.ID)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.Apply(ctx, testutil.TestOrg, rule.ID)
	require.NoError(t, err)
	assert.Empty(t, second, "the cap is already met")
}

func TestDistributionService_Plan_SkipsLockedAndCancelled(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	// Now is Oct 1: the five September meetings are locked.
	svc := newDistributionService(env, clockAt(testutil.Date(2025, 10, 1)))
	plan := tenWeekPlan(t, env)

	meetings, err := env.meetings.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	// Cancel the first October meeting too.
	meetings[5].IsCancelled = true
	require.NoError(t, env.meetings.Update(ctx, meetings[5]))

	rule := testutil.NewTestRule(plan.ID, "Game night", domain.ScopeYear, domain.PlaceNearStart, 1)
	require.NoError(t, svc.CreateRule(ctx, testutil.TestOrg, rule))

	placements, err := svc.Preview(ctx, testutil.TestOrg, rule.ID)
	require.NoError(t, err)
	require.Len(t, placements, 1)
	assert.Equal(t, "2025-10-14", placements[0].Date.Format(domain.DateLayout),
		"first meeting that is neither past nor cancelled")
}

func TestDistributionService_Plan_MonthScope(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newDistributionService(env, clockAt(testutil.Date(2025, 9, 1)))
	plan := tenWeekPlan(t, env)

	rule := testutil.NewTestRule(plan.ID, "Badge review", domain.ScopeMonth, domain.PlaceNearEnd, 1)
	require.NoError(t, svc.CreateRule(ctx, testutil.TestOrg, rule))

	placements, err := svc.Preview(ctx, testutil.TestOrg, rule.ID)
	require.NoError(t, err)
	require.Len(t, placements, 3, "one per calendar month")
	assert.Equal(t, "2025-09-30", placements[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2025-10-28", placements[1].Date.Format(domain.DateLayout))
	assert.Equal(t, "2025-11-04", placements[2].Date.Format(domain.DateLayout))
}

func TestDistributionService_Plan_PeriodScope(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newDistributionService(env, clockAt(testutil.Date(2025, 9, 1)))
	plan := tenWeekPlan(t, env)

	periodSvc := NewPeriodService(env.periods, env.plans, env.meetings, env.uow, nil)
	fall := testutil.NewTestPeriod(plan.ID, "Fall", testutil.Date(2025, 9, 1), testutil.Date(2025, 9, 30))
	_, err := periodSvc.Create(ctx, testutil.TestOrg, fall)
	require.NoError(t, err)
	late := testutil.NewTestPeriod(plan.ID, "Late fall", testutil.Date(2025, 10, 1), testutil.Date(2025, 11, 30))
	_, err = periodSvc.Create(ctx, testutil.TestOrg, late)
	require.NoError(t, err)

	rule := testutil.NewTestRule(plan.ID, "Period opener", domain.ScopePeriod, domain.PlaceNearStart, 1)
	require.NoError(t, svc.CreateRule(ctx, testutil.TestOrg, rule))

	placements, err := svc.Preview(ctx, testutil.TestOrg, rule.ID)
	require.NoError(t, err)
	require.Len(t, placements, 2)
	assert.Equal(t, "2025-09-02", placements[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2025-10-07", placements[1].Date.Format(domain.DateLayout))
}

func TestDistributionService_CreateRule_InvalidScope(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newDistributionService(env, nil)
	plan := tenWeekPlan(t, env)

	rule := testutil.NewTestRule(plan.ID, "Broken", "fortnight", domain.PlaceNearStart, 1)
	err := svc.CreateRule(ctx, testutil.TestOrg, rule)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
