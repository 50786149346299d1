package service

import (
	"context"
	"testing"

	"github.com/annafors/planera/internal/domain"
	"github.com/annafors/planera/internal/repository"
	"github.com/annafors/planera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAchievementService(env *testEnv) AchievementService {
	return NewAchievementService(env.achievements, env.objectives, env.plans, nil)
}

func seedObjective(t *testing.T, env *testEnv) *domain.Objective {
	t.Helper()
	plan := createCalendar(t, env)
	o := testutil.NewTestObjective(plan.ID, "Tie a bowline")
	require.NoError(t, env.objectives.Create(context.Background(), o))
	return o
}

func TestAchievementService_Grant_Batch(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newAchievementService(env)
	o := seedObjective(t, env)

	outcomes, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-1", "scout-2", "scout-3"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	for _, out := range outcomes {
		assert.Equal(t, domain.GrantGranted, out.Status)
	}

	recorded, err := svc.ListByObjective(ctx, testutil.TestOrg, o.ID)
	require.NoError(t, err)
	assert.Len(t, recorded, 3)
	for _, a := range recorded {
		assert.Equal(t, "leader-1", a.CreatedBy)
		assert.False(t, a.AchievedDate.IsZero())
	}
}

func TestAchievementService_Grant_RepeatIsIdempotent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newAchievementService(env)
	o := seedObjective(t, env)

	req := GrantRequest{ObjectiveID: o.ID, ParticipantIDs: []string{"scout-1"}}
	first, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", req)
	require.NoError(t, err)
	require.Equal(t, domain.GrantGranted, first[0].Status)

	second, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", req)
	require.NoError(t, err)
	assert.Equal(t, domain.GrantAlreadyAchieved, second[0].Status)

	recorded, err := svc.ListByObjective(ctx, testutil.TestOrg, o.ID)
	require.NoError(t, err)
	assert.Len(t, recorded, 1, "regrant must not duplicate the row")
}

func TestAchievementService_Grant_PartialSuccess(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newAchievementService(env)
	o := seedObjective(t, env)

	// scout-2 already holds the objective; the rest of the batch still lands.
	_, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-2"},
	})
	require.NoError(t, err)

	outcomes, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-1", "scout-2", "scout-3"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, domain.GrantGranted, outcomes[0].Status)
	assert.Equal(t, domain.GrantAlreadyAchieved, outcomes[1].Status)
	assert.Equal(t, domain.GrantGranted, outcomes[2].Status)

	recorded, err := svc.ListByObjective(ctx, testutil.TestOrg, o.ID)
	require.NoError(t, err)
	assert.Len(t, recorded, 3)
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

func TestAchievementService_Grant_FailedItemsReachObserver(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewAchievementService(env.achievements, env.objectives, env.plans, nil, obs)
	o := seedObjective(t, env)

	// a dangling meeting reference makes the insert fail without conflicting
	ghost := "meeting-missing"
	outcomes, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-1"},
		MeetingID:      &ghost,
	})
	require.NoError(t, err, "a failed item must not abort the batch")
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.GrantFailed, outcomes[0].Status)
	assert.NotEmpty(t, outcomes[0].Error)

	require.Len(t, obs.events, 1)
	event := obs.events[0]
	assert.Equal(t, "grant-achievements", event.Name)
	assert.Equal(t, 0, event.Fields["granted"])
	assert.Equal(t, 1, event.Fields["failed"])
	failures, ok := event.Fields["failures"].([]string)
	require.True(t, ok)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "scout-1")
}

func TestAchievementService_Grant_ExplicitDate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newAchievementService(env)
	o := seedObjective(t, env)

	when := testutil.Date(2025, 9, 9)
	outcomes, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:       o.ID,
		ParticipantIDs:    []string{"scout-1"},
		AchievedDate:      &when,
		AttributionSource: "camp",
	})
	require.NoError(t, err)
	require.Equal(t, domain.GrantGranted, outcomes[0].Status)

	recorded, err := svc.ListByParticipant(ctx, testutil.TestOrg, "scout-1")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "2025-09-09", recorded[0].AchievedDate.Format(domain.DateLayout))
	assert.Equal(t, "camp", recorded[0].AttributionSource)
}

func TestAchievementService_Grant_ForeignObjectiveHidden(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newAchievementService(env)
	o := seedObjective(t, env)

	_, err := svc.Grant(ctx, "org-other", "leader-9", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-1"},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAchievementService_Revoke(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := newAchievementService(env)
	o := seedObjective(t, env)

	_, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-1"},
	})
	require.NoError(t, err)

	recorded, err := svc.ListByObjective(ctx, testutil.TestOrg, o.ID)
	require.NoError(t, err)
	require.Len(t, recorded, 1)

	require.NoError(t, svc.Revoke(ctx, testutil.TestOrg, recorded[0].ID))

	recorded, err = svc.ListByObjective(ctx, testutil.TestOrg, o.ID)
	require.NoError(t, err)
	assert.Empty(t, recorded)

	// A revoked objective can be granted again.
	outcomes, err := svc.Grant(ctx, testutil.TestOrg, "leader-1", GrantRequest{
		ObjectiveID:    o.ID,
		ParticipantIDs: []string{"scout-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GrantGranted, outcomes[0].Status)
}
