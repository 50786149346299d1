package repository

import (
	"context"
	"testing"
	"time"

	"github.com/annafors/planera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityLibraryRepo(db)
	ctx := context.Background()

	item := testutil.NewTestLibraryItem("Knot relay")
	item.Category = "outdoor"
	item.Tags = []string{"ropes", "teamwork"}
	item.MinDurationMinutes = 20
	item.MaxDurationMinutes = 40
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Knot relay", got.Name)
	assert.Equal(t, "outdoor", got.Category)
	assert.Equal(t, []string{"ropes", "teamwork"}, got.Tags)
	assert.Equal(t, 20, got.MinDurationMinutes)
	assert.True(t, got.IsActive)
	assert.Zero(t, got.TimesUsed)
	assert.Nil(t, got.LastUsedDate)
}

func TestLibraryRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityLibraryRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLibraryRepo_RecordUse_IncrementsCounter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityLibraryRepo(db)
	ctx := context.Background()

	item := testutil.NewTestLibraryItem("Knot relay")
	require.NoError(t, repo.Create(ctx, item))

	stamp := time.Date(2025, 9, 9, 20, 15, 0, 0, time.UTC)
	require.NoError(t, repo.RecordUse(ctx, item.ID, testutil.Date(2025, 9, 2), stamp))
	require.NoError(t, repo.RecordUse(ctx, item.ID, testutil.Date(2025, 9, 9), stamp))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TimesUsed)
	require.NotNil(t, got.LastUsedDate)
	assert.Equal(t, "2025-09-09", got.LastUsedDate.Format("2006-01-02"))
	assert.True(t, got.UpdatedAt.Equal(stamp), "updated_at comes from the caller's clock")
}

func TestLibraryRepo_List_FiltersInactive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityLibraryRepo(db)
	ctx := context.Background()

	active := testutil.NewTestLibraryItem("Knot relay")
	retired := testutil.NewTestLibraryItem("Blindfold walk")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, retired))
	require.NoError(t, repo.Deactivate(ctx, retired.ID, time.Now().UTC()))

	got, err := repo.List(ctx, testutil.TestOrg, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Knot relay", got[0].Name)

	all, err := repo.List(ctx, testutil.TestOrg, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Blindfold walk", all[0].Name, "ordered by name")
}

func TestLibraryRepo_Update_PersistsRating(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityLibraryRepo(db)
	ctx := context.Background()

	item := testutil.NewTestLibraryItem("Knot relay")
	require.NoError(t, repo.Create(ctx, item))

	item.RecordRating(4)
	item.RecordRating(5)
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RatingCount)
	assert.InDelta(t, 4.5, got.AvgRating, 0.001)
}
