package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// running migrations a second time must be a no-op
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"year_plans", "periods", "objectives", "meetings",
		"meeting_activities", "activity_library", "distribution_rules",
		"objective_achievements", "reminders",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_year_plans_org",
		"idx_periods_plan",
		"idx_objectives_plan",
		"idx_objectives_parent",
		"idx_meetings_plan_date",
		"idx_meetings_period",
		"idx_meeting_activities_meeting",
		"idx_distribution_rules_plan",
		"idx_achievements_participant",
		"idx_reminders_scheduled",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_AchievementUniqueness(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO year_plans (id, org_id, title, start_date, end_date, meeting_weekday, recurrence_pattern, created_at, updated_at)
		VALUES ('p1', 'org1', 'Season', '2025-09-01', '2026-06-15', 'tuesday', 'weekly', '2025-08-01T00:00:00Z', '2025-08-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO objectives (id, year_plan_id, title, created_at, updated_at)
		VALUES ('o1', 'p1', 'Knots', '2025-08-01T00:00:00Z', '2025-08-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO objective_achievements (id, org_id, objective_id, participant_id, achieved_date, created_at)
		VALUES (?, 'org1', 'o1', 'kid-1', '2025-10-01', '2025-10-01T00:00:00Z')`
	_, err = db.Exec(insert, "a1")
	require.NoError(t, err)
	_, err = db.Exec(insert, "a2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}
