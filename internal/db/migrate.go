package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS year_plans (
		id                 TEXT PRIMARY KEY,
		org_id             TEXT NOT NULL,
		title              TEXT NOT NULL,
		start_date         TEXT NOT NULL,
		end_date           TEXT NOT NULL,
		meeting_weekday    TEXT NOT NULL,
		recurrence_pattern TEXT NOT NULL
		                   CHECK(recurrence_pattern IN ('weekly','biweekly')),
		default_location   TEXT NOT NULL DEFAULT '',
		blackout_dates     TEXT NOT NULL DEFAULT '[]',
		anchors            TEXT NOT NULL DEFAULT '[]',
		settings           TEXT NOT NULL DEFAULT '{}',
		created_by         TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_year_plans_org ON year_plans(org_id)`,

	`CREATE TABLE IF NOT EXISTS periods (
		id           TEXT PRIMARY KEY,
		year_plan_id TEXT NOT NULL REFERENCES year_plans(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		sort_order   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_periods_plan ON periods(year_plan_id)`,

	`CREATE TABLE IF NOT EXISTS objectives (
		id           TEXT PRIMARY KEY,
		year_plan_id TEXT NOT NULL REFERENCES year_plans(id) ON DELETE CASCADE,
		period_id    TEXT REFERENCES periods(id) ON DELETE SET NULL,
		parent_id    TEXT REFERENCES objectives(id) ON DELETE SET NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		scope        TEXT NOT NULL DEFAULT '',
		sort_order   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_objectives_plan ON objectives(year_plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_objectives_parent ON objectives(parent_id)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id               TEXT PRIMARY KEY,
		year_plan_id     TEXT NOT NULL REFERENCES year_plans(id) ON DELETE CASCADE,
		period_id        TEXT REFERENCES periods(id) ON DELETE SET NULL,
		meeting_date     TEXT NOT NULL,
		start_time       TEXT NOT NULL DEFAULT '',
		end_time         TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		location         TEXT NOT NULL DEFAULT '',
		is_cancelled     INTEGER NOT NULL DEFAULT 0,
		anchor_id        TEXT,
		theme            TEXT NOT NULL DEFAULT '',
		metadata         TEXT NOT NULL DEFAULT '{}',
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_plan_date ON meetings(year_plan_id, meeting_date)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_period ON meetings(period_id)`,

	`CREATE TABLE IF NOT EXISTS activity_library (
		id                   TEXT PRIMARY KEY,
		org_id               TEXT NOT NULL,
		name                 TEXT NOT NULL,
		category             TEXT NOT NULL DEFAULT '',
		tags                 TEXT NOT NULL DEFAULT '[]',
		min_duration_minutes INTEGER NOT NULL DEFAULT 0,
		max_duration_minutes INTEGER NOT NULL DEFAULT 0,
		objective_ids        TEXT NOT NULL DEFAULT '[]',
		times_used           INTEGER NOT NULL DEFAULT 0,
		last_used_date       TEXT,
		avg_rating           REAL NOT NULL DEFAULT 0,
		rating_count         INTEGER NOT NULL DEFAULT 0,
		is_active            INTEGER NOT NULL DEFAULT 1,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_library_org ON activity_library(org_id)`,

	`CREATE TABLE IF NOT EXISTS meeting_activities (
		id                  TEXT PRIMARY KEY,
		meeting_id          TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
		activity_library_id TEXT REFERENCES activity_library(id) ON DELETE SET NULL,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		duration_minutes    INTEGER NOT NULL DEFAULT 0,
		sort_order          INTEGER NOT NULL DEFAULT 0,
		objective_ids       TEXT NOT NULL DEFAULT '[]',
		series_id           TEXT,
		series_occurrence   INTEGER NOT NULL DEFAULT 0,
		metadata            TEXT NOT NULL DEFAULT '{}',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meeting_activities_meeting ON meeting_activities(meeting_id)`,
	`CREATE INDEX IF NOT EXISTS idx_meeting_activities_series ON meeting_activities(series_id)`,

	`CREATE TABLE IF NOT EXISTS distribution_rules (
		id                    TEXT PRIMARY KEY,
		year_plan_id          TEXT NOT NULL REFERENCES year_plans(id) ON DELETE CASCADE,
		activity_library_id   TEXT REFERENCES activity_library(id) ON DELETE SET NULL,
		activity_name         TEXT NOT NULL,
		distribution_scope    TEXT NOT NULL
		                      CHECK(distribution_scope IN ('year','period','month')),
		placement_rule        TEXT NOT NULL
		                      CHECK(placement_rule IN ('near_start','near_end','evenly_spaced','manual')),
		occurrences_per_scope INTEGER NOT NULL DEFAULT 1,
		settings              TEXT NOT NULL DEFAULT '{}',
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_distribution_rules_plan ON distribution_rules(year_plan_id)`,

	`CREATE TABLE IF NOT EXISTS objective_achievements (
		id                 TEXT PRIMARY KEY,
		org_id             TEXT NOT NULL,
		objective_id       TEXT NOT NULL REFERENCES objectives(id) ON DELETE CASCADE,
		participant_id     TEXT NOT NULL,
		meeting_id         TEXT REFERENCES meetings(id) ON DELETE SET NULL,
		achieved_date      TEXT NOT NULL,
		attribution_source TEXT NOT NULL DEFAULT '',
		notes              TEXT NOT NULL DEFAULT '',
		created_by         TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		UNIQUE(org_id, objective_id, participant_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_achievements_participant ON objective_achievements(org_id, participant_id)`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id             TEXT PRIMARY KEY,
		meeting_id     TEXT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
		channel        TEXT NOT NULL CHECK(channel IN ('email','sms','push')),
		scheduled_at   TEXT NOT NULL,
		custom_message TEXT NOT NULL DEFAULT '',
		sent_at        TEXT,
		created_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_scheduled ON reminders(scheduled_at)`,
}
