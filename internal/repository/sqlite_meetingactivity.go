package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// meetingActivityColumns is the canonical SELECT column list for meeting_activities.
const meetingActivityColumns = `id, meeting_id, activity_library_id, name, description,
		duration_minutes, sort_order, objective_ids, series_id, series_occurrence,
		metadata, created_at, updated_at`

// SQLiteMeetingActivityRepo implements MeetingActivityRepo using a SQLite database.
type SQLiteMeetingActivityRepo struct {
	conn db.DBTX
}

// NewSQLiteMeetingActivityRepo creates a new SQLiteMeetingActivityRepo.
func NewSQLiteMeetingActivityRepo(conn db.DBTX) *SQLiteMeetingActivityRepo {
	return &SQLiteMeetingActivityRepo{conn: conn}
}

func (r *SQLiteMeetingActivityRepo) Create(ctx context.Context, a *domain.MeetingActivity) error {
	objectiveIDs, err := encodeJSON(a.ObjectiveIDs, "[]")
	if err != nil {
		return err
	}
	metadata, err := encodeJSON(a.Metadata, "{}")
	if err != nil {
		return err
	}

	query := `INSERT INTO meeting_activities (id, meeting_id, activity_library_id, name, description,
		duration_minutes, sort_order, objective_ids, series_id, series_occurrence,
		metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query,
		a.ID,
		a.MeetingID,
		a.ActivityLibraryID,
		a.Name,
		a.Description,
		a.DurationMinutes,
		a.SortOrder,
		objectiveIDs,
		a.SeriesID,
		a.SeriesOccurrence,
		metadata,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meeting activity: %w", err)
	}
	return nil
}

func (r *SQLiteMeetingActivityRepo) GetByID(ctx context.Context, id string) (*domain.MeetingActivity, error) {
	query := `SELECT ` + meetingActivityColumns + ` FROM meeting_activities WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	a, err := scanMeetingActivity(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("meeting activity: %w", ErrNotFound)
	}
	return a, err
}

func (r *SQLiteMeetingActivityRepo) ListByMeeting(ctx context.Context, meetingID string) ([]*domain.MeetingActivity, error) {
	query := `SELECT ` + meetingActivityColumns + ` FROM meeting_activities WHERE meeting_id = ? ORDER BY sort_order`
	rows, err := r.conn.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("listing meeting activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.MeetingActivity
	for rows.Next() {
		a, err := scanMeetingActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meeting activities: %w", err)
	}
	return activities, nil
}

// CountBySeries returns placement counts per meeting for a distribution series.
func (r *SQLiteMeetingActivityRepo) CountBySeries(ctx context.Context, seriesID string) (map[string]int, error) {
	query := `SELECT meeting_id, COUNT(*) FROM meeting_activities WHERE series_id = ? GROUP BY meeting_id`
	rows, err := r.conn.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("counting series placements: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var meetingID string
		var n int
		if err := rows.Scan(&meetingID, &n); err != nil {
			return nil, fmt.Errorf("scanning series count: %w", err)
		}
		counts[meetingID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating series counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteMeetingActivityRepo) Update(ctx context.Context, a *domain.MeetingActivity) error {
	objectiveIDs, err := encodeJSON(a.ObjectiveIDs, "[]")
	if err != nil {
		return err
	}
	metadata, err := encodeJSON(a.Metadata, "{}")
	if err != nil {
		return err
	}

	query := `UPDATE meeting_activities SET name = ?, description = ?, duration_minutes = ?,
		sort_order = ?, objective_ids = ?, metadata = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.conn.ExecContext(ctx, query,
		a.Name,
		a.Description,
		a.DurationMinutes,
		a.SortOrder,
		objectiveIDs,
		metadata,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating meeting activity: %w", err)
	}
	return nil
}

func (r *SQLiteMeetingActivityRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meeting_activities WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting meeting activity: %w", err)
	}
	return nil
}

func scanMeetingActivity(scan func(dest ...any) error) (*domain.MeetingActivity, error) {
	var a domain.MeetingActivity
	var libraryID, seriesID sql.NullString
	var objectiveIDsStr, metadataStr, createdAtStr, updatedAtStr string

	err := scan(
		&a.ID, &a.MeetingID, &libraryID, &a.Name, &a.Description,
		&a.DurationMinutes, &a.SortOrder, &objectiveIDsStr, &seriesID, &a.SeriesOccurrence,
		&metadataStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning meeting activity: %w", err)
	}

	a.ActivityLibraryID = nullableString(libraryID)
	a.SeriesID = nullableString(seriesID)
	a.ObjectiveIDs = decodeStrings(objectiveIDsStr)
	a.Metadata = decodeMap(metadataStr)

	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
