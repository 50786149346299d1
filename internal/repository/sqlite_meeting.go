package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// meetingColumns is the canonical SELECT column list for meetings.
const meetingColumns = `id, year_plan_id, period_id, meeting_date, start_time, end_time,
		duration_minutes, location, is_cancelled, anchor_id, theme, metadata, notes,
		created_at, updated_at`

// SQLiteMeetingRepo implements MeetingRepo using a SQLite database.
type SQLiteMeetingRepo struct {
	conn db.DBTX
}

// NewSQLiteMeetingRepo creates a new SQLiteMeetingRepo.
func NewSQLiteMeetingRepo(conn db.DBTX) *SQLiteMeetingRepo {
	return &SQLiteMeetingRepo{conn: conn}
}

func (r *SQLiteMeetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	metadata, err := encodeJSON(m.Metadata, "{}")
	if err != nil {
		return err
	}

	query := `INSERT INTO meetings (id, year_plan_id, period_id, meeting_date, start_time, end_time,
		duration_minutes, location, is_cancelled, anchor_id, theme, metadata, notes,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query,
		m.ID,
		m.YearPlanID,
		m.PeriodID, // *string: nil becomes SQL NULL
		m.MeetingDate.Format(dateLayout),
		m.StartTime,
		m.EndTime,
		m.DurationMinutes,
		m.Location,
		boolToInt(m.IsCancelled),
		m.AnchorID,
		m.Theme,
		metadata,
		m.Notes,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meeting: %w", err)
	}
	return nil
}

func (r *SQLiteMeetingRepo) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	m, err := scanMeeting(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("meeting: %w", ErrNotFound)
	}
	return m, err
}

func (r *SQLiteMeetingRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE year_plan_id = ? ORDER BY meeting_date`
	return r.list(ctx, query, planID)
}

func (r *SQLiteMeetingRepo) ListByPeriod(ctx context.Context, periodID string) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE period_id = ? ORDER BY meeting_date`
	return r.list(ctx, query, periodID)
}

func (r *SQLiteMeetingRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Meeting, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows.Scan)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}
	return meetings, nil
}

func (r *SQLiteMeetingRepo) Update(ctx context.Context, m *domain.Meeting) error {
	metadata, err := encodeJSON(m.Metadata, "{}")
	if err != nil {
		return err
	}

	query := `UPDATE meetings SET period_id = ?, meeting_date = ?, start_time = ?, end_time = ?,
		duration_minutes = ?, location = ?, is_cancelled = ?, anchor_id = ?, theme = ?,
		metadata = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.conn.ExecContext(ctx, query,
		m.PeriodID,
		m.MeetingDate.Format(dateLayout),
		m.StartTime,
		m.EndTime,
		m.DurationMinutes,
		m.Location,
		boolToInt(m.IsCancelled),
		m.AnchorID,
		m.Theme,
		metadata,
		m.Notes,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating meeting: %w", err)
	}
	return nil
}

// AssignPeriod links the given meetings to a period in one statement.
// Meetings already linked elsewhere are left untouched.
func (r *SQLiteMeetingRepo) AssignPeriod(ctx context.Context, periodID string, meetingIDs []string, now time.Time) error {
	if len(meetingIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(meetingIDs)), ",")
	query := `UPDATE meetings SET period_id = ?, updated_at = ?
		WHERE period_id IS NULL AND id IN (` + placeholders + `)`

	args := make([]any, 0, len(meetingIDs)+2)
	args = append(args, periodID, now.UTC().Format(time.RFC3339))
	for _, id := range meetingIDs {
		args = append(args, id)
	}
	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("assigning meetings to period: %w", err)
	}
	return nil
}

// UnassignPeriod unlinks all meetings of a period (period_id -> NULL).
func (r *SQLiteMeetingRepo) UnassignPeriod(ctx context.Context, periodID string, now time.Time) error {
	query := `UPDATE meetings SET period_id = NULL, updated_at = ? WHERE period_id = ?`
	if _, err := r.conn.ExecContext(ctx, query, now.UTC().Format(time.RFC3339), periodID); err != nil {
		return fmt.Errorf("unassigning meetings from period: %w", err)
	}
	return nil
}

func (r *SQLiteMeetingRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM meetings WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	return nil
}

func scanMeeting(scan func(dest ...any) error) (*domain.Meeting, error) {
	var m domain.Meeting
	var dateStr, metadataStr, createdAtStr, updatedAtStr string
	var periodID, anchorID sql.NullString
	var cancelledInt int

	err := scan(
		&m.ID, &m.YearPlanID, &periodID, &dateStr, &m.StartTime, &m.EndTime,
		&m.DurationMinutes, &m.Location, &cancelledInt, &anchorID, &m.Theme,
		&metadataStr, &m.Notes, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning meeting: %w", err)
	}

	m.PeriodID = nullableString(periodID)
	m.AnchorID = nullableString(anchorID)
	m.IsCancelled = intToBool(cancelledInt)
	m.Metadata = decodeMap(metadataStr)

	if m.MeetingDate, err = time.Parse(dateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("parsing meeting_date: %w", err)
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &m, nil
}
