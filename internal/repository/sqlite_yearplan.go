package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// yearPlanColumns is the canonical SELECT column list for year_plans.
const yearPlanColumns = `id, org_id, title, start_date, end_date, meeting_weekday,
		recurrence_pattern, default_location, blackout_dates, anchors, settings,
		created_by, created_at, updated_at`

// SQLiteYearPlanRepo implements YearPlanRepo using a SQLite database.
type SQLiteYearPlanRepo struct {
	conn db.DBTX
}

// NewSQLiteYearPlanRepo creates a new SQLiteYearPlanRepo. The connection
// may be a *sql.DB or a transaction.
func NewSQLiteYearPlanRepo(conn db.DBTX) *SQLiteYearPlanRepo {
	return &SQLiteYearPlanRepo{conn: conn}
}

// blackoutJSON is the storage shape of a blackout range.
type blackoutJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
}

// anchorJSON is the storage shape of an anchor.
type anchorJSON struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Theme    string `json:"theme,omitempty"`
	Location string `json:"location,omitempty"`
}

func (r *SQLiteYearPlanRepo) Create(ctx context.Context, p *domain.YearPlan) error {
	blackouts, err := encodeBlackouts(p.Blackouts)
	if err != nil {
		return err
	}
	anchors, err := encodeAnchors(p.Anchors)
	if err != nil {
		return err
	}
	settings, err := encodeJSON(p.Settings, "{}")
	if err != nil {
		return err
	}

	query := `INSERT INTO year_plans (id, org_id, title, start_date, end_date, meeting_weekday,
		recurrence_pattern, default_location, blackout_dates, anchors, settings,
		created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query,
		p.ID,
		p.OrgID,
		p.Title,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.MeetingWeekday,
		string(p.Pattern),
		p.DefaultLocation,
		blackouts,
		anchors,
		settings,
		p.CreatedBy,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting year plan: %w", err)
	}
	return nil
}

func (r *SQLiteYearPlanRepo) GetByID(ctx context.Context, id string) (*domain.YearPlan, error) {
	query := `SELECT ` + yearPlanColumns + ` FROM year_plans WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanPlan(row)
}

func (r *SQLiteYearPlanRepo) ListByOrg(ctx context.Context, orgID string) ([]*domain.YearPlan, error) {
	query := `SELECT ` + yearPlanColumns + ` FROM year_plans WHERE org_id = ? ORDER BY start_date`
	rows, err := r.conn.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing year plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.YearPlan
	for rows.Next() {
		p, err := r.scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating year plans: %w", err)
	}
	return plans, nil
}

func (r *SQLiteYearPlanRepo) Update(ctx context.Context, p *domain.YearPlan) error {
	blackouts, err := encodeBlackouts(p.Blackouts)
	if err != nil {
		return err
	}
	anchors, err := encodeAnchors(p.Anchors)
	if err != nil {
		return err
	}
	settings, err := encodeJSON(p.Settings, "{}")
	if err != nil {
		return err
	}

	query := `UPDATE year_plans SET title = ?, default_location = ?, blackout_dates = ?,
		anchors = ?, settings = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.conn.ExecContext(ctx, query,
		p.Title,
		p.DefaultLocation,
		blackouts,
		anchors,
		settings,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating year plan: %w", err)
	}
	return nil
}

func (r *SQLiteYearPlanRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM year_plans WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting year plan: %w", err)
	}
	return nil
}

func (r *SQLiteYearPlanRepo) scanPlan(row *sql.Row) (*domain.YearPlan, error) {
	p, err := scanPlanFrom(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("year plan: %w", ErrNotFound)
	}
	return p, err
}

func (r *SQLiteYearPlanRepo) scanPlanRow(rows *sql.Rows) (*domain.YearPlan, error) {
	return scanPlanFrom(rows.Scan)
}

func scanPlanFrom(scan func(dest ...any) error) (*domain.YearPlan, error) {
	var p domain.YearPlan
	var startStr, endStr, patternStr, blackoutsStr, anchorsStr, settingsStr string
	var createdAtStr, updatedAtStr string

	err := scan(
		&p.ID, &p.OrgID, &p.Title, &startStr, &endStr, &p.MeetingWeekday,
		&patternStr, &p.DefaultLocation, &blackoutsStr, &anchorsStr, &settingsStr,
		&p.CreatedBy, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning year plan: %w", err)
	}

	p.Pattern = domain.RecurrencePattern(patternStr)
	if p.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if p.Blackouts, err = decodeBlackouts(blackoutsStr); err != nil {
		return nil, err
	}
	if p.Anchors, err = decodeAnchors(anchorsStr); err != nil {
		return nil, err
	}
	p.Settings = decodeMap(settingsStr)
	return &p, nil
}

func encodeBlackouts(blackouts []domain.BlackoutRange) (string, error) {
	out := make([]blackoutJSON, 0, len(blackouts))
	for _, b := range blackouts {
		out = append(out, blackoutJSON{
			Start: b.Start.Format(dateLayout),
			End:   b.End.Format(dateLayout),
			Label: b.Label,
		})
	}
	return encodeJSON(out, "[]")
}

func decodeBlackouts(s string) ([]domain.BlackoutRange, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var raw []blackoutJSON
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("decoding blackout_dates: %w", err)
	}
	out := make([]domain.BlackoutRange, 0, len(raw))
	for _, b := range raw {
		start, err := time.Parse(dateLayout, b.Start)
		if err != nil {
			return nil, fmt.Errorf("parsing blackout start: %w", err)
		}
		end, err := time.Parse(dateLayout, b.End)
		if err != nil {
			return nil, fmt.Errorf("parsing blackout end: %w", err)
		}
		out = append(out, domain.BlackoutRange{Start: start, End: end, Label: b.Label})
	}
	return out, nil
}

func encodeAnchors(anchors []domain.Anchor) (string, error) {
	out := make([]anchorJSON, 0, len(anchors))
	for _, a := range anchors {
		out = append(out, anchorJSON{
			ID:       a.ID,
			Date:     a.Date.Format(dateLayout),
			Type:     string(a.Type),
			Theme:    a.Theme,
			Location: a.Location,
		})
	}
	return encodeJSON(out, "[]")
}

func decodeAnchors(s string) ([]domain.Anchor, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var raw []anchorJSON
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("decoding anchors: %w", err)
	}
	out := make([]domain.Anchor, 0, len(raw))
	for _, a := range raw {
		date, err := time.Parse(dateLayout, a.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing anchor date: %w", err)
		}
		out = append(out, domain.Anchor{
			ID:       a.ID,
			Date:     date,
			Type:     domain.AnchorType(a.Type),
			Theme:    a.Theme,
			Location: a.Location,
		})
	}
	return out, nil
}
