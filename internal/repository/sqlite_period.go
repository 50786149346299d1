package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// periodColumns is the canonical SELECT column list for periods.
const periodColumns = `id, year_plan_id, title, start_date, end_date, sort_order,
		created_at, updated_at`

// SQLitePeriodRepo implements PeriodRepo using a SQLite database.
type SQLitePeriodRepo struct {
	conn db.DBTX
}

// NewSQLitePeriodRepo creates a new SQLitePeriodRepo.
func NewSQLitePeriodRepo(conn db.DBTX) *SQLitePeriodRepo {
	return &SQLitePeriodRepo{conn: conn}
}

func (r *SQLitePeriodRepo) Create(ctx context.Context, p *domain.Period) error {
	query := `INSERT INTO periods (id, year_plan_id, title, start_date, end_date, sort_order,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID,
		p.YearPlanID,
		p.Title,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.SortOrder,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting period: %w", err)
	}
	return nil
}

func (r *SQLitePeriodRepo) GetByID(ctx context.Context, id string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	p, err := scanPeriod(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("period: %w", ErrNotFound)
	}
	return p, err
}

func (r *SQLitePeriodRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE year_plan_id = ? ORDER BY sort_order, start_date`
	rows, err := r.conn.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	defer rows.Close()

	var periods []*domain.Period
	for rows.Next() {
		p, err := scanPeriod(rows.Scan)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}
	return periods, nil
}

func (r *SQLitePeriodRepo) Update(ctx context.Context, p *domain.Period) error {
	query := `UPDATE periods SET title = ?, start_date = ?, end_date = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		p.Title,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.SortOrder,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating period: %w", err)
	}
	return nil
}

func (r *SQLitePeriodRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM periods WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting period: %w", err)
	}
	return nil
}

func scanPeriod(scan func(dest ...any) error) (*domain.Period, error) {
	var p domain.Period
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := scan(
		&p.ID, &p.YearPlanID, &p.Title, &startStr, &endStr, &p.SortOrder,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning period: %w", err)
	}

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
	return &p, nil
}
