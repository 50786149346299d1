package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// objectiveColumns is the canonical SELECT column list for objectives.
const objectiveColumns = `id, year_plan_id, period_id, parent_id, title, description,
		scope, sort_order, created_at, updated_at`

// SQLiteObjectiveRepo implements ObjectiveRepo using a SQLite database.
type SQLiteObjectiveRepo struct {
	conn db.DBTX
}

// NewSQLiteObjectiveRepo creates a new SQLiteObjectiveRepo.
func NewSQLiteObjectiveRepo(conn db.DBTX) *SQLiteObjectiveRepo {
	return &SQLiteObjectiveRepo{conn: conn}
}

func (r *SQLiteObjectiveRepo) Create(ctx context.Context, o *domain.Objective) error {
	query := `INSERT INTO objectives (id, year_plan_id, period_id, parent_id, title, description,
		scope, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		o.ID,
		o.YearPlanID,
		o.PeriodID,
		o.ParentID,
		o.Title,
		o.Description,
		o.Scope,
		o.SortOrder,
		o.CreatedAt.Format(time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting objective: %w", err)
	}
	return nil
}

func (r *SQLiteObjectiveRepo) GetByID(ctx context.Context, id string) (*domain.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	o, err := scanObjective(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("objective: %w", ErrNotFound)
	}
	return o, err
}

func (r *SQLiteObjectiveRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE year_plan_id = ? ORDER BY sort_order, title`
	return r.list(ctx, query, planID)
}

func (r *SQLiteObjectiveRepo) ListByPeriod(ctx context.Context, periodID string) ([]*domain.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE period_id = ? ORDER BY sort_order, title`
	return r.list(ctx, query, periodID)
}

func (r *SQLiteObjectiveRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Objective, error) {
	query := `SELECT ` + objectiveColumns + ` FROM objectives WHERE parent_id = ? ORDER BY sort_order, title`
	return r.list(ctx, query, parentID)
}

func (r *SQLiteObjectiveRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Objective, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing objectives: %w", err)
	}
	defer rows.Close()

	var objectives []*domain.Objective
	for rows.Next() {
		o, err := scanObjective(rows.Scan)
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating objectives: %w", err)
	}
	return objectives, nil
}

func (r *SQLiteObjectiveRepo) Update(ctx context.Context, o *domain.Objective) error {
	query := `UPDATE objectives SET period_id = ?, parent_id = ?, title = ?, description = ?,
		scope = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		o.PeriodID,
		o.ParentID,
		o.Title,
		o.Description,
		o.Scope,
		o.SortOrder,
		o.UpdatedAt.Format(time.RFC3339),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating objective: %w", err)
	}
	return nil
}

func (r *SQLiteObjectiveRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM objectives WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting objective: %w", err)
	}
	return nil
}

func scanObjective(scan func(dest ...any) error) (*domain.Objective, error) {
	var o domain.Objective
	var periodID, parentID sql.NullString
	var createdAtStr, updatedAtStr string

	err := scan(
		&o.ID, &o.YearPlanID, &periodID, &parentID, &o.Title, &o.Description,
		&o.Scope, &o.SortOrder, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning objective: %w", err)
	}

	o.PeriodID = nullableString(periodID)
	o.ParentID = nullableString(parentID)

	if o.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if o.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &o, nil
}
