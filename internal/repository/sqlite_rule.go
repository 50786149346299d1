package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// ruleColumns is the canonical SELECT column list for distribution_rules.
const ruleColumns = `id, year_plan_id, activity_library_id, activity_name,
		distribution_scope, placement_rule, occurrences_per_scope, settings,
		created_at, updated_at`

// SQLiteDistributionRuleRepo implements DistributionRuleRepo using a SQLite database.
type SQLiteDistributionRuleRepo struct {
	conn db.DBTX
}

// NewSQLiteDistributionRuleRepo creates a new SQLiteDistributionRuleRepo.
func NewSQLiteDistributionRuleRepo(conn db.DBTX) *SQLiteDistributionRuleRepo {
	return &SQLiteDistributionRuleRepo{conn: conn}
}

func (r *SQLiteDistributionRuleRepo) Create(ctx context.Context, rule *domain.DistributionRule) error {
	settings, err := encodeJSON(rule.Settings, "{}")
	if err != nil {
		return err
	}

	query := `INSERT INTO distribution_rules (id, year_plan_id, activity_library_id, activity_name,
		distribution_scope, placement_rule, occurrences_per_scope, settings,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query,
		rule.ID,
		rule.YearPlanID,
		rule.ActivityLibraryID,
		rule.ActivityName,
		string(rule.Scope),
		string(rule.Placement),
		rule.OccurrencesPerScope,
		settings,
		rule.CreatedAt.Format(time.RFC3339),
		rule.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting distribution rule: %w", err)
	}
	return nil
}

func (r *SQLiteDistributionRuleRepo) GetByID(ctx context.Context, id string) (*domain.DistributionRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM distribution_rules WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	rule, err := scanRule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("distribution rule: %w", ErrNotFound)
	}
	return rule, err
}

func (r *SQLiteDistributionRuleRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.DistributionRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM distribution_rules WHERE year_plan_id = ? ORDER BY activity_name`
	rows, err := r.conn.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing distribution rules: %w", err)
	}
	defer rows.Close()

	var rules []*domain.DistributionRule
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating distribution rules: %w", err)
	}
	return rules, nil
}

func (r *SQLiteDistributionRuleRepo) Update(ctx context.Context, rule *domain.DistributionRule) error {
	settings, err := encodeJSON(rule.Settings, "{}")
	if err != nil {
		return err
	}

	query := `UPDATE distribution_rules SET activity_library_id = ?, activity_name = ?,
		distribution_scope = ?, placement_rule = ?, occurrences_per_scope = ?, settings = ?,
		updated_at = ?
		WHERE id = ?`
	_, err = r.conn.ExecContext(ctx, query,
		rule.ActivityLibraryID,
		rule.ActivityName,
		string(rule.Scope),
		string(rule.Placement),
		rule.OccurrencesPerScope,
		settings,
		rule.UpdatedAt.Format(time.RFC3339),
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("updating distribution rule: %w", err)
	}
	return nil
}

func (r *SQLiteDistributionRuleRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM distribution_rules WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting distribution rule: %w", err)
	}
	return nil
}

func scanRule(scan func(dest ...any) error) (*domain.DistributionRule, error) {
	var rule domain.DistributionRule
	var libraryID sql.NullString
	var scopeStr, placementStr, settingsStr, createdAtStr, updatedAtStr string

	err := scan(
		&rule.ID, &rule.YearPlanID, &libraryID, &rule.ActivityName,
		&scopeStr, &placementStr, &rule.OccurrencesPerScope, &settingsStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning distribution rule: %w", err)
	}

	rule.ActivityLibraryID = nullableString(libraryID)
	rule.Scope = domain.DistributionScope(scopeStr)
	rule.Placement = domain.PlacementRule(placementStr)
	rule.Settings = decodeMap(settingsStr)

	if rule.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rule.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rule, nil
}
