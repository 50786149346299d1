package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// libraryColumns is the canonical SELECT column list for activity_library.
const libraryColumns = `id, org_id, name, category, tags, min_duration_minutes,
		max_duration_minutes, objective_ids, times_used, last_used_date, avg_rating,
		rating_count, is_active, created_at, updated_at`

// SQLiteActivityLibraryRepo implements ActivityLibraryRepo using a SQLite database.
type SQLiteActivityLibraryRepo struct {
	conn db.DBTX
}

// NewSQLiteActivityLibraryRepo creates a new SQLiteActivityLibraryRepo.
func NewSQLiteActivityLibraryRepo(conn db.DBTX) *SQLiteActivityLibraryRepo {
	return &SQLiteActivityLibraryRepo{conn: conn}
}

func (r *SQLiteActivityLibraryRepo) Create(ctx context.Context, item *domain.ActivityLibraryItem) error {
	tags, err := encodeJSON(item.Tags, "[]")
	if err != nil {
		return err
	}
	objectiveIDs, err := encodeJSON(item.ObjectiveIDs, "[]")
	if err != nil {
		return err
	}

	query := `INSERT INTO activity_library (id, org_id, name, category, tags, min_duration_minutes,
		max_duration_minutes, objective_ids, times_used, last_used_date, avg_rating,
		rating_count, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query,
		item.ID,
		item.OrgID,
		item.Name,
		item.Category,
		tags,
		item.MinDurationMinutes,
		item.MaxDurationMinutes,
		objectiveIDs,
		item.TimesUsed,
		nullableTimeToString(item.LastUsedDate, dateLayout),
		item.AvgRating,
		item.RatingCount,
		boolToInt(item.IsActive),
		item.CreatedAt.Format(time.RFC3339),
		item.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting library item: %w", err)
	}
	return nil
}

func (r *SQLiteActivityLibraryRepo) GetByID(ctx context.Context, id string) (*domain.ActivityLibraryItem, error) {
	query := `SELECT ` + libraryColumns + ` FROM activity_library WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	item, err := scanLibraryItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("library item: %w", ErrNotFound)
	}
	return item, err
}

func (r *SQLiteActivityLibraryRepo) List(ctx context.Context, orgID string, includeInactive bool) ([]*domain.ActivityLibraryItem, error) {
	query := `SELECT ` + libraryColumns + ` FROM activity_library WHERE org_id = ?`
	if !includeInactive {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.conn.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing library items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ActivityLibraryItem
	for rows.Next() {
		item, err := scanLibraryItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating library items: %w", err)
	}
	return items, nil
}

func (r *SQLiteActivityLibraryRepo) Update(ctx context.Context, item *domain.ActivityLibraryItem) error {
	tags, err := encodeJSON(item.Tags, "[]")
	if err != nil {
		return err
	}
	objectiveIDs, err := encodeJSON(item.ObjectiveIDs, "[]")
	if err != nil {
		return err
	}

	query := `UPDATE activity_library SET name = ?, category = ?, tags = ?,
		min_duration_minutes = ?, max_duration_minutes = ?, objective_ids = ?,
		avg_rating = ?, rating_count = ?, is_active = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.conn.ExecContext(ctx, query,
		item.Name,
		item.Category,
		tags,
		item.MinDurationMinutes,
		item.MaxDurationMinutes,
		objectiveIDs,
		item.AvgRating,
		item.RatingCount,
		boolToInt(item.IsActive),
		item.UpdatedAt.Format(time.RFC3339),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating library item: %w", err)
	}
	return nil
}

// RecordUse increments the usage counter and stamps the last-used date.
func (r *SQLiteActivityLibraryRepo) RecordUse(ctx context.Context, id string, usedOn, now time.Time) error {
	query := `UPDATE activity_library SET times_used = times_used + 1, last_used_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		usedOn.Format(dateLayout),
		now.UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("recording library item use: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a library item.
func (r *SQLiteActivityLibraryRepo) Deactivate(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE activity_library SET is_active = 0, updated_at = ? WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, now.UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("deactivating library item: %w", err)
	}
	return nil
}

func scanLibraryItem(scan func(dest ...any) error) (*domain.ActivityLibraryItem, error) {
	var item domain.ActivityLibraryItem
	var tagsStr, objectiveIDsStr, createdAtStr, updatedAtStr string
	var lastUsed sql.NullString
	var activeInt int

	err := scan(
		&item.ID, &item.OrgID, &item.Name, &item.Category, &tagsStr, &item.MinDurationMinutes,
		&item.MaxDurationMinutes, &objectiveIDsStr, &item.TimesUsed, &lastUsed, &item.AvgRating,
		&item.RatingCount, &activeInt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning library item: %w", err)
	}

	item.Tags = decodeStrings(tagsStr)
	item.ObjectiveIDs = decodeStrings(objectiveIDsStr)
	item.LastUsedDate = parseNullableTime(lastUsed, dateLayout)
	item.IsActive = intToBool(activeInt)

	if item.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &item, nil
}
