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

// achievementColumns is the canonical SELECT column list for objective_achievements.
const achievementColumns = `id, org_id, objective_id, participant_id, meeting_id,
		achieved_date, attribution_source, notes, created_by, created_at`

// SQLiteAchievementRepo implements AchievementRepo using a SQLite database.
type SQLiteAchievementRepo struct {
	conn db.DBTX
}

// NewSQLiteAchievementRepo creates a new SQLiteAchievementRepo.
func NewSQLiteAchievementRepo(conn db.DBTX) *SQLiteAchievementRepo {
	return &SQLiteAchievementRepo{conn: conn}
}

func (r *SQLiteAchievementRepo) Create(ctx context.Context, a *domain.ObjectiveAchievement) error {
	query := `INSERT INTO objective_achievements (id, org_id, objective_id, participant_id, meeting_id,
		achieved_date, attribution_source, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		a.ID,
		a.OrgID,
		a.ObjectiveID,
		a.ParticipantID,
		a.MeetingID,
		a.AchievedDate.Format(dateLayout),
		a.AttributionSource,
		a.Notes,
		a.CreatedBy,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("achievement for participant %s: %w", a.ParticipantID, domain.ErrConflict)
		}
		return fmt.Errorf("inserting achievement: %w", err)
	}
	return nil
}

func (r *SQLiteAchievementRepo) GetByID(ctx context.Context, id string) (*domain.ObjectiveAchievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM objective_achievements WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	a, err := scanAchievement(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("achievement: %w", ErrNotFound)
	}
	return a, err
}

func (r *SQLiteAchievementRepo) ListByObjective(ctx context.Context, orgID, objectiveID string) ([]*domain.ObjectiveAchievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM objective_achievements
		WHERE org_id = ? AND objective_id = ? ORDER BY achieved_date, participant_id`
	return r.list(ctx, query, orgID, objectiveID)
}

func (r *SQLiteAchievementRepo) ListByParticipant(ctx context.Context, orgID, participantID string) ([]*domain.ObjectiveAchievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM objective_achievements
		WHERE org_id = ? AND participant_id = ? ORDER BY achieved_date`
	return r.list(ctx, query, orgID, participantID)
}

func (r *SQLiteAchievementRepo) CountByObjective(ctx context.Context, objectiveID string) (int, error) {
	var n int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM objective_achievements WHERE objective_id = ?`, objectiveID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting achievements: %w", err)
	}
	return n, nil
}

func (r *SQLiteAchievementRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM objective_achievements WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting achievement: %w", err)
	}
	return nil
}

func (r *SQLiteAchievementRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ObjectiveAchievement, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*domain.ObjectiveAchievement
	for rows.Next() {
		a, err := scanAchievement(rows.Scan)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating achievements: %w", err)
	}
	return achievements, nil
}

func scanAchievement(scan func(dest ...any) error) (*domain.ObjectiveAchievement, error) {
	var a domain.ObjectiveAchievement
	var meetingID sql.NullString
	var achievedStr, createdAtStr string

	err := scan(
		&a.ID, &a.OrgID, &a.ObjectiveID, &a.ParticipantID, &meetingID,
		&achievedStr, &a.AttributionSource, &a.Notes, &a.CreatedBy, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning achievement: %w", err)
	}

	a.MeetingID = nullableString(meetingID)

	if a.AchievedDate, err = time.Parse(dateLayout, achievedStr); err != nil {
		return nil, fmt.Errorf("parsing achieved_date: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}
