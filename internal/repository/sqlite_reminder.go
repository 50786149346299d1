package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/annafors/planera/internal/db"
	"github.com/annafors/planera/internal/domain"
)

// reminderColumns is the canonical SELECT column list for reminders.
const reminderColumns = `id, meeting_id, channel, scheduled_at, custom_message, sent_at, created_at`

// SQLiteReminderRepo implements ReminderRepo using a SQLite database.
type SQLiteReminderRepo struct {
	conn db.DBTX
}

// NewSQLiteReminderRepo creates a new SQLiteReminderRepo.
func NewSQLiteReminderRepo(conn db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{conn: conn}
}

func (r *SQLiteReminderRepo) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `INSERT INTO reminders (id, meeting_id, channel, scheduled_at, custom_message, sent_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		rem.ID,
		rem.MeetingID,
		string(rem.Channel),
		rem.ScheduledAt.UTC().Format(time.RFC3339),
		rem.CustomMessage,
		nullableTimeToString(rem.SentAt, time.RFC3339),
		rem.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	rem, err := scanReminder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reminder: %w", ErrNotFound)
	}
	return rem, err
}

func (r *SQLiteReminderRepo) ListByMeeting(ctx context.Context, meetingID string) ([]*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE meeting_id = ? ORDER BY scheduled_at`
	return r.list(ctx, query, meetingID)
}

// ListPending returns unsent reminders due at or before the horizon,
// oldest first, for the delivery worker to poll.
func (r *SQLiteReminderRepo) ListPending(ctx context.Context, horizon time.Time) ([]*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE sent_at IS NULL AND scheduled_at <= ? ORDER BY scheduled_at`
	return r.list(ctx, query, horizon.UTC().Format(time.RFC3339))
}

func (r *SQLiteReminderRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	query := `UPDATE reminders SET sent_at = ? WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, sentAt.UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("marking reminder sent: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reminders WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Reminder, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}
	return reminders, nil
}

func scanReminder(scan func(dest ...any) error) (*domain.Reminder, error) {
	var rem domain.Reminder
	var channelStr, scheduledStr, createdAtStr string
	var sentAt sql.NullString

	err := scan(
		&rem.ID, &rem.MeetingID, &channelStr, &scheduledStr, &rem.CustomMessage,
		&sentAt, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}

	rem.Channel = domain.ReminderChannel(channelStr)
	rem.SentAt = parseNullableTime(sentAt, time.RFC3339)

	if rem.ScheduledAt, err = time.Parse(time.RFC3339, scheduledStr); err != nil {
		return nil, fmt.Errorf("parsing scheduled_at: %w", err)
	}
	if rem.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &rem, nil
}
