package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/teamdeck/attention-engine/internal/model"
)

// SQLiteStore implements OverlayStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS user_overlay (
	user_id        TEXT NOT NULL,
	attention_id   TEXT NOT NULL,
	read_state     TEXT NOT NULL DEFAULT 'unread',
	last_viewed_at DATETIME,
	snoozed_until  DATETIME,
	dismissed_at   DATETIME,
	updated_at     DATETIME NOT NULL,
	PRIMARY KEY (user_id, attention_id)
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) GetOverlay(ctx context.Context, userID string) ([]model.UserOverlayState, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, attention_id, read_state, last_viewed_at, snoozed_until, dismissed_at, updated_at
		 FROM user_overlay WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get overlay for %s", userID)
	}
	defer rows.Close()

	var states []model.UserOverlayState
	for rows.Next() {
		var st model.UserOverlayState
		var lastViewed, snoozed, dismissed sql.NullTime
		if err := rows.Scan(&st.UserID, &st.AttentionID, &st.ReadState, &lastViewed, &snoozed, &dismissed, &st.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan overlay row")
		}
		st.LastViewedAt = nullableTime(lastViewed)
		st.SnoozedUntil = nullableTime(snoozed)
		st.DismissedAt = nullableTime(dismissed)
		states = append(states, st)
	}
	return states, eris.Wrap(rows.Err(), "sqlite: overlay iterate")
}

// Read-state transitions are monotonic: once acknowledged, a later
// mark-read keeps acknowledged. Enforced here rather than in the handler so
// concurrent writers cannot interleave a downgrade.
func (s *SQLiteStore) SetReadState(ctx context.Context, userID, attentionID string, state model.ReadState, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_overlay (user_id, attention_id, read_state, last_viewed_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, attention_id) DO UPDATE SET
			read_state = CASE
				WHEN user_overlay.read_state = 'acknowledged' THEN user_overlay.read_state
				ELSE excluded.read_state
			END,
			last_viewed_at = excluded.last_viewed_at,
			updated_at = excluded.updated_at`,
		userID, attentionID, string(state), now.UTC(), now.UTC(),
	)
	return eris.Wrapf(err, "sqlite: set read state %s", attentionID)
}

func (s *SQLiteStore) Snooze(ctx context.Context, userID, attentionID string, until, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_overlay (user_id, attention_id, read_state, snoozed_until, updated_at)
		 VALUES (?, ?, 'unread', ?, ?)
		 ON CONFLICT(user_id, attention_id) DO UPDATE SET
			snoozed_until = excluded.snoozed_until,
			updated_at = excluded.updated_at`,
		userID, attentionID, until.UTC(), now.UTC(),
	)
	return eris.Wrapf(err, "sqlite: snooze %s", attentionID)
}

func (s *SQLiteStore) Dismiss(ctx context.Context, userID, attentionID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_overlay (user_id, attention_id, read_state, dismissed_at, updated_at)
		 VALUES (?, ?, 'unread', ?, ?)
		 ON CONFLICT(user_id, attention_id) DO UPDATE SET
			dismissed_at = excluded.dismissed_at,
			updated_at = excluded.updated_at`,
		userID, attentionID, at.UTC(), at.UTC(),
	)
	return eris.Wrapf(err, "sqlite: dismiss %s", attentionID)
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
