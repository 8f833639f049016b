package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/config"
	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// PostgresStore implements OverlayStore using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, cfg config.StoreConfig) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns: cfg.MaxConns,
		MinConns: cfg.MinConns,
	})
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for use by subsystems that need
// direct query access (the SQL-backed collectors).
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS user_overlay (
	user_id        TEXT NOT NULL,
	attention_id   TEXT NOT NULL,
	read_state     TEXT NOT NULL DEFAULT 'unread',
	last_viewed_at TIMESTAMPTZ,
	snoozed_until  TIMESTAMPTZ,
	dismissed_at   TIMESTAMPTZ,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, attention_id)
);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) GetOverlay(ctx context.Context, userID string) ([]model.UserOverlayState, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, attention_id, read_state, last_viewed_at, snoozed_until, dismissed_at, updated_at
		 FROM user_overlay WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get overlay for %s", userID)
	}
	defer rows.Close()

	var states []model.UserOverlayState
	for rows.Next() {
		var st model.UserOverlayState
		var lastViewed, snoozed, dismissed sql.NullTime
		if err := rows.Scan(&st.UserID, &st.AttentionID, &st.ReadState, &lastViewed, &snoozed, &dismissed, &st.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan overlay row")
		}
		st.LastViewedAt = nullableTime(lastViewed)
		st.SnoozedUntil = nullableTime(snoozed)
		st.DismissedAt = nullableTime(dismissed)
		states = append(states, st)
	}
	return states, eris.Wrap(rows.Err(), "postgres: overlay iterate")
}

func (s *PostgresStore) SetReadState(ctx context.Context, userID, attentionID string, state model.ReadState, now time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_overlay (user_id, attention_id, read_state, last_viewed_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 ON CONFLICT (user_id, attention_id) DO UPDATE SET
			read_state = CASE
				WHEN user_overlay.read_state = 'acknowledged' THEN user_overlay.read_state
				ELSE excluded.read_state
			END,
			last_viewed_at = excluded.last_viewed_at,
			updated_at = excluded.updated_at`,
		userID, attentionID, string(state), now.UTC(),
	)
	return eris.Wrapf(err, "postgres: set read state %s", attentionID)
}

func (s *PostgresStore) Snooze(ctx context.Context, userID, attentionID string, until, now time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_overlay (user_id, attention_id, read_state, snoozed_until, updated_at)
		 VALUES ($1, $2, 'unread', $3, $4)
		 ON CONFLICT (user_id, attention_id) DO UPDATE SET
			snoozed_until = excluded.snoozed_until,
			updated_at = excluded.updated_at`,
		userID, attentionID, until.UTC(), now.UTC(),
	)
	return eris.Wrapf(err, "postgres: snooze %s", attentionID)
}

func (s *PostgresStore) Dismiss(ctx context.Context, userID, attentionID string, at time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_overlay (user_id, attention_id, read_state, dismissed_at, updated_at)
		 VALUES ($1, $2, 'unread', $3, $3)
		 ON CONFLICT (user_id, attention_id) DO UPDATE SET
			dismissed_at = excluded.dismissed_at,
			updated_at = excluded.updated_at`,
		userID, attentionID, at.UTC(),
	)
	return eris.Wrapf(err, "postgres: dismiss %s", attentionID)
}
