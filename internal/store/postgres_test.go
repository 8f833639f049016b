package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdeck/attention-engine/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

var mockNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestPostgresStore_GetOverlay(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	dismissed := mockNow.Add(-time.Hour)
	rows := pgxmock.NewRows([]string{
		"user_id", "attention_id", "read_state", "last_viewed_at", "snoozed_until", "dismissed_at", "updated_at",
	}).
		AddRow("u1", "a1", "read", nil, nil, nil, mockNow).
		AddRow("u1", "a2", "unread", nil, nil, dismissed, mockNow)

	mock.ExpectQuery(`SELECT user_id, attention_id, read_state`).
		WithArgs("u1").
		WillReturnRows(rows)

	states, err := s.GetOverlay(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, model.ReadStateRead, states[0].ReadState)
	assert.False(t, states[0].Dismissed())
	assert.True(t, states[1].Dismissed())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetReadState_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("u1", "a1", "acknowledged", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SetReadState(context.Background(), "u1", "a1", model.ReadStateAcknowledged, mockNow)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Snooze_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	until := mockNow.Add(6 * time.Hour)
	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("u1", "a1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.Snooze(context.Background(), "u1", "a1", until, mockNow)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Dismiss_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("u1", "a1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.Dismiss(context.Background(), "u1", "a1", mockNow)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetOverlay_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT user_id, attention_id, read_state`).
		WithArgs("u1").
		WillReturnError(assert.AnError)

	_, err := s.GetOverlay(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get overlay")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS user_overlay`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
