package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdeck/attention-engine/internal/model"
)

func newTestSQLite(t *testing.T) OverlayStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func getRow(t *testing.T, s OverlayStore, userID, attentionID string) *model.UserOverlayState {
	t.Helper()
	states, err := s.GetOverlay(context.Background(), userID)
	require.NoError(t, err)
	for i := range states {
		if states[i].AttentionID == attentionID {
			return &states[i]
		}
	}
	return nil
}

func TestSQLiteOverlayStore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("EmptyOverlay", func(t *testing.T) {
		s := newTestSQLite(t)
		states, err := s.GetOverlay(context.Background(), "u1")
		require.NoError(t, err)
		assert.Empty(t, states)
	})

	t.Run("BlindUpsertCreatesRow", func(t *testing.T) {
		s := newTestSQLite(t)
		ctx := context.Background()

		// No item with this id exists anywhere; the write must still land.
		require.NoError(t, s.Dismiss(ctx, "u1", "deadbeef", now))

		row := getRow(t, s, "u1", "deadbeef")
		require.NotNil(t, row)
		assert.True(t, row.Dismissed())
		assert.Equal(t, model.ReadStateUnread, row.ReadState)
	})

	t.Run("ReadStateMonotonic", func(t *testing.T) {
		s := newTestSQLite(t)
		ctx := context.Background()

		require.NoError(t, s.SetReadState(ctx, "u1", "a1", model.ReadStateRead, now))
		assert.Equal(t, model.ReadStateRead, getRow(t, s, "u1", "a1").ReadState)

		require.NoError(t, s.SetReadState(ctx, "u1", "a1", model.ReadStateAcknowledged, now.Add(time.Minute)))
		assert.Equal(t, model.ReadStateAcknowledged, getRow(t, s, "u1", "a1").ReadState)

		// mark-read after ack is a no-op on read_state.
		require.NoError(t, s.SetReadState(ctx, "u1", "a1", model.ReadStateRead, now.Add(2*time.Minute)))
		assert.Equal(t, model.ReadStateAcknowledged, getRow(t, s, "u1", "a1").ReadState)
	})

	t.Run("SetReadStateRecordsLastViewed", func(t *testing.T) {
		s := newTestSQLite(t)
		require.NoError(t, s.SetReadState(context.Background(), "u1", "a1", model.ReadStateRead, now))

		row := getRow(t, s, "u1", "a1")
		require.NotNil(t, row.LastViewedAt)
		assert.WithinDuration(t, now, *row.LastViewedAt, time.Second)
	})

	t.Run("SnoozeDoesNotTouchDismissal", func(t *testing.T) {
		s := newTestSQLite(t)
		ctx := context.Background()

		require.NoError(t, s.Dismiss(ctx, "u1", "a1", now))
		require.NoError(t, s.Snooze(ctx, "u1", "a1", now.Add(time.Hour), now))

		row := getRow(t, s, "u1", "a1")
		assert.True(t, row.Dismissed())
		require.NotNil(t, row.SnoozedUntil)
		assert.WithinDuration(t, now.Add(time.Hour), *row.SnoozedUntil, time.Second)
	})

	t.Run("SnoozeIdempotent", func(t *testing.T) {
		s := newTestSQLite(t)
		ctx := context.Background()
		until := now.Add(4 * time.Hour)

		require.NoError(t, s.Snooze(ctx, "u1", "a1", until, now))
		require.NoError(t, s.Snooze(ctx, "u1", "a1", until, now.Add(time.Minute)))

		row := getRow(t, s, "u1", "a1")
		assert.WithinDuration(t, until, *row.SnoozedUntil, time.Second)
		assert.False(t, row.Dismissed())
	})

	t.Run("OverlayIsPerUser", func(t *testing.T) {
		s := newTestSQLite(t)
		ctx := context.Background()

		require.NoError(t, s.Dismiss(ctx, "u1", "shared-id", now))

		assert.NotNil(t, getRow(t, s, "u1", "shared-id"))
		assert.Nil(t, getRow(t, s, "u2", "shared-id"))
	})

	t.Run("Ping", func(t *testing.T) {
		s := newTestSQLite(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}
