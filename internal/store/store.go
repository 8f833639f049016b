// Package store persists per-user overlay state (read/snoozed/dismissed).
// Overlay rows are the only durable state in the attention engine; items
// themselves are recomputed fresh on every request.
package store

import (
	"context"
	"time"

	"github.com/teamdeck/attention-engine/internal/model"
)

// OverlayStore is the persistence interface for overlay rows, keyed by
// (user_id, attention_id). All writes are blind upserts: the referenced
// item need not currently exist, which is what lets a user dismiss
// something that has since resolved or disappeared from collectors.
type OverlayStore interface {
	// GetOverlay returns every overlay row for a user, for the merge phase.
	GetOverlay(ctx context.Context, userID string) ([]model.UserOverlayState, error)

	// SetReadState upserts the read state. Transitions are monotonic:
	// an acknowledged row is never downgraded to read.
	SetReadState(ctx context.Context, userID, attentionID string, state model.ReadState, now time.Time) error

	// Snooze upserts snoozed_until. It never touches dismissed_at.
	Snooze(ctx context.Context, userID, attentionID string, until, now time.Time) error

	// Dismiss upserts dismissed_at. There is no undismiss operation.
	Dismiss(ctx context.Context, userID, attentionID string, at time.Time) error

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
