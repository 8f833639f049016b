package model

import "time"

// ReadState tracks how far a user has progressed through an item.
// Transitions are monotonic: unread -> read -> acknowledged. Mark-read on an
// already-acknowledged row is a no-op.
type ReadState string

const (
	ReadStateUnread       ReadState = "unread"
	ReadStateRead         ReadState = "read"
	ReadStateAcknowledged ReadState = "acknowledged"
)

// rank orders read states for the monotonic-upgrade rule.
func (s ReadState) rank() int {
	switch s {
	case ReadStateAcknowledged:
		return 2
	case ReadStateRead:
		return 1
	}
	return 0
}

// Upgrades reports whether moving to s from prev is a forward transition.
func (s ReadState) Upgrades(prev ReadState) bool {
	return s.rank() > prev.rank()
}

// UserOverlayState is the durable per-(user, attention_id) bookkeeping row.
// Rows are created by blind upsert on first mutation and never deleted by
// this engine; the referenced item need not currently exist.
type UserOverlayState struct {
	UserID       string     `json:"user_id"`
	AttentionID  string     `json:"attention_id"`
	ReadState    ReadState  `json:"read_state"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty"`
	DismissedAt  *time.Time `json:"dismissed_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Dismissed reports whether the row carries a dismissal. Dismissal is
// permanent: any past dismissed_at hides the item regardless of recomputed
// score or severity.
func (o *UserOverlayState) Dismissed() bool {
	return o.DismissedAt != nil
}

// SnoozedAt reports whether the row's snooze is still active at now.
func (o *UserOverlayState) SnoozedAt(now time.Time) bool {
	return o.SnoozedUntil != nil && o.SnoozedUntil.After(now)
}
