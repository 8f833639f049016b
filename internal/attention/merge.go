package attention

import (
	"time"

	"github.com/teamdeck/attention-engine/internal/model"
)

// applyOverlay drops items the user has dismissed or actively snoozed and
// attaches read-state display fields to the survivors. Items without an
// overlay row pass through as unread. Overlay state never affects scores.
func applyOverlay(items []model.AttentionItem, states []model.UserOverlayState, now time.Time) []model.AttentionItem {
	byID := make(map[string]*model.UserOverlayState, len(states))
	for i := range states {
		byID[states[i].AttentionID] = &states[i]
	}

	out := make([]model.AttentionItem, 0, len(items))
	for _, item := range items {
		st, ok := byID[item.AttentionID]
		if !ok {
			item.ReadState = model.ReadStateUnread
			out = append(out, item)
			continue
		}
		if st.Dismissed() || st.SnoozedAt(now) {
			continue
		}
		item.ReadState = st.ReadState
		item.LastViewedAt = st.LastViewedAt
		item.SnoozedUntil = st.SnoozedUntil
		out = append(out, item)
	}
	return out
}
