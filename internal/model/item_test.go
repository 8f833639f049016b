package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttentionTypePriority(t *testing.T) {
	assert.Equal(t, 4, TypeDecisionRequired.Priority())
	assert.Equal(t, 3, TypeActionRequired.Priority())
	assert.Equal(t, 2, TypeInformational.Priority())
	assert.Equal(t, 1, TypeAlignment.Priority())
	assert.Equal(t, 0, AttentionType("bogus").Priority())
}

func TestLess(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b AttentionItem
		want bool
	}{
		{
			name: "higher priority wins over score",
			a:    AttentionItem{AttentionType: TypeActionRequired, Score: 10},
			b:    AttentionItem{AttentionType: TypeInformational, Score: 40},
			want: true,
		},
		{
			name: "same priority higher score wins",
			a:    AttentionItem{AttentionType: TypeActionRequired, Score: 50},
			b:    AttentionItem{AttentionType: TypeActionRequired, Score: 20},
			want: true,
		},
		{
			name: "score tie falls back to recency",
			a:    AttentionItem{AttentionType: TypeAlignment, Score: 5, LastActivityAt: base},
			b:    AttentionItem{AttentionType: TypeAlignment, Score: 5, LastActivityAt: base.Add(-time.Hour)},
			want: true,
		},
		{
			name: "full tie falls back to lexical id",
			a:    AttentionItem{AttentionID: "aaa", Score: 5, LastActivityAt: base},
			b:    AttentionItem{AttentionID: "bbb", Score: 5, LastActivityAt: base},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(&tt.a, &tt.b))
			assert.False(t, Less(&tt.b, &tt.a))
		})
	}
}

func TestLessIsTotal(t *testing.T) {
	a := AttentionItem{AttentionID: "same", Score: 5}
	b := AttentionItem{AttentionID: "same", Score: 5}
	assert.False(t, Less(&a, &b))
	assert.False(t, Less(&b, &a))
}

func TestHasParticipant(t *testing.T) {
	it := AttentionItem{ParticipantUserIDs: []string{"u1", "u2"}}
	assert.True(t, it.HasParticipant("u2"))
	assert.False(t, it.HasParticipant("u3"))
}

func TestReadStateUpgrades(t *testing.T) {
	assert.True(t, ReadStateRead.Upgrades(ReadStateUnread))
	assert.True(t, ReadStateAcknowledged.Upgrades(ReadStateRead))
	assert.False(t, ReadStateRead.Upgrades(ReadStateAcknowledged))
	assert.False(t, ReadStateUnread.Upgrades(ReadStateUnread))
}

func TestOverlaySnoozedAt(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Second)
	past := now.Add(-time.Second)

	assert.True(t, (&UserOverlayState{SnoozedUntil: &future}).SnoozedAt(now))
	assert.False(t, (&UserOverlayState{SnoozedUntil: &past}).SnoozedAt(now))
	assert.False(t, (&UserOverlayState{}).SnoozedAt(now))
}
