package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttentionIDStable(t *testing.T) {
	a := AttentionID(SourceProject, "P1", TypeActionRequired, "project_blocked")
	b := AttentionID(SourceProject, "P1", TypeActionRequired, "project_blocked")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	assert.Regexp(t, "^[0-9a-f]{32}$", a)
}

func TestAttentionIDDiffersPerField(t *testing.T) {
	base := AttentionID(SourceTask, "T1", TypeActionRequired, "task_due")

	tests := []struct {
		name string
		id   string
	}{
		{"source type", AttentionID(SourceNote, "T1", TypeActionRequired, "task_due")},
		{"source id", AttentionID(SourceTask, "T2", TypeActionRequired, "task_due")},
		{"attention type", AttentionID(SourceTask, "T1", TypeInformational, "task_due")},
		{"reason code", AttentionID(SourceTask, "T1", TypeActionRequired, "task_overdue")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.id)
		})
	}
}

func TestAttentionIDFramingIsInjective(t *testing.T) {
	// Without length prefixes these two would hash the same byte stream.
	a := AttentionID(SourceCustom, "a:b", TypeInformational, "r")
	b := AttentionID(SourceCustom, "a", TypeInformational, "b:r")
	assert.NotEqual(t, a, b)

	c := AttentionID(SourceCustom, "ab", TypeInformational, "r")
	d := AttentionID(SourceCustom, "a", TypeInformational, "br")
	assert.NotEqual(t, c, d)
}

func TestEnsureIDRecomputes(t *testing.T) {
	it := AttentionItem{
		AttentionID:   "stale",
		SourceType:    SourceTradeQueueItem,
		SourceID:      "TQ-9",
		AttentionType: TypeDecisionRequired,
		ReasonCode:    "trade_vote_pending",
	}
	it.EnsureID()
	require.NotEqual(t, "stale", it.AttentionID)
	assert.Equal(t, AttentionID(SourceTradeQueueItem, "TQ-9", TypeDecisionRequired, "trade_vote_pending"), it.AttentionID)
}
