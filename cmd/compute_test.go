package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdeck/attention-engine/internal/model"
)

const fixtureYAML = `items:
  - source_type: task
    source_id: t1
    attention_type: action_required
    reason_code: task_overdue
    reason_text: Task is overdue
    title: File the report
    audience: personal
    severity: high
    status: open
    created_at: 2026-08-29T10:00:00Z
    updated_at: 2026-08-30T09:00:00Z
    last_activity_at: 2026-08-30T09:00:00Z
  - source_type: decision
    source_id: d1
    attention_type: decision_required
    reason_code: decision_open
    reason_text: Decision is waiting on you
    title: Pick a vendor
    audience: shared
    severity: medium
    status: open
    created_at: 2026-08-29T10:00:00Z
    updated_at: 2026-08-30T09:00:00Z
    last_activity_at: 2026-08-30T09:00:00Z
`

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	items, err := loadFixtures(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, model.SourceTask, items[0].SourceType)
	assert.Equal(t, "t1", items[0].SourceID)
	assert.Equal(t, model.SeverityHigh, items[0].Severity)
	assert.Equal(t, model.TypeDecisionRequired, items[1].AttentionType)
	assert.False(t, items[0].LastActivityAt.IsZero())
}

func TestLoadFixturesMissingFile(t *testing.T) {
	_, err := loadFixtures(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read fixtures")
}

func TestLoadFixturesInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: {not a list"), 0o644))

	_, err := loadFixtures(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse fixtures")
}
