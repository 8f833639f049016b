package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamdeck/attention-engine/internal/config"
	"github.com/teamdeck/attention-engine/internal/scorer"
)

func TestNewStoreSQLite(t *testing.T) {
	st, err := newStore(context.Background(), config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	defer st.Close()

	assert.NoError(t, st.Ping(context.Background()))
}

func TestNewStoreDefaultsToSQLite(t *testing.T) {
	st, err := newStore(context.Background(), config.StoreConfig{
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	st.Close()
}

func TestNewStoreUnknownDriver(t *testing.T) {
	_, err := newStore(context.Background(), config.StoreConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestLoadScoringDefaults(t *testing.T) {
	c := &config.Config{Scoring: scorer.DefaultScoringConfig()}

	scoring, err := loadScoring(c)
	require.NoError(t, err)
	assert.Equal(t, 10.0, scoring.SeverityBase)
}

func TestLoadScoringWeightsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  decision_weight: 50\n"), 0o644))

	c := &config.Config{Scoring: scorer.DefaultScoringConfig()}
	c.Scoring.WeightsFile = path

	scoring, err := loadScoring(c)
	require.NoError(t, err)
	assert.Equal(t, 50.0, scoring.DecisionWeight)
	assert.Equal(t, 10.0, scoring.SeverityBase)
}

func TestLoadScoringRejectsInvalidWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  severity_base: -1\n"), 0o644))

	c := &config.Config{Scoring: scorer.DefaultScoringConfig()}
	c.Scoring.WeightsFile = path

	_, err := loadScoring(c)
	require.Error(t, err)
}
