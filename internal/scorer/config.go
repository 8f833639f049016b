// Package scorer implements multi-factor attention scoring with an
// explainable per-term breakdown.
package scorer

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/teamdeck/attention-engine/internal/config"
)

// DefaultScoringConfig returns the reference scoring weights.
func DefaultScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		SeverityBase:      10,
		SeverityLowMul:    1.0,
		SeverityMediumMul: 1.25,
		SeverityHighMul:   1.5,
		SeverityCritMul:   2.0,

		OverduePerDay:      10,
		DueSoonBonus:       20,
		DueSoonWindowHours: 72,

		OwnerBonus:       15,
		ParticipantBonus: 10,

		DecisionWeight: 30,
		ActionWeight:   20,

		BlockedBonus: 25,

		RecentBonus:       10,
		RecentWindowHours: 24,
		StalePenalty:      -5,
		StaleAfterHours:   72,
	}
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	// Bonuses and multipliers must be non-negative; only the stale penalty
	// may go below zero.
	nonNegative := map[string]float64{
		"severity_base":       c.SeverityBase,
		"severity_low_mul":    c.SeverityLowMul,
		"severity_medium_mul": c.SeverityMediumMul,
		"severity_high_mul":   c.SeverityHighMul,
		"severity_crit_mul":   c.SeverityCritMul,
		"overdue_per_day":     c.OverduePerDay,
		"due_soon_bonus":      c.DueSoonBonus,
		"owner_bonus":         c.OwnerBonus,
		"participant_bonus":   c.ParticipantBonus,
		"decision_weight":     c.DecisionWeight,
		"action_weight":       c.ActionWeight,
		"blocked_bonus":       c.BlockedBonus,
		"recent_bonus":        c.RecentBonus,
	}
	for name, w := range nonNegative {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if c.StalePenalty > 0 {
		errs = append(errs, "stale_penalty must be <= 0")
	}
	if c.DueSoonWindowHours < 0 {
		errs = append(errs, "due_soon_window_hours must be >= 0")
	}
	if c.RecentWindowHours <= 0 {
		errs = append(errs, "recent_window_hours must be > 0")
	}
	if c.StaleAfterHours < c.RecentWindowHours {
		errs = append(errs, "stale_after_hours must be >= recent_window_hours")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// weightOverrides mirrors ScoringConfig with pointer fields so a weights
// file can override a subset and leave the rest at their defaults.
type weightOverrides struct {
	SeverityBase       *float64 `yaml:"severity_base"`
	SeverityLowMul     *float64 `yaml:"severity_low_mul"`
	SeverityMediumMul  *float64 `yaml:"severity_medium_mul"`
	SeverityHighMul    *float64 `yaml:"severity_high_mul"`
	SeverityCritMul    *float64 `yaml:"severity_crit_mul"`
	OverduePerDay      *float64 `yaml:"overdue_per_day"`
	DueSoonBonus       *float64 `yaml:"due_soon_bonus"`
	DueSoonWindowHours *int     `yaml:"due_soon_window_hours"`
	OwnerBonus         *float64 `yaml:"owner_bonus"`
	ParticipantBonus   *float64 `yaml:"participant_bonus"`
	DecisionWeight     *float64 `yaml:"decision_weight"`
	ActionWeight       *float64 `yaml:"action_weight"`
	BlockedBonus       *float64 `yaml:"blocked_bonus"`
	RecentBonus        *float64 `yaml:"recent_bonus"`
	RecentWindowHours  *int     `yaml:"recent_window_hours"`
	StalePenalty       *float64 `yaml:"stale_penalty"`
	StaleAfterHours    *int     `yaml:"stale_after_hours"`
}

// LoadWeights reads a YAML weight-override file and applies it on top of
// base. The file has a top-level "scoring" key; unset fields keep the base
// value.
func LoadWeights(path string, base config.ScoringConfig) (config.ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, eris.Wrapf(err, "scorer: read weights %s", path)
	}

	var wrapper struct {
		Scoring weightOverrides `yaml:"scoring"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return base, eris.Wrap(err, "scorer: parse weights")
	}

	o := wrapper.Scoring
	applyFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	applyInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	applyFloat(&base.SeverityBase, o.SeverityBase)
	applyFloat(&base.SeverityLowMul, o.SeverityLowMul)
	applyFloat(&base.SeverityMediumMul, o.SeverityMediumMul)
	applyFloat(&base.SeverityHighMul, o.SeverityHighMul)
	applyFloat(&base.SeverityCritMul, o.SeverityCritMul)
	applyFloat(&base.OverduePerDay, o.OverduePerDay)
	applyFloat(&base.DueSoonBonus, o.DueSoonBonus)
	applyInt(&base.DueSoonWindowHours, o.DueSoonWindowHours)
	applyFloat(&base.OwnerBonus, o.OwnerBonus)
	applyFloat(&base.ParticipantBonus, o.ParticipantBonus)
	applyFloat(&base.DecisionWeight, o.DecisionWeight)
	applyFloat(&base.ActionWeight, o.ActionWeight)
	applyFloat(&base.BlockedBonus, o.BlockedBonus)
	applyFloat(&base.RecentBonus, o.RecentBonus)
	applyInt(&base.RecentWindowHours, o.RecentWindowHours)
	applyFloat(&base.StalePenalty, o.StalePenalty)
	applyInt(&base.StaleAfterHours, o.StaleAfterHours)

	if err := ValidateConfig(base); err != nil {
		return base, err
	}
	return base, nil
}
