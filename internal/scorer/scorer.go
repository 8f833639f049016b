package scorer

import (
	"math"
	"time"

	"github.com/teamdeck/attention-engine/internal/config"
	"github.com/teamdeck/attention-engine/internal/model"
)

// Score computes the attention score for one item as seen by userID at now.
// Pure function: no I/O, no shared state. Every nonzero term is recorded in
// the breakdown in a fixed order; the final score is floored at zero.
func Score(item *model.AttentionItem, userID string, now time.Time, cfg config.ScoringConfig) (float64, []model.BreakdownEntry) {
	var breakdown []model.BreakdownEntry
	total := 0.0

	add := func(key string, value float64) {
		if value == 0 {
			return
		}
		total += value
		breakdown = append(breakdown, model.BreakdownEntry{Key: key, Value: value})
	}

	add("severity", cfg.SeverityBase*severityMultiplier(item.Severity, cfg))

	// Urgency: overdue dominates, otherwise a flat bonus when the deadline
	// is inside the due-soon window.
	if item.DueAt != nil {
		if item.DueAt.Before(now) {
			overdueDays := math.Floor(math.Abs(now.Sub(*item.DueAt).Hours()) / 24)
			add("overdue", overdueDays*cfg.OverduePerDay)
		} else if item.DueAt.Sub(now) <= time.Duration(cfg.DueSoonWindowHours)*time.Hour {
			add("due_soon", cfg.DueSoonBonus)
		}
	}

	// Ownership: owner bonus and participant bonus are mutually exclusive.
	if item.PrimaryOwnerUserID != "" && item.PrimaryOwnerUserID == userID {
		add("owner", cfg.OwnerBonus)
	} else if item.HasParticipant(userID) {
		add("participant", cfg.ParticipantBonus)
	}

	switch item.AttentionType {
	case model.TypeDecisionRequired:
		add("decision_required", cfg.DecisionWeight)
	case model.TypeActionRequired:
		add("action_required", cfg.ActionWeight)
	}

	if item.Status == model.StatusBlocked || item.BlockerReason != "" {
		add("blocked", cfg.BlockedBonus)
	}

	age := now.Sub(item.LastActivityAt)
	if age <= time.Duration(cfg.RecentWindowHours)*time.Hour {
		add("recent_activity", cfg.RecentBonus)
	} else if age > time.Duration(cfg.StaleAfterHours)*time.Hour {
		add("stale", cfg.StalePenalty)
	}

	return math.Max(0, total), breakdown
}

// Apply scores item in place.
func Apply(item *model.AttentionItem, userID string, now time.Time, cfg config.ScoringConfig) {
	item.Score, item.ScoreBreakdown = Score(item, userID, now, cfg)
}

func severityMultiplier(s model.Severity, cfg config.ScoringConfig) float64 {
	switch s {
	case model.SeverityCritical:
		return cfg.SeverityCritMul
	case model.SeverityHigh:
		return cfg.SeverityHighMul
	case model.SeverityMedium:
		return cfg.SeverityMediumMul
	default:
		return cfg.SeverityLowMul
	}
}
