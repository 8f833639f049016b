// Package model defines the attention item schema shared by collectors,
// the scoring engine, and the overlay store.
package model

import "time"

// SourceType identifies the kind of domain object an item refers to.
type SourceType string

const (
	SourceTask               SourceType = "task"
	SourceWorkflowItem       SourceType = "workflow_item"
	SourceProject            SourceType = "project"
	SourceProjectDeliverable SourceType = "project_deliverable"
	SourceDecision           SourceType = "decision"
	SourceIdea               SourceType = "idea"
	SourceNote               SourceType = "note"
	SourceMessage            SourceType = "message"
	SourceAssetEvent         SourceType = "asset_event"
	SourceCoverageChange     SourceType = "coverage_change"
	SourceFile               SourceType = "file"
	SourceTradeQueueItem     SourceType = "trade_queue_item"
	SourceListSuggestion     SourceType = "list_suggestion"
	SourceNotification       SourceType = "notification"
	SourceCustom             SourceType = "custom"
)

// AttentionType classifies what kind of response an item implies.
type AttentionType string

const (
	TypeInformational    AttentionType = "informational"
	TypeActionRequired   AttentionType = "action_required"
	TypeDecisionRequired AttentionType = "decision_required"
	TypeAlignment        AttentionType = "alignment"
)

// Priority returns the dedup precedence of an attention type. Higher wins.
func (t AttentionType) Priority() int {
	switch t {
	case TypeDecisionRequired:
		return 4
	case TypeActionRequired:
		return 3
	case TypeInformational:
		return 2
	case TypeAlignment:
		return 1
	}
	return 0
}

// Audience describes who an item is visible to.
type Audience string

const (
	AudiencePersonal Audience = "personal"
	AudienceShared   Audience = "shared"
	AudienceTeam     Audience = "team"
)

// Severity is a qualitative urgency tag that seeds the score.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ItemStatus is the lifecycle state of the underlying object.
type ItemStatus string

const (
	StatusOpen       ItemStatus = "open"
	StatusInProgress ItemStatus = "in_progress"
	StatusBlocked    ItemStatus = "blocked"
	StatusWaiting    ItemStatus = "waiting"
	StatusResolved   ItemStatus = "resolved"
	StatusDismissed  ItemStatus = "dismissed"
)

// BreakdownEntry is one explainable term of a computed score.
type BreakdownEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// ContextRefs holds loose back-references used only for navigation.
type ContextRefs struct {
	AssetID     string `json:"asset_id,omitempty" yaml:"asset_id"`
	PortfolioID string `json:"portfolio_id,omitempty" yaml:"portfolio_id"`
	ProjectID   string `json:"project_id,omitempty" yaml:"project_id"`
	ListID      string `json:"list_id,omitempty" yaml:"list_id"`
	WorkflowID  string `json:"workflow_id,omitempty" yaml:"workflow_id"`
}

// AttentionItem is a candidate record produced by a collector. Items are
// recomputed fresh on every request; only per-user overlay state persists.
// The yaml tags exist for the offline fixture format.
type AttentionItem struct {
	AttentionID string `json:"attention_id" yaml:"attention_id"`

	SourceType SourceType `json:"source_type" yaml:"source_type"`
	SourceID   string     `json:"source_id" yaml:"source_id"`
	SourceURL  string     `json:"source_url,omitempty" yaml:"source_url"`

	AttentionType AttentionType `json:"attention_type" yaml:"attention_type"`
	ReasonCode    string        `json:"reason_code" yaml:"reason_code"`
	ReasonText    string        `json:"reason_text" yaml:"reason_text"`

	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle"`
	Preview  string   `json:"preview,omitempty" yaml:"preview"`
	Tags     []string `json:"tags,omitempty" yaml:"tags"`
	IconKey  string   `json:"icon_key,omitempty" yaml:"icon_key"`

	Audience           Audience `json:"audience" yaml:"audience"`
	PrimaryOwnerUserID string   `json:"primary_owner_user_id,omitempty" yaml:"primary_owner_user_id"`
	ParticipantUserIDs []string `json:"participant_user_ids,omitempty" yaml:"participant_user_ids"`
	CreatedByUserID    string   `json:"created_by_user_id,omitempty" yaml:"created_by_user_id"`
	LastActorUserID    string   `json:"last_actor_user_id,omitempty" yaml:"last_actor_user_id"`

	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" yaml:"updated_at"`
	LastActivityAt time.Time  `json:"last_activity_at" yaml:"last_activity_at"`
	DueAt          *time.Time `json:"due_at,omitempty" yaml:"due_at"`

	Status           ItemStatus `json:"status" yaml:"status"`
	BlockerReason    string     `json:"blocker_reason,omitempty" yaml:"blocker_reason"`
	NextAction       string     `json:"next_action,omitempty" yaml:"next_action"`
	ResolutionNote   string     `json:"resolution_note,omitempty" yaml:"resolution_note"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty" yaml:"resolved_at"`
	ResolvedByUserID string     `json:"resolved_by_user_id,omitempty" yaml:"resolved_by_user_id"`

	Severity Severity `json:"severity" yaml:"severity"`

	Score          float64          `json:"score" yaml:"score"`
	ScoreBreakdown []BreakdownEntry `json:"score_breakdown,omitempty" yaml:"score_breakdown"`

	Context ContextRefs `json:"context,omitempty" yaml:"context"`

	// Overlay display state attached by the merge phase. Never affects
	// scoring or ordering.
	ReadState    ReadState  `json:"read_state" yaml:"read_state"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty" yaml:"last_viewed_at"`
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty" yaml:"snoozed_until"`
}

// DedupKey identifies the single underlying object an item refers to.
// Multiple classifications of the same object collapse to one survivor.
type DedupKey struct {
	SourceType SourceType
	SourceID   string
}

// Key returns the item's dedup key.
func (it *AttentionItem) Key() DedupKey {
	return DedupKey{SourceType: it.SourceType, SourceID: it.SourceID}
}

// HasParticipant reports whether userID is in the item's participant set.
func (it *AttentionItem) HasParticipant(userID string) bool {
	for _, id := range it.ParticipantUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Less is the total order used for both dedup survivor selection and
// section sorting: classification priority desc, then score desc, then
// last_activity_at desc, then attention_id asc. The two trailing keys make
// the order deterministic for identical priority/score pairs.
func Less(a, b *AttentionItem) bool {
	pa, pb := a.AttentionType.Priority(), b.AttentionType.Priority()
	if pa != pb {
		return pa > pb
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.LastActivityAt.Equal(b.LastActivityAt) {
		return a.LastActivityAt.After(b.LastActivityAt)
	}
	return a.AttentionID < b.AttentionID
}
