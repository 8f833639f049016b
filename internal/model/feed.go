package model

import "time"

// Sections holds the four fixed feed buckets, each sorted by score
// descending with the deterministic fallback from Less.
type Sections struct {
	Informational    []AttentionItem `json:"informational"`
	ActionRequired   []AttentionItem `json:"action_required"`
	DecisionRequired []AttentionItem `json:"decision_required"`
	Alignment        []AttentionItem `json:"alignment"`
}

// Counts summarizes section sizes. Total is always the sum of the four.
type Counts struct {
	Informational    int `json:"informational"`
	ActionRequired   int `json:"action_required"`
	DecisionRequired int `json:"decision_required"`
	Alignment        int `json:"alignment"`
	Total            int `json:"total"`
}

// Feed is the response envelope for one attention computation.
type Feed struct {
	Sections    Sections  `json:"sections"`
	Counts      Counts    `json:"counts"`
	GeneratedAt time.Time `json:"generated_at"`
	WindowStart time.Time `json:"window_start"`
	WindowHours int       `json:"window_hours"`
}
