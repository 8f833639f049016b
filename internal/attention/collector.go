// Package attention implements the feed computation pipeline: scatter
// collectors, score drafts, apply per-user overlay state, deduplicate, and
// bucket into sections.
package attention

import (
	"context"
	"time"

	"github.com/teamdeck/attention-engine/internal/model"
)

// Collector produces draft attention items (score unset) for one domain
// source. Implementations must be safe for concurrent use; Collect is called
// once per feed computation, in parallel with the other collectors.
type Collector interface {
	Name() string
	Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error)
}

// Static is a fixed-output collector used by tests and the offline compute
// command.
type Static struct {
	SourceName string
	Items      []model.AttentionItem
	Err        error
}

func (s *Static) Name() string {
	if s.SourceName == "" {
		return "static"
	}
	return s.SourceName
}

func (s *Static) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]model.AttentionItem, len(s.Items))
	copy(items, s.Items)
	return items, nil
}
