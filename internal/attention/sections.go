package attention

import (
	"sort"
	"time"

	"github.com/teamdeck/attention-engine/internal/model"
)

// assemble buckets the deduplicated set into the four fixed sections, sorts
// each by the shared comparator, and fills the response envelope.
func assemble(items []model.AttentionItem, generatedAt time.Time, windowHours int) *model.Feed {
	feed := &model.Feed{
		Sections: model.Sections{
			Informational:    []model.AttentionItem{},
			ActionRequired:   []model.AttentionItem{},
			DecisionRequired: []model.AttentionItem{},
			Alignment:        []model.AttentionItem{},
		},
		GeneratedAt: generatedAt,
		WindowStart: generatedAt.Add(-time.Duration(windowHours) * time.Hour),
		WindowHours: windowHours,
	}

	for _, item := range items {
		switch item.AttentionType {
		case model.TypeActionRequired:
			feed.Sections.ActionRequired = append(feed.Sections.ActionRequired, item)
		case model.TypeDecisionRequired:
			feed.Sections.DecisionRequired = append(feed.Sections.DecisionRequired, item)
		case model.TypeAlignment:
			feed.Sections.Alignment = append(feed.Sections.Alignment, item)
		default:
			feed.Sections.Informational = append(feed.Sections.Informational, item)
		}
	}

	for _, bucket := range []*[]model.AttentionItem{
		&feed.Sections.Informational,
		&feed.Sections.ActionRequired,
		&feed.Sections.DecisionRequired,
		&feed.Sections.Alignment,
	} {
		b := *bucket
		sort.SliceStable(b, func(i, j int) bool { return model.Less(&b[i], &b[j]) })
	}

	feed.Counts = model.Counts{
		Informational:    len(feed.Sections.Informational),
		ActionRequired:   len(feed.Sections.ActionRequired),
		DecisionRequired: len(feed.Sections.DecisionRequired),
		Alignment:        len(feed.Sections.Alignment),
	}
	feed.Counts.Total = feed.Counts.Informational + feed.Counts.ActionRequired +
		feed.Counts.DecisionRequired + feed.Counts.Alignment

	return feed
}
