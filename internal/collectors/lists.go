package collectors

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// ListSuggestionCollector surfaces open list-change suggestions. Owners of
// the list get a decision_required item; watchers get an informational one.
type ListSuggestionCollector struct {
	pool db.Pool
}

// NewListSuggestionCollector creates a ListSuggestionCollector over the given pool.
func NewListSuggestionCollector(pool db.Pool) *ListSuggestionCollector {
	return &ListSuggestionCollector{pool: pool}
}

func (c *ListSuggestionCollector) Name() string { return "list_suggestions" }

func (c *ListSuggestionCollector) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT s.id, s.list_id, s.summary, s.suggested_by,
		        s.created_at, s.updated_at, s.last_activity_at,
		        (l.owner_user_id = $1) AS is_owner
		 FROM list_suggestions s
		 JOIN lists l ON l.id = s.list_id
		 WHERE s.status = 'open'
		   AND s.last_activity_at >= $2
		   AND (l.owner_user_id = $1 OR EXISTS (
				SELECT 1 FROM list_watchers w WHERE w.list_id = l.id AND w.user_id = $1))`,
		userID, windowStart,
	)
	if err != nil {
		return nil, eris.Wrap(err, "collectors: query list suggestions")
	}
	defer rows.Close()

	var items []model.AttentionItem
	for rows.Next() {
		var (
			id, listID, summary, suggestedBy string
			createdAt, updatedAt             time.Time
			lastActivityAt                   time.Time
			isOwner                          bool
		)
		if err := rows.Scan(&id, &listID, &summary, &suggestedBy, &createdAt, &updatedAt, &lastActivityAt, &isOwner); err != nil {
			return nil, eris.Wrap(err, "collectors: scan list suggestion")
		}

		attentionType := model.TypeInformational
		reasonCode := "list_suggestion_watching"
		reasonText := "A list you watch has an open suggestion"
		severity := model.SeverityLow
		if isOwner {
			attentionType = model.TypeDecisionRequired
			reasonCode = "list_suggestion_open"
			reasonText = "Your list has a suggestion awaiting review"
			severity = model.SeverityMedium
		}

		item := model.AttentionItem{
			SourceType:      model.SourceListSuggestion,
			SourceID:        id,
			SourceURL:       "/lists/" + listID + "/suggestions/" + id,
			AttentionType:   attentionType,
			ReasonCode:      reasonCode,
			ReasonText:      reasonText,
			Title:           summary,
			IconKey:         "list",
			Audience:        model.AudienceShared,
			CreatedByUserID: suggestedBy,
			LastActorUserID: suggestedBy,
			CreatedAt:       createdAt,
			UpdatedAt:       updatedAt,
			LastActivityAt:  lastActivityAt,
			Status:          model.StatusOpen,
			Severity:        severity,
			Context:         model.ContextRefs{ListID: listID},
		}
		if isOwner {
			item.PrimaryOwnerUserID = userID
		}
		items = append(items, item)
	}
	return items, eris.Wrap(rows.Err(), "collectors: list suggestions iterate")
}
