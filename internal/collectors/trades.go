package collectors

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// TradeQueueCollector surfaces trade proposals still waiting on the user's
// vote. Voting deadlines come through as due dates so the scorer escalates
// proposals about to expire.
type TradeQueueCollector struct {
	pool db.Pool
}

// NewTradeQueueCollector creates a TradeQueueCollector over the given pool.
func NewTradeQueueCollector(pool db.Pool) *TradeQueueCollector {
	return &TradeQueueCollector{pool: pool}
}

func (c *TradeQueueCollector) Name() string { return "trade_queue" }

func (c *TradeQueueCollector) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT t.id, t.summary, t.proposed_by, t.voting_closes_at, t.portfolio_id,
		        t.created_at, t.updated_at, t.last_activity_at
		 FROM trade_queue t
		 JOIN trade_voters v ON v.trade_id = t.id
		 WHERE v.user_id = $1
		   AND v.voted_at IS NULL
		   AND t.status = 'open'`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "collectors: query trade queue")
	}
	defer rows.Close()

	var items []model.AttentionItem
	for rows.Next() {
		var (
			id, summary, proposedBy string
			votingClosesAt          time.Time
			portfolioID             string
			createdAt, updatedAt    time.Time
			lastActivityAt          time.Time
		)
		if err := rows.Scan(&id, &summary, &proposedBy, &votingClosesAt, &portfolioID, &createdAt, &updatedAt, &lastActivityAt); err != nil {
			return nil, eris.Wrap(err, "collectors: scan trade")
		}

		due := votingClosesAt
		items = append(items, model.AttentionItem{
			SourceType:         model.SourceTradeQueueItem,
			SourceID:           id,
			SourceURL:          "/trades/" + id,
			AttentionType:      model.TypeDecisionRequired,
			ReasonCode:         "trade_vote_pending",
			ReasonText:         "Trade proposal is waiting on your vote",
			Title:              summary,
			IconKey:            "trade",
			Audience:           model.AudienceShared,
			PrimaryOwnerUserID: userID,
			CreatedByUserID:    proposedBy,
			LastActorUserID:    proposedBy,
			CreatedAt:          createdAt,
			UpdatedAt:          updatedAt,
			LastActivityAt:     lastActivityAt,
			DueAt:              &due,
			Status:             model.StatusOpen,
			Severity:           model.SeverityMedium,
			Context:            model.ContextRefs{PortfolioID: portfolioID},
		})
	}
	return items, eris.Wrap(rows.Err(), "collectors: trade queue iterate")
}
