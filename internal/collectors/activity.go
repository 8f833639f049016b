package collectors

import (
	"context"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// burstThreshold is the minimum message count in the window for a channel
// to register as a burst.
const burstThreshold = 10

// ActivityCollector surfaces channels the user belongs to that saw a burst
// of messages inside the lookback window. One item per channel; the channel
// itself is the source so repeated computes dedupe naturally.
type ActivityCollector struct {
	pool db.Pool
}

// NewActivityCollector creates an ActivityCollector over the given pool.
func NewActivityCollector(pool db.Pool) *ActivityCollector {
	return &ActivityCollector{pool: pool}
}

func (c *ActivityCollector) Name() string { return "activity" }

func (c *ActivityCollector) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT ch.id, ch.name, COUNT(m.id) AS message_count,
		        MIN(m.created_at) AS first_at, MAX(m.created_at) AS last_at,
		        (array_agg(m.author_user_id ORDER BY m.created_at DESC))[1] AS last_author
		 FROM channels ch
		 JOIN channel_members cm ON cm.channel_id = ch.id
		 JOIN messages m ON m.channel_id = ch.id AND m.created_at >= $2
		 WHERE cm.user_id = $1
		 GROUP BY ch.id, ch.name
		 HAVING COUNT(m.id) >= $3`,
		userID, windowStart, burstThreshold,
	)
	if err != nil {
		return nil, eris.Wrap(err, "collectors: query activity")
	}
	defer rows.Close()

	var items []model.AttentionItem
	for rows.Next() {
		var (
			channelID, channelName string
			messageCount           int
			firstAt, lastAt        time.Time
			lastAuthor             string
		)
		if err := rows.Scan(&channelID, &channelName, &messageCount, &firstAt, &lastAt, &lastAuthor); err != nil {
			return nil, eris.Wrap(err, "collectors: scan activity")
		}

		items = append(items, model.AttentionItem{
			SourceType:      model.SourceMessage,
			SourceID:        channelID,
			SourceURL:       "/channels/" + channelID,
			AttentionType:   model.TypeAlignment,
			ReasonCode:      "team_activity_burst",
			ReasonText:      strconv.Itoa(messageCount) + " new messages in #" + channelName,
			Title:           "#" + channelName,
			Subtitle:        strconv.Itoa(messageCount) + " messages",
			IconKey:         "activity",
			Audience:        model.AudienceShared,
			LastActorUserID: lastAuthor,
			CreatedAt:       firstAt,
			UpdatedAt:       lastAt,
			LastActivityAt:  lastAt,
			Status:          model.StatusOpen,
			Severity:        model.SeverityLow,
		})
	}
	return items, eris.Wrap(rows.Err(), "collectors: activity iterate")
}
