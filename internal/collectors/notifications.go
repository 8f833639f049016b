package collectors

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// NotificationCollector surfaces unread notifications delivered inside the
// lookback window.
type NotificationCollector struct {
	pool db.Pool
}

// NewNotificationCollector creates a NotificationCollector over the given pool.
func NewNotificationCollector(pool db.Pool) *NotificationCollector {
	return &NotificationCollector{pool: pool}
}

func (c *NotificationCollector) Name() string { return "notifications" }

func (c *NotificationCollector) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT id, title, body, actor_user_id, target_url, created_at
		 FROM notifications
		 WHERE recipient_user_id = $1
		   AND read_at IS NULL
		   AND created_at >= $2`,
		userID, windowStart,
	)
	if err != nil {
		return nil, eris.Wrap(err, "collectors: query notifications")
	}
	defer rows.Close()

	var items []model.AttentionItem
	for rows.Next() {
		var (
			id, title   string
			body        sql.NullString
			actorUserID sql.NullString
			targetURL   sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &title, &body, &actorUserID, &targetURL, &createdAt); err != nil {
			return nil, eris.Wrap(err, "collectors: scan notification")
		}

		item := model.AttentionItem{
			SourceType:         model.SourceNotification,
			SourceID:           id,
			AttentionType:      model.TypeInformational,
			ReasonCode:         "notification_unread",
			ReasonText:         "You have an unread notification",
			Title:              title,
			IconKey:            "bell",
			Audience:           model.AudiencePersonal,
			PrimaryOwnerUserID: userID,
			CreatedAt:          createdAt,
			UpdatedAt:          createdAt,
			LastActivityAt:     createdAt,
			Status:             model.StatusOpen,
			Severity:           model.SeverityLow,
		}
		if body.Valid {
			item.Preview = body.String
		}
		if actorUserID.Valid {
			item.LastActorUserID = actorUserID.String
		}
		if targetURL.Valid {
			item.SourceURL = targetURL.String
		}
		items = append(items, item)
	}
	return items, eris.Wrap(rows.Err(), "collectors: notifications iterate")
}
