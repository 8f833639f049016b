package collectors

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// DeliverableCollector surfaces pending project deliverables assigned to
// the user, escalating severity once the due date has passed.
type DeliverableCollector struct {
	pool db.Pool
}

// NewDeliverableCollector creates a DeliverableCollector over the given pool.
func NewDeliverableCollector(pool db.Pool) *DeliverableCollector {
	return &DeliverableCollector{pool: pool}
}

func (c *DeliverableCollector) Name() string { return "deliverables" }

func (c *DeliverableCollector) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT d.id, d.project_id, d.title, d.status, d.due_at,
		        d.created_at, d.updated_at, d.last_activity_at
		 FROM project_deliverables d
		 WHERE d.assignee_user_id = $1
		   AND d.status IN ('open', 'in_progress', 'waiting')`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "collectors: query deliverables")
	}
	defer rows.Close()

	now := time.Now()
	var items []model.AttentionItem
	for rows.Next() {
		var (
			id, projectID, title, status string
			dueAt                        sql.NullTime
			createdAt, updatedAt         time.Time
			lastActivityAt               time.Time
		)
		if err := rows.Scan(&id, &projectID, &title, &status, &dueAt, &createdAt, &updatedAt, &lastActivityAt); err != nil {
			return nil, eris.Wrap(err, "collectors: scan deliverable")
		}

		severity := model.SeverityMedium
		reasonCode := "deliverable_pending"
		reasonText := "Deliverable \"" + title + "\" is waiting on you"
		if dueAt.Valid && dueAt.Time.Before(now) {
			severity = model.SeverityHigh
			reasonCode = "deliverable_overdue"
			reasonText = "Deliverable \"" + title + "\" is overdue"
		}

		item := model.AttentionItem{
			SourceType:         model.SourceProjectDeliverable,
			SourceID:           id,
			SourceURL:          "/projects/" + projectID + "/deliverables/" + id,
			AttentionType:      model.TypeActionRequired,
			ReasonCode:         reasonCode,
			ReasonText:         reasonText,
			Title:              title,
			IconKey:            "deliverable",
			Audience:           model.AudienceShared,
			PrimaryOwnerUserID: userID,
			CreatedAt:          createdAt,
			UpdatedAt:          updatedAt,
			LastActivityAt:     lastActivityAt,
			Status:             model.ItemStatus(status),
			Severity:           severity,
			Context:            model.ContextRefs{ProjectID: projectID},
		}
		if dueAt.Valid {
			due := dueAt.Time
			item.DueAt = &due
		}
		items = append(items, item)
	}
	return items, eris.Wrap(rows.Err(), "collectors: deliverables iterate")
}
