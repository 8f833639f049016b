package collectors

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// ProjectCollector surfaces projects the user participates in that are
// blocked or past their target date.
type ProjectCollector struct {
	pool db.Pool
}

// NewProjectCollector creates a ProjectCollector over the given pool.
func NewProjectCollector(pool db.Pool) *ProjectCollector {
	return &ProjectCollector{pool: pool}
}

func (c *ProjectCollector) Name() string { return "projects" }

func (c *ProjectCollector) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT p.id, p.name, p.status, p.blocker_reason, p.target_date, p.owner_user_id,
		        p.created_at, p.updated_at, p.last_activity_at
		 FROM projects p
		 JOIN project_members m ON m.project_id = p.id
		 WHERE m.user_id = $1
		   AND p.status NOT IN ('resolved', 'dismissed')
		   AND (p.status = 'blocked' OR (p.target_date IS NOT NULL AND p.target_date < now()))`,
		userID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "collectors: query projects")
	}
	defer rows.Close()

	var items []model.AttentionItem
	for rows.Next() {
		var (
			id, name, status     string
			blockerReason        sql.NullString
			targetDate           sql.NullTime
			ownerUserID          sql.NullString
			createdAt, updatedAt time.Time
			lastActivityAt       time.Time
		)
		if err := rows.Scan(&id, &name, &status, &blockerReason, &targetDate, &ownerUserID, &createdAt, &updatedAt, &lastActivityAt); err != nil {
			return nil, eris.Wrap(err, "collectors: scan project")
		}

		blocked := status == string(model.StatusBlocked) || blockerReason.Valid
		severity := model.SeverityHigh
		reasonCode := "project_overdue"
		reasonText := "Project \"" + name + "\" is past its target date"
		if blocked {
			reasonCode = "project_blocked"
			reasonText = "Project \"" + name + "\" is blocked"
		}

		item := model.AttentionItem{
			SourceType:     model.SourceProject,
			SourceID:       id,
			SourceURL:      "/projects/" + id,
			AttentionType:  model.TypeActionRequired,
			ReasonCode:     reasonCode,
			ReasonText:     reasonText,
			Title:          name,
			IconKey:        "project",
			Audience:       model.AudienceShared,
			CreatedAt:      createdAt,
			UpdatedAt:      updatedAt,
			LastActivityAt: lastActivityAt,
			Status:         model.ItemStatus(status),
			Severity:       severity,
			Context:        model.ContextRefs{ProjectID: id},
		}
		if ownerUserID.Valid {
			item.PrimaryOwnerUserID = ownerUserID.String
		}
		if blockerReason.Valid {
			item.BlockerReason = blockerReason.String
		}
		if targetDate.Valid {
			due := targetDate.Time
			item.DueAt = &due
		}
		items = append(items, item)
	}
	return items, eris.Wrap(rows.Err(), "collectors: projects iterate")
}
