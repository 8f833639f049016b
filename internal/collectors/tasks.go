// Package collectors contains the SQL-backed producers that feed the
// attention engine, one per domain source. Each returns draft items with the
// score unset; identity and scoring are applied by the engine.
package collectors

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/teamdeck/attention-engine/internal/db"
	"github.com/teamdeck/attention-engine/internal/model"
)

// TaskCollector surfaces open tasks the user owns whose due date has
// arrived or falls inside the lookback window.
type TaskCollector struct {
	pool db.Pool
}

// NewTaskCollector creates a TaskCollector over the given pool.
func NewTaskCollector(pool db.Pool) *TaskCollector {
	return &TaskCollector{pool: pool}
}

func (c *TaskCollector) Name() string { return "tasks" }

func (c *TaskCollector) Collect(ctx context.Context, userID string, windowStart time.Time) ([]model.AttentionItem, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT id, title, status, due_at, created_at, updated_at, last_activity_at, created_by
		 FROM tasks
		 WHERE owner_user_id = $1
		   AND status IN ('open', 'in_progress')
		   AND due_at IS NOT NULL
		   AND (due_at <= now() + interval '72 hours' OR last_activity_at >= $2)`,
		userID, windowStart,
	)
	if err != nil {
		return nil, eris.Wrap(err, "collectors: query tasks")
	}
	defer rows.Close()

	now := time.Now()
	var items []model.AttentionItem
	for rows.Next() {
		var (
			id, title, status, createdBy string
			dueAt                        sql.NullTime
			createdAt, updatedAt         time.Time
			lastActivityAt               time.Time
		)
		if err := rows.Scan(&id, &title, &status, &dueAt, &createdAt, &updatedAt, &lastActivityAt, &createdBy); err != nil {
			return nil, eris.Wrap(err, "collectors: scan task")
		}

		overdue := dueAt.Valid && dueAt.Time.Before(now)
		severity := model.SeverityMedium
		reasonCode := "task_due"
		reasonText := "Task \"" + title + "\" is due soon"
		if overdue {
			severity = model.SeverityHigh
			reasonCode = "task_overdue"
			reasonText = "Task \"" + title + "\" is overdue"
		}

		item := model.AttentionItem{
			SourceType:         model.SourceTask,
			SourceID:           id,
			SourceURL:          "/tasks/" + id,
			AttentionType:      model.TypeActionRequired,
			ReasonCode:         reasonCode,
			ReasonText:         reasonText,
			Title:              title,
			IconKey:            "task",
			Audience:           model.AudiencePersonal,
			PrimaryOwnerUserID: userID,
			CreatedByUserID:    createdBy,
			CreatedAt:          createdAt,
			UpdatedAt:          updatedAt,
			LastActivityAt:     lastActivityAt,
			Status:             model.ItemStatus(status),
			Severity:           severity,
		}
		if dueAt.Valid {
			due := dueAt.Time
			item.DueAt = &due
		}
		items = append(items, item)
	}
	return items, eris.Wrap(rows.Err(), "collectors: tasks iterate")
}
