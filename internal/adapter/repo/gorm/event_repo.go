package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"colonysim/internal/adapter/repo/gorm/model"
	"colonysim/internal/domain/activity"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, colonistID string, events []activity.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.ActivityEvent, 0, len(events))
	for _, e := range events {
		var payload []byte
		if len(e.Payload) > 0 {
			b, err := json.Marshal(e.Payload)
			if err != nil {
				return fmt.Errorf("encode %s payload: %w", e.Type, err)
			}
			payload = b
		}
		rows = append(rows, model.ActivityEvent{
			ColonistID: colonistID,
			Type:       string(e.Type),
			Activity:   e.Activity,
			Phase:      string(e.Phase),
			Millisol:   e.Millisol,
			Payload:    payload,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListByColonistID returns the newest limit events, oldest first.
func (r EventRepo) ListByColonistID(ctx context.Context, colonistID string, limit int) ([]activity.Event, error) {
	rows := []model.ActivityEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.ActivityEvent{ColonistID: colonistID}).
		Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "millisol"}, Desc: true},
			{Column: clause.Column{Name: "id"}, Desc: true},
		}})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]activity.Event, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		evt, err := toEvent(row)
		if err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, nil
}

func toEvent(row model.ActivityEvent) (activity.Event, error) {
	var payload map[string]any
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return activity.Event{}, fmt.Errorf("decode payload of event %d: %w", row.ID, err)
		}
	}
	return activity.Event{
		Type:     activity.EventType(row.Type),
		WorkerID: row.ColonistID,
		Activity: row.Activity,
		Phase:    activity.Phase(row.Phase),
		Millisol: row.Millisol,
		Payload:  payload,
	}, nil
}
