package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"colonysim/internal/adapter/repo/gorm/model"
	"colonysim/internal/app/ports"
)

type ActivityRecordRepo struct {
	db *gorm.DB
}

func NewActivityRecordRepo(db *gorm.DB) ActivityRecordRepo {
	return ActivityRecordRepo{db: db}
}

func (r ActivityRecordRepo) Save(ctx context.Context, rec ports.ActivityRecord) error {
	row := model.ActivityRecord{
		ID:         rec.ID,
		ColonistID: rec.ColonistID,
		Kind:       rec.Kind,
		Activity:   rec.Activity,
		Outcome:    string(rec.Outcome),
		StartedAt:  rec.StartedAt,
		EndedAt:    rec.EndedAt,
		Error:      rec.Error,
	}
	err := getDBFromCtx(ctx, r.db).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}

func (r ActivityRecordRepo) ListByColonistID(ctx context.Context, colonistID string, limit int) ([]ports.ActivityRecord, error) {
	rows := []model.ActivityRecord{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.ActivityRecord{ColonistID: colonistID}).
		Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "ended_at"}, Desc: true},
			{Column: clause.Column{Name: "created_at"}, Desc: true},
		}})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ActivityRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		out = append(out, ports.ActivityRecord{
			ID:         row.ID,
			ColonistID: row.ColonistID,
			Kind:       row.Kind,
			Activity:   row.Activity,
			Outcome:    ports.ActivityOutcome(row.Outcome),
			StartedAt:  row.StartedAt,
			EndedAt:    row.EndedAt,
			Error:      row.Error,
		})
	}
	return out, nil
}
