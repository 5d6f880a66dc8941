package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"colonysim/internal/adapter/repo/gorm/model"
	"colonysim/internal/app/ports"
)

const clockStateKey = "global"

type ClockRepo struct {
	db *gorm.DB
}

func NewClockRepo(db *gorm.DB) ClockRepo {
	return ClockRepo{db: db}
}

func (r ClockRepo) Load(ctx context.Context) (ports.ClockState, bool, error) {
	var row model.SimClockState
	err := getDBFromCtx(ctx, r.db).
		Where(&model.SimClockState{StateKey: clockStateKey}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ClockState{}, false, nil
		}
		return ports.ClockState{}, false, err
	}
	return ports.ClockState{Tick: row.Tick, Millisol: row.Millisol}, true, nil
}

func (r ClockRepo) Save(ctx context.Context, state ports.ClockState) error {
	row := model.SimClockState{
		StateKey:  clockStateKey,
		Tick:      state.Tick,
		Millisol:  state.Millisol,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"tick", "millisol", "updated_at"}),
	}).Create(&row).Error
}
