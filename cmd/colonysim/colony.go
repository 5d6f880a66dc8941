package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"colonysim/internal/adapter/airlock/chamber"
	"colonysim/internal/adapter/metrics/inmemory"
	gormrepo "colonysim/internal/adapter/repo/gorm"
	"colonysim/internal/adapter/repo/memory"
	worldruntime "colonysim/internal/adapter/world/runtime"
	"colonysim/internal/app/ports"
	"colonysim/internal/app/replay"
	"colonysim/internal/app/simulation"
	"colonysim/internal/config"
	"colonysim/internal/domain/accident"
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/colonist"
	"colonysim/internal/domain/equipment"
	"colonysim/internal/domain/tasks"
	"colonysim/internal/domain/world"
)

type storage struct {
	events  ports.EventRepository
	records ports.ActivityRecordRepository
	clock   ports.ClockRepository
	tx      ports.TxManager
}

type colony struct {
	driver  *simulation.Driver
	metrics *inmemory.Recorder
	replay  replay.UseCase
}

func buildStorage(ctx context.Context, cfg config.Database, logger *zap.Logger) (storage, error) {
	if cfg.DSN == "" {
		logger.Info("no database configured, keeping history in memory")
		store := memory.NewStore()
		return storage{
			events:  memory.NewEventRepo(store),
			records: memory.NewActivityRecordRepo(store),
			clock:   memory.NewClockRepo(store),
			tx:      memory.NewTxManager(store),
		}, nil
	}
	db, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		return storage{}, fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
	}
	if cfg.Migrate {
		if err := gormrepo.ApplyMigrations(ctx, db, gormrepo.Migrations()); err != nil {
			return storage{}, err
		}
	}
	return storage{
		events:  gormrepo.NewEventRepo(db),
		records: gormrepo.NewActivityRecordRepo(db),
		clock:   gormrepo.NewClockRepo(db),
		tx:      gormrepo.NewTxManager(db),
	}, nil
}

func buildColony(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*colony, error) {
	store, err := buildStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	clock := world.NewClock(world.ClockConfig{
		StartMillisol: cfg.Clock.StartMillisol,
		SunriseAt:     cfg.Clock.SunriseAt,
		SunsetAt:      cfg.Clock.SunsetAt,
	})
	storms := make([]worldruntime.Storm, 0, len(cfg.Storms))
	for _, s := range cfg.Storms {
		storms = append(storms, worldruntime.Storm{Start: s.Start, End: s.End})
	}
	var accidents *accident.Model
	if cfg.Simulation.Seed != 0 {
		accidents = accident.New(cfg.Simulation.Seed)
	}

	metrics := inmemory.NewRecorder()
	driver := simulation.New(simulation.Config{
		Quantum:     cfg.Simulation.Quantum,
		Clock:       clock,
		DefaultSite: position(cfg.Simulation.DefaultSite),
	}, simulation.Deps{
		Airlock: chamber.New(chamber.Config{
			Name:      cfg.Airlock.Name,
			CycleTime: cfg.Airlock.CycleTime,
			Capacity:  cfg.Airlock.Capacity,
			Interior:  position(cfg.Airlock.Interior),
			Exterior:  position(cfg.Airlock.Exterior),
		}),
		Environment: worldruntime.NewProvider(worldruntime.Config{Clock: clock, Storms: storms}),
		Lab:         tasks.NewLab(cfg.Lab.Name, cfg.Lab.Capacity),
		Accidents:   accidents,
		Events:      store.events,
		Records:     store.records,
		ClockRepo:   store.clock,
		TxManager:   store.tx,
		Metrics:     metrics,
		Logger:      logger,
	})
	interior := position(cfg.Airlock.Interior)
	for _, c := range cfg.Colonists {
		if err := driver.AddColonist(newColonist(c, interior)); err != nil {
			return nil, err
		}
	}
	if err := driver.Resume(ctx); err != nil {
		return nil, err
	}
	return &colony{
		driver:  driver,
		metrics: metrics,
		replay:  replay.UseCase{Events: store.events, Records: store.records},
	}, nil
}

func newColonist(c config.Colonist, at world.Position) *colonist.Colonist {
	skills := make(map[activity.Skill]int, len(c.Skills))
	for k, v := range c.Skills {
		skills[activity.Skill(k)] = v
	}
	attrs := make(map[activity.Attribute]int, len(c.Attributes))
	for k, v := range c.Attributes {
		attrs[activity.Attribute(k)] = v
	}
	cfg := colonist.Config{
		ID:             c.ID,
		Name:           c.Name,
		Role:           c.Role,
		Skills:         skills,
		Attributes:     attrs,
		RoleActivities: c.RoleActivities,
		Position:       at,
	}
	if c.Suit {
		cfg.Suit = equipment.NewSuit(c.Name+" suit", equipment.SuitConfig{})
	}
	return colonist.New(cfg)
}

func position(p config.Point) world.Position {
	return world.Position{X: p.X, Y: p.Y}
}
