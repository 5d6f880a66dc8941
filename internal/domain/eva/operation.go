// Package eva brackets outdoor work between leaving and re-entering a
// habitat through an airlock.
package eva

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"colonysim/internal/domain/accident"
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/walk"
	"colonysim/internal/domain/world"
)

const (
	PhaseExitAirlock  activity.Phase = "exit_airlock"
	PhaseWalkBack     activity.Phase = "walk_back"
	PhaseEnterAirlock activity.Phase = "enter_airlock"

	StressModifier     = 0.05
	ExperienceRatio    = 100.0
	BaseAccidentChance = accident.BaseChance

	MinPerformance    = 0.05
	MinOxygenFraction = 0.2
	MaxStress         = 100.0
)

var (
	ErrNoWorkPhase    = errors.New("eva operation needs at least one work phase")
	ErrWorkPhaseTaken = errors.New("work phase id already in use")
)

type WorkPhase struct {
	Phase   activity.Phase
	Handler activity.PhaseHandler
}

type Config struct {
	// Task configures the underlying activity. Worker is always the
	// colonist, and Skill defaults to EVA operations.
	Task        activity.Config
	Airlock     Airlock
	Environment Environment
	Site        world.Position
	// SiteDuration caps the time spent working at the site; 0 means none.
	SiteDuration float64
	// Work phases run outside in order of registration; the first one is
	// entered on reaching the site.
	Work []WorkPhase
	// Stow runs once the colonist is back inside, before the activity ends.
	Stow func()
}

// Operation is an activity that leaves the habitat, works outside and comes
// back. Concrete EVA activities embed it and supply work phases.
type Operation struct {
	*activity.Task
	colonist     Colonist
	suit         Suit
	airlock      Airlock
	env          Environment
	site         world.Position
	siteDuration float64
	siteTime     float64
	firstWork    activity.Phase
	stow         func()

	exitedAirlock  bool
	enteredAirlock bool
	endEVA         bool
	endRequest     string
}

func New(colonist Colonist, cfg Config) (*Operation, error) {
	if colonist == nil {
		return nil, activity.ErrNoWorker
	}
	if len(cfg.Work) == 0 {
		return nil, ErrNoWorkPhase
	}
	tc := cfg.Task
	tc.Worker = colonist
	if tc.Skill == activity.SkillNone {
		tc.Skill = activity.SkillEVAOperations
	}
	if tc.StressModifier == 0 {
		tc.StressModifier = StressModifier
	}
	if tc.ExperienceRatio == 0 {
		tc.ExperienceRatio = ExperienceRatio
	}
	task, err := activity.NewTask(tc)
	if err != nil {
		return nil, err
	}

	o := &Operation{
		Task:         task,
		colonist:     colonist,
		airlock:      cfg.Airlock,
		env:          cfg.Environment,
		site:         cfg.Site,
		siteDuration: cfg.SiteDuration,
		firstWork:    cfg.Work[0].Phase,
		stow:         cfg.Stow,
	}
	o.AddPhase(PhaseExitAirlock, o.exitAirlock)
	for _, w := range cfg.Work {
		if w.Phase == activity.NoPhase || o.HasPhase(w.Phase) || w.Phase == PhaseWalkBack || w.Phase == PhaseEnterAirlock {
			return nil, fmt.Errorf("%w: %q", ErrWorkPhaseTaken, w.Phase)
		}
		o.AddPhase(w.Phase, o.work(w.Handler))
	}
	o.AddPhase(PhaseWalkBack, o.walkBack)
	o.AddPhase(PhaseEnterAirlock, o.enterAirlock)
	o.OnEnd(func() {
		o.releaseOperator()
		o.leaveChamber()
	})

	if cfg.Airlock == nil {
		o.ClearTask("no airlock reachable")
		return o, nil
	}
	if s := colonist.Suit(); s != nil {
		o.suit = s
	} else {
		o.ClearTask("no EVA suit available")
		return o, nil
	}

	if colonist.Outside() {
		o.exitedAirlock = true
		if err := o.goToSite(); err != nil {
			return nil, err
		}
		return o, nil
	}
	if err := o.SetPhase(PhaseExitAirlock); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Operation) Colonist() Colonist   { return o.colonist }
func (o *Operation) Airlock() Airlock     { return o.airlock }
func (o *Operation) Suit() Suit           { return o.suit }
func (o *Operation) Site() world.Position { return o.site }
func (o *Operation) SiteTime() float64    { return o.siteTime }
func (o *Operation) ExitedAirlock() bool  { return o.exitedAirlock }
func (o *Operation) EnteredAirlock() bool { return o.enteredAirlock }

// RequestEnd asks the operation to stop working and head back at the next
// work slice.
func (o *Operation) RequestEnd(reason string) {
	o.endEVA = true
	o.endRequest = reason
}

// ShouldEndEVAOperation reports whether the colonist should stop working
// outside.
func (o *Operation) ShouldEndEVAOperation() bool {
	return o.EndReason() != ""
}

// EndReason returns why the operation should end, or "" if it should not.
func (o *Operation) EndReason() string {
	switch {
	case o.endEVA:
		if o.endRequest == "" {
			return "end requested"
		}
		return o.endRequest
	case o.colonist.Performance() < MinPerformance:
		return "performance too low"
	case o.colonist.Stress() >= MaxStress:
		return "exhausted"
	case o.suit == nil:
		return "no EVA suit"
	case o.suit.OxygenFraction() <= MinOxygenFraction:
		return "suit oxygen low"
	case o.suit.HasMalfunction():
		return "suit malfunction"
	}
	if o.env != nil {
		c := o.env.EVAConditions()
		if !c.Daylight {
			return "too dark outside"
		}
		if c.DustStorm {
			return "dust storm"
		}
	}
	return ""
}

// CheckForAccident rolls for an accident on the suit.
func (o *Operation) CheckForAccident(time float64) bool {
	if o.suit == nil {
		return false
	}
	return o.Task.CheckForAccident(o.suit, BaseAccidentChance, time, o.location())
}

// FinishWork sends the colonist back to the airlock.
func (o *Operation) FinishWork() error {
	return o.SetPhase(PhaseWalkBack)
}

// AbortEVA stops outdoor work. A colonist outside walks back; one still
// inside simply ends the activity.
func (o *Operation) AbortEVA(reason string) error {
	o.Logger().Info("aborting EVA", zap.String("reason", reason))
	if o.colonist.Outside() {
		return o.SetPhase(PhaseWalkBack)
	}
	o.ClearTask(reason)
	return nil
}

func (o *Operation) exitAirlock(time float64) (float64, error) {
	inChamber := o.airlock.OccupiedBy(o.colonist.ID())
	if !inChamber && o.ShouldEndEVAOperation() {
		o.ClearTask(o.EndReason())
		return time, nil
	}
	left, through := o.passThrough(time, egress(o.airlock))
	if !through {
		return left, nil
	}
	o.exitedAirlock = true
	o.colonist.SetOutside(true)
	o.colonist.SetPosition(o.airlock.ExteriorPosition())
	return left, o.goToSite()
}

func (o *Operation) goToSite() error {
	if err := o.SetPhase(o.firstWork); err != nil {
		return err
	}
	return o.walkTo(o.site)
}

func (o *Operation) walkTo(target world.Position) error {
	if o.colonist.Position().Close(target) {
		return nil
	}
	w, err := walk.New(o.colonist, walk.Config{Target: target, Env: o.Env()})
	if err != nil {
		return err
	}
	o.AddSubTask(w)
	return nil
}

func (o *Operation) work(handler activity.PhaseHandler) activity.PhaseHandler {
	return func(time float64) (float64, error) {
		if o.ShouldEndEVAOperation() {
			return time, o.AbortEVA(o.EndReason())
		}
		if o.siteDuration > 0 && o.siteTime >= o.siteDuration {
			return time, o.FinishWork()
		}
		slice := time
		if o.siteDuration > 0 && o.siteDuration-o.siteTime < slice {
			slice = o.siteDuration - o.siteTime
		}

		o.CheckForAccident(slice)
		left, err := handler(slice)
		if err != nil {
			return time, err
		}
		if left < 0 {
			left = 0
		}
		if left > slice {
			left = slice
		}
		used := slice - left
		o.siteTime += used
		o.suit.Consume(used)
		o.AddExperience(used)
		return left + (time - slice), nil
	}
}

func (o *Operation) walkBack(time float64) (float64, error) {
	if !o.colonist.Outside() {
		o.EndTask()
		return time, nil
	}
	exterior := o.airlock.ExteriorPosition()
	if o.colonist.Position().Close(exterior) {
		return time, o.SetPhase(PhaseEnterAirlock)
	}
	return time, o.walkTo(exterior)
}

func (o *Operation) enterAirlock(time float64) (float64, error) {
	left, through := o.passThrough(time, ingress(o.airlock))
	if !through {
		return left, nil
	}
	o.enteredAirlock = true
	o.colonist.SetOutside(false)
	o.colonist.SetPosition(o.airlock.InteriorPosition())
	if o.stow != nil {
		o.stow()
	}
	o.EndTask()
	return left, nil
}

func (o *Operation) location() string {
	if o.colonist.Outside() {
		return "outside near " + o.site.String()
	}
	return o.airlock.Name()
}
