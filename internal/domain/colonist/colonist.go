// Package colonist is the agent that owns and runs activities.
package colonist

import (
	"github.com/google/uuid"

	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/equipment"
	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/world"
)

const MaxStress = 100.0

type Config struct {
	ID         string
	Name       string
	Role       string
	Skills     map[activity.Skill]int
	Attributes map[activity.Attribute]int
	// RoleActivities lists the activity names that belong to the role.
	RoleActivities []string
	Position       world.Position
	Outside        bool
	Suit           *equipment.Suit
	// Performance defaults to 1.
	Performance float64
}

type Colonist struct {
	id         string
	name       string
	role       string
	skills     map[activity.Skill]int
	attributes map[activity.Attribute]int
	experience map[activity.Skill]float64
	roleJobs   map[string]bool

	performance float64
	stress      float64
	position    world.Position
	outside     bool
	suit        *equipment.Suit

	lastEnded string
	ended     int
}

func New(cfg Config) *Colonist {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	perf := cfg.Performance
	if perf <= 0 || perf > 1 {
		perf = 1
	}
	c := &Colonist{
		id:          id,
		name:        cfg.Name,
		role:        cfg.Role,
		skills:      make(map[activity.Skill]int, len(cfg.Skills)),
		attributes:  make(map[activity.Attribute]int, len(cfg.Attributes)),
		experience:  make(map[activity.Skill]float64),
		roleJobs:    make(map[string]bool, len(cfg.RoleActivities)),
		performance: perf,
		position:    cfg.Position,
		outside:     cfg.Outside,
		suit:        cfg.Suit,
	}
	for k, v := range cfg.Skills {
		c.skills[k] = v
	}
	for k, v := range cfg.Attributes {
		c.attributes[k] = v
	}
	for _, name := range cfg.RoleActivities {
		c.roleJobs[name] = true
	}
	return c
}

func (c *Colonist) ID() string                      { return c.id }
func (c *Colonist) Name() string                    { return c.name }
func (c *Colonist) Role() string                    { return c.role }
func (c *Colonist) Performance() float64            { return c.performance }
func (c *Colonist) Stress() float64                 { return c.stress }
func (c *Colonist) SkillLevel(s activity.Skill) int { return c.skills[s] }
func (c *Colonist) RoleRelated(name string) bool    { return c.roleJobs[name] }
func (c *Colonist) Position() world.Position        { return c.position }
func (c *Colonist) SetPosition(p world.Position)    { c.position = p }
func (c *Colonist) Outside() bool                   { return c.outside }
func (c *Colonist) SetOutside(outside bool)         { c.outside = outside }
func (c *Colonist) LastEnded() string               { return c.lastEnded }

// Aptitude defaults to the neutral 50 for attributes never set.
func (c *Colonist) Aptitude(attr activity.Attribute) int {
	if v, ok := c.attributes[attr]; ok {
		return v
	}
	return 50
}

func (c *Colonist) SetPerformance(p float64) {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	c.performance = p
}

// AddStress keeps stress within [0, MaxStress].
func (c *Colonist) AddStress(amount float64) {
	c.stress += amount
	switch {
	case c.stress < 0:
		c.stress = 0
	case c.stress > MaxStress:
		c.stress = MaxStress
	}
}

func (c *Colonist) AddExperience(skill activity.Skill, points float64) {
	if points <= 0 {
		return
	}
	c.experience[skill] += points
}

func (c *Colonist) Experience(skill activity.Skill) float64 {
	return c.experience[skill]
}

func (c *Colonist) ActivityEnded(name string) {
	c.lastEnded = name
	c.ended++
}

// Suit returns the colonist's suit, or nil without one.
func (c *Colonist) Suit() eva.Suit {
	if c.suit == nil {
		return nil
	}
	return c.suit
}

func (c *Colonist) EquipSuit(s *equipment.Suit) {
	c.suit = s
}
