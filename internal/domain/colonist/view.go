package colonist

import (
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/world"
)

type SuitView struct {
	Name           string   `json:"name"`
	OxygenFraction float64  `json:"oxygen_fraction"`
	Condition      float64  `json:"condition"`
	Malfunctions   []string `json:"malfunctions,omitempty"`
}

type View struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	Role          string                     `json:"role"`
	Position      world.Position             `json:"position"`
	Outside       bool                       `json:"outside"`
	Performance   float64                    `json:"performance"`
	Stress        float64                    `json:"stress"`
	Skills        map[activity.Skill]int     `json:"skills,omitempty"`
	Experience    map[activity.Skill]float64 `json:"experience,omitempty"`
	Suit          *SuitView                  `json:"suit,omitempty"`
	LastEnded     string                     `json:"last_ended,omitempty"`
	EndedActivity int                        `json:"ended_activities"`
}

func (c *Colonist) Snapshot() View {
	v := View{
		ID:            c.id,
		Name:          c.name,
		Role:          c.role,
		Position:      c.position,
		Outside:       c.outside,
		Performance:   c.performance,
		Stress:        c.stress,
		Skills:        make(map[activity.Skill]int, len(c.skills)),
		Experience:    make(map[activity.Skill]float64, len(c.experience)),
		LastEnded:     c.lastEnded,
		EndedActivity: c.ended,
	}
	for k, val := range c.skills {
		v.Skills[k] = val
	}
	for k, val := range c.experience {
		v.Experience[k] = val
	}
	if c.suit != nil {
		v.Suit = &SuitView{
			Name:           c.suit.Name(),
			OxygenFraction: c.suit.OxygenFraction(),
			Condition:      c.suit.Condition(),
			Malfunctions:   c.suit.Malfunctions(),
		}
	}
	return v
}
