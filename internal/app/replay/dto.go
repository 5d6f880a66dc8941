package replay

import (
	"colonysim/internal/app/ports"
	"colonysim/internal/domain/activity"
)

type Request struct {
	ColonistID string
	Limit      int
	// FromMillisol and ToMillisol bound the window inclusively; values <= 0
	// leave that side open.
	FromMillisol float64
	ToMillisol   float64
}

type Summary struct {
	ByType    map[activity.EventType]int `json:"by_type"`
	Accidents int                        `json:"accidents"`
	Completed int                        `json:"completed"`
	Aborted   int                        `json:"aborted"`
	// LastActivity is the most recently ended activity in the window.
	LastActivity string `json:"last_activity,omitempty"`
}

type Response struct {
	Events  []activity.Event       `json:"events"`
	Records []ports.ActivityRecord `json:"records"`
	Summary Summary                `json:"summary"`
}
