package ports

import (
	"context"

	"colonysim/internal/domain/activity"
)

type ActivityOutcome string

const (
	OutcomeCompleted ActivityOutcome = "completed"
	OutcomeAborted   ActivityOutcome = "aborted"
)

// ActivityRecord is the durable trace of one finished root activity.
// Activities still in progress are never persisted.
type ActivityRecord struct {
	ID         string          `json:"id"`
	ColonistID string          `json:"colonist_id"`
	Kind       string          `json:"kind"`
	Activity   string          `json:"activity"`
	Outcome    ActivityOutcome `json:"outcome"`
	StartedAt  float64         `json:"started_at"`
	EndedAt    float64         `json:"ended_at"`
	Error      string          `json:"error,omitempty"`
}

type EventRepository interface {
	Append(ctx context.Context, colonistID string, events []activity.Event) error
	// ListByColonistID returns the newest limit events in chronological
	// order; limit <= 0 means all.
	ListByColonistID(ctx context.Context, colonistID string, limit int) ([]activity.Event, error)
}

type ActivityRecordRepository interface {
	Save(ctx context.Context, rec ActivityRecord) error
	ListByColonistID(ctx context.Context, colonistID string, limit int) ([]ActivityRecord, error)
}

// ClockState is the persisted simulation clock, so a restarted colony
// resumes where it stopped.
type ClockState struct {
	Tick     int64
	Millisol float64
}

type ClockRepository interface {
	Load(ctx context.Context) (ClockState, bool, error)
	Save(ctx context.Context, state ClockState) error
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
