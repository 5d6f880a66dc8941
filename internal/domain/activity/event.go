package activity

type EventType string

const (
	EventActivityEnded           EventType = "activity_ended"
	EventPhaseChanged            EventType = "phase_changed"
	EventSubTaskAdded            EventType = "subtask_added"
	EventAccident                EventType = "accident"
	EventAirlockOperatorReleased EventType = "airlock_operator_released"
)

type Event struct {
	Type     EventType      `json:"type"`
	WorkerID string         `json:"worker_id"`
	Activity string         `json:"activity"`
	Phase    Phase          `json:"phase,omitempty"`
	Millisol float64        `json:"millisol"`
	Payload  map[string]any `json:"payload,omitempty"`
}

type EventSink interface {
	Publish(evt Event)
}

type EventSinkFunc func(evt Event)

func (f EventSinkFunc) Publish(evt Event) { f(evt) }
