// Package model holds the row types of the colony history tables.
package model

import "time"

const (
	TableNameActivityEvent  = "activity_events"
	TableNameActivityRecord = "activity_records"
	TableNameSimClockState  = "sim_clock_states"
)

type ActivityEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true"`
	ColonistID string    `gorm:"column:colonist_id;not null"`
	Type       string    `gorm:"column:type;not null"`
	Activity   string    `gorm:"column:activity"`
	Phase      string    `gorm:"column:phase"`
	Millisol   float64   `gorm:"column:millisol;not null"`
	Payload    []byte    `gorm:"column:payload"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (*ActivityEvent) TableName() string { return TableNameActivityEvent }

type ActivityRecord struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ColonistID string    `gorm:"column:colonist_id;not null"`
	Kind       string    `gorm:"column:kind;not null"`
	Activity   string    `gorm:"column:activity;not null"`
	Outcome    string    `gorm:"column:outcome;not null"`
	StartedAt  float64   `gorm:"column:started_at;not null"`
	EndedAt    float64   `gorm:"column:ended_at;not null"`
	Error      string    `gorm:"column:error"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (*ActivityRecord) TableName() string { return TableNameActivityRecord }

type SimClockState struct {
	StateKey  string    `gorm:"column:state_key;primaryKey"`
	Tick      int64     `gorm:"column:tick;not null"`
	Millisol  float64   `gorm:"column:millisol;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (*SimClockState) TableName() string { return TableNameSimClockState }
