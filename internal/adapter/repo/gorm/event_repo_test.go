package gormrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colonysim/internal/adapter/repo/gorm/model"
	"colonysim/internal/domain/activity"
)

func TestToEventDecodesPayload(t *testing.T) {
	evt, err := toEvent(model.ActivityEvent{
		ID:         7,
		ColonistID: "ada",
		Type:       string(activity.EventAccident),
		Activity:   "Collect Samples",
		Phase:      "collecting",
		Millisol:   42,
		Payload:    []byte(`{"location":"ridge"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, activity.EventAccident, evt.Type)
	assert.Equal(t, "ada", evt.WorkerID)
	assert.Equal(t, activity.Phase("collecting"), evt.Phase)
	assert.Equal(t, "ridge", evt.Payload["location"])

	evt, err = toEvent(model.ActivityEvent{ID: 8, ColonistID: "ada"})
	require.NoError(t, err)
	assert.Nil(t, evt.Payload)
}

func TestToEventRejectsCorruptPayload(t *testing.T) {
	_, err := toEvent(model.ActivityEvent{ID: 9, ColonistID: "ada", Payload: []byte(`{"location":`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event 9")
}
