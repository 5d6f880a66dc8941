package replay

import (
	"context"
	"errors"
	"strings"

	"colonysim/internal/app/ports"
	"colonysim/internal/domain/activity"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events  ports.EventRepository
	Records ports.ActivityRecordRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.ColonistID) == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.Limit < 0 || (req.ToMillisol > 0 && req.FromMillisol > req.ToMillisol) {
		return Response{}, ErrInvalidRequest
	}
	// A window is applied before the limit, so the store is asked for all rows.
	fetch := req.Limit
	if req.FromMillisol > 0 || req.ToMillisol > 0 {
		fetch = 0
	}
	events, err := u.Events.ListByColonistID(ctx, req.ColonistID, fetch)
	if err != nil {
		return Response{}, err
	}
	events = newest(filterEvents(events, req.FromMillisol, req.ToMillisol), req.Limit)

	var records []ports.ActivityRecord
	if u.Records != nil {
		records, err = u.Records.ListByColonistID(ctx, req.ColonistID, fetch)
		if err != nil {
			return Response{}, err
		}
		records = newest(filterRecords(records, req.FromMillisol, req.ToMillisol), req.Limit)
	}
	return Response{Events: events, Records: records, Summary: summarize(events, records)}, nil
}

// newest keeps the last limit items of an oldest-first list.
func newest[T any](items []T, limit int) []T {
	if limit <= 0 || len(items) <= limit {
		return items
	}
	return items[len(items)-limit:]
}

func inWindow(at, from, to float64) bool {
	if from > 0 && at < from {
		return false
	}
	if to > 0 && at > to {
		return false
	}
	return true
}

func filterEvents(events []activity.Event, from, to float64) []activity.Event {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]activity.Event, 0, len(events))
	for _, evt := range events {
		if inWindow(evt.Millisol, from, to) {
			out = append(out, evt)
		}
	}
	return out
}

func filterRecords(records []ports.ActivityRecord, from, to float64) []ports.ActivityRecord {
	if from <= 0 && to <= 0 {
		return records
	}
	out := make([]ports.ActivityRecord, 0, len(records))
	for _, rec := range records {
		if inWindow(rec.EndedAt, from, to) {
			out = append(out, rec)
		}
	}
	return out
}

func summarize(events []activity.Event, records []ports.ActivityRecord) Summary {
	s := Summary{ByType: map[activity.EventType]int{}}
	for _, evt := range events {
		s.ByType[evt.Type]++
		switch evt.Type {
		case activity.EventAccident:
			s.Accidents++
		case activity.EventActivityEnded:
			s.LastActivity = evt.Activity
		}
	}
	for _, rec := range records {
		switch rec.Outcome {
		case ports.OutcomeCompleted:
			s.Completed++
		case ports.OutcomeAborted:
			s.Aborted++
		}
	}
	return s
}
