package converters

import (
	"encoding/json"

	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/events"
)

// OutboxToEvent converts a queued outbox record back to the event it was written from
func OutboxToEvent(r records.Outbox) events.Event {
	return events.Event{
		ID:         r.ID,
		Type:       events.Type(r.Type),
		ProjectID:  int(r.ProjectID),
		EntityID:   int(r.EntityID),
		ActorID:    int(r.ActorID),
		Payload:    json.RawMessage(r.Payload),
		OccurredAt: r.OccurredAt,
	}
}

// EventToOutbox converts an event into a pending outbox record
func EventToOutbox(e events.Event) records.Outbox {
	payload := string(e.Payload)
	if payload == "" {
		payload = "null"
	}
	return records.Outbox{
		ID:         e.ID,
		Type:       string(e.Type),
		ProjectID:  int64(e.ProjectID),
		EntityID:   int64(e.EntityID),
		ActorID:    int64(e.ActorID),
		Payload:    payload,
		OccurredAt: e.OccurredAt.UTC(),
		Status:     "pending",
	}
}
