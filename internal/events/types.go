package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type names what happened to which entity
type Type string

const (
	TaskCreated    Type = "task.created"
	TaskDeleted    Type = "task.deleted"
	CommentAdded   Type = "comment.added"
	ProjectCreated Type = "project.created"
	ProjectUpdated Type = "project.updated"
)

// Valid reports whether t is a known event type
func (t Type) Valid() bool {
	switch t {
	case TaskCreated, TaskDeleted, CommentAdded, ProjectCreated, ProjectUpdated:
		return true
	}
	return false
}

// Event is a notification queued in the outbox by a successful write.
// Payload is the JSON form of the entity as it was at the time of the write.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	ProjectID  int             `json:"project_id"`
	EntityID   int             `json:"entity_id"`
	ActorID    int             `json:"actor_id"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// New builds an event with a fresh id, marshalling entity into the payload
func New(t Type, projectID, entityID, actorID int, entity any) (Event, error) {
	if !t.Valid() {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", t, err)
	}

	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		ProjectID:  projectID,
		EntityID:   entityID,
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}, nil
}
