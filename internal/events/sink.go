package events

import (
	"context"
	"log/slog"
)

// LogSink writes every event to a structured logger. It is the default sink of the relay.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a LogSink writing to logger, or to slog.Default() when logger is nil
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "event delivered",
		"event_id", event.ID,
		"event_type", event.Type,
		"project_id", event.ProjectID,
		"entity_id", event.EntityID,
		"actor_id", event.ActorID,
		"payload", string(event.Payload))
	return nil
}

// NopSink drops every event
type NopSink struct{}

func (NopSink) Deliver(context.Context, Event) error { return nil }

// FuncSink adapts a function to the Sink interface
type FuncSink func(ctx context.Context, event Event) error

func (f FuncSink) Deliver(ctx context.Context, event Event) error {
	return f(ctx, event)
}
