package events

import "context"

// Sink receives events drained from the outbox. Implementations must be safe to call
// again with an event they have already seen: the relay delivers at least once.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// Compile-time verification that the bundled sinks implement Sink
var (
	_ Sink = (*LogSink)(nil)
	_ Sink = NopSink{}
	_ Sink = FuncSink(nil)
)
