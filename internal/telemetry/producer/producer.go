package producer

import (
	"context"

	"notes-service/internal/telemetry"
)

// Producer publishes telemetry events to a broker. Implementations must be safe for concurrent use.
type Producer interface {
	Emit(ctx context.Context, event *telemetry.Event) error
	Close() error
}
