package service

import (
	"context"

	"retro-board-be/internal/pkg/logger"
	"retro-board-be/pkg/events"
)

// publishEvent logs and drops publish failures.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, module string, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn(module, "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
