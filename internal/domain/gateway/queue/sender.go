package queue

import (
	"context"

	"go-todo/internal/domain/model"
)

// EventPublisher publishes todo change events
type EventPublisher interface {
	Publish(ctx context.Context, event model.TodoEvent) error
	Health() model.ComponentHealthStatus
}
