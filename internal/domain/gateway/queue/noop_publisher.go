package queue

import (
	"context"

	"go-todo/internal/domain/model"
)

// NoopPublisher drops events, used when event publishing is disabled
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, model.TodoEvent) error {
	return nil
}

func (NoopPublisher) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status: model.StatusUnknown,
		Details: map[string]string{
			"message": "event publishing disabled",
		},
	}
}
