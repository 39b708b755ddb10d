package model

import "go-todo/internal/domain/entity"

type TodoEventType string

const (
	TodoCreated TodoEventType = "created"
	TodoToggled TodoEventType = "toggled"
	TodoUpdated TodoEventType = "updated"
	TodoRemoved TodoEventType = "removed"
)

// TodoEvent is published after an in-memory mutation of the todo collection
type TodoEvent struct {
	Type       TodoEventType `json:"type"`
	Todo       entity.Todo   `json:"todo"`
	OccurredAt int64         `json:"occurredAt"`
}
