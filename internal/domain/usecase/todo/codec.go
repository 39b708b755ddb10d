package todo

import (
	"encoding/json"
	"fmt"
	"strings"

	"go-todo/internal/domain/entity"
)

// Encode serializes the collection as a JSON array in sequence order. A nil collection encodes as [].
func Encode(todos []entity.Todo) (string, error) {
	if todos == nil {
		todos = []entity.Todo{}
	}
	data, err := json.Marshal(todos)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a serialized collection and rejects records that would break the
// collection: empty or duplicate ids, blank titles and updatedAt earlier than createdAt.
func Decode(value string) ([]entity.Todo, error) {
	var todos []entity.Todo
	if err := json.Unmarshal([]byte(value), &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []entity.Todo{}
	}

	seen := make(map[string]struct{}, len(todos))
	for i, todo := range todos {
		if todo.ID == "" {
			return nil, fmt.Errorf("todo at index %d has an empty id", i)
		}
		if _, ok := seen[todo.ID]; ok {
			return nil, fmt.Errorf("duplicate todo id %s", todo.ID)
		}
		seen[todo.ID] = struct{}{}
		if strings.TrimSpace(todo.Title) == "" {
			return nil, fmt.Errorf("todo %s has an empty title", todo.ID)
		}
		if todo.UpdatedAt < todo.CreatedAt {
			return nil, fmt.Errorf("todo %s was updated at %d before its creation at %d", todo.ID, todo.UpdatedAt, todo.CreatedAt)
		}
	}
	return todos, nil
}
