package model

import "go-todo/internal/domain/entity"

type CreateTodoDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodoDTO carries the fields to merge; nil means "leave as is".
// An empty description clears it.
type UpdateTodoDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoListResponse is the list view with the active/completed partition the UI shows in its header
type TodoListResponse struct {
	Todos     []entity.Todo `json:"todos"`
	Active    int           `json:"active"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
}

// NewTodoListResponse counts todos by state; filtered narrows the returned slice only.
func NewTodoListResponse(all []entity.Todo, filtered []entity.Todo) TodoListResponse {
	active, completed := CountByState(all)
	return TodoListResponse{
		Todos:     filtered,
		Active:    active,
		Completed: completed,
		Total:     len(all),
	}
}

func CountByState(todos []entity.Todo) (active, completed int) {
	for _, todo := range todos {
		if todo.Completed {
			completed++
		} else {
			active++
		}
	}
	return
}

// FilterByCompleted keeps the order of todos.
func FilterByCompleted(todos []entity.Todo, completed bool) []entity.Todo {
	out := make([]entity.Todo, 0, len(todos))
	for _, todo := range todos {
		if todo.Completed == completed {
			out = append(out, todo)
		}
	}
	return out
}
