package todo

import (
	"context"

	"go-todo/internal/domain/entity"
	"go-todo/internal/domain/model"
)

// UseCase owns the todo collection and keeps the persistence slot in sync with it.
// Every mutation persists the whole collection before returning.
type UseCase interface {
	Add(ctx context.Context, dto model.CreateTodoDTO) (*entity.Todo, error)
	Toggle(ctx context.Context, id string) (*entity.Todo, error)
	Remove(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, dto model.UpdateTodoDTO) (*entity.Todo, error)
	GetByID(id string) *entity.Todo
	List() []entity.Todo
	Load(ctx context.Context) error
	Persist(ctx context.Context) error
	Replace(ctx context.Context, todos []entity.Todo) error
	Key() string
}
