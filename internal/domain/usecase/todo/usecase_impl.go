package todo

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"go-todo/internal/domain/entity"
	"go-todo/internal/domain/gateway/queue"
	"go-todo/internal/domain/gateway/storage"
	"go-todo/internal/domain/model"
	"go-todo/pkg/log"
	"go-todo/pkg/msg"
)

const maxIDAttempts = 8

type Option func(*todoUseCase)

// WithClock replaces the millisecond clock used for createdAt and updatedAt
func WithClock(now func() int64) Option {
	return func(uc *todoUseCase) {
		uc.now = now
	}
}

// WithIDGenerator replaces uuid.NewString as the id source
func WithIDGenerator(newID func() string) Option {
	return func(uc *todoUseCase) {
		uc.newID = newID
	}
}

// WithEventPublisher sends a change event after every mutation
func WithEventPublisher(publisher queue.EventPublisher) Option {
	return func(uc *todoUseCase) {
		uc.publisher = publisher
	}
}

type todoUseCase struct {
	mutex     sync.Mutex
	gateway   storage.Gateway
	key       string
	todos     []entity.Todo
	now       func() int64
	newID     func() string
	publisher queue.EventPublisher
}

func NewTodoUseCase(gateway storage.Gateway, key string, opts ...Option) UseCase {
	uc := &todoUseCase{
		gateway: gateway,
		key:     key,
		todos:   []entity.Todo{},
		now:     func() int64 { return time.Now().UnixMilli() },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *todoUseCase) Key() string {
	return uc.key
}

func (uc *todoUseCase) Add(ctx context.Context, dto model.CreateTodoDTO) (*entity.Todo, error) {
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, validationError(msg.GetMessage("todo.error.empty-title"))
	}
	if err := validText(title, dto.Description); err != nil {
		return nil, err
	}

	uc.mutex.Lock()
	id, err := uc.uniqueID()
	if err != nil {
		uc.mutex.Unlock()
		return nil, err
	}
	now := uc.now()
	todo := entity.Todo{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(dto.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	uc.todos = append([]entity.Todo{todo}, uc.todos...)
	err = uc.persistLocked(ctx)
	uc.mutex.Unlock()

	log.Info(msg.GetMessage("todo.added", todo.ID))
	uc.publish(ctx, model.TodoCreated, todo)
	return &todo, err
}

// Toggle returns nil without touching the slot when id is unknown
func (uc *todoUseCase) Toggle(ctx context.Context, id string) (*entity.Todo, error) {
	uc.mutex.Lock()
	index := uc.indexOf(id)
	if index < 0 {
		uc.mutex.Unlock()
		return nil, nil
	}
	todo := &uc.todos[index]
	todo.Completed = !todo.Completed
	todo.UpdatedAt = uc.touch(todo.UpdatedAt)
	toggled := *todo
	err := uc.persistLocked(ctx)
	uc.mutex.Unlock()

	log.Info(msg.GetMessage("todo.toggled", toggled.ID, strconv.FormatBool(toggled.Completed)))
	uc.publish(ctx, model.TodoToggled, toggled)
	return &toggled, err
}

func (uc *todoUseCase) Remove(ctx context.Context, id string) (bool, error) {
	uc.mutex.Lock()
	index := uc.indexOf(id)
	if index < 0 {
		uc.mutex.Unlock()
		return false, nil
	}
	removed := uc.todos[index]
	todos := make([]entity.Todo, 0, len(uc.todos)-1)
	todos = append(todos, uc.todos[:index]...)
	uc.todos = append(todos, uc.todos[index+1:]...)
	err := uc.persistLocked(ctx)
	uc.mutex.Unlock()

	log.Info(msg.GetMessage("todo.removed", removed.ID))
	uc.publish(ctx, model.TodoRemoved, removed)
	return true, err
}

// Update merges the non-nil fields of dto. id and createdAt are never changed.
func (uc *todoUseCase) Update(ctx context.Context, id string, dto model.UpdateTodoDTO) (*entity.Todo, error) {
	var title string
	if dto.Title != nil {
		title = strings.TrimSpace(*dto.Title)
		if title == "" {
			return nil, validationError(msg.GetMessage("todo.error.empty-title"))
		}
		if err := validText(title); err != nil {
			return nil, err
		}
	}
	if dto.Description != nil {
		if err := validText(*dto.Description); err != nil {
			return nil, err
		}
	}

	uc.mutex.Lock()
	index := uc.indexOf(id)
	if index < 0 {
		uc.mutex.Unlock()
		return nil, nil
	}
	todo := &uc.todos[index]
	if dto.Title != nil {
		todo.Title = title
	}
	if dto.Description != nil {
		todo.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.Completed != nil {
		todo.Completed = *dto.Completed
	}
	todo.UpdatedAt = uc.touch(todo.UpdatedAt)
	updated := *todo
	err := uc.persistLocked(ctx)
	uc.mutex.Unlock()

	log.Info(msg.GetMessage("todo.updated", updated.ID))
	uc.publish(ctx, model.TodoUpdated, updated)
	return &updated, err
}

func (uc *todoUseCase) GetByID(id string) *entity.Todo {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	index := uc.indexOf(id)
	if index < 0 {
		return nil
	}
	todo := uc.todos[index]
	return &todo
}

// List returns a copy of the collection, newest first
func (uc *todoUseCase) List() []entity.Todo {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	todos := make([]entity.Todo, len(uc.todos))
	copy(todos, uc.todos)
	return todos
}

// Load replaces the collection with the slot contents. An absent or blank slot yields an
// empty collection; a read or decode failure keeps the current one.
func (uc *todoUseCase) Load(ctx context.Context) error {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	value, found, err := uc.gateway.ReadString(ctx, uc.key)
	if err != nil {
		log.Error(msg.GetMessage("todo.error.load-failed", uc.key, err))
		return &PersistenceError{Op: OpRead, Key: uc.key, Err: err}
	}

	todos := []entity.Todo{}
	if found && strings.TrimSpace(value) != "" {
		todos, err = Decode(value)
		if err != nil {
			log.Error(msg.GetMessage("todo.error.load-failed", uc.key, err))
			return &PersistenceError{Op: OpDecode, Key: uc.key, Err: err}
		}
	}

	uc.todos = todos
	log.Info(msg.GetMessage("todo.loaded", strconv.Itoa(len(todos)), uc.key))
	return nil
}

func (uc *todoUseCase) Persist(ctx context.Context) error {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	return uc.persistLocked(ctx)
}

// Replace swaps in a whole collection, as a backup restore does, and persists it
func (uc *todoUseCase) Replace(ctx context.Context, todos []entity.Todo) error {
	value, err := Encode(todos)
	if err != nil {
		return &PersistenceError{Op: OpEncode, Key: uc.key, Err: err}
	}
	decoded, err := Decode(value)
	if err != nil {
		return validationError(err.Error())
	}

	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	uc.todos = decoded
	return uc.persistLocked(ctx)
}

func (uc *todoUseCase) persistLocked(ctx context.Context) error {
	value, err := Encode(uc.todos)
	if err != nil {
		log.Error(msg.GetMessage("todo.error.persist-failed", uc.key, err))
		return &PersistenceError{Op: OpEncode, Key: uc.key, Err: err}
	}
	if err := uc.gateway.WriteString(ctx, uc.key, value); err != nil {
		log.Error(msg.GetMessage("todo.error.persist-failed", uc.key, err))
		return &PersistenceError{Op: OpWrite, Key: uc.key, Err: err}
	}
	log.Debug(msg.GetMessage("todo.persisted", strconv.Itoa(len(uc.todos)), uc.key))
	return nil
}

func (uc *todoUseCase) publish(ctx context.Context, eventType model.TodoEventType, todo entity.Todo) {
	if uc.publisher == nil {
		return
	}
	event := model.TodoEvent{Type: eventType, Todo: todo, OccurredAt: uc.now()}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		log.Error(msg.GetMessage("todo.error.event-failed", string(eventType), todo.ID, err))
	}
}

// touch never moves updatedAt backwards, even if the clock does
func (uc *todoUseCase) touch(previous int64) int64 {
	now := uc.now()
	if now < previous {
		return previous
	}
	return now
}

// validText rejects text that JSON encoding would silently rewrite
func validText(values ...string) error {
	for _, value := range values {
		if !utf8.ValidString(value) {
			return validationError(msg.GetMessage("todo.error.invalid-text"))
		}
	}
	return nil
}

func (uc *todoUseCase) indexOf(id string) int {
	for i := range uc.todos {
		if uc.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (uc *todoUseCase) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := uc.newID()
		if id != "" && uc.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique todo id")
}
