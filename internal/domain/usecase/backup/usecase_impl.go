package backup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-todo/internal/domain/gateway/storage"
	"go-todo/internal/domain/usecase/todo"
	"go-todo/pkg/log"
	"go-todo/pkg/msg"
)

var (
	ErrInvalidName = errors.New("invalid backup name")
	ErrNotFound    = errors.New("backup not found")
	ErrEmptySlot   = errors.New("nothing to back up")
)

type backupUseCase struct {
	gateway   storage.Gateway
	todoStore todo.UseCase
	now       func() time.Time
}

func NewBackupUseCase(gateway storage.Gateway, todoStore todo.UseCase) UseCase {
	return &backupUseCase{
		gateway:   gateway,
		todoStore: todoStore,
		now:       time.Now,
	}
}

// Snapshot copies the current slot value to the backup of today's weekday and returns its name
func (uc *backupUseCase) Snapshot(ctx context.Context) (string, error) {
	value, found, err := uc.gateway.ReadString(ctx, uc.todoStore.Key())
	if err != nil {
		return "", &todo.PersistenceError{Op: todo.OpRead, Key: uc.todoStore.Key(), Err: err}
	}
	if !found || strings.TrimSpace(value) == "" {
		return "", ErrEmptySlot
	}

	name := strings.ToLower(uc.now().Weekday().String())
	key := uc.backupKey(name)
	if err := uc.gateway.WriteString(ctx, key, value); err != nil {
		return "", &todo.PersistenceError{Op: todo.OpWrite, Key: key, Err: err}
	}
	return name, nil
}

// Restore replaces the todo collection with a backup. A backup that does not decode is
// rejected and the current collection is kept.
func (uc *backupUseCase) Restore(ctx context.Context, name string) error {
	key, err := uc.validKey(name)
	if err != nil {
		return err
	}

	value, found, err := uc.gateway.ReadString(ctx, key)
	if err != nil {
		return &todo.PersistenceError{Op: todo.OpRead, Key: key, Err: err}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, msg.GetMessage("backup.error.not-found", name))
	}

	todos, err := todo.Decode(value)
	if err != nil {
		return &todo.PersistenceError{Op: todo.OpDecode, Key: key, Err: err}
	}
	if err := uc.todoStore.Replace(ctx, todos); err != nil {
		return err
	}

	log.Info(msg.GetMessage("backup.restored", name))
	return nil
}

func (uc *backupUseCase) Delete(ctx context.Context, name string) error {
	key, err := uc.validKey(name)
	if err != nil {
		return err
	}
	if err := uc.gateway.Delete(ctx, key); err != nil {
		return &todo.PersistenceError{Op: todo.OpWrite, Key: key, Err: err}
	}
	return nil
}

func (uc *backupUseCase) validKey(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !isWeekday(name) {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, msg.GetMessage("backup.error.invalid-name", name))
	}
	return uc.backupKey(name), nil
}

func (uc *backupUseCase) backupKey(name string) string {
	return uc.todoStore.Key() + ".backup." + name
}

func isWeekday(name string) bool {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.ToLower(day.String()) == name {
			return true
		}
	}
	return false
}
