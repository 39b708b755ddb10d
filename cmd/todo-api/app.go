package main

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"go-todo/configs"
	"go-todo/internal/application/controller"
	"go-todo/internal/application/middleware"
	"go-todo/internal/application/schedule"
	"go-todo/internal/domain/gateway/queue"
	"go-todo/internal/domain/usecase/backup"
	"go-todo/internal/domain/usecase/health"
	"go-todo/internal/domain/usecase/todo"
	"go-todo/internal/infra/storage"
	"go-todo/pkg/log"
	"go-todo/pkg/msg"
	"go-todo/pkg/resource"
)

// unreadableSuffix names the key that keeps a slot which failed to decode at startup
const unreadableSuffix = ".unreadable"

type application struct {
	echo      *echo.Echo
	todo      todo.UseCase
	scheduler *schedule.BackupScheduler
}

// newApplication wires use cases and routes on top of an opened backend. A slot that
// cannot be loaded does not stop the server: it starts with an empty list.
func newApplication(ctx context.Context, backend *storage.Backend, storageKey string, publisher queue.EventPublisher) (*application, error) {
	// Init UseCase
	todoUseCase := todo.NewTodoUseCase(backend.Gateway, storageKey, todo.WithEventPublisher(publisher))
	if err := todoUseCase.Load(ctx); err != nil {
		log.Warn(msg.GetMessage("app.empty-start", storageKey))
		preserveUnreadableSlot(ctx, backend, storageKey, err)
	}
	healthUseCase := health.NewHealthUseCase(backend.Gateway, publisher)
	backupUseCase := backup.NewBackupUseCase(backend.Gateway, todoUseCase)

	// Init Controller
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	api := e.Group(configs.Env.ContextPath)

	controller.NewHealthController(api, healthUseCase).InitHealthRoutes()
	controller.NewTodoController(api, todoUseCase).InitTodoRoutes()
	controller.NewBackupController(api, backupUseCase).InitBackupRoutes()

	app := &application{echo: e, todo: todoUseCase}

	// Init Schedule
	if resource.GetBool("app.backup.enabled") {
		app.scheduler = schedule.NewBackupScheduler(backupUseCase, backend.Redis)
		if err := app.scheduler.InitBackupScheduleTasks(resource.GetString("app.backup.cron")); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// preserveUnreadableSlot copies a slot that failed to decode next to it, since the first
// mutation rewrites the slot from the empty list.
func preserveUnreadableSlot(ctx context.Context, backend *storage.Backend, storageKey string, loadErr error) {
	var persistenceErr *todo.PersistenceError
	if !errors.As(loadErr, &persistenceErr) || persistenceErr.Op != todo.OpDecode {
		return
	}
	value, found, err := backend.Gateway.ReadString(ctx, storageKey)
	if err != nil || !found {
		return
	}
	if err := backend.Gateway.WriteString(ctx, storageKey+unreadableSuffix, value); err != nil {
		log.Error(msg.GetMessage("app.preserve-failed", storageKey+unreadableSuffix, err))
		return
	}
	log.Warn(msg.GetMessage("app.preserved", storageKey, storageKey+unreadableSuffix))
}

func (app *application) close() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
}
