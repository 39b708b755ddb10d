package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-todo/internal/domain/usecase/backup"
	"go-todo/pkg/log"
	"go-todo/pkg/msg"
	"go-todo/pkg/redis"
)

const backupTimeout = time.Minute

// BackupScheduler runs the todo slot backup on a cron expression. With a Redis client every
// run holds a short lock so only one instance writes the backup.
type BackupScheduler struct {
	cron        *cron.Cron
	useCase     backup.UseCase
	redisClient *redis.Client
}

func NewBackupScheduler(useCase backup.UseCase, redisClient *redis.Client) *BackupScheduler {
	return &BackupScheduler{cron: cron.New(), useCase: useCase, redisClient: redisClient}
}

// InitBackupScheduleTasks registers the backup job and starts the cron
func (scheduler *BackupScheduler) InitBackupScheduleTasks(cronExpression string) error {
	if _, err := scheduler.cron.AddFunc(cronExpression, scheduler.RunBackup); err != nil {
		return err
	}

	scheduler.cron.Start()
	log.Info(msg.GetMessage("backup.scheduled", cronExpression))
	return nil
}

func (scheduler *BackupScheduler) RunBackup() {
	requestID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	log.Info(msg.GetMessage("backup.cron.start"), zap.String("request_id", requestID))

	var name string
	snapshot := func(ctx context.Context) error {
		var err error
		name, err = scheduler.useCase.Snapshot(ctx)
		return err
	}

	var err error
	if scheduler.redisClient != nil {
		opts := redis.NewLockOptions()
		opts.TTL = backupTimeout
		opts.Namespace = "todo_schedules"
		err = redis.WithLock(ctx, redis.NewLock(scheduler.redisClient, "backup", opts), snapshot)
	} else {
		err = snapshot(ctx)
	}

	switch {
	case errors.Is(err, backup.ErrEmptySlot):
		log.Info(msg.GetMessage("backup.cron.skipped"), zap.String("request_id", requestID))
	case err != nil:
		log.Error(msg.GetMessage("backup.error.failed", err), zap.String("request_id", requestID), zap.Error(err))
	default:
		log.Info(msg.GetMessage("backup.cron.end", name), zap.String("request_id", requestID))
	}
}

// Stop waits for a running backup to finish
func (scheduler *BackupScheduler) Stop() {
	ctx := scheduler.cron.Stop()
	<-ctx.Done()
}
