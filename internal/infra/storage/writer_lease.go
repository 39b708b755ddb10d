package storage

import (
	"context"
	"time"

	"go-todo/pkg/log"
	"go-todo/pkg/msg"
	"go-todo/pkg/redis"
)

// WriterLease keeps one process as the only writer of a slot while it is held
type WriterLease struct {
	lock *redis.Lock
	lost <-chan error
}

// AcquireWriterLease takes the writer lock for key and refreshes it in the background until
// ctx is done. Lost is signalled if a refresh fails.
func AcquireWriterLease(ctx context.Context, client *redis.Client, key string, ttl, refresh time.Duration) (*WriterLease, error) {
	opts := redis.NewLockOptions()
	if ttl > 0 {
		opts.TTL = ttl
	}
	if refresh > 0 && refresh < opts.TTL {
		opts.RefreshInterval = refresh
	} else {
		opts.RefreshInterval = opts.TTL / 3
	}
	opts.Namespace = "todo_writer"

	lock := redis.NewLock(client, key, opts)
	if err := lock.Lock(ctx); err != nil {
		log.Error(msg.GetMessage("storage.lock.failed", lock.Key(), err))
		return nil, err
	}
	log.Info(msg.GetMessage("storage.lock.acquired", lock.Key()))

	return &WriterLease{lock: lock, lost: lock.AutoRefresh(ctx)}, nil
}

// Lost receives the refresh error, or the context error on shutdown
func (lease *WriterLease) Lost() <-chan error {
	return lease.lost
}

func (lease *WriterLease) Release(ctx context.Context) error {
	return lease.lock.Unlock(ctx)
}
