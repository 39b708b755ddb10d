package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotHeld is returned when the lock key is missing or owned by another holder
var ErrLockNotHeld = errors.New("lock was not held by this client")

var (
	unlockScript = redis.NewScript(`
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`)
	refreshScript = redis.NewScript(`
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("PEXPIRE", KEYS[1], ARGV[2])
		else
			return 0
		end
	`)
)

// LockOptions represents options for distributed locking
type LockOptions struct {
	// TTL is the lock expiration time
	TTL time.Duration
	// RetryDelay is the delay between acquisition attempts
	RetryDelay time.Duration
	// MaxRetries is the number of extra acquisition attempts after the first one
	MaxRetries int
	// RefreshInterval is the AutoRefresh period, it must be shorter than TTL
	RefreshInterval time.Duration
	// Namespace prefixes the lock key as Namespace::key
	Namespace string
}

// NewLockOptions creates lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      0,
		RefreshInterval: 10 * time.Second,
	}
}

// Lock is a single-owner lease stored as a Redis key with a random value
type Lock struct {
	client *Client
	key    string
	value  string
	opts   *LockOptions
}

// NewLock creates a distributed lock; nothing is sent to Redis until Lock is called
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.NewString(),
		opts:   opts,
	}
}

// Key returns the full Redis key of the lock
func (l *Lock) Key() string {
	if l.opts.Namespace != "" {
		return l.opts.Namespace + "::" + l.key
	}
	return l.key
}

// Lock attempts to acquire the lock with SET NX, retrying MaxRetries times
func (l *Lock) Lock(ctx context.Context) error {
	fullKey := l.Key()
	for attempt := 0; attempt <= l.opts.MaxRetries; attempt++ {
		acquired, err := l.client.GetClient().SetNX(ctx, fullKey, l.value, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if acquired {
			return nil
		}
		if attempt == l.opts.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}
	return fmt.Errorf("failed to acquire lock %s after %d attempts", fullKey, l.opts.MaxRetries+1)
}

// Unlock releases the lock if this client still owns it
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := unlockScript.Run(ctx, l.client.GetClient(), []string{l.Key()}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh extends the lock TTL if this client still owns it
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := refreshScript.Run(ctx, l.client.GetClient(), []string{l.Key()}, l.value, l.opts.TTL.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// AutoRefresh refreshes the lock every RefreshInterval until ctx is done or a refresh
// fails. The returned channel receives the terminating error and is then closed.
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		ticker := time.NewTicker(l.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}

// WithLock runs fn while holding the lock and releases it afterwards
func WithLock(ctx context.Context, lock *Lock, fn func(ctx context.Context) error) error {
	if err := lock.Lock(ctx); err != nil {
		return err
	}
	defer func() {
		_ = lock.Unlock(context.WithoutCancel(ctx))
	}()
	return fn(ctx)
}
