package storage

import (
	"context"
	"errors"

	"go-todo/internal/domain/gateway/storage"
	"go-todo/internal/infra/database"
	gormdb "go-todo/internal/infra/database/gorm"
	"go-todo/internal/infra/database/sqlc"
	"go-todo/pkg/msg"
	"go-todo/pkg/redis"
	"go-todo/pkg/resource"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendGorm   = "gorm"
	BackendSQL    = "sql"
)

// Backend is an opened storage gateway plus the connections behind it
type Backend struct {
	Name    string
	Gateway storage.Gateway
	// Redis is set only for the redis backend
	Redis   *redis.Client
	closers []func() error
}

func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

// Open builds the gateway named by app.storage.backend. SQL backends get their kv_store
// table created if missing.
func Open(ctx context.Context, name string) (*Backend, error) {
	backend := &Backend{Name: name}

	switch name {
	case BackendMemory:
		backend.Gateway = storage.NewMemoryGateway()

	case BackendFile:
		gateway, err := storage.NewFileGateway(resource.GetStringOrDefault("app.storage.file.dir", ".todos"))
		if err != nil {
			return nil, err
		}
		backend.Gateway = gateway

	case BackendRedis:
		client, err := redis.NewClient(redis.NewRedisConfig().
			WithHost(resource.GetStringOrDefault("app.storage.redis.host", "localhost")).
			WithPort(resource.GetInt("app.storage.redis.port")).
			WithPassword(resource.GetString("app.storage.redis.password")).
			WithDatabase(resource.GetInt("app.storage.redis.database")))
		if err != nil {
			return nil, err
		}
		backend.Redis = client
		backend.Gateway = storage.NewRedisGateway(client)
		backend.closers = append(backend.closers, client.Close)

	case BackendGorm:
		db, err := gormdb.Open(database.DSN())
		if err != nil {
			return nil, err
		}
		backend.closers = append(backend.closers, func() error { return gormdb.Close(db) })
		gateway := storage.NewGormGateway(db)
		if err := gateway.Migrate(ctx); err != nil {
			return nil, errors.Join(err, backend.Close())
		}
		backend.Gateway = gateway

	case BackendSQL:
		db, err := sqlc.Open(ctx, database.DSN())
		if err != nil {
			return nil, err
		}
		backend.closers = append(backend.closers, db.Close)
		gateway := storage.NewSQLGateway(db)
		if err := gateway.Migrate(ctx); err != nil {
			return nil, errors.Join(err, backend.Close())
		}
		backend.Gateway = gateway

	default:
		return nil, errors.New(msg.GetMessage("storage.error.unknown-backend", name))
	}

	return backend, nil
}
