package storage

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"go-todo/internal/domain/model"
)

const createKVStoreTable = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// SQLGateway stores slots in the kv_store table through database/sql (lib/pq driver)
type SQLGateway struct {
	DB *sql.DB
}

var _ Gateway = (*SQLGateway)(nil)

func NewSQLGateway(db *sql.DB) *SQLGateway {
	return &SQLGateway{DB: db}
}

// Migrate creates the kv_store table when it does not exist
func (gateway *SQLGateway) Migrate(ctx context.Context) error {
	_, err := gateway.DB.ExecContext(ctx, createKVStoreTable)
	return err
}

func (gateway *SQLGateway) ReadString(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := gateway.DB.QueryRowContext(ctx, `
		SELECT value
		FROM kv_store
		WHERE key = $1`, key).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (gateway *SQLGateway) WriteString(ctx context.Context, key string, value string) error {
	_, err := gateway.DB.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	return err
}

func (gateway *SQLGateway) Delete(ctx context.Context, key string) error {
	_, err := gateway.DB.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	return err
}

func (gateway *SQLGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := gateway.DB.PingContext(ctx); err != nil {
		return model.ComponentDown(err)
	}

	stats := gateway.DB.Stats()
	return model.ComponentUp(map[string]string{
		"backend":          "sql",
		"open_connections": strconv.Itoa(stats.OpenConnections),
		"in_use":           strconv.Itoa(stats.InUse),
	})
}
