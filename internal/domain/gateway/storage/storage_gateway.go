package storage

import (
	"context"

	"go-todo/internal/domain/model"
)

// Gateway is a string key-value slot store. A missing key is reported with found=false
// and a nil error.
type Gateway interface {
	ReadString(ctx context.Context, key string) (value string, found bool, err error)
	WriteString(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Health() model.ComponentHealthStatus
}
