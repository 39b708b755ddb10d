package backup

import "context"

// UseCase keeps one copy of the todo slot per weekday, so at most seven backups exist
type UseCase interface {
	Snapshot(ctx context.Context) (string, error)
	Restore(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}
