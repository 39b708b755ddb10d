package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"go-todo/internal/domain/model"
)

// FileGateway keeps one JSON file per key inside dir. Writes go through a temp file and a
// rename so a crash never leaves a half-written slot behind.
type FileGateway struct {
	dir string
}

var _ Gateway = (*FileGateway)(nil)

func NewFileGateway(dir string) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileGateway{dir: dir}, nil
}

func (gateway *FileGateway) path(key string) (string, error) {
	name := url.PathEscape(key)
	if key == "" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(gateway.dir, name+".json"), nil
}

func (gateway *FileGateway) ReadString(_ context.Context, key string) (string, bool, error) {
	p, err := gateway.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read file: %w", err)
	}
	return string(b), true, nil
}

func (gateway *FileGateway) WriteString(_ context.Context, key string, value string) error {
	p, err := gateway.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(gateway.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

func (gateway *FileGateway) Delete(_ context.Context, key string) error {
	p, err := gateway.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (gateway *FileGateway) Health() model.ComponentHealthStatus {
	info, err := os.Stat(gateway.dir)
	if err != nil {
		return model.ComponentDown(err)
	}
	if !info.IsDir() {
		return model.ComponentDown(fmt.Errorf("%s is not a directory", gateway.dir))
	}

	probe, err := os.CreateTemp(gateway.dir, ".health-*")
	if err != nil {
		return model.ComponentDown(err)
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())

	return model.ComponentUp(map[string]string{
		"backend":  "file",
		"dir":      gateway.dir,
		"writable": "true",
	})
}
