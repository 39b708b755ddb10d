package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo/configs"
	"go-todo/internal/domain/model"
)

func TestMain(m *testing.M) {
	if err := configs.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestOpen_Memory(t *testing.T) {
	backend, err := Open(context.Background(), BackendMemory)
	require.NoError(t, err)
	defer backend.Close()

	assert.Nil(t, backend.Redis)
	assert.Equal(t, model.StatusUp, backend.Gateway.Health().Status)
}

func TestOpen_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slots")
	viper.Set("app.storage.file.dir", dir)

	backend, err := Open(context.Background(), BackendFile)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Gateway.WriteString(context.Background(), "@todos", "[]"))
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), "floppy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floppy")
}
