package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-todo/pkg/log"
	"go-todo/pkg/msg"
	"go-todo/pkg/resource"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")

	require.NoError(t, Load())

	assert.Equal(t, "memory", resource.GetString("app.storage.backend"))
	assert.Equal(t, "@todos", resource.GetString("app.storage.key"))
	assert.Equal(t, "0 3 * * *", resource.GetString("app.backup.cron"))
	assert.Equal(t, "title cannot be empty", msg.GetMessage("todo.error.empty-title"))
	require.NotNil(t, Env)
	assert.NotEmpty(t, Env.ContextPath)
}

func TestLoad_TagsLogsWithApplicationName(t *testing.T) {
	t.Setenv("APPLICATION_NAME", "todo-test")
	core, logs := observer.New(zapcore.InfoLevel)
	log.Replace(zap.New(core))
	t.Cleanup(func() { log.Replace(zap.NewNop()) })

	require.NoError(t, Load())
	log.Info("started")

	assert.Equal(t, "todo-test", Env.ApplicationName)
	entries := logs.FilterMessage("started").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "todo-test", entries[0].ContextMap()["logName"])
}
