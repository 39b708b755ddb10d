package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  server:
    port: ${TODO_TEST_PORT:8080}
    context-path: /todo-api
  storage:
    backend: ${TODO_TEST_BACKEND:memory}
    key: "@todos"
  backup:
    enabled: true
`

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	previous := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = previous })
}

func TestInitFromBytes_DefaultsAndPlainValues(t *testing.T) {
	withEnv(t, map[string]string{})

	require.NoError(t, InitFromBytes([]byte(sampleYAML)))

	assert.Equal(t, "8080", GetString("app.server.port"))
	assert.Equal(t, 8080, GetInt("app.server.port"))
	assert.Equal(t, "/todo-api", GetString("app.server.context-path"))
	assert.Equal(t, "memory", GetString("app.storage.backend"))
	assert.Equal(t, "@todos", GetString("app.storage.key"))
	assert.True(t, GetBool("app.backup.enabled"))
}

func TestInitFromBytes_EnvironmentOverrides(t *testing.T) {
	withEnv(t, map[string]string{"TODO_TEST_BACKEND": "redis"})

	require.NoError(t, InitFromBytes([]byte(sampleYAML)))

	assert.Equal(t, "redis", GetString("app.storage.backend"))
}

func TestInit_FromFile(t *testing.T) {
	withEnv(t, map[string]string{"TODO_TEST_PORT": "9090"})

	path := filepath.Join(t.TempDir(), "application.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	require.NoError(t, Init(path))
	assert.Equal(t, 9090, GetInt("app.server.port"))
}

func TestInit_MissingFile(t *testing.T) {
	err := Init(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestResolveEnvVariable(t *testing.T) {
	withEnv(t, map[string]string{"SET": "value"})

	assert.Equal(t, "plain", resolveEnvVariable("plain"))
	assert.Equal(t, "value", resolveEnvVariable("${SET:fallback}"))
	assert.Equal(t, "fallback", resolveEnvVariable("${UNSET:fallback}"))
	assert.Equal(t, "", resolveEnvVariable("${UNSET}"))
}

func TestGetStringOrDefault(t *testing.T) {
	withEnv(t, map[string]string{})
	require.NoError(t, InitFromBytes([]byte(sampleYAML)))

	assert.Equal(t, "memory", GetStringOrDefault("app.storage.backend", "file"))
	assert.Equal(t, "file", GetStringOrDefault("app.storage.nope", "file"))
}
