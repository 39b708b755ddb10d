package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo/pkg/resource"
)

func TestDSN(t *testing.T) {
	require.NoError(t, resource.InitFromBytes([]byte(`
app:
  db:
    host: db.local
    port: 5433
    username: todo
    password: secret
    database: todos
    schema: app
`)))

	assert.Equal(t,
		"host=db.local port=5433 user=todo password=secret dbname=todos sslmode=disable search_path=app",
		DSN())
}
