package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-todo/configs"
	"go-todo/internal/domain/entity"
	"go-todo/internal/domain/gateway/queue"
	"go-todo/internal/domain/gateway/storage"
	"go-todo/internal/domain/model"
	"go-todo/internal/domain/usecase/backup"
	"go-todo/internal/domain/usecase/health"
	"go-todo/internal/domain/usecase/todo"
	"go-todo/pkg/log"
)

func TestMain(m *testing.M) {
	if err := configs.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type switchableGateway struct {
	*storage.MemoryGateway
	writeErr error
}

func (g *switchableGateway) WriteString(ctx context.Context, key string, value string) error {
	if g.writeErr != nil {
		return g.writeErr
	}
	return g.MemoryGateway.WriteString(ctx, key, value)
}

type testServer struct {
	echo    *echo.Echo
	gateway *switchableGateway
	store   todo.UseCase
}

func newTestServer() *testServer {
	gateway := &switchableGateway{MemoryGateway: storage.NewMemoryGateway()}
	store := todo.NewTodoUseCase(gateway, "@todos")

	e := echo.New()
	api := e.Group("/go-todo")
	NewTodoController(api, store).InitTodoRoutes()
	NewBackupController(api, backup.NewBackupUseCase(gateway, store)).InitBackupRoutes()
	NewHealthController(api, health.NewHealthUseCase(gateway, queue.NoopPublisher{})).InitHealthRoutes()

	return &testServer{echo: e, gateway: gateway, store: store}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/go-todo"+path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/go-todo"+path, nil)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestTodoController_CreateGetList(t *testing.T) {
	server := newTestServer()

	rec := server.do(http.MethodPost, "/todos", `{"title":"Buy milk","description":"2 litres"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[entity.Todo](t, rec)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "2 litres", created.Description)
	assert.Empty(t, rec.Header().Get("Warning"))

	rec = server.do(http.MethodGet, "/todos/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[entity.Todo](t, rec))

	rec = server.do(http.MethodPost, "/todos", `{"title":"Walk dog"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = server.do(http.MethodPost, "/todos/"+created.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[entity.Todo](t, rec).Completed)

	rec = server.do(http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[model.TodoListResponse](t, rec)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 1, list.Active)
	assert.Equal(t, 1, list.Completed)
	require.Len(t, list.Todos, 2)
	assert.Equal(t, "Walk dog", list.Todos[0].Title)

	rec = server.do(http.MethodGet, "/todos?status=completed", "")
	list = decode[model.TodoListResponse](t, rec)
	require.Len(t, list.Todos, 1)
	assert.Equal(t, created.ID, list.Todos[0].ID)
	assert.Equal(t, 2, list.Total)

	rec = server.do(http.MethodGet, "/todos?status=active", "")
	list = decode[model.TodoListResponse](t, rec)
	require.Len(t, list.Todos, 1)
	assert.Equal(t, "Walk dog", list.Todos[0].Title)

	rec = server.do(http.MethodGet, "/todos?status=later", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoController_Validation(t *testing.T) {
	server := newTestServer()

	rec := server.do(http.MethodPost, "/todos", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title cannot be empty")

	rec = server.do(http.MethodPost, "/todos", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, server.store.List())
}

func TestTodoController_NotFound(t *testing.T) {
	server := newTestServer()

	assert.Equal(t, http.StatusNotFound, server.do(http.MethodGet, "/todos/missing", "").Code)
	assert.Equal(t, http.StatusNotFound, server.do(http.MethodPost, "/todos/missing/toggle", "").Code)
	assert.Equal(t, http.StatusNotFound, server.do(http.MethodPatch, "/todos/missing", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, server.do(http.MethodDelete, "/todos/missing", "").Code)
}

func TestTodoController_UpdateAndRemove(t *testing.T) {
	server := newTestServer()
	created, err := server.store.Add(context.Background(), model.CreateTodoDTO{Title: "old", Description: "keep"})
	require.NoError(t, err)

	rec := server.do(http.MethodPatch, "/todos/"+created.ID, `{"title":"new","completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[entity.Todo](t, rec)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "keep", updated.Description)
	assert.True(t, updated.Completed)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = server.do(http.MethodPatch, "/todos/"+created.ID, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = server.do(http.MethodDelete, "/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, server.store.List())
}

func TestTodoController_PersistenceFailureWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log.Replace(zap.New(core))
	t.Cleanup(func() { log.Replace(zap.NewNop()) })

	server := newTestServer()
	server.gateway.writeErr = errors.New("disk full")

	rec := server.do(http.MethodPost, "/todos", `{"title":"offline"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Warning"), "disk full")
	assert.Len(t, server.store.List(), 1)
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "POST /go-todo/todos kept in memory only")

	rec = server.do(http.MethodPost, "/todos/persist", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	server.gateway.writeErr = nil
	rec = server.do(http.MethodPost, "/todos/persist", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTodoController_Load(t *testing.T) {
	server := newTestServer()
	ctx := context.Background()

	require.NoError(t, server.gateway.MemoryGateway.WriteString(ctx, "@todos",
		`[{"id":"a","title":"from storage","completed":false,"createdAt":1,"updatedAt":1}]`))
	rec := server.do(http.MethodPost, "/todos/load", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[model.TodoListResponse](t, rec)
	require.Len(t, list.Todos, 1)
	assert.Equal(t, "from storage", list.Todos[0].Title)

	require.NoError(t, server.gateway.MemoryGateway.WriteString(ctx, "@todos", "{corrupt"))
	rec = server.do(http.MethodPost, "/todos/load", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, server.store.List(), 1)
}

func TestBackupController(t *testing.T) {
	server := newTestServer()

	rec := server.do(http.MethodPost, "/backups", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, err := server.store.Add(context.Background(), model.CreateTodoDTO{Title: "Buy milk"})
	require.NoError(t, err)

	rec = server.do(http.MethodPost, "/backups", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	name := decode[map[string]string](t, rec)["name"]
	require.NotEmpty(t, name)

	rec = server.do(http.MethodPost, "/todos", `{"title":"Walk dog"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = server.do(http.MethodPost, "/backups/"+name+"/restore", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, server.store.List(), 1)
	assert.Equal(t, "Buy milk", server.store.List()[0].Title)

	assert.Equal(t, http.StatusBadRequest, server.do(http.MethodPost, "/backups/holiday/restore", "").Code)
	assert.Equal(t, http.StatusNoContent, server.do(http.MethodDelete, "/backups/"+name, "").Code)
	assert.Equal(t, http.StatusNotFound, server.do(http.MethodPost, "/backups/"+name+"/restore", "").Code)
}

func TestHealthController(t *testing.T) {
	server := newTestServer()

	rec := server.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	response := decode[model.HealthResponse](t, rec)
	assert.Equal(t, model.StatusUp, response.Status)
	assert.Equal(t, model.StatusUnknown, response.Queue.Status)
}
