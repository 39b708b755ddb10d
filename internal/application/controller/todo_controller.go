package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-todo/internal/domain/model"
	"go-todo/internal/domain/usecase/todo"
	"go-todo/pkg/msg"
)

type TodoController struct {
	api     *echo.Group
	useCase todo.UseCase
}

func NewTodoController(api *echo.Group, useCase todo.UseCase) *TodoController {
	return &TodoController{api: api, useCase: useCase}
}

// InitTodoRoutes initializes todo routes
func (controller *TodoController) InitTodoRoutes() {
	controller.api.GET("/todos", controller.List)
	controller.api.GET("/todos/:id", controller.GetByID)
	controller.api.POST("/todos", controller.Create)
	controller.api.PATCH("/todos/:id", controller.Update)
	controller.api.POST("/todos/:id/toggle", controller.Toggle)
	controller.api.DELETE("/todos/:id", controller.Remove)
	controller.api.POST("/todos/load", controller.Load)
	controller.api.POST("/todos/persist", controller.Persist)
}

// List godoc
// @Summary List todos
// @Description Todos newest first with active and completed counts
// @Tags todo
// @Produce json
// @Param status query string false "active or completed"
// @Success 200 {object} model.TodoListResponse "Todo list"
// @Failure 400 {object} map[string]string "Invalid status filter"
// @Router /todos [get]
func (controller *TodoController) List(c echo.Context) error {
	all := controller.useCase.List()

	switch status := c.QueryParam("status"); status {
	case "":
		return c.JSON(http.StatusOK, model.NewTodoListResponse(all, all))
	case "active":
		return c.JSON(http.StatusOK, model.NewTodoListResponse(all, model.FilterByCompleted(all, false)))
	case "completed":
		return c.JSON(http.StatusOK, model.NewTodoListResponse(all, model.FilterByCompleted(all, true)))
	default:
		return errorResponse(c, http.StatusBadRequest, msg.GetMessage("todo.error.invalid-status", status))
	}
}

// GetByID godoc
// @Summary Get todo by id
// @Tags todo
// @Produce json
// @Param id path string true "Todo id"
// @Success 200 {object} entity.Todo "Todo"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id} [get]
func (controller *TodoController) GetByID(c echo.Context) error {
	id := c.Param("id")
	found := controller.useCase.GetByID(id)
	if found == nil {
		return controller.notFound(c, id)
	}
	return c.JSON(http.StatusOK, found)
}

// Create godoc
// @Summary Create a todo
// @Description Adds a todo at the top of the list. A storage failure is reported in the Warning header.
// @Tags todo
// @Accept json
// @Produce json
// @Param todo body model.CreateTodoDTO true "Todo creation data"
// @Success 201 {object} entity.Todo "Created todo"
// @Failure 400 {object} map[string]string "Invalid request body or empty title"
// @Router /todos [post]
func (controller *TodoController) Create(c echo.Context) error {
	var dto model.CreateTodoDTO
	if err := c.Bind(&dto); err != nil {
		return errorResponse(c, http.StatusBadRequest, msg.GetMessage("todo.error.invalid-body"))
	}

	created, err := controller.useCase.Add(c.Request().Context(), dto)
	if created == nil {
		return failure(c, err)
	}
	return mutated(c, http.StatusCreated, created, err)
}

// Update godoc
// @Summary Update a todo
// @Description Merges title, description and completed. Omitted fields are kept.
// @Tags todo
// @Accept json
// @Produce json
// @Param id path string true "Todo id"
// @Param todo body model.UpdateTodoDTO true "Fields to change"
// @Success 200 {object} entity.Todo "Updated todo"
// @Failure 400 {object} map[string]string "Invalid request body or empty title"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id} [patch]
func (controller *TodoController) Update(c echo.Context) error {
	id := c.Param("id")
	var dto model.UpdateTodoDTO
	if err := c.Bind(&dto); err != nil {
		return errorResponse(c, http.StatusBadRequest, msg.GetMessage("todo.error.invalid-body"))
	}

	updated, err := controller.useCase.Update(c.Request().Context(), id, dto)
	if updated == nil {
		if err != nil {
			return failure(c, err)
		}
		return controller.notFound(c, id)
	}
	return mutated(c, http.StatusOK, updated, err)
}

// Toggle godoc
// @Summary Toggle a todo
// @Description Flips the completed flag
// @Tags todo
// @Produce json
// @Param id path string true "Todo id"
// @Success 200 {object} entity.Todo "Toggled todo"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id}/toggle [post]
func (controller *TodoController) Toggle(c echo.Context) error {
	id := c.Param("id")
	toggled, err := controller.useCase.Toggle(c.Request().Context(), id)
	if toggled == nil {
		if err != nil {
			return failure(c, err)
		}
		return controller.notFound(c, id)
	}
	return mutated(c, http.StatusOK, toggled, err)
}

// Remove godoc
// @Summary Delete a todo
// @Tags todo
// @Param id path string true "Todo id"
// @Success 204 "Todo deleted"
// @Failure 404 {object} map[string]string "Todo not found"
// @Router /todos/{id} [delete]
func (controller *TodoController) Remove(c echo.Context) error {
	id := c.Param("id")
	removed, err := controller.useCase.Remove(c.Request().Context(), id)
	if !removed {
		if err != nil {
			return failure(c, err)
		}
		return controller.notFound(c, id)
	}
	return mutated(c, http.StatusNoContent, nil, err)
}

// Load godoc
// @Summary Reload todos from storage
// @Description Replaces the in-memory list with the stored one. On failure the current list is kept.
// @Tags todo
// @Produce json
// @Success 200 {object} model.TodoListResponse "Reloaded list"
// @Failure 500 {object} map[string]string "Storage read or decode failure"
// @Router /todos/load [post]
func (controller *TodoController) Load(c echo.Context) error {
	if err := controller.useCase.Load(c.Request().Context()); err != nil {
		return failure(c, err)
	}
	all := controller.useCase.List()
	return c.JSON(http.StatusOK, model.NewTodoListResponse(all, all))
}

// Persist godoc
// @Summary Write todos to storage
// @Description Retries persisting the in-memory list
// @Tags todo
// @Success 204 "Persisted"
// @Failure 500 {object} map[string]string "Storage write failure"
// @Router /todos/persist [post]
func (controller *TodoController) Persist(c echo.Context) error {
	if err := controller.useCase.Persist(c.Request().Context()); err != nil {
		return failure(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (controller *TodoController) notFound(c echo.Context, id string) error {
	return errorResponse(c, http.StatusNotFound, msg.GetMessage("todo.error.not-found", id))
}
