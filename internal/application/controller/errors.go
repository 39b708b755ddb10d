package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"go-todo/internal/domain/usecase/backup"
	"go-todo/internal/domain/usecase/todo"
	"go-todo/pkg/log"
	"go-todo/pkg/msg"
)

func errorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// failure maps a use case error to its HTTP status
func failure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, todo.ErrValidation), errors.Is(err, backup.ErrInvalidName):
		return errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, backup.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, backup.ErrEmptySlot):
		return errorResponse(c, http.StatusConflict, err.Error())
	default:
		log.Error(err.Error())
		return errorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// mutated answers a mutation that changed the collection. A persistence failure keeps the
// normal status and is reported in a Warning header, since the change is kept in memory.
func mutated(c echo.Context, status int, body any, err error) error {
	if err != nil {
		if !errors.Is(err, todo.ErrPersistence) {
			return failure(c, err)
		}
		log.Warn(msg.GetMessage("todo.unsaved", c.Request().Method, c.Request().URL.Path, err))
		c.Response().Header().Set("Warning", `199 - "`+strings.ReplaceAll(err.Error(), `"`, `'`)+`"`)
	}
	if body == nil {
		return c.NoContent(status)
	}
	return c.JSON(status, body)
}
