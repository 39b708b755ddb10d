package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-todo/internal/domain/usecase/backup"
)

type BackupController struct {
	api     *echo.Group
	useCase backup.UseCase
}

func NewBackupController(api *echo.Group, useCase backup.UseCase) *BackupController {
	return &BackupController{api: api, useCase: useCase}
}

// InitBackupRoutes initializes backup routes
func (controller *BackupController) InitBackupRoutes() {
	controller.api.POST("/backups", controller.Snapshot)
	controller.api.POST("/backups/:name/restore", controller.Restore)
	controller.api.DELETE("/backups/:name", controller.Delete)
}

// Snapshot godoc
// @Summary Back up the todo slot
// @Description Copies the stored list to the backup named after the current weekday
// @Tags backup
// @Produce json
// @Success 201 {object} map[string]string "Backup name"
// @Failure 409 {object} map[string]string "Nothing stored yet"
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /backups [post]
func (controller *BackupController) Snapshot(c echo.Context) error {
	name, err := controller.useCase.Snapshot(c.Request().Context())
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"name": name})
}

// Restore godoc
// @Summary Restore a backup
// @Tags backup
// @Param name path string true "Weekday name, e.g. monday"
// @Success 204 "Restored"
// @Failure 400 {object} map[string]string "Invalid backup name"
// @Failure 404 {object} map[string]string "Backup not found"
// @Failure 500 {object} map[string]string "Storage failure or corrupt backup"
// @Router /backups/{name}/restore [post]
func (controller *BackupController) Restore(c echo.Context) error {
	if err := controller.useCase.Restore(c.Request().Context(), c.Param("name")); err != nil {
		return failure(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a backup
// @Tags backup
// @Param name path string true "Weekday name, e.g. monday"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid backup name"
// @Router /backups/{name} [delete]
func (controller *BackupController) Delete(c echo.Context) error {
	if err := controller.useCase.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return failure(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
