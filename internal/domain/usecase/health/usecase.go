package health

import "go-todo/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}
