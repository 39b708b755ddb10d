package health

import (
	"go-todo/internal/domain/gateway/queue"
	"go-todo/internal/domain/gateway/storage"
	"go-todo/internal/domain/model"
)

type healthUseCase struct {
	storageGateway storage.Gateway
	eventPublisher queue.EventPublisher
}

func NewHealthUseCase(storageGateway storage.Gateway, eventPublisher queue.EventPublisher) UseCase {
	return &healthUseCase{
		storageGateway: storageGateway,
		eventPublisher: eventPublisher,
	}
}

// CheckHealth is DOWN when storage is not UP or the queue is DOWN. A disabled queue reports
// UNKNOWN and does not affect the overall status.
func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	storageHealth := useCase.storageGateway.Health()
	queueHealth := useCase.eventPublisher.Health()

	overallStatus := model.StatusUp
	if storageHealth.Status != model.StatusUp || queueHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:  overallStatus,
		Storage: storageHealth,
		Queue:   queueHealth,
	}
}
