package aws

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go-todo/internal/domain/gateway/queue"
	"go-todo/internal/domain/model"
	"go-todo/pkg/sqs"
)

// SQSEventPublisher adapts pkg/sqs.Sender to the domain queue.EventPublisher interface
type SQSEventPublisher struct {
	sqsSender *sqs.Sender
	queueName string

	mutex     sync.Mutex
	sent      int
	failed    int
	lastError string
	lastSent  time.Time
}

var _ queue.EventPublisher = (*SQSEventPublisher)(nil)

func NewSQSEventPublisher(sqsClient sqs.SQSClient, queueName string) *SQSEventPublisher {
	return &SQSEventPublisher{
		sqsSender: sqs.NewSender(sqsClient),
		queueName: queueName,
	}
}

// Publish implements the domain interface
func (adapter *SQSEventPublisher) Publish(ctx context.Context, event model.TodoEvent) error {
	err := adapter.sqsSender.SendMessage(ctx, adapter.queueName, event, map[string]string{
		"eventType": string(event.Type),
		"todoId":    event.Todo.ID,
	})

	adapter.mutex.Lock()
	defer adapter.mutex.Unlock()
	if err != nil {
		adapter.failed++
		adapter.lastError = err.Error()
		return err
	}
	adapter.sent++
	adapter.lastError = ""
	adapter.lastSent = time.Now()
	return nil
}

// Health is DOWN while the most recent publish failed
func (adapter *SQSEventPublisher) Health() model.ComponentHealthStatus {
	adapter.mutex.Lock()
	defer adapter.mutex.Unlock()

	details := map[string]string{
		"queue":  adapter.queueName,
		"sent":   strconv.Itoa(adapter.sent),
		"failed": strconv.Itoa(adapter.failed),
	}
	if !adapter.lastSent.IsZero() {
		details["last_sent"] = adapter.lastSent.Format(time.RFC3339)
	}
	if adapter.lastError != "" {
		details["message"] = adapter.lastError
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	return model.ComponentUp(details)
}
