package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo/internal/domain/entity"
	"go-todo/internal/domain/model"
)

type stubSQSClient struct {
	sendErr error
	sent    []*sqs.SendMessageInput
}

func (s *stubSQSClient) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	url := "http://localhost:4566/000000000000/" + *params.QueueName
	return &sqs.GetQueueUrlOutput{QueueUrl: &url}, nil
}

func (s *stubSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	s.sent = append(s.sent, params)
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSEventPublisher_Publish(t *testing.T) {
	client := &stubSQSClient{}
	publisher := NewSQSEventPublisher(client, "todo-events")

	event := model.TodoEvent{
		Type:       model.TodoCreated,
		Todo:       entity.Todo{ID: "t-1", Title: "Buy milk", CreatedAt: 1, UpdatedAt: 1},
		OccurredAt: 1,
	}
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, client.sent, 1)
	assert.Equal(t, "created", *client.sent[0].MessageAttributes["eventType"].StringValue)
	assert.Equal(t, "t-1", *client.sent[0].MessageAttributes["todoId"].StringValue)
	assert.JSONEq(t,
		`{"type":"created","todo":{"id":"t-1","title":"Buy milk","completed":false,"createdAt":1,"updatedAt":1},"occurredAt":1}`,
		*client.sent[0].MessageBody)

	health := publisher.Health()
	assert.Equal(t, model.StatusUp, health.Status)
	assert.Equal(t, "1", health.Details["sent"])
}

func TestSQSEventPublisher_HealthDownAfterFailure(t *testing.T) {
	client := &stubSQSClient{sendErr: errors.New("connection refused")}
	publisher := NewSQSEventPublisher(client, "todo-events")

	err := publisher.Publish(context.Background(), model.TodoEvent{Type: model.TodoRemoved})
	require.Error(t, err)

	health := publisher.Health()
	assert.Equal(t, model.StatusDown, health.Status)
	assert.Equal(t, "1", health.Details["failed"])
	assert.Contains(t, health.Details["message"], "connection refused")

	client.sendErr = nil
	require.NoError(t, publisher.Publish(context.Background(), model.TodoEvent{Type: model.TodoRemoved}))
	assert.Equal(t, model.StatusUp, publisher.Health().Status)
}
