package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSClient defines the subset of the SQS API the Sender uses
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Sender serializes message bodies to JSON and sends them to SQS queues
type Sender struct {
	sqsClient SQSClient
	queueURLs sync.Map // queue name -> URL
}

// NewSender creates and returns a new Sender
func NewSender(sqsClient SQSClient) *Sender {
	return &Sender{
		sqsClient: sqsClient,
	}
}

// SendMessage serializes body to JSON and sends it to queueName. attributes become
// String message attributes.
func (s *Sender) SendMessage(ctx context.Context, queueName string, body any, attributes map[string]string) error {
	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	messageBody := string(jsonBody)
	input := &sqs.SendMessageInput{
		QueueUrl:    &queueURL,
		MessageBody: &messageBody,
	}
	if len(attributes) > 0 {
		input.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attributes))
		for name, value := range attributes {
			input.MessageAttributes[name] = types.MessageAttributeValue{
				DataType:    stringPtr("String"),
				StringValue: stringPtr(value),
			}
		}
	}

	if _, err = s.sqsClient.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}
	return nil
}

// getQueueURL resolves and caches the URL for the queue
func (s *Sender) getQueueURL(ctx context.Context, queueName string) (string, error) {
	if cached, ok := s.queueURLs.Load(queueName); ok {
		return cached.(string), nil
	}

	result, err := s.sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return "", err
	}
	if result.QueueUrl == nil {
		return "", fmt.Errorf("queue URL is nil for queue %s", queueName)
	}

	s.queueURLs.Store(queueName, *result.QueueUrl)
	return *result.QueueUrl, nil
}

func stringPtr(s string) *string {
	return &s
}
