package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sns"

	"orderflow/internal/aws"
)

// Publisher puts order events on the fan-out topic. Every subscriber gets an
// independent copy; the only acknowledgment is acceptance into the bus.
type Publisher struct {
	sns      aws.SNSAPI
	topicARN string
}

// NewPublisher returns a Publisher bound to a topic.
func NewPublisher(snsClient aws.SNSAPI, topicARN string) *Publisher {
	return &Publisher{
		sns:      snsClient,
		topicARN: topicARN,
	}
}

// Publish serializes the envelope and sends it. Returns the bus message id.
func (p *Publisher) Publish(ctx context.Context, eventType EventType, event OrderEvent) (string, error) {
	body, err := json.Marshal(Envelope{
		EventType: eventType,
		Data:      event,
	})
	if err != nil {
		return "", fmt.Errorf("marshal event envelope: %w", err)
	}

	message := string(body)
	out, err := p.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Message:  &message,
	})
	if err != nil {
		return "", fmt.Errorf("publish event: %w", err)
	}

	var messageID string
	if out.MessageId != nil {
		messageID = *out.MessageId
	}
	return messageID, nil
}
