package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSNS struct {
	published []sns.PublishInput
	fail      bool
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if m.fail {
		return nil, errors.New("bus unavailable")
	}
	m.published = append(m.published, *params)
	id := "msg-42"
	return &sns.PublishOutput{MessageId: &id}, nil
}

func TestPublisher_SendsEnvelopeAndReturnsMessageID(t *testing.T) {
	mock := &mockSNS{}
	p := NewPublisher(mock, "arn:aws:sns:us-east-1:000000000000:order-events")

	messageID, err := p.Publish(context.Background(), OrderCreated, OrderEvent{
		Email:        "a@b.com",
		OrderID:      "o1",
		ProductCodes: []string{"P1"},
		RequestID:    "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-42", messageID)

	require.Len(t, mock.published, 1)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:order-events", *mock.published[0].TopicArn)

	var envelope Envelope
	require.NoError(t, json.Unmarshal([]byte(*mock.published[0].Message), &envelope))
	assert.Equal(t, OrderCreated, envelope.EventType)
	assert.Equal(t, "o1", envelope.Data.OrderID)
	assert.Equal(t, []string{"P1"}, envelope.Data.ProductCodes)
}

func TestPublisher_PublishFailure(t *testing.T) {
	p := NewPublisher(&mockSNS{fail: true}, "arn:whatever")

	_, err := p.Publish(context.Background(), OrderDeleted, OrderEvent{OrderID: "o1"})
	require.Error(t, err)
}
