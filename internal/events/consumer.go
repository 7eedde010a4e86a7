package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	awsevents "github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// retentionWindow is how long an event log record stays queryable before the
// table's expiry mechanism reclaims it.
const retentionWindow = 5 * time.Minute

// Consumer turns bus deliveries into event log records.
type Consumer struct {
	store   *LogStore
	log     *zap.Logger
	nowFunc func() time.Time
}

// NewConsumer creates a Consumer with its dependencies injected.
func NewConsumer(store *LogStore, log *zap.Logger) *Consumer {
	return &Consumer{
		store:   store,
		log:     log,
		nowFunc: time.Now,
	}
}

// Handle processes one bus delivery. Every record in the batch is written
// concurrently and the batch only succeeds if all writes succeed; a single
// failure fails the whole batch so the bus redelivers it. Redelivered events
// produce duplicate rows, which an audit trail tolerates.
func (c *Consumer) Handle(ctx context.Context, event awsevents.SNSEvent) error {
	c.log.Info("received event batch", zap.Int("records", len(event.Records)))

	g, ctx := errgroup.WithContext(ctx)
	for _, record := range event.Records {
		msg := record.SNS
		g.Go(func() error {
			return c.processMessage(ctx, msg)
		})
	}
	return g.Wait()
}

func (c *Consumer) processMessage(ctx context.Context, msg awsevents.SNSEntity) error {
	var envelope Envelope
	if err := json.Unmarshal([]byte(msg.Message), &envelope); err != nil {
		return fmt.Errorf("invalid event envelope: %w", err)
	}
	eventType, err := ParseEventType(string(envelope.EventType))
	if err != nil {
		return fmt.Errorf("reject envelope: %w", err)
	}

	data := envelope.Data
	now := c.nowFunc()
	timestamp := now.UnixMilli()

	rec := Record{
		PK:        PartitionKey(data.OrderID),
		SK:        string(eventType) + strconv.FormatInt(timestamp, 10),
		TTL:       now.Add(retentionWindow).Unix(),
		Email:     data.Email,
		CreatedAt: timestamp,
		RequestID: data.RequestID,
		EventType: eventType,
		Info: RecordInfo{
			OrderID:      data.OrderID,
			ProductCodes: data.ProductCodes,
			MessageID:    msg.MessageID,
		},
	}

	if err := c.store.Put(ctx, rec); err != nil {
		c.log.Error("event record write failed",
			zap.String("order_id", data.OrderID),
			zap.String("event_type", string(eventType)),
			zap.String("message_id", msg.MessageID),
			zap.Error(err))
		return err
	}

	c.log.Info("event record written",
		zap.String("order_id", data.OrderID),
		zap.String("event_type", string(eventType)),
		zap.String("message_id", msg.MessageID))
	return nil
}
