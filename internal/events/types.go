package events

import "fmt"

// EventType is the closed set of order lifecycle events.
type EventType string

const (
	OrderCreated EventType = "ORDER_CREATED"
	OrderDeleted EventType = "ORDER_DELETED"
)

// ParseEventType validates a wire value against the closed set.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case OrderCreated, OrderDeleted:
		return EventType(s), nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// ShippingInfo mirrors the order's shipping snapshot on the wire.
type ShippingInfo struct {
	Type    string `json:"type"`
	Carrier string `json:"carrier"`
}

// BillingInfo mirrors the order's billing snapshot on the wire.
type BillingInfo struct {
	Payment    string  `json:"payment"`
	TotalPrice float64 `json:"totalPrice"`
}

// OrderEvent is the fact published once per order lifecycle transition.
type OrderEvent struct {
	Email        string       `json:"email"`
	OrderID      string       `json:"orderId"`
	Shipping     ShippingInfo `json:"shipping"`
	Billing      BillingInfo  `json:"billing"`
	ProductCodes []string     `json:"productCodes"`
	RequestID    string       `json:"requestId"`
}

// Envelope is the serialized message placed on the bus.
type Envelope struct {
	EventType EventType  `json:"eventType"`
	Data      OrderEvent `json:"data"`
}

// RecordInfo is the nested detail block of an event log row.
type RecordInfo struct {
	OrderID      string   `dynamodbav:"orderId"`
	ProductCodes []string `dynamodbav:"productCodes"`
	MessageID    string   `dynamodbav:"messageId"`
}

// Record is one event log row. The sort key embeds a millisecond timestamp
// for chronological ordering within the partition; two events for the same
// order landing in the same millisecond collide on it. Accepted imprecision
// for an audit trail.
type Record struct {
	PK        string     `dynamodbav:"pk"` // "#order_" + orderId
	SK        string     `dynamodbav:"sk"` // eventType + timestampMillis
	TTL       int64      `dynamodbav:"ttl"`
	Email     string     `dynamodbav:"email"`
	CreatedAt int64      `dynamodbav:"createdAt"`
	RequestID string     `dynamodbav:"requestId"`
	EventType EventType  `dynamodbav:"eventType"`
	Info      RecordInfo `dynamodbav:"info"`
}

// PartitionKey builds the event log partition key for an order.
func PartitionKey(orderID string) string {
	return "#order_" + orderID
}
