package orders

import "fmt"

// PaymentType is the closed set of accepted payment methods.
type PaymentType string

const (
	PaymentCash       PaymentType = "CASH"
	PaymentDebitCard  PaymentType = "DEBIT_CARD"
	PaymentCreditCard PaymentType = "CREDIT_CARD"
)

// ParsePaymentType validates a wire value against the closed set.
func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case PaymentCash, PaymentDebitCard, PaymentCreditCard:
		return PaymentType(s), nil
	}
	return "", fmt.Errorf("unknown payment type %q", s)
}

// ShippingType is the closed set of shipping speeds.
type ShippingType string

const (
	ShippingEconomic ShippingType = "ECONOMIC"
	ShippingUrgent   ShippingType = "URGENT"
)

// ParseShippingType validates a wire value against the closed set.
func ParseShippingType(s string) (ShippingType, error) {
	switch ShippingType(s) {
	case ShippingEconomic, ShippingUrgent:
		return ShippingType(s), nil
	}
	return "", fmt.Errorf("unknown shipping type %q", s)
}

// CarrierType is the closed set of carriers.
type CarrierType string

const (
	CarrierCorreios CarrierType = "CORREIOS"
	CarrierFedex    CarrierType = "FEDEX"
)

// ParseCarrierType validates a wire value against the closed set.
func ParseCarrierType(s string) (CarrierType, error) {
	switch CarrierType(s) {
	case CarrierCorreios, CarrierFedex:
		return CarrierType(s), nil
	}
	return "", fmt.Errorf("unknown carrier %q", s)
}

// OrderItem is one line of an order: the product code and the unit price
// observed at creation time. Later catalog price changes never touch it.
type OrderItem struct {
	Code  string  `json:"code" dynamodbav:"code"`
	Price float64 `json:"price" dynamodbav:"price"`
}

// Billing carries the chosen payment method and the order total.
type Billing struct {
	Payment    PaymentType `json:"payment" dynamodbav:"payment"`
	TotalPrice float64     `json:"totalPrice" dynamodbav:"totalPrice"`
}

// Shipping carries the shipping choice snapshot.
type Shipping struct {
	Type    ShippingType `json:"type" dynamodbav:"type"`
	Carrier CarrierType  `json:"carrier" dynamodbav:"carrier"`
}

// Order is the item persisted in the orders table. The customer email is the
// partition key and the generated order id the sort key. Orders are created
// and deleted whole; there is no partial update.
type Order struct {
	Email     string      `dynamodbav:"pk"`
	OrderID   string      `dynamodbav:"sk"`
	CreatedAt int64       `dynamodbav:"createdAt"` // epoch millis
	Products  []OrderItem `dynamodbav:"products"`
	Billing   Billing     `dynamodbav:"billing"`
	Shipping  Shipping    `dynamodbav:"shipping"`
}

// OrderResponse is the view returned to API callers.
type OrderResponse struct {
	Email     string      `json:"email"`
	ID        string      `json:"id"`
	CreatedAt int64       `json:"createdAt"`
	Products  []OrderItem `json:"products"`
	Billing   Billing     `json:"billing"`
	Shipping  Shipping    `json:"shipping"`
}

// CreateOrderInput is the validated request the service acts on.
type CreateOrderInput struct {
	Email      string
	ProductIDs []string
	Payment    PaymentType
	Shipping   Shipping
	RequestID  string
}

func toResponse(o Order) OrderResponse {
	return OrderResponse{
		Email:     o.Email,
		ID:        o.OrderID,
		CreatedAt: o.CreatedAt,
		Products:  o.Products,
		Billing:   o.Billing,
		Shipping:  o.Shipping,
	}
}
