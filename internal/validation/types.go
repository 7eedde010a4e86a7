package validation

// ShippingRequest is the shipping choice on an incoming order.
type ShippingRequest struct {
	Type    string `json:"type" validate:"required,shipping_type"`
	Carrier string `json:"carrier" validate:"required,carrier_type"`
}

// CreateOrderRequest is the payload for POST /orders.
type CreateOrderRequest struct {
	Email      string          `json:"email" validate:"required,email"`
	ProductIDs []string        `json:"productIds" validate:"required,min=1,dive,required"`
	Payment    string          `json:"payment" validate:"required,payment_type"`
	Shipping   ShippingRequest `json:"shipping"`
}
