package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Email:      "a@b.com",
		ProductIDs: []string{"p1", "p2"},
		Payment:    "CASH",
		Shipping: ShippingRequest{
			Type:    "ECONOMIC",
			Carrier: "CORREIOS",
		},
	}
}

func TestCreateOrderRequest_Valid(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(validRequest()))
}

func TestCreateOrderRequest_AllPaymentTypes(t *testing.T) {
	v := New()
	for _, payment := range []string{"CASH", "DEBIT_CARD", "CREDIT_CARD"} {
		req := validRequest()
		req.Payment = payment
		assert.NoError(t, v.Struct(req), payment)
	}
}

func TestCreateOrderRequest_UnknownPayment(t *testing.T) {
	v := New()
	req := validRequest()
	req.Payment = "BARTER"
	require.Error(t, v.Struct(req))
}

func TestCreateOrderRequest_UnknownShippingType(t *testing.T) {
	v := New()
	req := validRequest()
	req.Shipping.Type = "TELEPORT"
	require.Error(t, v.Struct(req))
}

func TestCreateOrderRequest_UnknownCarrier(t *testing.T) {
	v := New()
	req := validRequest()
	req.Shipping.Carrier = "PIGEON"
	require.Error(t, v.Struct(req))
}

func TestCreateOrderRequest_MissingEmail(t *testing.T) {
	v := New()
	req := validRequest()
	req.Email = ""
	require.Error(t, v.Struct(req))
}

func TestCreateOrderRequest_BadEmail(t *testing.T) {
	v := New()
	req := validRequest()
	req.Email = "not-an-email"
	require.Error(t, v.Struct(req))
}

func TestCreateOrderRequest_EmptyProducts(t *testing.T) {
	v := New()
	req := validRequest()
	req.ProductIDs = nil
	require.Error(t, v.Struct(req))

	req.ProductIDs = []string{}
	require.Error(t, v.Struct(req))
}

func TestCreateOrderRequest_BlankProductID(t *testing.T) {
	v := New()
	req := validRequest()
	req.ProductIDs = []string{"p1", ""}
	require.Error(t, v.Struct(req))
}
