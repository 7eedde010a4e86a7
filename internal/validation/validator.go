package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"orderflow/internal/orders"
)

// New returns a validator with the closed order enums registered as tags.
// Unknown payment/shipping/carrier values fail fast at the boundary instead
// of leaking downstream as free-form strings.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	must(v.RegisterValidation("payment_type", func(fl validatorv10.FieldLevel) bool {
		_, err := orders.ParsePaymentType(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("shipping_type", func(fl validatorv10.FieldLevel) bool {
		_, err := orders.ParseShippingType(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("carrier_type", func(fl validatorv10.FieldLevel) bool {
		_, err := orders.ParseCarrierType(fl.Field().String())
		return err == nil
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
