package core

import (
	"github.com/go-playground/validator/v10"
)

// go-playground/validator/v10: struct-tag validation at the repository
// boundary. Entities are checked before any collection write.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(shippingOrderChecks, ShippingOrder{})
	return v
}

// shippingOrderChecks enforces the cross-field COD rule: an order marked
// cash-on-delivery must carry a positive collection amount.
func shippingOrderChecks(sl validator.StructLevel) {
	o := sl.Current().Interface().(ShippingOrder)
	if o.CashOnDelivery && o.CODAmount <= 0 {
		sl.ReportError(o.CODAmount, "codAmount", "CODAmount", "cod_amount", "")
	}
}

// Validate checks an entity against its struct tags and registered
// struct-level rules. Failures come back as a *ValidationError.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
