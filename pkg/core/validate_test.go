package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashOnDeliveryRequiresAmount(t *testing.T) {
	order := &ShippingOrder{
		PickupAddress:  "الرياض",
		Destination:    "جدة",
		Items:          []OrderItem{{Name: "صندوق", Price: 10, Quantity: 1}},
		CashOnDelivery: true,
	}
	err := Validate(order)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	order.CODAmount = 25
	assert.NoError(t, Validate(order))
}

func TestOrderNeedsAtLeastOneItem(t *testing.T) {
	err := Validate(&ShippingOrder{
		PickupAddress: "الرياض",
		Destination:   "جدة",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestValidationErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &ValidationError{Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "boom")

	assert.Equal(t, "validation failed: bad type", Invalid("bad type").Error())
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestExhibitionItemFinalPrice(t *testing.T) {
	assert.Equal(t, 150.0, ExhibitionItem{Price: 200, Discount: 25}.FinalPrice())
	assert.Equal(t, 200.0, ExhibitionItem{Price: 200}.FinalPrice())
}

func TestWelcomeFlagKeyPerRole(t *testing.T) {
	assert.Equal(t, "hasWelcomed-merchant", WelcomeFlagKey(RoleMerchant))
	assert.Equal(t, "hasWelcomed-customer", WelcomeFlagKey(RoleCustomer))
}
