package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestResource_Pricing(t *testing.T) {
	resource := Resource{
		Currency:   "EUR",
		BasePrices: datatypes.JSON(`{"adult":12,"child":6,"infant":0}`),
		Rules: datatypes.JSON(`[
			{"type":"group","conditions":{"minGuests":10},"pricing":{"type":"percentage","value":-10}}
		]`),
		Taxes: datatypes.JSON(`[{"name":"TVA","rate":20,"inclusive":true}]`),
		Fees:  datatypes.JSON(`[{"id":"booking","name":"Booking fee","amount":2,"mandatory":true}]`),
	}

	pricing, err := resource.Pricing()
	require.NoError(t, err)

	assert.Equal(t, 12.0, pricing.BasePrices[GuestAdult])
	assert.Equal(t, 0.0, pricing.BasePrices[GuestInfant])
	require.Len(t, pricing.Rules, 1)
	require.NotNil(t, pricing.Rules[0].Conditions)
	require.NotNil(t, pricing.Rules[0].Conditions.MinGuests)
	assert.Equal(t, 10, *pricing.Rules[0].Conditions.MinGuests)
	assert.Equal(t, PricingPercentage, pricing.Rules[0].Pricing.Type)
	require.Len(t, pricing.Taxes, 1)
	assert.True(t, pricing.Taxes[0].Inclusive)
	require.Len(t, pricing.Fees, 1)
	assert.True(t, pricing.Fees[0].Mandatory)
	assert.Equal(t, "EUR", pricing.Currency)
}

func TestResource_PricingEmptyColumns(t *testing.T) {
	resource := Resource{Currency: "EUR"}
	pricing, err := resource.Pricing()
	require.NoError(t, err)
	assert.NotNil(t, pricing.BasePrices)
	assert.Empty(t, pricing.Rules)

	slots, err := resource.Slots()
	require.NoError(t, err)
	assert.Nil(t, slots)

	policy, err := resource.Policy()
	require.NoError(t, err)
	assert.Nil(t, policy)
}

func TestResource_PricingInvalidJSON(t *testing.T) {
	resource := Resource{BasePrices: datatypes.JSON(`{oops`)}
	_, err := resource.Pricing()
	assert.Error(t, err)
}

func TestDiscountCode_ToDiscount(t *testing.T) {
	row := DiscountCode{
		Code:       "SUMMER25",
		Type:       DiscountFixed,
		Value:      25,
		Conditions: datatypes.JSON(`{"minAmount":100,"maxAmount":25,"usageLimit":500,"usageCount":3}`),
	}

	discount, err := row.ToDiscount()
	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", discount.Code)
	assert.Equal(t, DiscountFixed, discount.Type)
	require.NotNil(t, discount.Conditions)
	assert.Equal(t, 100.0, *discount.Conditions.MinAmount)
	assert.Equal(t, 3, discount.Conditions.UsageCount)
}

func TestDiscountCode_ToDiscountNoConditions(t *testing.T) {
	row := DiscountCode{Code: "WELCOME10", Type: DiscountPercentage, Value: 10}
	discount, err := row.ToDiscount()
	require.NoError(t, err)
	assert.Nil(t, discount.Conditions)
}
