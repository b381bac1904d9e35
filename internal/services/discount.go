package services

import (
	"github.com/shopspring/decimal"
	dbm "storefront/internal/models/db_models"
)

var (
	hundred     = decimal.NewFromInt(100)
	minorFactor = decimal.NewFromInt(100)
)

// ApplyDiscount returns the discount in minor units for priceMinor, clamped to [0, priceMinor].
// Percentages round half up; flat values are major units.
func ApplyDiscount(priceMinor int64, discountType dbm.DiscountType, value decimal.Decimal) int64 {
	if priceMinor <= 0 || value.Sign() <= 0 {
		return 0
	}

	var discount decimal.Decimal
	switch discountType {
	case dbm.DiscountPercentage:
		if value.GreaterThan(hundred) {
			value = hundred
		}
		discount = decimal.NewFromInt(priceMinor).Mul(value).Div(hundred).Round(0)
	case dbm.DiscountFlat:
		discount = value.Mul(minorFactor).Round(0)
	default:
		return 0
	}

	d := discount.IntPart()
	if d > priceMinor {
		return priceMinor
	}
	if d < 0 {
		return 0
	}
	return d
}
