package utils

import "github.com/shopspring/decimal"

// FormatMinor renders 2999,"USD" as "29.99 USD".
func FormatMinor(amount int64, currency string) string {
	return decimal.New(amount, -2).StringFixed(2) + " " + currency
}
