package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyPrecision maps ISO currency codes to their minor unit exponent.
// Unlisted currencies default to 2.
var currencyPrecision = map[string]int32{
	"jpy": 0,
	"krw": 0,
	"bhd": 3,
	"kwd": 3,
}

// GetCurrencyPrecision returns the number of decimal places for a currency
func GetCurrencyPrecision(currency string) int32 {
	if p, ok := currencyPrecision[strings.ToLower(currency)]; ok {
		return p
	}
	return 2
}

// FromMinorUnits converts a provider amount in minor units (e.g. pence)
// to a decimal amount in major units.
func FromMinorUnits(amount int64, currency string) decimal.Decimal {
	precision := GetCurrencyPrecision(currency)
	return decimal.New(amount, -precision)
}

// ToMinorUnits converts a major-unit decimal amount to provider minor units.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	precision := GetCurrencyPrecision(currency)
	return amount.Shift(precision).Round(0).IntPart()
}
