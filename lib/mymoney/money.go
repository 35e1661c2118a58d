package mymoney

import (
	"fmt"
	"math"
)

// Amounts are stored in major units (dollars) and exchanged in minor units (cents).

func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

// Round2 normalizes a major-unit amount to two decimals.
func Round2(dollars float64) float64 {
	return CentsToDollars(DollarsToCents(dollars))
}

func Format(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	symbol := currency + " "
	switch currency {
	case "USD":
		symbol = "$"
	case "EUR":
		symbol = "€"
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}
