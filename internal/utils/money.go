package utils

import (
	"fmt"
	"math"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// AmountsEqual compares currency values with a cent tolerance.
func AmountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}
