package utils

import "math"

// RoundToCents rounds a monetary value to 2 decimal places (half-up)
func RoundToCents(amount float64) float64 {
	return math.Round(amount*MoneyPrecision) / MoneyPrecision
}

// PercentageOf calculates a percentage of an amount without rounding.
// Rounding is applied by the caller after allocation, not before.
func PercentageOf(amount, percentage float64) float64 {
	return (amount * percentage) / 100
}

// RoundPercentage rounds a percentage value to 2 decimal places
func RoundPercentage(pct float64) float64 {
	return math.Round(pct*100) / 100
}

// MinFloat returns the minimum of two float64 values
func MinFloat(a, b float64) float64 {
	return math.Min(a, b)
}
