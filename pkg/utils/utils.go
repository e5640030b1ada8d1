package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 округляет число до 2 знаков после запятой (половина от нуля)
func Round2(value float64) float64 {
	return RoundTo(value, 2)
}

// RoundTo округляет число до places знаков после запятой
func RoundTo(value float64, places int32) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// AlmostEqual сравнивает числа с относительной точностью tol
func AlmostEqual(a, b, tol float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(1.0, math.Max(math.Abs(a), math.Abs(b)))
	return diff <= tol*scale
}
