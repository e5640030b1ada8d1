package calculations

import "github.com/cloud-ru/deposit-calculator-go/internal/catalog"

// Надбавки к ставке, в процентных пунктах
const (
	SeniorAge   = 60
	YouthMaxAge = 25

	SeniorBonus = 0.5
	YouthBonus  = 0.25

	LongTenorMonths   = 36
	MediumTenorMonths = 24

	LongTenorBonus   = 0.2
	MediumTenorBonus = 0.1

	// FloatingBand bounds the floating adjustment: it lies in the open
	// interval (-FloatingBand, +FloatingBand).
	FloatingBand = 0.15
)

// maxDraws limits redraws when the source returns a value at the closed end of [0, 1).
const maxDraws = 4

// AgeBonus возвращает надбавку за возраст вкладчика
func AgeBonus(age int) float64 {
	switch {
	case age >= SeniorAge:
		return SeniorBonus
	case age <= YouthMaxAge:
		return YouthBonus
	default:
		return 0
	}
}

// TenorBonus возвращает надбавку за срок вклада
func TenorBonus(months int) float64 {
	switch {
	case months >= LongTenorMonths:
		return LongTenorBonus
	case months >= MediumTenorMonths:
		return MediumTenorBonus
	default:
		return 0
	}
}

// FloatingAdjustment maps one draw from rnd onto (-FloatingBand, +FloatingBand).
// A draw of exactly 0 would land on the excluded lower bound, so it is
// redrawn; a source that keeps returning unusable values yields 0.
func FloatingAdjustment(rnd RandomSource) float64 {
	u := 0.5
	for i := 0; i < maxDraws; i++ {
		v := rnd.Float64()
		if v > 0 && v < 1 {
			u = v
			break
		}
	}
	return (2*u - 1) * FloatingBand
}

// DeriveRate рассчитывает эффективную ставку с разбивкой по надбавкам.
// rnd is only read for floating products and must be non-nil for them.
func DeriveRate(p catalog.Product, age, tenorMonths int, rnd RandomSource) RateBreakdown {
	b := RateBreakdown{
		BasePercent: p.BaseRatePercent,
		AgeBonus:    AgeBonus(age),
		TenorBonus:  TenorBonus(tenorMonths),
	}
	if p.Floating {
		b.FloatingAdjustment = FloatingAdjustment(rnd)
	}
	b.EffectivePercent = b.BasePercent + b.AgeBonus + b.TenorBonus + b.FloatingAdjustment
	return b
}
