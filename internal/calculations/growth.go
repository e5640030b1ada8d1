package calculations

import (
	"math"

	"github.com/cloud-ru/deposit-calculator-go/pkg/utils"
)

// Growth рассчитывает показатели доходности вклада
func Growth(res Result, months int) GrowthMetrics {
	// ROI (Return on Investment) в процентах
	var roiPercent float64
	if res.Principal > 0 {
		roiPercent = utils.Round2(res.InterestEarned / res.Principal * 100)
	}

	// Средняя годовая доходность
	years := float64(months) / 12.0
	var annualized float64
	if years > 0 && res.Principal > 0 {
		annualized = utils.Round2((math.Pow(res.MaturityAmount/res.Principal, 1.0/years) - 1.0) * 100)
	}

	return GrowthMetrics{
		ROIPercent:              roiPercent,
		AnnualizedReturnPercent: annualized,
		Years:                   utils.Round2(years),
	}
}

// Rounded returns a copy of r for display: money in cents, the rate to
// four decimals. The maturity is rebuilt from the rounded parts so the
// displayed figures still add up.
func (r Result) Rounded() Result {
	principal := utils.Round2(r.Principal)
	interest := utils.Round2(r.InterestEarned)
	return Result{
		Principal:            principal,
		InterestEarned:       interest,
		MaturityAmount:       utils.Round2(principal + interest),
		EffectiveRatePercent: utils.RoundTo(r.EffectiveRatePercent, 4),
	}
}
