package calculations

import (
	"fmt"
	"strings"
)

// Convention задает способ начисления процентов
type Convention string

const (
	// Simple - простые проценты без капитализации
	Simple Convention = "simple"
	// Compound - ежемесячная капитализация
	Compound Convention = "compound"
)

// ParseConvention разбирает название схемы начисления
func ParseConvention(s string) (Convention, error) {
	switch c := Convention(strings.ToLower(strings.TrimSpace(s))); c {
	case Simple, Compound:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidConvention, s)
	}
}

// Valid сообщает, известна ли схема начисления
func (c Convention) Valid() bool {
	return c == Simple || c == Compound
}

// Request представляет запрос на расчет доходности вклада
type Request struct {
	Principal   float64    `json:"principal"`
	ProductID   string     `json:"product_id"`
	TenorMonths int        `json:"tenor_months"`
	Age         int        `json:"age"`
	Convention  Convention `json:"convention"`
}

// Result представляет результат расчета
type Result struct {
	Principal            float64 `json:"principal"`
	InterestEarned       float64 `json:"interest_earned"`
	MaturityAmount       float64 `json:"maturity_amount"`
	EffectiveRatePercent float64 `json:"effective_rate_percent"`
}

// RateBreakdown holds each additive step of the effective rate, in
// percentage points.
type RateBreakdown struct {
	BasePercent        float64 `json:"base_percent"`
	AgeBonus           float64 `json:"age_bonus"`
	TenorBonus         float64 `json:"tenor_bonus"`
	FloatingAdjustment float64 `json:"floating_adjustment"`
	EffectivePercent   float64 `json:"effective_percent"`
}

// ScheduleEntry представляет одну запись в графике роста вклада
type ScheduleEntry struct {
	Month              int     `json:"month"`
	StartingBalance    float64 `json:"starting_balance"`
	InterestEarned     float64 `json:"interest_earned"`
	EndingBalance      float64 `json:"ending_balance"`
	CumulativeInterest float64 `json:"cumulative_interest"`
}

// GrowthMetrics представляет метрики доходности вклада
type GrowthMetrics struct {
	ROIPercent              float64 `json:"roi_percent"`
	AnnualizedReturnPercent float64 `json:"annualized_return_percent"`
	Years                   float64 `json:"years"`
}

// Calculation combines a result with the rate steps that produced it.
type Calculation struct {
	Result Result        `json:"result"`
	Rate   RateBreakdown `json:"rate"`
}

// Comparison представляет результат сравнения простых и сложных процентов
type Comparison struct {
	Rate              RateBreakdown `json:"rate"`
	Simple            Result        `json:"simple"`
	Compound          Result        `json:"compound"`
	CompoundAdvantage float64       `json:"compound_advantage"`
}
