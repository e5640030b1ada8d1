package calculations

import (
	"fmt"

	"github.com/cloud-ru/deposit-calculator-go/pkg/utils"
)

// ConfigInterface определяет интерфейс для получения конфигурации
type ConfigInterface interface {
	BalanceCap() float64
}

// Schedule строит помесячный график роста вклада по результату расчета.
// Balances are carried unrounded; only the reported fields are rounded,
// so the last row's cumulative interest matches res.InterestEarned.
func Schedule(cfg ConfigInterface, res Result, months int, conv Convention) ([]ScheduleEntry, error) {
	if months <= 0 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}

	a := res.EffectiveRatePercent / 100.0
	monthly := a / 12.0
	balance := res.Principal
	cumI := 0.0

	capValue := cfg.BalanceCap()
	schedule := make([]ScheduleEntry, 0, months)

	for m := 1; m <= months; m++ {
		starting := balance

		var interest float64
		if conv == Compound {
			interest = balance * monthly
		} else {
			interest = res.Principal * monthly
		}
		balance += interest
		cumI += interest

		if balance > capValue {
			return nil, fmt.Errorf("итоговый баланс превысил верхнюю границу (проверьте сумму/срок)")
		}

		schedule = append(schedule, ScheduleEntry{
			Month:              m,
			StartingBalance:    utils.Round2(starting),
			InterestEarned:     utils.Round2(interest),
			EndingBalance:      utils.Round2(balance),
			CumulativeInterest: utils.Round2(cumI),
		})
	}

	return schedule, nil
}
