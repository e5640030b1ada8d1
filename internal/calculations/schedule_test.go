package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/deposit-calculator-go/internal/catalog"
)

type capConfig float64

func (c capConfig) BalanceCap() float64 { return float64(c) }

func TestScheduleCompound(t *testing.T) {
	res := ApplyRate(10000, 4, 12, Compound)

	schedule, err := Schedule(capConfig(1e12), res, 12, Compound)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 10000.0, first.StartingBalance)
	assert.Equal(t, 33.33, first.InterestEarned)

	// Капитализация: проценты растут от месяца к месяцу
	assert.Greater(t, schedule[11].InterestEarned, schedule[0].InterestEarned)

	last := schedule[len(schedule)-1]
	assert.InDelta(t, res.InterestEarned, last.CumulativeInterest, 0.005)
	assert.InDelta(t, res.MaturityAmount, last.EndingBalance, 0.005)

	for i := 1; i < len(schedule); i++ {
		assert.Equal(t, schedule[i-1].EndingBalance, schedule[i].StartingBalance)
	}
}

func TestScheduleSimple(t *testing.T) {
	res := ApplyRate(12000, 5, 6, Simple)

	schedule, err := Schedule(capConfig(1e12), res, 6, Simple)
	require.NoError(t, err)
	require.Len(t, schedule, 6)

	for _, e := range schedule {
		assert.Equal(t, 50.0, e.InterestEarned)
	}
	last := schedule[5]
	assert.Equal(t, 300.0, last.CumulativeInterest)
	assert.Equal(t, 12300.0, last.EndingBalance)
	assert.InDelta(t, res.InterestEarned, last.CumulativeInterest, 1e-9)
}

func TestScheduleFromFloatingCalculation(t *testing.T) {
	calc, err := Calculate(catalog.Default(), Request{
		Principal: 50000, ProductID: catalog.DynamicFloatingID, TenorMonths: 24, Age: 40, Convention: Compound,
	}, FixedSource(0.8))
	require.NoError(t, err)

	schedule, err := Schedule(capConfig(1e12), calc.Result, 24, Compound)
	require.NoError(t, err)
	assert.InDelta(t, calc.Result.InterestEarned, schedule[23].CumulativeInterest, 0.005)
}

func TestScheduleBalanceCap(t *testing.T) {
	res := ApplyRate(1000, 10, 12, Compound)
	_, err := Schedule(capConfig(1050), res, 12, Compound)
	assert.Error(t, err)
}

func TestScheduleRejectsNonPositiveMonths(t *testing.T) {
	_, err := Schedule(capConfig(1e12), ApplyRate(1000, 4, 12, Simple), 0, Simple)
	assert.Error(t, err)
}
