package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/deposit-calculator-go/internal/catalog"
	"github.com/cloud-ru/deposit-calculator-go/pkg/utils"
)

// Calculate рассчитывает доход и сумму к погашению по вкладу.
// rnd may be nil only for fixed-rate products.
func Calculate(cat *catalog.Catalog, req Request, rnd RandomSource) (*Calculation, error) {
	p, err := resolve(cat, req)
	if err != nil {
		return nil, err
	}
	if err := requireSource(p, rnd); err != nil {
		return nil, err
	}

	rate := DeriveRate(p, req.Age, req.TenorMonths, rnd)
	return &Calculation{
		Result: ApplyRate(req.Principal, rate.EffectivePercent, req.TenorMonths, req.Convention),
		Rate:   rate,
	}, nil
}

// ApplyRate считает проценты по уже скорректированной годовой ставке (в процентах)
func ApplyRate(principal, annualRatePercent float64, months int, conv Convention) Result {
	interest := Interest(principal, annualRatePercent, months, conv)
	return Result{
		Principal:            principal,
		InterestEarned:       interest,
		MaturityAmount:       principal + interest,
		EffectiveRatePercent: annualRatePercent,
	}
}

// Interest returns the interest earned over months at annualRatePercent.
// Compound interest is capitalised once per month, n times.
func Interest(principal, annualRatePercent float64, months int, conv Convention) float64 {
	a := annualRatePercent / 100.0
	if conv == Compound {
		monthly := a / 12.0
		return principal*math.Pow(1.0+monthly, float64(months)) - principal
	}
	return principal * a * (float64(months) / 12.0)
}

func resolve(cat *catalog.Catalog, req Request) (catalog.Product, error) {
	if !utils.IsFinite(req.Principal) || req.Principal <= 0 {
		return catalog.Product{}, fmt.Errorf("%w: %v", ErrInvalidPrincipal, req.Principal)
	}
	if req.Age < 0 {
		return catalog.Product{}, fmt.Errorf("%w: %d", ErrInvalidAge, req.Age)
	}
	if !req.Convention.Valid() {
		return catalog.Product{}, fmt.Errorf("%w: %q", ErrInvalidConvention, req.Convention)
	}
	p, ok := cat.Lookup(req.ProductID)
	if !ok {
		return catalog.Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, req.ProductID)
	}
	if !p.AllowsTenor(req.TenorMonths) {
		return catalog.Product{}, fmt.Errorf("%w: %s does not offer %d months", ErrTenorNotOffered, p.ID, req.TenorMonths)
	}
	return p, nil
}

func requireSource(p catalog.Product, rnd RandomSource) error {
	if p.Floating && rnd == nil {
		return fmt.Errorf("%w: %s", ErrNoRandomSource, p.ID)
	}
	return nil
}
