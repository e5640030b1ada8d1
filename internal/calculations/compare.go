package calculations

import (
	"github.com/cloud-ru/deposit-calculator-go/internal/catalog"
)

// CompareConventions сравнивает простые и сложные проценты при одной и той же ставке
func CompareConventions(cat *catalog.Catalog, req Request, rnd RandomSource) (*Comparison, error) {
	// Схема в запросе не важна: считаем обе
	req.Convention = Simple
	p, err := resolve(cat, req)
	if err != nil {
		return nil, err
	}

	if err := requireSource(p, rnd); err != nil {
		return nil, err
	}

	// Одна выборка плавающей надбавки на обе схемы
	rate := DeriveRate(p, req.Age, req.TenorMonths, rnd)

	simple := ApplyRate(req.Principal, rate.EffectivePercent, req.TenorMonths, Simple)
	compound := ApplyRate(req.Principal, rate.EffectivePercent, req.TenorMonths, Compound)

	return &Comparison{
		Rate:              rate,
		Simple:            simple,
		Compound:          compound,
		CompoundAdvantage: compound.InterestEarned - simple.InterestEarned,
	}, nil
}
