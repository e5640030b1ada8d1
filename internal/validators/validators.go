package validators

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloud-ru/deposit-calculator-go/internal/calculations"
	"github.com/cloud-ru/deposit-calculator-go/internal/catalog"
	"github.com/cloud-ru/deposit-calculator-go/internal/config"
	"github.com/cloud-ru/deposit-calculator-go/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число положительное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// ParseNumber принимает число или числовую строку (как из поля формы)
func ParseNumber(name string, value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %q не является числом", name, v.String())
		}
		return f, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, fmt.Errorf("%s: значение не задано", name)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q не является числом", name, v)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("%s: значение не задано", name)
	default:
		return 0, fmt.Errorf("%s: неподдерживаемый тип %T", name, value)
	}
}

// ParseInt принимает целое число, целое в виде float64 (JSON) или строку
func ParseInt(name string, value interface{}) (int, error) {
	f, err := ParseNumber(name, value)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%s: ожидается целое число, получено %g", name, f)
	}
	return int(f), nil
}

// ParsePrincipal разбирает сумму вклада и проверяет ее
func ParsePrincipal(cfg *config.Config, value interface{}) (float64, error) {
	principal, err := ParseNumber("principal", value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", calculations.ErrInvalidPrincipal, err)
	}
	if err := CheckPrincipal(cfg, principal); err != nil {
		return 0, err
	}
	return principal, nil
}

// CheckPrincipal проверяет сумму вклада
func CheckPrincipal(cfg *config.Config, principal float64) error {
	if principal <= 0 {
		return fmt.Errorf("%w: principal: значение должно быть > 0", calculations.ErrInvalidPrincipal)
	}
	if err := ValidatePositiveNumber("principal", principal, 0, cfg.MaxPrincipal); err != nil {
		return fmt.Errorf("%w: %v", calculations.ErrInvalidPrincipal, err)
	}
	return nil
}

// CheckAge проверяет возраст вкладчика
func CheckAge(cfg *config.Config, age int) error {
	if err := ValidateIntRange("age", age, 0, cfg.MaxAge); err != nil {
		return fmt.Errorf("%w: %v", calculations.ErrInvalidAge, err)
	}
	return nil
}

// CheckProductTenor checks that productID exists and offers tenorMonths.
// Collaborators call it after every product switch, before calculating.
func CheckProductTenor(cat *catalog.Catalog, productID string, tenorMonths int) (catalog.Product, error) {
	p, ok := cat.Lookup(productID)
	if !ok {
		return catalog.Product{}, fmt.Errorf("%w: product_id %q", calculations.ErrUnknownProduct, productID)
	}
	if !p.AllowsTenor(tenorMonths) {
		return catalog.Product{}, fmt.Errorf("%w: tenor_months %d, доступно %v", calculations.ErrTenorNotOffered, tenorMonths, p.Tenors)
	}
	return p, nil
}

// ResetTenor returns tenorMonths when p offers it, otherwise p's shortest tenor.
func ResetTenor(p catalog.Product, tenorMonths int) int {
	if p.AllowsTenor(tenorMonths) {
		return tenorMonths
	}
	shortest := p.Tenors[0]
	for _, t := range p.Tenors[1:] {
		if t < shortest {
			shortest = t
		}
	}
	return shortest
}

// CheckConvention разбирает схему начисления; пустое значение означает simple
func CheckConvention(value string) (calculations.Convention, error) {
	if strings.TrimSpace(value) == "" {
		return calculations.Simple, nil
	}
	return calculations.ParseConvention(value)
}
