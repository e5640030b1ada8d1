package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Product представляет депозитный продукт из каталога
type Product struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	BaseRatePercent float64 `json:"base_rate_percent" yaml:"base_rate_percent"`
	Floating        bool    `json:"floating" yaml:"floating"`
	Tenors          []int   `json:"tenors" yaml:"tenors"`
}

// AllowsTenor сообщает, предлагается ли срок в месяцах для продукта
func (p Product) AllowsTenor(months int) bool {
	return slices.Contains(p.Tenors, months)
}

func (p Product) clone() Product {
	p.Tenors = slices.Clone(p.Tenors)
	return p
}

// Catalog is the read-only product list. Lookups hand out copies so a
// caller cannot change what another caller sees.
type Catalog struct {
	products []Product
	index    map[string]int
}

// New строит каталог из списка продуктов
func New(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, errors.New("catalog: no products")
	}

	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("catalog: product %d: %w", i, err)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p.clone())
	}
	return c, nil
}

func validateProduct(p Product) error {
	if p.ID == "" {
		return errors.New("empty id")
	}
	if p.BaseRatePercent < 0 {
		return fmt.Errorf("%s: negative base rate %.2f", p.ID, p.BaseRatePercent)
	}
	if len(p.Tenors) == 0 {
		return fmt.Errorf("%s: no tenors", p.ID)
	}
	for _, t := range p.Tenors {
		if t <= 0 {
			return fmt.Errorf("%s: tenor must be positive, got %d", p.ID, t)
		}
	}
	return nil
}

// Lookup возвращает копию продукта по идентификатору
func (c *Catalog) Lookup(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i].clone(), true
}

// Products returns the catalog in declaration order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

// Len возвращает количество продуктов
func (c *Catalog) Len() int {
	return len(c.products)
}

type fileFormat struct {
	Products []Product `yaml:"products"`
}

// LoadFile читает каталог из YAML-файла
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(f.Products)
}
