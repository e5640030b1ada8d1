package catalog

// Идентификаторы продуктов по умолчанию
const (
	PremiumFixedID         = "premium-fixed"
	StandardFixedID        = "standard-fixed"
	DynamicFloatingID      = "dynamic-floating"
	MarketLinkedFloatingID = "market-linked-floating"
)

// DefaultProducts returns the built-in product list.
func DefaultProducts() []Product {
	return []Product{
		{ID: PremiumFixedID, Name: "Premium Fixed", BaseRatePercent: 4.5, Floating: false, Tenors: []int{6, 12, 24, 36, 60}},
		{ID: StandardFixedID, Name: "Standard Fixed", BaseRatePercent: 3.8, Floating: false, Tenors: []int{3, 6, 12, 18, 24}},
		{ID: DynamicFloatingID, Name: "Dynamic Floating", BaseRatePercent: 4.2, Floating: true, Tenors: []int{6, 12, 24, 36}},
		{ID: MarketLinkedFloatingID, Name: "Market Linked Floating", BaseRatePercent: 4.8, Floating: true, Tenors: []int{12, 24, 36, 48}},
	}
}

// Default строит каталог из встроенных продуктов
func Default() *Catalog {
	c, err := New(DefaultProducts())
	if err != nil {
		panic(err)
	}
	return c
}

// Load returns the catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
