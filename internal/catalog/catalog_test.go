package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 4, c.Len())

	tests := []struct {
		id       string
		rate     float64
		floating bool
		tenors   []int
	}{
		{PremiumFixedID, 4.5, false, []int{6, 12, 24, 36, 60}},
		{StandardFixedID, 3.8, false, []int{3, 6, 12, 18, 24}},
		{DynamicFloatingID, 4.2, true, []int{6, 12, 24, 36}},
		{MarketLinkedFloatingID, 4.8, true, []int{12, 24, 36, 48}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, ok := c.Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.rate, p.BaseRatePercent)
			assert.Equal(t, tt.floating, p.Floating)
			assert.Equal(t, tt.tenors, p.Tenors)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Default().Lookup("gold-savings")
	assert.False(t, ok)
}

func TestLookupReturnsCopy(t *testing.T) {
	c := Default()
	p, _ := c.Lookup(PremiumFixedID)
	p.Tenors[0] = 999
	p.BaseRatePercent = 99

	again, _ := c.Lookup(PremiumFixedID)
	assert.Equal(t, 6, again.Tenors[0])
	assert.Equal(t, 4.5, again.BaseRatePercent)

	list := c.Products()
	list[1].Tenors[0] = 999
	again, _ = c.Lookup(StandardFixedID)
	assert.Equal(t, 3, again.Tenors[0])
}

func TestNewDoesNotAliasInput(t *testing.T) {
	products := DefaultProducts()
	c, err := New(products)
	require.NoError(t, err)

	products[0].Tenors[0] = 1
	p, _ := c.Lookup(PremiumFixedID)
	assert.Equal(t, 6, p.Tenors[0])
}

func TestAllowsTenor(t *testing.T) {
	p, _ := Default().Lookup(StandardFixedID)
	assert.True(t, p.AllowsTenor(18))
	assert.False(t, p.AllowsTenor(36))
	assert.False(t, p.AllowsTenor(0))
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
	}{
		{"empty", nil},
		{"missing id", []Product{{Name: "x", BaseRatePercent: 1, Tenors: []int{12}}}},
		{"negative rate", []Product{{ID: "a", BaseRatePercent: -1, Tenors: []int{12}}}},
		{"no tenors", []Product{{ID: "a", BaseRatePercent: 1}}},
		{"zero tenor", []Product{{ID: "a", BaseRatePercent: 1, Tenors: []int{0}}}},
		{"duplicate", []Product{
			{ID: "a", BaseRatePercent: 1, Tenors: []int{12}},
			{ID: "a", BaseRatePercent: 2, Tenors: []int{24}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `products:
  - id: kids-saver
    name: Kids Saver
    base_rate_percent: 5.1
    floating: false
    tenors: [12, 24]
  - id: flex
    name: Flex
    base_rate_percent: 3.0
    floating: true
    tenors: [3]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	p, ok := c.Lookup("kids-saver")
	require.True(t, ok)
	assert.Equal(t, "Kids Saver", p.Name)
	assert.InDelta(t, 5.1, p.BaseRatePercent, 1e-12)
	assert.Equal(t, []int{12, 24}, p.Tenors)

	flex, _ := c.Lookup("flex")
	assert.True(t, flex.Floating)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("products: [::"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
}
