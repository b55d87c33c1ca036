package pricing

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Tier is a named service package with a fixed feature set and pricing.
// Amounts are whole pesos.
type Tier struct {
	ID               string   `yaml:"id" json:"id"`
	Name             string   `yaml:"name" json:"name"`
	Description      string   `yaml:"description" json:"description"`
	SetupFee         int64    `yaml:"setupFee" json:"setupFee"`
	MonthlyFee       int64    `yaml:"monthlyFee" json:"monthlyFee"`
	AnnualFee        int64    `yaml:"annualFee" json:"annualFee"`
	RushFee          int64    `yaml:"rushFee" json:"rushFee"`
	DeliveryTime     string   `yaml:"deliveryTime" json:"deliveryTime"`
	RushDeliveryTime string   `yaml:"rushDeliveryTime" json:"rushDeliveryTime"`
	QuoteBased       bool     `yaml:"quoteBased" json:"quoteBased"`
	Features         []string `yaml:"features" json:"features"`
}

// AddOn is an optional paid feature addable to any tier.
type AddOn struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Price       int64  `yaml:"price" json:"price"`
	Description string `yaml:"description" json:"description"`
}

// Catalog is the static, read-only pricing table.
type Catalog struct {
	Tiers  []Tier  `yaml:"tiers" json:"tiers"`
	AddOns []AddOn `yaml:"addOns" json:"addOns"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("pricing: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog from path, or returns the embedded one when
// path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are unique and amounts are non-negative.
func (c *Catalog) Validate() error {
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidCatalog)
	}

	seen := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		if t.ID == "" {
			return fmt.Errorf("%w: tier without id", ErrInvalidCatalog)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate tier %q", ErrInvalidCatalog, t.ID)
		}
		seen[t.ID] = true
		if t.SetupFee < 0 || t.MonthlyFee < 0 || t.AnnualFee < 0 || t.RushFee < 0 {
			return fmt.Errorf("%w: negative fee on tier %q", ErrInvalidCatalog, t.ID)
		}
	}

	seen = make(map[string]bool, len(c.AddOns))
	for _, a := range c.AddOns {
		if a.ID == "" {
			return fmt.Errorf("%w: add-on without id", ErrInvalidCatalog)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate add-on %q", ErrInvalidCatalog, a.ID)
		}
		seen[a.ID] = true
		if a.Price < 0 {
			return fmt.Errorf("%w: negative price on add-on %q", ErrInvalidCatalog, a.ID)
		}
	}
	return nil
}

// Tier looks up a tier by id.
func (c *Catalog) Tier(id string) (Tier, bool) {
	for _, t := range c.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// AddOn looks up an add-on by id.
func (c *Catalog) AddOn(id string) (AddOn, bool) {
	for _, a := range c.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

// DefaultTierID is the tier preselected when a wizard starts.
func (c *Catalog) DefaultTierID() string {
	return c.Tiers[0].ID
}

// ResolveAddOns returns the known add-ons among ids, in catalog order.
// Unknown and repeated ids are dropped.
func (c *Catalog) ResolveAddOns(ids []string) []AddOn {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]AddOn, 0, len(ids))
	for _, a := range c.AddOns {
		if want[a.ID] {
			out = append(out, a)
		}
	}
	return out
}
