package pricing

import (
	"strings"
)

// BillingCycle selects which base fee applies.
type BillingCycle string

const (
	// BillingMonthly charges the setup fee now plus the monthly subscription.
	BillingMonthly BillingCycle = "monthly"
	// BillingAnnual charges the annual fee once, covering the year.
	BillingAnnual BillingCycle = "annual"
)

const (
	referralSuffix      = "5OFF"
	referralPlaceholder = "YOURCODE"
)

// ParseBillingCycle normalises s; empty input defaults to monthly.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(strings.ToLower(strings.TrimSpace(s))) {
	case "", BillingMonthly:
		return BillingMonthly, nil
	case BillingAnnual:
		return BillingAnnual, nil
	default:
		return "", ErrInvalidBillingCycle
	}
}

// Input is the pricing-relevant slice of a visitor's form.
type Input struct {
	FullName     string
	TierID       string
	AddOnIDs     []string
	BillingCycle BillingCycle
	IsRush       bool
}

// FinalPackage is the derived quote for an Input.
type FinalPackage struct {
	Tier         Tier         `json:"tier"`
	AddOns       []AddOn      `json:"addOns"`
	BaseFee      int64        `json:"baseFee"`
	AddOnsTotal  int64        `json:"addOnsTotal"`
	RushFee      int64        `json:"rushFee"`
	TotalCost    int64        `json:"totalCost"`
	MonthlyFee   int64        `json:"monthlyFee"`
	BillingCycle BillingCycle `json:"billingCycle"`
	IsRush       bool         `json:"isRush"`
	DeliveryTime string       `json:"deliveryTime"`
	QuoteBased   bool         `json:"quoteBased"`
	ReferralCode string       `json:"referralCode"`
}

// AddOnIDs returns the ids of the resolved add-ons.
func (p *FinalPackage) AddOnIDs() []string {
	ids := make([]string, len(p.AddOns))
	for i, a := range p.AddOns {
		ids[i] = a.ID
	}
	return ids
}

// Calculator prices inputs against a catalog.
type Calculator struct {
	catalog *Catalog
}

func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Catalog returns the catalog the calculator prices against.
func (c *Calculator) Catalog() *Catalog {
	return c.catalog
}

// Calculate computes base + add-ons + rush. Add-on ids missing from the
// catalog contribute nothing.
func (c *Calculator) Calculate(in Input) (*FinalPackage, error) {
	tier, ok := c.catalog.Tier(in.TierID)
	if !ok {
		return nil, ErrUnknownTier
	}

	cycle, err := ParseBillingCycle(string(in.BillingCycle))
	if err != nil {
		return nil, err
	}

	pkg := &FinalPackage{
		Tier:         tier,
		AddOns:       c.catalog.ResolveAddOns(in.AddOnIDs),
		BillingCycle: cycle,
		IsRush:       in.IsRush,
		DeliveryTime: tier.DeliveryTime,
		QuoteBased:   tier.QuoteBased,
		ReferralCode: ReferralCode(in.FullName),
	}

	switch cycle {
	case BillingAnnual:
		pkg.BaseFee = tier.AnnualFee
	default:
		pkg.BaseFee = tier.SetupFee
		pkg.MonthlyFee = tier.MonthlyFee
	}

	for _, a := range pkg.AddOns {
		pkg.AddOnsTotal += a.Price
	}

	if in.IsRush {
		pkg.RushFee = tier.RushFee
		pkg.DeliveryTime = tier.RushDeliveryTime
	}

	pkg.TotalCost = pkg.BaseFee + pkg.AddOnsTotal + pkg.RushFee
	return pkg, nil
}

// ReferralCode strips all whitespace from fullName, uppercases it and appends
// the fixed suffix. A blank name yields the placeholder code.
func ReferralCode(fullName string) string {
	compact := strings.Join(strings.Fields(fullName), "")
	if compact == "" {
		compact = referralPlaceholder
	}
	return strings.ToUpper(compact) + referralSuffix
}
