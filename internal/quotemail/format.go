package quotemail

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"launchquote/internal/domain/pricing"
)

// Manila observes no DST, so a fixed offset is exact.
var displayZone = time.FixedZone("PHT", 8*60*60)

const bookingLayout = "January 2, 2006 at 3:04 PM"

// Peso formats a whole-peso amount as ₱12,345.
func Peso(amount int64) string {
	return "₱" + humanize.Comma(amount)
}

// FormatBooking renders t in Philippine time regardless of t's location.
func FormatBooking(t time.Time) string {
	return t.In(displayZone).Format(bookingLayout)
}

// BaseFeeLabel names the base fee line for the package's billing cycle.
func BaseFeeLabel(pkg *pricing.FinalPackage) string {
	if pkg.BillingCycle == pricing.BillingAnnual {
		return "Annual Fee (one-time)"
	}
	return "One-Time Setup Fee"
}

// SummaryText is the short plain-text quote used by the quick quote email.
func SummaryText(pkg *pricing.FinalPackage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tier: %s\n", pkg.Tier.Name)
	if pkg.QuoteBased {
		b.WriteString("Pricing: Custom quote after consultation\n\n")
	} else {
		fmt.Fprintf(&b, "%s: %s\n", BaseFeeLabel(pkg), Peso(pkg.BaseFee))
		if pkg.RushFee > 0 {
			fmt.Fprintf(&b, "Rush Delivery: %s\n", Peso(pkg.RushFee))
		}
		fmt.Fprintf(&b, "Total Due: %s\n", Peso(pkg.TotalCost))
		fmt.Fprintf(&b, "Monthly Fee: %s/month\n\n", Peso(pkg.MonthlyFee))
	}

	if len(pkg.AddOns) > 0 {
		b.WriteString("Selected Add-ons:\n")
		for _, a := range pkg.AddOns {
			fmt.Fprintf(&b, "- %s\n", a.Label)
		}
	}
	return b.String()
}
