package quotemail

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"launchquote/internal/domain/pricing"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var quoteTemplate = template.Must(template.ParseFS(templateFS, "templates/quote.html.tmpl"))

const shareText = "Get a transparent, instant quote for your website with WeblitzStack!"

var ErrMissingPackage = errors.New("quotemail: package is required")

// Params are the inputs of one rendered email.
type Params struct {
	Heading          string
	Name             string
	Package          *pricing.FinalPackage
	ReferralCode     string
	ConsultationTime *time.Time
	// FeatureListHTML is list markup; it is sanitized before embedding.
	FeatureListHTML string
	FeatureListText string
	SiteURL         string
}

type htmlView struct {
	Heading          string
	Name             string
	BookingTime      string
	TierName         string
	QuoteBased       bool
	BaseFeeLabel     string
	BaseFee          string
	RushFee          string
	AddOnsTotal      string
	TotalCost        string
	MonthlyFee       string
	DeliveryTime     string
	Features         template.HTML
	ReferralCode     string
	FacebookShareURL string
	TwitterShareURL  string
}

// RenderHTML renders the quote email document.
func RenderHTML(p Params) (string, error) {
	if p.Package == nil {
		return "", ErrMissingPackage
	}
	pkg := p.Package

	view := htmlView{
		Heading:      p.Heading,
		Name:         p.Name,
		TierName:     pkg.Tier.Name,
		QuoteBased:   pkg.QuoteBased,
		BaseFeeLabel: BaseFeeLabel(pkg),
		BaseFee:      Peso(pkg.BaseFee),
		TotalCost:    Peso(pkg.TotalCost),
		MonthlyFee:   Peso(pkg.MonthlyFee),
		DeliveryTime: pkg.DeliveryTime,
		// sanitized by bluemonday
		Features:     template.HTML(sanitizeList(p.FeatureListHTML)),
		ReferralCode: p.ReferralCode,
	}
	if p.ConsultationTime != nil {
		view.BookingTime = FormatBooking(*p.ConsultationTime)
	}
	if pkg.RushFee > 0 {
		view.RushFee = Peso(pkg.RushFee)
	}
	if pkg.AddOnsTotal > 0 {
		view.AddOnsTotal = Peso(pkg.AddOnsTotal)
	}
	if p.SiteURL != "" {
		view.FacebookShareURL = "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(p.SiteURL)
		view.TwitterShareURL = "https://twitter.com/intent/tweet?url=" + url.QueryEscape(p.SiteURL) + "&text=" + url.QueryEscape(shareText)
	}

	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render quote email: %w", err)
	}
	return buf.String(), nil
}

// RenderText renders the plain-text alternative of RenderHTML.
func RenderText(p Params) (string, error) {
	if p.Package == nil {
		return "", ErrMissingPackage
	}
	pkg := p.Package

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nHi %s,\n\n", p.Heading, p.Name)

	if p.ConsultationTime != nil {
		fmt.Fprintf(&b, "Booking Schedule: %s (PHT)\n\n", FormatBooking(*p.ConsultationTime))
	}

	b.WriteString("--- Quote Summary ---\n")
	fmt.Fprintf(&b, "Tier: %s\n", pkg.Tier.Name)
	if pkg.QuoteBased {
		b.WriteString("Pricing: Custom quote after consultation\n\n")
	} else {
		fmt.Fprintf(&b, "%s: %s\n", BaseFeeLabel(pkg), Peso(pkg.BaseFee))
		if pkg.RushFee > 0 {
			fmt.Fprintf(&b, "Rush Delivery: %s\n", Peso(pkg.RushFee))
		}
		if pkg.AddOnsTotal > 0 {
			fmt.Fprintf(&b, "Add-ons: %s\n", Peso(pkg.AddOnsTotal))
		}
		fmt.Fprintf(&b, "Total Due: %s\n", Peso(pkg.TotalCost))
		fmt.Fprintf(&b, "Monthly Fee: %s/month\n", Peso(pkg.MonthlyFee))
		fmt.Fprintf(&b, "Estimated Delivery: %s\n\n", pkg.DeliveryTime)
	}

	b.WriteString("--- Included Features & Add-ons ---\n")
	b.WriteString(p.FeatureListText)

	if p.ReferralCode != "" {
		b.WriteString("\n\n--- Referral & Share ---\n")
		fmt.Fprintf(&b, "Your Referral Code: %s\n", p.ReferralCode)
		if p.SiteURL != "" {
			fmt.Fprintf(&b, "Share this link with friends: %s\n", p.SiteURL)
		}
	}

	b.WriteString("\nThanks,\nThe WeblitzStack Team")
	return b.String(), nil
}
