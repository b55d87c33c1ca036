package quotemail

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"launchquote/internal/domain/pricing"
)

const checkMark = "✓ "

var (
	listPolicyOnce sync.Once
	listPolicy     *bluemonday.Policy
)

// FeatureListHTML lists the tier's features followed by the selected add-ons.
func FeatureListHTML(pkg *pricing.FinalPackage) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, f := range pkg.Tier.Features {
		b.WriteString("<li>" + checkMark + html.EscapeString(f) + "</li>")
	}
	b.WriteString("</ul>")

	if len(pkg.AddOns) > 0 {
		b.WriteString("<br/><p><b>Selected Add-ons:</b></p><ul>")
		for _, a := range pkg.AddOns {
			b.WriteString("<li>" + checkMark + html.EscapeString(a.Label) + "</li>")
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

// FeatureListText is the plain-text counterpart of FeatureListHTML.
func FeatureListText(pkg *pricing.FinalPackage) string {
	var b strings.Builder
	for _, f := range pkg.Tier.Features {
		b.WriteString("- " + f + "\n")
	}
	if len(pkg.AddOns) > 0 {
		b.WriteString("\nSelected Add-ons:\n")
		for _, a := range pkg.AddOns {
			b.WriteString("- " + a.Label + "\n")
		}
	}
	return b.String()
}

// sanitizeList keeps only list and emphasis markup.
func sanitizeList(raw string) string {
	listPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("ul", "ol", "li", "p", "b", "strong", "em", "i", "br")
		listPolicy = policy
	})
	return strings.TrimSpace(listPolicy.Sanitize(raw))
}
