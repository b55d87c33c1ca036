package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"launchquote/internal/domain/pricing"
	"launchquote/internal/quotemail"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A5B4FC")).Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Width(22)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4C1D95")).Padding(1, 2)
)

// RenderHeading renders a step title with its optional message.
func RenderHeading(title, message string) string {
	if message == "" {
		return titleStyle.Render(title)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), messageStyle.Render(message))
}

// RenderSummary renders the package as a boxed table.
func RenderSummary(pkg *pricing.FinalPackage) string {
	rows := []string{row("Tier", pkg.Tier.Name)}
	if pkg.QuoteBased {
		rows = append(rows, row("Pricing", "Custom quote after consultation"))
	} else {
		rows = append(rows, row(quotemail.BaseFeeLabel(pkg), quotemail.Peso(pkg.BaseFee)))
		if pkg.RushFee > 0 {
			rows = append(rows, row("Rush Delivery", quotemail.Peso(pkg.RushFee)))
		}
		if pkg.AddOnsTotal > 0 {
			rows = append(rows, row("Add-ons", quotemail.Peso(pkg.AddOnsTotal)))
		}
		rows = append(rows,
			row("Total Due", quotemail.Peso(pkg.TotalCost)),
			row("Monthly Fee", quotemail.Peso(pkg.MonthlyFee)+"/month"),
			row("Estimated Delivery", pkg.DeliveryTime),
		)
	}
	rows = append(rows, row("Referral Code", pkg.ReferralCode))

	if len(pkg.AddOns) > 0 {
		labels := make([]string, 0, len(pkg.AddOns))
		for _, a := range pkg.AddOns {
			labels = append(labels, "✓ "+a.Label)
		}
		rows = append(rows, "", messageStyle.Render("Selected Add-ons:"), strings.Join(labels, "\n"))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
