// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// OpportunityRow is one buy-low, sell-high trade in the list.
type OpportunityRow struct {
	Item          string
	BuyStore      string
	BuyPrice      decimal.Decimal
	SellStore     string
	SellPrice     decimal.Decimal
	Quantity      int64
	Profit        decimal.Decimal
	LiquidityRisk bool
}

// OpportunitiesComponent renders a scrollable trade table.
type OpportunitiesComponent struct {
	title   string
	rows    []OpportunityRow
	visible int
	offset  int
}

// NewOpportunitiesComponent creates a table showing visible rows at a time.
func NewOpportunitiesComponent(title string, visible int) *OpportunitiesComponent {
	return &OpportunitiesComponent{
		title:   title,
		rows:    make([]OpportunityRow, 0),
		visible: visible,
	}
}

// Set replaces the rows, keeping the scroll position when it still fits.
func (o *OpportunitiesComponent) Set(rows []OpportunityRow) {
	o.rows = rows
	o.offset = clampOffset(o.offset, len(rows), o.visible)
}

// Len returns the number of rows.
func (o *OpportunitiesComponent) Len() int {
	return len(o.rows)
}

// ScrollUp moves the window one row up.
func (o *OpportunitiesComponent) ScrollUp() {
	if o.offset > 0 {
		o.offset--
	}
}

// ScrollDown moves the window one row down.
func (o *OpportunitiesComponent) ScrollDown() {
	o.offset = clampOffset(o.offset+1, len(o.rows), o.visible)
}

// View renders the opportunities component.
func (o *OpportunitiesComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	profitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	riskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", o.title, len(o.rows))))
	sb.WriteString("\n")

	if len(o.rows) == 0 {
		sb.WriteString(mutedStyle.Render("No opportunities found yet..."))
		return sb.String()
	}

	sb.WriteString("┌──────────────────────┬──────────────────────────┬──────────────────────────┬───────┬───────────┐\n")
	sb.WriteString("│ Item                 │ Buy                      │ Sell                     │  Qty  │  Profit   │\n")
	sb.WriteString("├──────────────────────┼──────────────────────────┼──────────────────────────┼───────┼───────────┤\n")

	for _, row := range window(o.rows, o.offset, o.visible) {
		profit := profitStyle.Render(fmt.Sprintf("%10s", "$"+row.Profit.StringFixed(2)))
		flag := " "
		if row.LiquidityRisk {
			flag = riskStyle.Render("!")
		}
		sb.WriteString(fmt.Sprintf("│ %-20s │ %-24s │ %-24s │%6d │%s%s│\n",
			truncate(row.Item, 20),
			truncate(row.BuyStore, 15)+" $"+row.BuyPrice.StringFixed(2),
			truncate(row.SellStore, 15)+" $"+row.SellPrice.StringFixed(2),
			row.Quantity,
			profit,
			flag,
		))
	}

	sb.WriteString("└──────────────────────┴──────────────────────────┴──────────────────────────┴───────┴───────────┘")
	if more := len(o.rows) - o.offset - o.visible; more > 0 {
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  ↓ %d more", more)))
	}
	return sb.String()
}

// window returns the visible slice starting at offset.
func window[T any](rows []T, offset, visible int) []T {
	if offset >= len(rows) {
		return nil
	}
	end := offset + visible
	if visible <= 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// clampOffset keeps the scroll offset inside [0, total-visible].
func clampOffset(offset, total, visible int) int {
	maxOffset := total - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	if offset < 0 {
		return 0
	}
	return offset
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
