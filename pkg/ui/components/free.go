package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// FreeItemRow is an item given away by one store and bought by another.
type FreeItemRow struct {
	Item      string
	FromStore string
	ToStore   string
	SellPrice decimal.Decimal
	Quantity  int64
	Profit    decimal.Decimal
}

// FreeItemsComponent renders the free-items list.
type FreeItemsComponent struct {
	rows    []FreeItemRow
	visible int
	offset  int
}

// NewFreeItemsComponent creates a list showing visible rows at a time.
func NewFreeItemsComponent(visible int) *FreeItemsComponent {
	return &FreeItemsComponent{visible: visible}
}

// Set replaces the rows.
func (f *FreeItemsComponent) Set(rows []FreeItemRow) {
	f.rows = rows
	f.offset = clampOffset(f.offset, len(rows), f.visible)
}

// Len returns the number of rows.
func (f *FreeItemsComponent) Len() int {
	return len(f.rows)
}

// ScrollUp moves the window one row up.
func (f *FreeItemsComponent) ScrollUp() {
	if f.offset > 0 {
		f.offset--
	}
}

// ScrollDown moves the window one row down.
func (f *FreeItemsComponent) ScrollDown() {
	f.offset = clampOffset(f.offset+1, len(f.rows), f.visible)
}

// View renders the free-items component.
func (f *FreeItemsComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	goldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("FREE ITEMS (%d)", len(f.rows))))
	sb.WriteString("\n")

	if len(f.rows) == 0 {
		sb.WriteString(mutedStyle.Render("Nothing given away right now."))
		return sb.String()
	}

	for _, row := range window(f.rows, f.offset, f.visible) {
		sb.WriteString(fmt.Sprintf("🎁 %-20s %s → %s @ $%s x%d ",
			truncate(row.Item, 20),
			truncate(row.FromStore, 16),
			truncate(row.ToStore, 16),
			row.SellPrice.StringFixed(2),
			row.Quantity,
		))
		sb.WriteString(goldStyle.Render("$" + row.Profit.StringFixed(2)))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
