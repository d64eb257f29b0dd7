package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// CraftingRow is one profitable recipe variant.
type CraftingRow struct {
	Recipe      string
	Table       string
	Profession  string
	UnitProfit  decimal.Decimal
	Batches     int64
	TotalProfit decimal.Decimal
	LimitedBy   string
}

// CraftingComponent renders the crafting ranking.
type CraftingComponent struct {
	rows    []CraftingRow
	visible int
	offset  int
	err     string
}

// NewCraftingComponent creates a ranking showing visible rows at a time.
func NewCraftingComponent(visible int) *CraftingComponent {
	return &CraftingComponent{visible: visible}
}

// Set replaces the rows and clears any previous failure.
func (c *CraftingComponent) Set(rows []CraftingRow) {
	c.rows = rows
	c.err = ""
	c.offset = clampOffset(c.offset, len(rows), c.visible)
}

// SetError shows why the ranking could not be computed. Rows are kept.
func (c *CraftingComponent) SetError(msg string) {
	c.err = msg
}

// Len returns the number of rows.
func (c *CraftingComponent) Len() int {
	return len(c.rows)
}

// ScrollUp moves the window one row up.
func (c *CraftingComponent) ScrollUp() {
	if c.offset > 0 {
		c.offset--
	}
}

// ScrollDown moves the window one row down.
func (c *CraftingComponent) ScrollDown() {
	c.offset = clampOffset(c.offset+1, len(c.rows), c.visible)
}

// View renders the crafting component.
func (c *CraftingComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	profitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("CRAFTING (%d)", len(c.rows))))
	sb.WriteString("\n")

	if c.err != "" {
		sb.WriteString(errorStyle.Render("✗ " + c.err))
		sb.WriteString("\n")
	}
	if len(c.rows) == 0 {
		sb.WriteString(mutedStyle.Render("No profitable recipes yet..."))
		return sb.String()
	}

	for i, row := range window(c.rows, c.offset, c.visible) {
		sb.WriteString(fmt.Sprintf("%2d. %-24s %-18s $%s/batch x%d = ",
			c.offset+i+1,
			truncate(row.Recipe, 24),
			truncate(row.Table, 18),
			row.UnitProfit.StringFixed(2),
			row.Batches,
		))
		sb.WriteString(profitStyle.Render("$" + row.TotalProfit.StringFixed(2)))
		if row.LimitedBy != "" {
			sb.WriteString(mutedStyle.Render(" (" + row.LimitedBy + ")"))
		}
		if row.Profession != "" {
			sb.WriteString(mutedStyle.Render(" " + row.Profession))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
