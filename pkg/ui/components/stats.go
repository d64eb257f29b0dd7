package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Stats holds statistics for display.
type Stats struct {
	Stores    int
	Items     int
	Pairs     int
	BestPairs int
	FreeItems int
	Crafting  int
	TopProfit decimal.Decimal
	Refreshes int64
	Errors    int64
}

// StatsComponent renders statistics.
type StatsComponent struct {
	stats Stats
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent() *StatsComponent {
	return &StatsComponent{}
}

// Update updates the statistics.
func (s *StatsComponent) Update(stats Stats) {
	s.stats = stats
}

// Stats returns the current statistics.
func (s *StatsComponent) Stats() Stats {
	return s.stats
}

// View renders the stats component.
func (s *StatsComponent) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	errorsDisplay := valueStyle.Render(fmt.Sprintf("%d", s.stats.Errors))
	if s.stats.Errors > 0 {
		errorsDisplay = errorStyle.Render(fmt.Sprintf("%d", s.stats.Errors))
	}

	return style.Render("STATS") + "\n" +
		fmt.Sprintf("Stores: %s  │  Items: %s  │  Pairs: %s  │  Best: %s\n",
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Stores)),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Items)),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Pairs)),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.BestPairs)),
		) +
		fmt.Sprintf("Free: %s  │  Recipes: %s  │  Top: %s  │  Refreshes: %s  │  Errors: %s",
			valueStyle.Render(fmt.Sprintf("%d", s.stats.FreeItems)),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Crafting)),
			valueStyle.Render("$"+s.stats.TopProfit.StringFixed(2)),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Refreshes)),
			errorsDisplay,
		)
}
