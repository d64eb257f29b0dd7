package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SourceStatus is the outcome of the last market fetch.
type SourceStatus struct {
	Name      string
	State     string // "api", "fallback", "memory" or "failed"
	Latency   time.Duration
	FetchedAt time.Time
}

// StatusComponent renders where market data came from.
type StatusComponent struct {
	sources []SourceStatus
}

// NewStatusComponent creates a new status component.
func NewStatusComponent() *StatusComponent {
	return &StatusComponent{
		sources: make([]SourceStatus, 0),
	}
}

// Update updates a source's status.
func (s *StatusComponent) Update(status SourceStatus) {
	for i, src := range s.sources {
		if src.Name == status.Name {
			s.sources[i] = status
			return
		}
	}
	s.sources = append(s.sources, status)
}

// View renders the status component as one line per source.
func (s *StatusComponent) View() string {
	if len(s.sources) == 0 {
		return "No market data yet"
	}

	parts := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		var style lipgloss.Style
		var icon, label string
		switch src.State {
		case "api", "memory":
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
			icon, label = "●", "live"
		case "fallback":
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
			icon, label = "◐", "saved snapshot"
		default:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
			icon, label = "○", "unavailable"
		}

		line := style.Render(fmt.Sprintf("%s %s (%s)", icon, src.Name, label))
		if src.Latency > 0 {
			line += fmt.Sprintf(" %s", src.Latency.Round(time.Millisecond))
		}
		if !src.FetchedAt.IsZero() {
			line += " at " + src.FetchedAt.Format("15:04:05")
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "  │  ")
}
