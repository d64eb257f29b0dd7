package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorAccent = lipgloss.Color("#16A34A") // leaf green
	ColorProfit = lipgloss.Color("#10B981")
	ColorLoss   = lipgloss.Color("#EF4444")
	ColorWarn   = lipgloss.Color("#F59E0B")
	ColorMuted  = lipgloss.Color("#6B7280")
	ColorBorder = lipgloss.Color("#374151")
)

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// FocusMarker prefixes the panel that receives scroll keys.
	FocusMarker = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorAccent).
			Padding(0, 2)

	// Startup step states.
	StepDone    = lipgloss.NewStyle().Foreground(ColorProfit).Bold(true)
	StepRunning = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)
	StepFailed  = lipgloss.NewStyle().Foreground(ColorLoss).Bold(true)

	ProfitText = lipgloss.NewStyle().Foreground(ColorProfit)
	ErrorText  = lipgloss.NewStyle().Foreground(ColorLoss)
	MutedText  = lipgloss.NewStyle().Foreground(ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)
)
