// Package ui provides the Bubble Tea dashboard for the market bot.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/eco-market-bot/pkg/ui/components"
)

// StartupStep represents a step in the startup process.
type StartupStep struct {
	Name   string
	Status string // "pending", "connecting", "connected", "done", "failed"
}

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"   // Initial welcome screen
	PhaseStartup   Phase = "startup"   // Loading market data
	PhaseDashboard Phase = "dashboard" // Main dashboard
)

// Panel is the table that receives scroll keys.
type Panel int

const (
	PanelPairs Panel = iota
	PanelFree
	PanelCrafting
	panelCount
)

func (p Panel) String() string {
	switch p {
	case PanelFree:
		return "free items"
	case PanelCrafting:
		return "crafting"
	default:
		return "best pairs"
	}
}

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

const (
	maxErrors   = 3
	maxLogs     = 5
	maxActivity = 6
)

var startupOrder = []string{"config", "market", "recipes"}

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Components
	pairs    *components.OpportunitiesComponent
	free     *components.FreeItemsComponent
	crafting *components.CraftingComponent
	stats    *components.StatsComponent
	status   *components.StatusComponent
	keys     KeyMap
	help     help.Model

	// Phase state
	phase        Phase
	welcomeStart time.Time

	// State
	ready      bool
	quitting   bool
	paused     bool
	refreshing bool
	focus      Panel
	width      int
	height     int
	lastUpdate time.Time
	refreshes  int64
	errorCount int64
	errors     []ErrorEntry // Persistent error panel (last 3)
	logs       []string

	// Startup state
	startupComplete bool
	startupSteps    map[string]*StartupStep
	startupTime     time.Time

	activityFeed []string
}

// New creates a new TUI model.
func New() Model {
	now := time.Now()
	return Model{
		pairs:        components.NewOpportunitiesComponent("BEST PAIRS", 10),
		free:         components.NewFreeItemsComponent(5),
		crafting:     components.NewCraftingComponent(8),
		stats:        components.NewStatsComponent(),
		status:       components.NewStatusComponent(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		phase:        PhaseWelcome,
		welcomeStart: now,
		logs:         make([]string, 0, maxLogs),
		errors:       make([]ErrorEntry, 0, maxErrors),
		activityFeed: make([]string, 0, maxActivity),
		startupSteps: map[string]*StartupStep{
			"config":  {Name: "Loading configuration", Status: "pending"},
			"market":  {Name: "Fetching market data", Status: "pending"},
			"recipes": {Name: "Loading recipes", Status: "pending"},
		},
		startupTime: now,
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// leaveWelcome starts module loading. Callbacks run in their own goroutine,
// never through Send from inside Update.
func (m *Model) leaveWelcome() {
	m.phase = PhaseStartup
	m.startupTime = time.Now()
	if OnStartModules != nil {
		go OnStartModules()
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.phase == PhaseWelcome {
			m.leaveWelcome()
			return m, tickCmd()
		}
		switch {
		case key.Matches(msg, m.keys.Refresh):
			if !m.refreshing && OnRefresh != nil {
				m.refreshing = true
				go OnRefresh()
			}
		case key.Matches(msg, m.keys.Next):
			m.focus = (m.focus + 1) % panelCount
		case key.Matches(msg, m.keys.Up):
			m.scroll(-1)
		case key.Matches(msg, m.keys.Down):
			m.scroll(1)
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Errors):
			m.errors = make([]ErrorEntry, 0, maxErrors)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case TickMsg:
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m.leaveWelcome()
		}
		return m, tickCmd()

	case RefreshStartedMsg:
		m.refreshing = true

	case DashboardMsg:
		m.refreshing = false
		if m.paused {
			m.activityFeed = addActivity(m.activityFeed, "Refresh skipped (paused)")
			return m, nil
		}
		m.applyDashboard(msg)

	case ErrorMsg:
		m.refreshing = false
		m.addError(msg.Error)

	case LogMsg:
		m.logs = addLog(m.logs, msg.Level, msg.Message)

	case StartupMsg:
		if step, ok := m.startupSteps[msg.Step]; ok {
			step.Status = msg.Status
		}
		if msg.Status == "failed" && msg.Message != "" {
			m.logs = addLog(m.logs, "error", msg.Message)
		}
		if m.allStepsDone() {
			m.startupComplete = true
			m.phase = PhaseDashboard
		}
	}

	return m, nil
}

func (m *Model) applyDashboard(msg DashboardMsg) {
	m.pairs.Set(pairRows(msg.BestPairs))
	m.free.Set(freeRows(msg.FreeItems))
	if msg.CraftingErr != nil {
		m.crafting.SetError(msg.CraftingErr.Error())
		m.addError(msg.CraftingErr)
	} else {
		m.crafting.Set(craftingRows(msg.Crafting))
	}

	m.refreshes++
	m.stats.Update(components.Stats{
		Stores:    msg.Stores,
		Items:     msg.Items,
		Pairs:     msg.PairCount,
		BestPairs: len(msg.BestPairs),
		FreeItems: len(msg.FreeItems),
		Crafting:  m.crafting.Len(),
		TopProfit: topProfit(msg.BestPairs),
		Refreshes: m.refreshes,
		Errors:    m.errorCount,
	})
	m.status.Update(components.SourceStatus{
		Name:      "Eco market",
		State:     msg.Source,
		Latency:   msg.Latency,
		FetchedAt: msg.FetchedAt,
	})

	m.activityFeed = addActivity(m.activityFeed, fmt.Sprintf("Snapshot from %s: %d best pairs, %d free, %d recipes",
		msg.Source, len(msg.BestPairs), len(msg.FreeItems), m.crafting.Len()))
	m.lastUpdate = time.Now()
	m.startupComplete = true
	m.phase = PhaseDashboard
}

func (m *Model) addError(err error) {
	if err == nil {
		return
	}
	m.errorCount++
	m.logs = addLog(m.logs, "error", err.Error())
	m.errors = append(m.errors, ErrorEntry{Message: err.Error(), Timestamp: time.Now()})
	if len(m.errors) > maxErrors {
		m.errors = m.errors[len(m.errors)-maxErrors:]
	}
	s := m.stats.Stats()
	s.Errors = m.errorCount
	m.stats.Update(s)
}

func (m *Model) scroll(delta int) {
	switch m.focus {
	case PanelFree:
		if delta < 0 {
			m.free.ScrollUp()
		} else {
			m.free.ScrollDown()
		}
	case PanelCrafting:
		if delta < 0 {
			m.crafting.ScrollUp()
		} else {
			m.crafting.ScrollDown()
		}
	default:
		if delta < 0 {
			m.pairs.ScrollUp()
		} else {
			m.pairs.ScrollDown()
		}
	}
}

func (m Model) allStepsDone() bool {
	for _, step := range m.startupSteps {
		if step.Status != "connected" && step.Status != "done" {
			return false
		}
	}
	return true
}

// addLog adds a log message and returns the updated slice (keeps last 5).
func addLog(logs []string, level, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	logLine := fmt.Sprintf("[%s] %s: %s", timestamp, level, message)
	logs = append(logs, logLine)
	if len(logs) > maxLogs {
		logs = logs[len(logs)-maxLogs:]
	}
	return logs
}

// addActivity adds an activity message and returns the updated slice (keeps last 6).
func addActivity(feed []string, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %s", timestamp, message)
	feed = append(feed, line)
	if len(feed) > maxActivity {
		feed = feed[len(feed)-maxActivity:]
	}
	return feed
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseStartup:
		return m.renderStartupScreen()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(" 🌿 Eco Market Bot "))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	// Left: trades. Right: crafting, activity and stats.
	var left strings.Builder
	left.WriteString(m.focused(PanelPairs, m.pairs.View()))
	left.WriteString("\n\n")
	left.WriteString(m.focused(PanelFree, m.free.View()))
	leftCol := left.String()

	var right strings.Builder
	right.WriteString(m.focused(PanelCrafting, m.crafting.View()))
	right.WriteString("\n\n")
	right.WriteString(m.renderActivityFeed())
	right.WriteString("\n\n")
	right.WriteString(m.stats.View())
	rightCol := right.String()

	if m.width > 160 {
		l := BoxStyle.Width(m.width*3/5 - 2).Render(leftCol)
		r := BoxStyle.Width(m.width*2/5 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, l, r))
	} else {
		width := m.width - 4
		if width < 0 {
			width = 0
		}
		b.WriteString(BoxStyle.Width(width).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(width).Render(rightCol))
	}

	b.WriteString("\n\n")

	if len(m.errors) > 0 {
		errorStyle := lipgloss.NewStyle().Foreground(ColorLoss)
		errorHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorLoss)
		mutedError := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString(mutedError.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(errorStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(mutedError.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.paused {
		pauseStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
		b.WriteString(pauseStyle.Render("⏸ PAUSED"))
		b.WriteString(" • ")
	}
	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// focused marks the panel that receives scroll keys.
func (m Model) focused(p Panel, view string) string {
	if m.focus != p {
		return view
	}
	return FocusMarker.Render("▸") + view
}

// renderActivityFeed renders the recent activity feed.
func (m Model) renderActivityFeed() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("ACTIVITY"))
	sb.WriteString("\n")

	if len(m.activityFeed) == 0 && len(m.logs) == 0 {
		sb.WriteString(MutedText.Render("  Waiting for the first snapshot..."))
		return sb.String()
	}
	for _, activity := range m.activityFeed {
		sb.WriteString(MutedText.Render("  " + activity))
		sb.WriteString("\n")
	}
	for _, line := range m.logs {
		sb.WriteString(ErrorText.Render("  " + line))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorProfit)

	goldStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarn)

	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder

	sb.WriteString("\n\n\n\n")

	logo := `
    ███████╗ ██████╗ ██████╗
    ██╔════╝██╔════╝██╔═══██╗
    █████╗  ██║     ██║   ██║
    ██╔══╝  ██║     ██║   ██║
    ███████╗╚██████╗╚██████╔╝
    ╚══════╝ ╚═════╝ ╚═════╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")

	sb.WriteString(MutedText.Render("      M A R K E T   B O T"))
	sb.WriteString("\n\n\n")

	sb.WriteString(goldStyle.Render("   💰  Buy low, craft, sell high  💰"))
	sb.WriteString("\n\n\n")

	sb.WriteString(ProfitText.Render(fmt.Sprintf("         Initializing%s", dots)))
	sb.WriteString("\n\n")

	sb.WriteString(MutedText.Render("   Press any key to skip, or wait..."))
	sb.WriteString("\n")

	return sb.String()
}

// renderStartupScreen renders the loading screen.
func (m Model) renderStartupScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	var sb strings.Builder

	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  🌿 Eco Market Bot"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("  Starting up..."))
	sb.WriteString("\n\n")

	for _, name := range startupOrder {
		step, ok := m.startupSteps[name]
		if !ok {
			continue
		}

		var icon, statusText string
		var style lipgloss.Style

		switch step.Status {
		case "connected", "done":
			icon = "✓"
			statusText = "Ready"
			style = StepDone
		case "connecting":
			spinners := []string{"◐", "◓", "◑", "◒"}
			idx := int(time.Since(m.startupTime).Milliseconds()/200) % len(spinners)
			icon = spinners[idx]
			statusText = "Loading..."
			style = StepRunning
		case "failed":
			icon = "✗"
			statusText = "Failed"
			style = StepFailed
		default:
			icon = "○"
			statusText = "Pending"
			style = MutedText
		}

		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			style.Render(icon),
			MutedText.Render(step.Name),
			style.Render(statusText),
		))
	}

	sb.WriteString("\n")
	elapsed := time.Since(m.startupTime).Round(time.Second)
	sb.WriteString(MutedText.Render(fmt.Sprintf("  Elapsed: %s", elapsed)))
	sb.WriteString("\n\n")

	for _, line := range m.logs {
		sb.WriteString(ErrorText.Render("  " + line))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.refreshing {
		spinners := []string{"⟳", "◐", "◓", "◑", "◒"}
		idx := int(time.Now().UnixMilli()/100) % len(spinners)
		refreshStyle := lipgloss.NewStyle().Foreground(ColorProfit).Bold(true)
		parts = append(parts, refreshStyle.Render(spinners[idx]+" Refreshing"))
	}

	parts = append(parts, m.status.View())
	parts = append(parts, "Focus: "+m.focus.String())

	if !m.lastUpdate.IsZero() {
		ago := time.Since(m.lastUpdate).Round(time.Second)
		parts = append(parts, MutedText.Render(fmt.Sprintf("Updated: %s ago", ago)))
	}

	return strings.Join(parts, "  │  ")
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartModules is called when the welcome screen completes and modules should start.
var OnStartModules func()

// OnRefresh is called when the user asks for a refresh. It should end by
// sending a DashboardMsg or an ErrorMsg.
var OnRefresh func()

// Run starts the Bubble Tea program.
func Run() error {
	Program = tea.NewProgram(New(), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
	if _, ok := msg.(StartModulesMsg); ok && OnStartModules != nil {
		OnStartModules()
	}
}
