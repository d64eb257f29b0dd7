package ui

import (
	"time"

	arbDomain "github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	craftDomain "github.com/fd1az/eco-market-bot/business/crafting/domain"
)

// Message types for TUI updates

// DashboardMsg carries one full refresh of the market rankings.
type DashboardMsg struct {
	Source    string
	FetchedAt time.Time
	Latency   time.Duration
	Stores    int
	Items     int
	PairCount int

	BestPairs []arbDomain.Opportunity
	FreeItems []arbDomain.FreeItem
	Crafting  []craftDomain.Opportunity
	// CraftingErr is set when recipes could not be ranked; the market panels still update.
	CraftingErr error
}

// RefreshStartedMsg is sent when a refresh begins.
type RefreshStartedMsg struct{}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// StartupMsg is sent during application startup to show progress.
type StartupMsg struct {
	Step    string // "config", "market", "recipes"
	Status  string // "connecting", "connected", "done", "failed"
	Message string
}
