package infra

import (
	"context"

	"github.com/fd1az/eco-market-bot/business/report/domain"
)

// Command names understood by the chat bots.
const (
	CommandMarket = "market"
	CommandHelp   = "help"
)

// Commands answers chat bot commands with rendered documents.
type Commands interface {
	MarketReport(ctx context.Context) *domain.Document
	Help(ctx context.Context) *domain.Document
}

// answer resolves a command name. ok is false for unknown commands.
func answer(ctx context.Context, commands Commands, name string) (doc *domain.Document, ok bool) {
	switch name {
	case CommandMarket:
		return commands.MarketReport(ctx), true
	case CommandHelp:
		return commands.Help(ctx), true
	default:
		return nil, false
	}
}
