package app

import (
	"context"

	arbApp "github.com/fd1az/eco-market-bot/business/arbitrage/app"
)

// Sink delivers one rendered message to a chat channel or terminal.
type Sink interface {
	Name() string
	Send(ctx context.Context, message string) error
}

// BestPairsRunner produces the recurring market report.
type BestPairsRunner interface {
	BestPairs(ctx context.Context) (*arbApp.BestPairs, error)
}
