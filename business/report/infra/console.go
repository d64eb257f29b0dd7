// Package infra contains report delivery adapters: terminal, Discord and Telegram.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fd1az/eco-market-bot/business/report/app"
	"github.com/fd1az/eco-market-bot/business/report/domain"
)

// ConsoleSink writes reports to a terminal or file.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

var _ app.Sink = (*ConsoleSink)(nil)

// NewConsoleSink creates a sink writing to out, or stdout when out is nil.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleSink{out: out}
}

// Name implements app.Sink.
func (s *ConsoleSink) Name() string {
	return "console"
}

// Send writes the message followed by a blank line, so consecutive chunks
// read as the original document.
func (s *ConsoleSink) Send(ctx context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprint(s.out, message, domain.BlockSeparator)
	return err
}
