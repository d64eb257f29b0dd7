package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	arbApp "github.com/fd1az/eco-market-bot/business/arbitrage/app"
	craftApp "github.com/fd1az/eco-market-bot/business/crafting/app"
	"github.com/fd1az/eco-market-bot/pkg/ui"
)

// newTUICommand runs the interactive dashboard.
func newTUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive dashboard refreshed every schedule.monitor_interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt, err := bootstrap(ctx, opts, true)
	if err != nil {
		return err
	}
	defer rt.close()

	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}
	refreshSignal := make(chan struct{}, 1)
	ui.OnRefresh = func() {
		select {
		case refreshSignal <- struct{}{}:
		default:
		}
	}

	p := tea.NewProgram(ui.New(), tea.WithAltScreen(), tea.WithContext(ctx))
	ui.Program = p

	errCh := make(chan error, 1)
	go func() {
		select {
		case <-startSignal:
		case <-ctx.Done():
			errCh <- nil
			return
		}

		ui.Send(ui.StartupMsg{Step: "config", Status: "done"})
		ui.Send(ui.StartupMsg{Step: "market", Status: "connecting"})
		if err := rt.start(ctx); err != nil {
			ui.Send(ui.StartupMsg{Step: "market", Status: "failed", Message: err.Error()})
			errCh <- err
			return
		}

		d := &dashboard{arb: rt.arbitrage(), craft: rt.crafting(), first: true}
		d.refresh(ctx)

		ticker := time.NewTicker(rt.cfg.Schedule.MonitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				errCh <- nil
				return
			case <-ticker.C:
			case <-refreshSignal:
			}
			d.refresh(ctx)
		}
	}()

	_, runErr := p.Run()
	interrupted := ctx.Err() != nil
	cancel()
	if runErr != nil && !interrupted {
		return fmt.Errorf("TUI error: %w", runErr)
	}

	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		return nil
	}
}

// dashboard feeds the TUI from one snapshot per refresh.
type dashboard struct {
	arb   *arbApp.Service
	craft *craftApp.Service
	first bool
}

func (d *dashboard) refresh(ctx context.Context) {
	ui.Send(ui.RefreshStartedMsg{})

	msg, err := d.collect(ctx)
	if err != nil {
		if d.first {
			ui.Send(ui.StartupMsg{Step: "market", Status: "failed", Message: err.Error()})
		}
		ui.Send(ui.ErrorMsg{Error: err})
		return
	}

	if d.first {
		ui.Send(ui.StartupMsg{Step: "market", Status: "connected"})
		if msg.CraftingErr != nil {
			ui.Send(ui.StartupMsg{Step: "recipes", Status: "failed", Message: msg.CraftingErr.Error()})
		} else {
			ui.Send(ui.StartupMsg{Step: "recipes", Status: "done"})
		}
		d.first = false
	}
	ui.Send(msg)
}

// collect runs the pairwise analysis, best-pair mode and crafting ranking on
// the same snapshot.
func (d *dashboard) collect(ctx context.Context) (ui.DashboardMsg, error) {
	start := time.Now()

	analysis, err := d.arb.Analyze(ctx, 0)
	if err != nil {
		return ui.DashboardMsg{}, err
	}
	snap := analysis.Snapshot
	best := d.arb.BestPairsFrom(ctx, snap)

	msg := ui.DashboardMsg{
		Source:    string(snap.Source),
		FetchedAt: snap.FetchedAt,
		Stores:    snap.StoreCount(),
		Items:     snap.ItemCount(),
		PairCount: len(analysis.Pairs),
		BestPairs: best.Opportunities,
		FreeItems: analysis.FreeItems,
	}

	crafting, err := d.craft.OpportunitiesFrom(ctx, snap)
	if err != nil {
		msg.CraftingErr = err
	} else {
		msg.Crafting = crafting.Opportunities
	}

	msg.Latency = time.Since(start)
	return msg, nil
}
