package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = (*mockLogger)(nil)

// snapshotBuilder assembles a snapshot directly, bypassing the raw payload.
type snapshotBuilder struct {
	snap *marketDomain.Snapshot
}

func newSnapshot() *snapshotBuilder {
	return &snapshotBuilder{
		snap: marketDomain.NewSnapshot(marketDomain.SourceMemory, marketDomain.Policy{}, time.Unix(0, 0)),
	}
}

func (b *snapshotBuilder) store(name, balance string) *snapshotBuilder {
	b.snap.AddStore(marketDomain.StoreInfo{Name: name, Balance: decimal.RequireFromString(balance)})
	return b
}

func (b *snapshotBuilder) sells(store, item, price string, qty int64) *snapshotBuilder {
	o := marketDomain.Offer{Item: item, Store: store, Price: decimal.RequireFromString(price), Quantity: qty, Direction: marketDomain.Selling}
	if o.IsFree() {
		b.snap.AddFreeSeller(o)
		return b
	}
	b.snap.AddSeller(o)
	return b
}

func (b *snapshotBuilder) buys(store, item, price string, qty int64) *snapshotBuilder {
	b.snap.AddBuyer(marketDomain.Offer{Item: item, Store: store, Price: decimal.RequireFromString(price), Quantity: qty, Direction: marketDomain.Buying})
	return b
}

func (b *snapshotBuilder) build() *marketDomain.Snapshot {
	return b.snap
}

func newTestEngine(balanceAware bool) *Engine {
	cfg := DefaultEngineConfig()
	cfg.BalanceAware = balanceAware
	return NewEngine(cfg, &mockLogger{})
}

func TestEngine_FindBest(t *testing.T) {
	tests := []struct {
		name         string
		snap         *marketDomain.Snapshot
		balanceAware bool
		min          string
		wantItems    []string
		wantTotals   []string
	}{
		{
			name: "iron_bar",
			snap: newSnapshot().store("A", "1000").store("B", "1000").
				sells("A", "Iron Bar", "2.00", 100).
				buys("B", "Iron Bar", "5.00", 40).
				build(),
			min:        "10",
			wantItems:  []string{"Iron Bar"},
			wantTotals: []string{"120"},
		},
		{
			name: "spread_at_epsilon_is_noise",
			snap: newSnapshot().store("A", "1000").store("B", "1000").
				sells("A", "Nail", "1.00", 1000).
				buys("B", "Nail", "1.10", 1000).
				build(),
			min: "0",
		},
		{
			name: "spread_just_above_epsilon",
			snap: newSnapshot().store("A", "1000").store("B", "1000").
				sells("A", "Nail", "1.00", 1000).
				buys("B", "Nail", "1.11", 1000).
				build(),
			min:        "0",
			wantItems:  []string{"Nail"},
			wantTotals: []string{"110"},
		},
		{
			name: "below_threshold_dropped",
			snap: newSnapshot().store("A", "1000").store("B", "1000").
				sells("A", "Log", "1", 3).
				buys("B", "Log", "2", 3).
				build(),
			min: "10",
		},
		{
			name: "cheapest_seller_and_best_buyer_picked",
			snap: newSnapshot().store("A", "1000").store("B", "1000").store("C", "1000").
				sells("A", "Brick", "3", 10).
				sells("C", "Brick", "2", 10).
				buys("B", "Brick", "4", 10).
				buys("A", "Brick", "6", 10).
				build(),
			min:        "0",
			wantItems:  []string{"Brick"},
			wantTotals: []string{"40"}, // (6-2)*10
		},
		{
			name: "sorted_desc_stable_on_ties",
			snap: newSnapshot().store("A", "1000").store("B", "1000").
				sells("A", "First", "1", 10).buys("B", "First", "3", 10).
				sells("A", "Big", "1", 100).buys("B", "Big", "2", 100).
				sells("A", "Second", "1", 10).buys("B", "Second", "3", 10).
				build(),
			min:        "10",
			wantItems:  []string{"Big", "First", "Second"},
			wantTotals: []string{"100", "20", "20"},
		},
		{
			name: "balance_aware_broke_buyer_dropped",
			snap: newSnapshot().store("A", "1000").store("B", "3").
				sells("A", "Iron Bar", "2", 100).
				buys("B", "Iron Bar", "5", 40).
				build(),
			balanceAware: true,
			min:          "0",
		},
		{
			name: "balance_aware_limits_quantity",
			snap: newSnapshot().store("A", "1000").store("B", "100").
				sells("A", "Iron Bar", "2", 100).
				buys("B", "Iron Bar", "5", 40).
				build(),
			balanceAware: true,
			min:          "0",
			wantItems:    []string{"Iron Bar"},
			wantTotals:   []string{"60"}, // floor(100/5)=20 units * 3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.balanceAware)
			got := e.FindBest(context.Background(), tt.snap, decimal.RequireFromString(tt.min))

			if len(got) != len(tt.wantItems) {
				t.Fatalf("got %d opportunities, want %d", len(got), len(tt.wantItems))
			}
			for i, opp := range got {
				if opp.Item != tt.wantItems[i] {
					t.Errorf("[%d] item = %s, want %s", i, opp.Item, tt.wantItems[i])
				}
				if !opp.TotalProfit.Equal(decimal.RequireFromString(tt.wantTotals[i])) {
					t.Errorf("[%d] total = %s, want %s", i, opp.TotalProfit, tt.wantTotals[i])
				}
				if opp.ProfitPerUnit.LessThanOrEqual(decimal.NewFromFloat(0.1)) {
					t.Errorf("[%d] spread %s within epsilon", i, opp.ProfitPerUnit)
				}
				want := opp.ProfitPerUnit.Mul(decimal.NewFromInt(opp.TradableQty))
				if !opp.TotalProfit.Equal(want) {
					t.Errorf("[%d] total %s != per unit * qty %s", i, opp.TotalProfit, want)
				}
			}
		})
	}
}

func TestEngine_FindAllPairwise(t *testing.T) {
	snap := newSnapshot().store("A", "1000").store("B", "1000").store("C", "1000").
		sells("A", "Iron Bar", "2", 100).
		sells("C", "Iron Bar", "4", 10).
		buys("B", "Iron Bar", "5", 40).
		buys("C", "Iron Bar", "3", 50).
		buys("A", "Iron Bar", "1", 50).
		build()

	got := newTestEngine(false).FindAllPairwise(context.Background(), snap)

	want := []struct {
		src, dst string
		total    string
		roi      string
	}{
		{"A", "B", "120", "150"}, // 3 * 40
		{"A", "C", "50", "50"},   // 1 * 50
		{"C", "B", "10", "25"},   // 1 * 10
	}
	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Source.Store != w.src || got[i].Destination.Store != w.dst {
			t.Errorf("[%d] pair = %s->%s, want %s->%s", i, got[i].Source.Store, got[i].Destination.Store, w.src, w.dst)
		}
		if !got[i].TotalProfit.Equal(decimal.RequireFromString(w.total)) {
			t.Errorf("[%d] total = %s, want %s", i, got[i].TotalProfit, w.total)
		}
		if !got[i].ROI.Equal(decimal.RequireFromString(w.roi)) {
			t.Errorf("[%d] roi = %s, want %s", i, got[i].ROI, w.roi)
		}
	}
}

func TestEngine_FindFreeItems(t *testing.T) {
	snap := newSnapshot().store("X", "0").store("Y", "1000").
		sells("X", "Waste", "0", 500).
		buys("Y", "Waste", "0.50", 100).
		buys("X", "Waste", "0.75", 100). // same store, ignored
		sells("Y", "Dirt", "0", 5).
		buys("X", "Dirt", "2", 10).
		build()

	got := newTestEngine(false).FindFreeItems(context.Background(), snap)

	if len(got) != 2 {
		t.Fatalf("got %d free items, want 2", len(got))
	}

	if got[0].Item != "Waste" || got[0].Destination.Store != "Y" {
		t.Errorf("first = %s to %s, want Waste to Y", got[0].Item, got[0].Destination.Store)
	}
	if got[0].TradableQty != 100 || !got[0].TotalProfit.Equal(decimal.RequireFromString("50")) {
		t.Errorf("waste: qty %d total %s, want 100 / 50", got[0].TradableQty, got[0].TotalProfit)
	}
	if got[1].Item != "Dirt" || !got[1].TotalProfit.Equal(decimal.NewFromInt(10)) {
		t.Errorf("second = %s %s, want Dirt 10", got[1].Item, got[1].TotalProfit)
	}
}

func TestEngine_ExcludedBuyerNeverReported(t *testing.T) {
	// The builder drops excluded buyers; the engine must only see what the snapshot holds.
	snap := newSnapshot().store("A", "1000").store("B", "1000").
		sells("A", "Iron Bar", "2", 100).
		buys("B", "Iron Bar", "5", 40).
		build()

	e := newTestEngine(false)
	for _, opp := range e.FindAllPairwise(context.Background(), snap) {
		if opp.Destination.Store == "Low Hanging Fruit" {
			t.Fatalf("excluded store reported as buyer: %+v", opp)
		}
	}
}

func TestEngine_Categorize(t *testing.T) {
	snap := newSnapshot().store("A", "1000").store("B", "1000").
		sells("A", "Iron Bar", "2", 100).
		buys("B", "Iron Bar", "5", 40).
		sells("A", "Sand", "0.10", 500).
		buys("B", "Sand", "0.20", 200).
		build()

	e := newTestEngine(false)
	cats := e.Categorize(e.FindAllPairwise(context.Background(), snap), 5)

	if n := len(cats[domain.CategoryHighProfit]); n != 1 {
		t.Errorf("high profit = %d, want 1", n)
	}
	if n := len(cats[domain.CategoryBulk]); n != 1 || cats[domain.CategoryBulk][0].Item != "Sand" {
		t.Errorf("bulk = %+v, want Sand", cats[domain.CategoryBulk])
	}
	if n := len(cats[domain.CategoryHighROI]); n != 2 {
		t.Errorf("high roi = %d, want 2", n)
	}
}
