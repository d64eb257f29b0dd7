package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
)

type fakeSnapshots struct {
	snaps []*marketDomain.Snapshot
	errs  []error
	calls int
}

func (f *fakeSnapshots) Snapshot(ctx context.Context) (*marketDomain.Snapshot, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return f.snaps[i], nil
}

type recordingReporter struct {
	got []domain.DealChanges
}

func (r *recordingReporter) ReportDeals(ctx context.Context, changes domain.DealChanges) error {
	r.got = append(r.got, changes)
	return nil
}

func keys(opps []domain.Opportunity) []domain.DealKey {
	out := make([]domain.DealKey, 0, len(opps))
	for _, o := range opps {
		out = append(out, o.Key())
	}
	return out
}

func equalKeys(t *testing.T, what string, got []domain.Opportunity, want ...domain.DealKey) {
	t.Helper()
	g := keys(got)
	if len(g) != len(want) {
		t.Fatalf("%s = %v, want %v", what, g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("%s = %v, want %v", what, g, want)
		}
	}
}

func TestDetector_Check(t *testing.T) {
	first := newSnapshot().store("A", "1000").store("B", "1000").
		sells("A", "Iron Bar", "2", 100).buys("B", "Iron Bar", "5", 40). // 120
		sells("A", "Copper Bar", "1", 100).buys("B", "Copper Bar", "2", 60). // 60
		sells("A", "Log", "1", 10).buys("B", "Log", "2", 10). // 10, below 50
		build()
	second := newSnapshot().store("A", "1000").store("B", "1000").
		sells("A", "Iron Bar", "2", 100).buys("B", "Iron Bar", "5", 40).
		sells("A", "Gold Bar", "10", 10).buys("B", "Gold Bar", "20", 10). // 100
		build()

	src := &fakeSnapshots{snaps: []*marketDomain.Snapshot{first, nil, second}, errs: []error{nil, errors.New("down"), nil}}
	rep := &recordingReporter{}
	d := NewDetector(src, newTestEngine(false), rep, decimal.NewFromInt(50), &mockLogger{})
	ctx := context.Background()

	if err := d.Check(ctx); err != nil {
		t.Fatalf("first check: %v", err)
	}
	if len(rep.got) != 1 || !rep.got[0].Initial {
		t.Fatalf("first report should be initial: %+v", rep.got)
	}
	equalKeys(t, "initial", rep.got[0].Appeared, "Iron Bar|A|B", "Copper Bar|A|B")

	if err := d.Check(ctx); err == nil {
		t.Fatal("expected fetch error")
	}
	if len(rep.got) != 1 {
		t.Fatalf("failed check must not report, got %d reports", len(rep.got))
	}

	if err := d.Check(ctx); err != nil {
		t.Fatalf("third check: %v", err)
	}
	changes := rep.got[1]
	if changes.Initial {
		t.Error("third report should not be initial")
	}
	equalKeys(t, "appeared", changes.Appeared, "Gold Bar|A|B")
	equalKeys(t, "disappeared", changes.Disappeared, "Copper Bar|A|B")
	equalKeys(t, "current", changes.Current, "Iron Bar|A|B", "Gold Bar|A|B")
}

func TestDetector_ObserveNoChanges(t *testing.T) {
	d := NewDetector(nil, nil, nil, decimal.Zero, &mockLogger{})
	opp := domain.Opportunity{Item: "Iron Bar", Source: domain.Leg{Store: "A"}, Destination: domain.Leg{Store: "B"}}

	d.Observe([]domain.Opportunity{opp})
	changes := d.Observe([]domain.Opportunity{opp})

	if changes.HasChanges() {
		t.Errorf("expected no changes, got %+v", changes)
	}

	d.Reset()
	if !d.Observe(nil).Initial {
		t.Error("observation after Reset should be initial")
	}
}
