package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCanonicalStoreName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"<color=#FF0000>Red Shop</color>", "Red Shop"},
		{"<color=green>Mixed</color> Goods", "Mixed Goods"},
		{"Plain Store", "Plain Store"},
		{"Uses <b>bold</b>", "Uses <b>bold</b>"},
	}
	for _, tt := range tests {
		if got := CanonicalStoreName(tt.raw); got != tt.want {
			t.Errorf("CanonicalStoreName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSnapshot_AddStoreKeepsFirst(t *testing.T) {
	s := NewSnapshot(SourceMemory, Policy{}, time.Now())

	if !s.AddStore(StoreInfo{Name: "Shop", Balance: decimal.NewFromInt(100)}) {
		t.Fatal("first store should be added")
	}
	if s.AddStore(StoreInfo{Name: "Shop", Balance: decimal.NewFromInt(5)}) {
		t.Error("duplicate store should be reported")
	}

	info, ok := s.Store("Shop")
	if !ok || !info.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Store(Shop) = %+v, %v; want balance 100", info, ok)
	}
	if s.StoreCount() != 1 {
		t.Errorf("StoreCount() = %d, want 1", s.StoreCount())
	}
}

func TestItemMarket_SelectionTieBreaks(t *testing.T) {
	s := NewSnapshot(SourceMemory, Policy{}, time.Now())
	d := decimal.RequireFromString

	s.AddSeller(Offer{Item: "Lumber", Store: "A", Price: d("1.00"), Quantity: 10})
	s.AddSeller(Offer{Item: "Lumber", Store: "B", Price: d("1.00"), Quantity: 20})
	s.AddSeller(Offer{Item: "Lumber", Store: "C", Price: d("3.00"), Quantity: 20})
	s.AddBuyer(Offer{Item: "Lumber", Store: "X", Price: d("4.00"), Quantity: 5, Direction: Buying})
	s.AddBuyer(Offer{Item: "Lumber", Store: "Y", Price: d("6.00"), Quantity: 5, Direction: Buying})
	s.AddBuyer(Offer{Item: "Lumber", Store: "Z", Price: d("4.00"), Quantity: 7, Direction: Buying})

	m := s.Item("Lumber")

	if seller, _ := m.CheapestSeller(); seller.Store != "A" {
		t.Errorf("CheapestSeller = %s, want first-seen A", seller.Store)
	}
	if buyer, _ := m.BestBuyer(); buyer.Store != "Y" {
		t.Errorf("BestBuyer = %s, want Y", buyer.Store)
	}

	sorted := m.BuyersByPrice()
	order := []string{sorted[0].Store, sorted[1].Store, sorted[2].Store}
	if order[0] != "Y" || order[1] != "X" || order[2] != "Z" {
		t.Errorf("BuyersByPrice order = %v, want [Y X Z]", order)
	}
	if m.Buyers[0].Store != "X" {
		t.Error("BuyersByPrice must not reorder the snapshot")
	}
	if m.TotalDemand() != 17 {
		t.Errorf("TotalDemand = %d, want 17", m.TotalDemand())
	}
}

func TestOffer_IsInert(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name string
		o    Offer
		want bool
	}{
		{"live", Offer{Price: d("1"), Quantity: 1}, false},
		{"free", Offer{Price: d("0"), Quantity: 1}, false},
		{"no_qty", Offer{Price: d("1"), Quantity: 0}, true},
		{"sentinel", Offer{Price: d("999999"), Quantity: 1}, true},
		{"above_sentinel", Offer{Price: d("1000000"), Quantity: 1}, true},
		{"negative", Offer{Price: d("-1"), Quantity: 1}, true},
	}
	for _, tt := range tests {
		if got := tt.o.IsInert(); got != tt.want {
			t.Errorf("%s: IsInert = %v, want %v", tt.name, got, tt.want)
		}
	}
}
