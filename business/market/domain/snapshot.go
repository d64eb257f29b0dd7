package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Source identifies where a snapshot's data came from.
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
	SourceMemory   Source = "memory"
)

// ItemMarket holds the qualifying offers for one item.
type ItemMarket struct {
	Item string
	// Sellers are stores selling the item, i.e. where a trader buys from.
	Sellers []Offer
	// Buyers are stores buying the item, i.e. where a trader sells to.
	Buyers []Offer
	// FreeSellers are price-0 selling offers, kept regardless of policy.
	FreeSellers []Offer
}

// CheapestSeller returns the lowest-priced seller. Ties keep the first seen.
func (m *ItemMarket) CheapestSeller() (Offer, bool) {
	if m == nil || len(m.Sellers) == 0 {
		return Offer{}, false
	}
	best := m.Sellers[0]
	for _, o := range m.Sellers[1:] {
		if o.Price.LessThan(best.Price) {
			best = o
		}
	}
	return best, true
}

// BestBuyer returns the highest-paying buyer. Ties keep the first seen.
func (m *ItemMarket) BestBuyer() (Offer, bool) {
	if m == nil || len(m.Buyers) == 0 {
		return Offer{}, false
	}
	best := m.Buyers[0]
	for _, o := range m.Buyers[1:] {
		if o.Price.GreaterThan(best.Price) {
			best = o
		}
	}
	return best, true
}

// BuyersByPrice returns a copy of the buyers, highest price first, stable on ties.
func (m *ItemMarket) BuyersByPrice() []Offer {
	if m == nil {
		return nil
	}
	out := slices.Clone(m.Buyers)
	slices.SortStableFunc(out, func(a, b Offer) int {
		return b.Price.Cmp(a.Price)
	})
	return out
}

// SellersByPrice returns a copy of the sellers, lowest price first, stable on ties.
func (m *ItemMarket) SellersByPrice() []Offer {
	if m == nil {
		return nil
	}
	out := slices.Clone(m.Sellers)
	slices.SortStableFunc(out, func(a, b Offer) int {
		return a.Price.Cmp(b.Price)
	})
	return out
}

// TotalDemand sums the quantity of all buyers.
func (m *ItemMarket) TotalDemand() int64 {
	if m == nil {
		return 0
	}
	var total int64
	for _, o := range m.Buyers {
		total += o.Quantity
	}
	return total
}

// Snapshot is an immutable per-run index of the market. Engines only read it.
type Snapshot struct {
	ID        uuid.UUID
	FetchedAt time.Time
	Source    Source
	Policy    Policy

	stores map[string]StoreInfo
	items  map[string]*ItemMarket
	order  []string
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot(source Source, policy Policy, fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		ID:        uuid.New(),
		FetchedAt: fetchedAt,
		Source:    source,
		Policy:    policy,
		stores:    make(map[string]StoreInfo),
		items:     make(map[string]*ItemMarket),
	}
}

// Item returns the market entry for name, or nil.
func (s *Snapshot) Item(name string) *ItemMarket {
	return s.items[name]
}

// Items returns entries in first-seen order.
func (s *Snapshot) Items() []*ItemMarket {
	out := make([]*ItemMarket, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.items[name])
	}
	return out
}

// ItemCount returns the number of indexed items.
func (s *Snapshot) ItemCount() int {
	return len(s.order)
}

// Store returns the info for a canonical store name.
func (s *Snapshot) Store(name string) (StoreInfo, bool) {
	info, ok := s.stores[name]
	return info, ok
}

// StoreCount returns the number of enabled, accepted stores.
func (s *Snapshot) StoreCount() int {
	return len(s.stores)
}

// AddStore records store metadata. Used while building. The first store with a
// given canonical name wins; it reports false for later ones.
func (s *Snapshot) AddStore(info StoreInfo) bool {
	if _, ok := s.stores[info.Name]; ok {
		return false
	}
	s.stores[info.Name] = info
	return true
}

// entry returns the entry for item, creating it in first-seen order.
func (s *Snapshot) entry(item string) *ItemMarket {
	m, ok := s.items[item]
	if !ok {
		m = &ItemMarket{Item: item}
		s.items[item] = m
		s.order = append(s.order, item)
	}
	return m
}

// AddSeller appends a selling offer. Used while building.
func (s *Snapshot) AddSeller(o Offer) {
	m := s.entry(o.Item)
	m.Sellers = append(m.Sellers, o)
}

// AddBuyer appends a buying offer. Used while building.
func (s *Snapshot) AddBuyer(o Offer) {
	m := s.entry(o.Item)
	m.Buyers = append(m.Buyers, o)
}

// AddFreeSeller appends a price-0 selling offer. Used while building.
func (s *Snapshot) AddFreeSeller(o Offer) {
	m := s.entry(o.Item)
	m.FreeSellers = append(m.FreeSellers, o)
}
