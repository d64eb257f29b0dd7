package app

import (
	"context"
	"strings"
	"time"

	"github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

// Builder normalizes raw store records into a Snapshot.
type Builder struct {
	policy domain.Policy
	log    logger.LoggerInterface
	now    func() time.Time
}

// NewBuilder creates a builder applying policy.
func NewBuilder(policy domain.Policy, log logger.LoggerInterface) *Builder {
	return &Builder{policy: policy, log: log, now: time.Now}
}

// Policy returns the builder's offer policy.
func (b *Builder) Policy() domain.Policy {
	return b.policy
}

// Build indexes raw stores. Empty input yields an empty snapshot, never an error.
func (b *Builder) Build(ctx context.Context, raw []domain.RawStore, source domain.Source) *domain.Snapshot {
	snap := domain.NewSnapshot(source, b.policy, b.now())

	var skippedStores, inert, excluded int
	for _, rs := range raw {
		if !rs.Enabled {
			skippedStores++
			continue
		}
		if !b.policy.AcceptsCurrency(rs.CurrencyName) {
			skippedStores++
			continue
		}

		name := domain.CanonicalStoreName(rs.Name)
		if !snap.AddStore(domain.StoreInfo{
			Name:     name,
			Balance:  rs.Balance,
			Currency: rs.CurrencyName,
		}) {
			b.log.Debug(ctx, "duplicate store name, keeping first balance",
				"store", name, "raw_name", rs.Name)
		}

		for _, ro := range rs.AllOffers {
			offer := domain.Offer{
				Item:     strings.TrimSpace(ro.ItemName),
				Store:    name,
				Price:    ro.Price,
				Quantity: int64(ro.Quantity),
			}
			if ro.Buying {
				offer.Direction = domain.Buying
			}

			if offer.Item == "" || offer.IsInert() {
				inert++
				continue
			}

			switch offer.Direction {
			case domain.Buying:
				if !offer.Price.IsPositive() {
					inert++
					continue
				}
				if b.policy.IsExcludedBuyer(name) {
					excluded++
					continue
				}
				snap.AddBuyer(offer)
			case domain.Selling:
				if offer.IsFree() {
					snap.AddFreeSeller(offer)
					if !b.policy.AllowZeroPriceSellers {
						continue
					}
				}
				snap.AddSeller(offer)
			}
		}
	}

	b.log.Debug(ctx, "snapshot built",
		"snapshot_id", snap.ID.String(),
		"source", snap.Source,
		"stores", snap.StoreCount(),
		"items", snap.ItemCount(),
		"skipped_stores", skippedStores,
		"inert_offers", inert,
		"excluded_buyer_offers", excluded)

	return snap
}
