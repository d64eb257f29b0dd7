// Package app contains application services and port definitions for the arbitrage context.
package app

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

// EngineConfig holds the arbitrage policy.
type EngineConfig struct {
	// MinTotalProfit is the default best-pair reporting threshold.
	MinTotalProfit decimal.Decimal
	// Epsilon is the spread a best pair must exceed to count.
	Epsilon decimal.Decimal
	// LiquidityMargin is the balance the source store should keep after the trade.
	LiquidityMargin decimal.Decimal
	// BalanceAware bounds quantities by what the destination can afford.
	BalanceAware bool
	Categories   domain.CategoryRules
}

// DefaultEngineConfig returns the standard policy.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinTotalProfit:  decimal.NewFromInt(10),
		Epsilon:         decimal.NewFromFloat(0.1),
		LiquidityMargin: decimal.NewFromInt(50),
		Categories:      domain.DefaultCategoryRules(),
	}
}

// Engine finds trades in a market snapshot. It holds no per-run state.
type Engine struct {
	cfg EngineConfig
	log logger.LoggerInterface
}

// NewEngine creates an arbitrage engine.
func NewEngine(cfg EngineConfig, log logger.LoggerInterface) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// Config returns the engine policy.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

func (e *Engine) terms() domain.Terms {
	return domain.Terms{LiquidityMargin: e.cfg.LiquidityMargin, BalanceAware: e.cfg.BalanceAware}
}

// FindBest pairs the cheapest seller with the best buyer of every item and keeps
// trades whose total profit is at least minTotalProfit, best first.
func (e *Engine) FindBest(ctx context.Context, snap *marketDomain.Snapshot, minTotalProfit decimal.Decimal) []domain.Opportunity {
	var out []domain.Opportunity
	for _, m := range snap.Items() {
		seller, okS := m.CheapestSeller()
		buyer, okB := m.BestBuyer()
		if !okS || !okB {
			continue
		}

		if buyer.Price.Sub(seller.Price).LessThanOrEqual(e.cfg.Epsilon) {
			continue
		}

		opp := domain.NewOpportunity(m.Item, leg(snap, seller), leg(snap, buyer), e.terms())
		if !opp.TotalProfit.IsPositive() {
			e.log.Debug(ctx, "best pair skipped", "item", m.Item, "reason", "no tradable quantity")
			continue
		}
		if opp.TotalProfit.LessThan(minTotalProfit) {
			continue
		}
		out = append(out, opp)
	}

	sortByProfit(out)
	return out
}

// FindAllPairwise returns every seller/buyer pair with a positive spread, best first.
// A store may appear on both sides of a pair.
func (e *Engine) FindAllPairwise(ctx context.Context, snap *marketDomain.Snapshot) []domain.Opportunity {
	var out []domain.Opportunity
	for _, m := range snap.Items() {
		if len(m.Sellers) == 0 || len(m.Buyers) == 0 {
			continue
		}

		buyers := m.BuyersByPrice()
		for _, seller := range m.SellersByPrice() {
			for _, buyer := range buyers {
				if !buyer.Price.GreaterThan(seller.Price) {
					break
				}
				opp := domain.NewOpportunity(m.Item, leg(snap, seller), leg(snap, buyer), e.terms())
				if opp.TotalProfit.IsPositive() {
					out = append(out, opp)
				}
			}
		}
	}

	sortByProfit(out)
	e.log.Debug(ctx, "pairwise analysis done", "pairs", len(out))
	return out
}

// FindFreeItems matches price-0 selling offers with buyers in other stores.
// Profit is the buyer price times min(free quantity, demand), best first.
func (e *Engine) FindFreeItems(ctx context.Context, snap *marketDomain.Snapshot) []domain.FreeItem {
	var out []domain.FreeItem
	for _, m := range snap.Items() {
		if len(m.FreeSellers) == 0 || len(m.Buyers) == 0 {
			continue
		}

		buyers := m.BuyersByPrice()
		for _, free := range m.FreeSellers {
			for _, buyer := range buyers {
				if buyer.Store == free.Store {
					continue
				}
				dst := leg(snap, buyer)
				qty, _, _ := domain.SizeTrade(free.Quantity, buyer.Quantity, dst.Balance, dst.Price, e.cfg.BalanceAware)
				if qty <= 0 {
					continue
				}
				out = append(out, domain.FreeItem{
					Item:        m.Item,
					Source:      leg(snap, free),
					Destination: dst,
					TradableQty: qty,
					TotalProfit: buyer.Price.Mul(decimal.NewFromInt(qty)),
				})
			}
		}
	}

	slices.SortStableFunc(out, func(a, b domain.FreeItem) int {
		return b.TotalProfit.Cmp(a.TotalProfit)
	})
	return out
}

// Categorize buckets pairwise results by the configured rules, keeping at most limit each.
func (e *Engine) Categorize(opps []domain.Opportunity, limit int) map[domain.Category][]domain.Opportunity {
	return e.cfg.Categories.Categorize(opps, limit)
}

func leg(snap *marketDomain.Snapshot, o marketDomain.Offer) domain.Leg {
	l := domain.Leg{Store: o.Store, Price: o.Price, Quantity: o.Quantity}
	if info, ok := snap.Store(o.Store); ok {
		l.Balance = info.Balance
	}
	return l
}

func sortByProfit(opps []domain.Opportunity) {
	slices.SortStableFunc(opps, func(a, b domain.Opportunity) int {
		return b.TotalProfit.Cmp(a.TotalProfit)
	})
}
