// Package domain contains the core domain types for the arbitrage context.
package domain

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Leg is one side of a trade: the store, its price and quantity, and the
// store's balance at snapshot time.
type Leg struct {
	Store    string
	Price    decimal.Decimal
	Quantity int64
	Balance  decimal.Decimal
}

// Opportunity is a buy-from-source, sell-to-destination trade of one item.
// It is computed fresh per run and never mutated after construction.
type Opportunity struct {
	Item        string
	Source      Leg
	Destination Leg

	ProfitPerUnit decimal.Decimal
	Margin        decimal.Decimal // percent of the source price, 0 when the source is free
	TradableQty   int64
	LimitedBy     Limit
	TotalProfit   decimal.Decimal
	Investment    decimal.Decimal
	ROI           decimal.Decimal // percent of the investment, 0 when nothing is invested

	LiquidityRisk     bool
	InsufficientFunds bool
}

// Key identifies the deal across runs.
func (o Opportunity) Key() DealKey {
	return NewDealKey(o.Item, o.Source.Store, o.Destination.Store)
}

// RemainingBalance is the source balance left after paying the investment.
func (o Opportunity) RemainingBalance() decimal.Decimal {
	return o.Source.Balance.Sub(o.Investment)
}

// Terms are the thresholds that shape a single opportunity.
type Terms struct {
	// LiquidityMargin is the safety balance the source store should keep.
	LiquidityMargin decimal.Decimal
	// BalanceAware bounds the quantity by what the destination can afford.
	BalanceAware bool
}

// NewOpportunity sizes the trade and derives every metric. The quantity may be 0
// when the destination cannot afford a single unit.
func NewOpportunity(item string, source, destination Leg, terms Terms) Opportunity {
	perUnit := destination.Price.Sub(source.Price)
	qty, limit, short := SizeTrade(source.Quantity, destination.Quantity, destination.Balance, destination.Price, terms.BalanceAware)

	q := decimal.NewFromInt(qty)
	investment := source.Price.Mul(q)
	total := perUnit.Mul(q)

	opp := Opportunity{
		Item:              item,
		Source:            source,
		Destination:       destination,
		ProfitPerUnit:     perUnit,
		Margin:            percentOf(perUnit, source.Price),
		TradableQty:       qty,
		LimitedBy:         limit,
		TotalProfit:       total,
		Investment:        investment,
		ROI:               percentOf(total, investment),
		InsufficientFunds: short,
	}
	opp.LiquidityRisk = opp.RemainingBalance().LessThan(terms.LiquidityMargin)
	return opp
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
