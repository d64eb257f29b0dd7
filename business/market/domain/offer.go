// Package domain contains the store, offer and snapshot model of the game market.
package domain

import (
	"github.com/shopspring/decimal"
)

// SentinelPrice marks an offer with no real price. Prices at or above it are ignored.
var SentinelPrice = decimal.NewFromInt(999999)

// Direction is the side of an offer from the store's point of view.
type Direction int

const (
	// Selling means the store sells the item: a trader buys FROM it.
	Selling Direction = iota
	// Buying means the store buys the item: a trader sells TO it.
	Buying
)

// String returns a human-readable direction.
func (d Direction) String() string {
	if d == Buying {
		return "buying"
	}
	return "selling"
}

// Offer is one listing in one store for one item.
type Offer struct {
	Item      string
	Store     string
	Price     decimal.Decimal
	Quantity  int64
	Direction Direction
}

// IsInert reports whether the offer takes part in no computation:
// no stock or demand, a negative price, or a sentinel price.
func (o Offer) IsInert() bool {
	return o.Quantity <= 0 || o.Price.IsNegative() || o.Price.GreaterThanOrEqual(SentinelPrice)
}

// IsFree reports whether a selling offer gives the item away.
func (o Offer) IsFree() bool {
	return o.Direction == Selling && o.Price.IsZero()
}
