package domain

import "github.com/shopspring/decimal"

// FreeItem is an item given away by one store and bought by another.
type FreeItem struct {
	Item        string
	Source      Leg // price is zero
	Destination Leg
	TradableQty int64
	TotalProfit decimal.Decimal
}

// Key identifies the free-item deal.
func (f FreeItem) Key() DealKey {
	return NewDealKey(f.Item, f.Source.Store, f.Destination.Store)
}
