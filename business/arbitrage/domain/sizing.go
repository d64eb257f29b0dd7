package domain

import "github.com/shopspring/decimal"

// Limit names the constraint that capped a trade's quantity.
type Limit string

const (
	LimitStock  Limit = "stock"
	LimitDemand Limit = "demand"
	LimitFunds  Limit = "funds"
)

// String returns a human-readable description of the limit.
func (l Limit) String() string {
	switch l {
	case LimitStock:
		return "source stock"
	case LimitDemand:
		return "destination demand"
	case LimitFunds:
		return "destination balance"
	default:
		return "unknown"
	}
}

// SizeTrade returns the tradable quantity: min(stock, demand), further bounded by
// floor(balance / price) when balanceAware. short reports that the balance bound
// cut the quantity below the stock/demand bound; it is only set when balanceAware.
func SizeTrade(stock, demand int64, balance, price decimal.Decimal, balanceAware bool) (qty int64, limit Limit, short bool) {
	qty, limit = stock, LimitStock
	if demand < qty {
		qty, limit = demand, LimitDemand
	}
	if !balanceAware || !price.IsPositive() {
		return qty, limit, false
	}

	affordable := int64(0)
	if balance.IsPositive() {
		affordable = balance.Div(price).Floor().IntPart()
	}
	if affordable < qty {
		return affordable, LimitFunds, true
	}
	return qty, limit, false
}
