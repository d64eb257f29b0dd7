package domain

import "github.com/shopspring/decimal"

// CascadeMode selects how multi-product variants are constrained by demand.
type CascadeMode string

const (
	// CascadeJoint sells the same batch count of every product.
	CascadeJoint CascadeMode = "joint"
	// CascadeLegacy cascades each product on its own and takes the largest batch count.
	CascadeLegacy CascadeMode = "legacy"
)

// ParseCascadeMode maps a config value to a mode, defaulting to joint.
func ParseCascadeMode(s string) CascadeMode {
	if CascadeMode(s) == CascadeLegacy {
		return CascadeLegacy
	}
	return CascadeJoint
}

// CascadeResult is the outcome of filling buyer orders.
type CascadeResult struct {
	// Fills holds the per-buyer fills of each product, indexed like the products.
	Fills       [][]BuyerFill
	BatchesSold int64
	Profit      decimal.Decimal
}

// Cascade fills buyer orders in descending price order, selling at most maxBatches
// batches (Unbounded for no limit). Each unit earns the buyer price minus the
// ingredient cost spread over all product units of one batch, which may be negative.
// Filling stops when the batches run out or the buyers do.
//
// In joint mode every product is sold the same number of batches: the smallest
// demand capacity across products.
func Cascade(products []ProductDetail, cost decimal.Decimal, maxBatches int64, mode CascadeMode) CascadeResult {
	if len(products) == 0 {
		return CascadeResult{}
	}

	units := decimal.Zero
	for _, p := range products {
		units = units.Add(p.Amount)
	}
	if !units.IsPositive() {
		return CascadeResult{}
	}
	costPerUnit := cost.Div(units)

	if mode == CascadeJoint && len(products) > 1 {
		limit := maxBatches
		for _, p := range products {
			limit = MinBatches(limit, demandCapacity(p, maxBatches))
		}
		return cascadeAll(products, costPerUnit, limit, func(acc, sold int64) int64 { return sold })
	}

	return cascadeAll(products, costPerUnit, maxBatches, func(acc, sold int64) int64 {
		if sold > acc {
			return sold
		}
		return acc
	})
}

func cascadeAll(products []ProductDetail, costPerUnit decimal.Decimal, maxBatches int64, combine func(acc, sold int64) int64) CascadeResult {
	res := CascadeResult{Fills: make([][]BuyerFill, len(products))}
	for i, p := range products {
		fills, sold, profit := cascadeProduct(p, costPerUnit, maxBatches)
		res.Fills[i] = fills
		res.BatchesSold = combine(res.BatchesSold, sold)
		res.Profit = res.Profit.Add(profit)
	}
	return res
}

func cascadeProduct(p ProductDetail, costPerUnit decimal.Decimal, maxBatches int64) ([]BuyerFill, int64, decimal.Decimal) {
	var (
		fills     []BuyerFill
		sold      int64
		profit    = decimal.Zero
		remaining = maxBatches
	)
	if !p.Amount.IsPositive() {
		return nil, 0, profit
	}

	for _, b := range p.Buyers {
		if remaining == 0 {
			break
		}
		capacity := buyerCapacity(b, p.Amount)
		if capacity <= 0 {
			continue
		}
		perUnit := b.Price.Sub(costPerUnit)
		n := capacity
		if remaining != Unbounded && remaining < n {
			n = remaining
		}

		earned := perUnit.Mul(p.Amount).Mul(decimal.NewFromInt(n))
		fills = append(fills, BuyerFill{
			Store:         b.Store,
			Price:         b.Price,
			Demand:        b.Quantity,
			Batches:       n,
			ProfitPerUnit: perUnit,
			Profit:        earned,
		})
		sold += n
		profit = profit.Add(earned)
		if remaining != Unbounded {
			remaining -= n
		}
	}
	return fills, sold, profit
}

// demandCapacity is how many batches of p its buyers absorb, at most maxBatches.
func demandCapacity(p ProductDetail, maxBatches int64) int64 {
	if !p.Amount.IsPositive() {
		return 0
	}
	var total int64
	for _, b := range p.Buyers {
		total += buyerCapacity(b, p.Amount)
		if maxBatches != Unbounded && total >= maxBatches {
			return maxBatches
		}
	}
	return total
}

// buyerCapacity is floor(demand / amount per batch).
func buyerCapacity(b Buyer, amount decimal.Decimal) int64 {
	return decimal.NewFromInt(b.Quantity).Div(amount).Floor().IntPart()
}

// MinBatches returns the smaller batch count, treating Unbounded as infinite.
func MinBatches(a, b int64) int64 {
	switch {
	case a == Unbounded:
		return b
	case b == Unbounded:
		return a
	case a < b:
		return a
	default:
		return b
	}
}
