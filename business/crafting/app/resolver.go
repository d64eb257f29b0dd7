// Package app contains the recipe resolver, the crafting engine and the crafting service.
package app

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
)

// ResolverConfig holds the availability policy.
type ResolverConfig struct {
	Tags domain.TagTable
	// Conservative enables the ingredient stock gate and the product demand gate.
	Conservative bool
	// MinIngredientQuantity is the absolute stock floor for any ingredient.
	MinIngredientQuantity int64
	// MinRecipeBatches is how many batches stock and demand must support.
	MinRecipeBatches int64
}

// Resolution is a variant priced against a snapshot.
type Resolution struct {
	Ingredients []domain.IngredientDetail
	Cost        decimal.Decimal
	Products    []domain.ProductDetail
	Revenue     decimal.Decimal
	Missing     []domain.Exclusion
}

// OK reports whether every ingredient and product resolved.
func (r Resolution) OK() bool {
	return len(r.Missing) == 0
}

// Resolver prices recipe variants against a market snapshot.
type Resolver struct {
	cfg ResolverConfig
}

// NewResolver creates a resolver. A nil tag table uses the default table.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Tags == nil {
		cfg.Tags = domain.DefaultTags()
	}
	return &Resolver{cfg: cfg}
}

// Config returns the resolver policy.
func (r *Resolver) Config() ResolverConfig {
	return r.cfg
}

// Resolve prices every ingredient at its cheapest seller and every product at its best buyer.
func (r *Resolver) Resolve(v domain.Variant, snap *marketDomain.Snapshot) Resolution {
	var res Resolution

	for _, ing := range v.Ingredients {
		detail, miss, ok := r.resolveIngredient(ing, snap)
		if !ok {
			res.Missing = append(res.Missing, miss)
			continue
		}
		res.Ingredients = append(res.Ingredients, detail)
		res.Cost = res.Cost.Add(detail.Cost)
	}

	for _, p := range v.Products {
		detail, miss, ok := r.resolveProduct(p, snap)
		if !ok {
			res.Missing = append(res.Missing, miss)
			continue
		}
		res.Products = append(res.Products, detail)
		res.Revenue = res.Revenue.Add(detail.Revenue)
	}

	return res
}

func (r *Resolver) resolveIngredient(ing domain.Ingredient, snap *marketDomain.Snapshot) (domain.IngredientDetail, domain.Exclusion, bool) {
	var (
		seller marketDomain.Offer
		found  bool
		tag    string
	)

	if ing.IsSpecificItem || ing.Tag == "" {
		seller, found = snap.Item(ing.Name).CheapestSeller()
		if !found {
			return domain.IngredientDetail{}, domain.Exclusion{Reason: domain.ReasonNoSellers, Item: ing.Name}, false
		}
	} else {
		tag = ing.Tag
		candidates, known := r.cfg.Tags.Candidates(tag)
		if !known {
			return domain.IngredientDetail{}, domain.Exclusion{Reason: domain.ReasonUnknownTag, Item: tag}, false
		}
		seller, found = cheapestCandidate(candidates, snap)
		if !found {
			return domain.IngredientDetail{}, domain.Exclusion{Reason: domain.ReasonNoCandidate, Item: tag}, false
		}
	}

	if r.cfg.Conservative {
		need := r.requiredStock(ing.Amount)
		if decimal.NewFromInt(seller.Quantity).LessThan(need) {
			return domain.IngredientDetail{}, domain.Exclusion{
				Reason: domain.ReasonInsufficient,
				Item:   seller.Item,
				Detail: fmt.Sprintf("need %s, have %d", need.String(), seller.Quantity),
			}, false
		}
	}

	return domain.IngredientDetail{
		Name:       seller.Item,
		Tag:        tag,
		Amount:     ing.Amount,
		UnitPrice:  seller.Price,
		Cost:       seller.Price.Mul(ing.Amount),
		Store:      seller.Store,
		Available:  seller.Quantity,
		MaxBatches: batchesOf(seller.Quantity, ing.Amount),
	}, domain.Exclusion{}, true
}

// requiredStock is max(MinIngredientQuantity, amount * MinRecipeBatches).
func (r *Resolver) requiredStock(amount decimal.Decimal) decimal.Decimal {
	return decimal.Max(
		decimal.NewFromInt(r.cfg.MinIngredientQuantity),
		amount.Mul(decimal.NewFromInt(r.cfg.MinRecipeBatches)),
	)
}

// cheapestCandidate picks the lowest-priced seller across candidates. Ties keep table order.
func cheapestCandidate(candidates []string, snap *marketDomain.Snapshot) (marketDomain.Offer, bool) {
	var (
		best  marketDomain.Offer
		found bool
	)
	for _, item := range candidates {
		o, ok := snap.Item(item).CheapestSeller()
		if !ok {
			continue
		}
		if !found || o.Price.LessThan(best.Price) {
			best, found = o, true
		}
	}
	return best, found
}

func (r *Resolver) resolveProduct(p domain.Product, snap *marketDomain.Snapshot) (domain.ProductDetail, domain.Exclusion, bool) {
	market := snap.Item(p.Name)
	offers := market.BuyersByPrice()
	if len(offers) == 0 {
		return domain.ProductDetail{}, domain.Exclusion{Reason: domain.ReasonNoBuyers, Item: p.Name}, false
	}

	total := market.TotalDemand()
	if r.cfg.Conservative && total < r.cfg.MinRecipeBatches {
		return domain.ProductDetail{}, domain.Exclusion{
			Reason: domain.ReasonLowDemand,
			Item:   p.Name,
			Detail: fmt.Sprintf("demand %d", total),
		}, false
	}

	buyers := make([]domain.Buyer, 0, len(offers))
	for _, o := range offers {
		buyers = append(buyers, domain.Buyer{Store: o.Store, Price: o.Price, Quantity: o.Quantity})
	}
	best := buyers[0]

	return domain.ProductDetail{
		Name:        p.Name,
		Amount:      p.Amount,
		BestPrice:   best.Price,
		BestStore:   best.Store,
		BestDemand:  best.Quantity,
		TotalDemand: total,
		Revenue:     best.Price.Mul(p.Amount),
		Buyers:      buyers,
	}, domain.Exclusion{}, true
}

// batchesOf returns floor(qty / amount), 0 for a non-positive amount.
func batchesOf(qty int64, amount decimal.Decimal) int64 {
	if !amount.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(qty).Div(amount).Floor().IntPart()
}
