package ui

import (
	"github.com/shopspring/decimal"

	arbDomain "github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	craftDomain "github.com/fd1az/eco-market-bot/business/crafting/domain"
	"github.com/fd1az/eco-market-bot/pkg/ui/components"
)

func pairRows(opps []arbDomain.Opportunity) []components.OpportunityRow {
	rows := make([]components.OpportunityRow, 0, len(opps))
	for _, o := range opps {
		rows = append(rows, components.OpportunityRow{
			Item:          o.Item,
			BuyStore:      o.Source.Store,
			BuyPrice:      o.Source.Price,
			SellStore:     o.Destination.Store,
			SellPrice:     o.Destination.Price,
			Quantity:      o.TradableQty,
			Profit:        o.TotalProfit,
			LiquidityRisk: o.LiquidityRisk,
		})
	}
	return rows
}

func freeRows(items []arbDomain.FreeItem) []components.FreeItemRow {
	rows := make([]components.FreeItemRow, 0, len(items))
	for _, f := range items {
		rows = append(rows, components.FreeItemRow{
			Item:      f.Item,
			FromStore: f.Source.Store,
			ToStore:   f.Destination.Store,
			SellPrice: f.Destination.Price,
			Quantity:  f.TradableQty,
			Profit:    f.TotalProfit,
		})
	}
	return rows
}

func craftingRows(opps []craftDomain.Opportunity) []components.CraftingRow {
	rows := make([]components.CraftingRow, 0, len(opps))
	for _, o := range opps {
		name := o.Recipe
		if o.Variant != "" && o.Variant != o.Recipe {
			name = o.Variant
		}
		rows = append(rows, components.CraftingRow{
			Recipe:      name,
			Table:       o.CraftingTable,
			Profession:  o.Profession(),
			UnitProfit:  o.UnitProfit,
			Batches:     o.MaxCraftableBatches,
			TotalProfit: o.TotalPossibleProfit,
			LimitedBy:   craftLimit(o),
		})
	}
	return rows
}

// craftLimit names what caps the batch count.
func craftLimit(o craftDomain.Opportunity) string {
	switch {
	case o.DemandLimited():
		return "demand"
	case o.MaxBatchesByIngredients < o.MaxBatchesByDemand:
		return "ingredients"
	default:
		return ""
	}
}

func topProfit(opps []arbDomain.Opportunity) decimal.Decimal {
	best := decimal.Zero
	for _, o := range opps {
		if o.TotalProfit.GreaterThan(best) {
			best = o.TotalProfit
		}
	}
	return best
}
