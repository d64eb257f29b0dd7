package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
)

func conservativeResolver() *Resolver {
	return NewResolver(DefaultEngineConfig().Resolver)
}

func TestResolver_Resolve(t *testing.T) {
	res := conservativeResolver().Resolve(stoneAxe().Variants[0], stoneAxeMarket().snap)

	require.True(t, res.OK(), "missing: %v", res.Missing)
	assert.True(t, res.Cost.Equal(dec("4")), "cost = %s", res.Cost)
	assert.True(t, res.Revenue.Equal(dec("10")), "revenue = %s", res.Revenue)

	require.Len(t, res.Ingredients, 2)
	wood := res.Ingredients[0]
	assert.Equal(t, "Lumber", wood.Name)
	assert.Equal(t, "Wood", wood.Tag)
	assert.Equal(t, int64(100), wood.MaxBatches)
	assert.Equal(t, int64(200), res.Ingredients[1].MaxBatches)

	require.Len(t, res.Products, 1)
	assert.Equal(t, "Outfitter", res.Products[0].BestStore)
	assert.Equal(t, int64(20), res.Products[0].TotalDemand)
}

func TestResolver_TagPicksCheapestCandidate(t *testing.T) {
	m := newMarket().
		sells("Quarry", "Stone", "0.50", 500).
		sells("Quarry", "Granite", "0.30", 500).
		sells("Other", "Granite", "0.40", 500).
		buys("Mason", "Brick", "5", 100)

	r := recipe("Brick", "Masonry", []domain.Ingredient{tag("Rock", "4")}, output("Brick", "1"))
	res := conservativeResolver().Resolve(r.Variants[0], m.snap)

	require.True(t, res.OK())
	assert.Equal(t, "Granite", res.Ingredients[0].Name)
	assert.Equal(t, "Quarry", res.Ingredients[0].Store)
	assert.True(t, res.Ingredients[0].UnitPrice.Equal(dec("0.30")))
	assert.True(t, res.Cost.Equal(dec("1.2")))
}

func TestResolver_Exclusions(t *testing.T) {
	tests := []struct {
		name       string
		market     *market
		recipe     domain.Recipe
		wantReason domain.Reason
	}{
		{
			name:       "ingredient_without_seller",
			market:     newMarket().buys("B", "Copper Axe", "10", 10),
			recipe:     recipe("Copper Axe", "", []domain.Ingredient{item("Copper Bar", "1")}, output("Copper Axe", "1")),
			wantReason: domain.ReasonNoSellers,
		},
		{
			name:       "unknown_tag",
			market:     newMarket().buys("B", "Rug", "10", 10),
			recipe:     recipe("Rug", "", []domain.Ingredient{tag("Fabric", "1")}, output("Rug", "1")),
			wantReason: domain.ReasonUnknownTag,
		},
		{
			name:       "tag_with_no_candidate_for_sale",
			market:     newMarket().buys("B", "Lamp", "10", 10),
			recipe:     recipe("Lamp", "", []domain.Ingredient{tag("Oil", "1")}, output("Lamp", "1")),
			wantReason: domain.ReasonNoCandidate,
		},
		{
			name:       "stock_below_absolute_floor",
			market:     newMarket().sells("S", "Iron Bar", "1", 49).buys("B", "Nail", "5", 100),
			recipe:     recipe("Nail", "", []domain.Ingredient{item("Iron Bar", "1")}, output("Nail", "1")),
			wantReason: domain.ReasonInsufficient,
		},
		{
			name:       "stock_below_batch_floor",
			market:     newMarket().sells("S", "Iron Bar", "1", 99).buys("B", "Anvil", "500", 100),
			recipe:     recipe("Anvil", "", []domain.Ingredient{item("Iron Bar", "20")}, output("Anvil", "1")),
			wantReason: domain.ReasonInsufficient,
		},
		{
			name:       "product_without_buyer",
			market:     newMarket().sells("S", "Iron Bar", "1", 500),
			recipe:     recipe("Nail", "", []domain.Ingredient{item("Iron Bar", "1")}, output("Nail", "1")),
			wantReason: domain.ReasonNoBuyers,
		},
		{
			name:       "product_demand_below_batches",
			market:     newMarket().sells("S", "Iron Bar", "1", 500).buys("B", "Nail", "5", 2).buys("C", "Nail", "4", 2),
			recipe:     recipe("Nail", "", []domain.Ingredient{item("Iron Bar", "1")}, output("Nail", "1")),
			wantReason: domain.ReasonLowDemand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := conservativeResolver().Resolve(tt.recipe.Variants[0], tt.market.snap)
			require.False(t, res.OK())
			assert.Equal(t, tt.wantReason, res.Missing[0].Reason)
		})
	}
}

func TestResolver_TheoreticalIgnoresStock(t *testing.T) {
	cfg := DefaultEngineConfig().Resolver
	cfg.Conservative = false

	m := newMarket().sells("S", "Iron Bar", "1", 3).buys("B", "Nail", "5", 1)
	r := recipe("Nail", "", []domain.Ingredient{item("Iron Bar", "1")}, output("Nail", "1"))

	res := NewResolver(cfg).Resolve(r.Variants[0], m.snap)
	assert.True(t, res.OK(), "missing: %v", res.Missing)
}
