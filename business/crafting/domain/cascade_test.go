package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(name, amount string, buyers ...Buyer) ProductDetail {
	return ProductDetail{Name: name, Amount: d(amount), Buyers: buyers}
}

func buyer(store, price string, qty int64) Buyer {
	return Buyer{Store: store, Price: d(price), Quantity: qty}
}

func TestCascade_SingleProduct(t *testing.T) {
	tests := []struct {
		name        string
		product     ProductDetail
		cost        string
		maxBatches  int64
		wantSold    int64
		wantProfit  string
		wantBatches []int64
	}{
		{
			name:        "stone_axe_single_buyer",
			product:     product("Stone Axe", "1", buyer("B", "10", 20)),
			cost:        "4",
			maxBatches:  100,
			wantSold:    20,
			wantProfit:  "120",
			wantBatches: []int64{20},
		},
		{
			name: "fills_in_price_order_until_ingredients_run_out",
			product: product("Stone Axe", "1",
				buyer("B1", "10", 5),
				buyer("B2", "8", 10),
				buyer("B3", "6", 100)),
			cost:        "4",
			maxBatches:  12,
			wantSold:    12,
			wantProfit:  "58", // 6*5 + 4*7
			wantBatches: []int64{5, 7},
		},
		{
			name: "keeps_selling_below_cost_until_demand_runs_out",
			product: product("Stone Axe", "1",
				buyer("B1", "10", 20),
				buyer("B2", "3", 10)),
			cost:        "4",
			maxBatches:  100,
			wantSold:    30,
			wantProfit:  "110", // 6*20 - 1*10
			wantBatches: []int64{20, 10},
		},
		{
			name: "buyer_capacity_is_floor_of_demand_over_amount",
			product: product("Brick", "2",
				buyer("B1", "5", 5),
				buyer("B2", "4", 1)), // cannot take a whole batch
			cost:        "2",
			maxBatches:  Unbounded,
			wantSold:    2,
			wantProfit:  "16", // (5-1)*2*2
			wantBatches: []int64{2},
		},
		{
			name:        "unbounded_sells_all_demand",
			product:     product("Stone Axe", "1", buyer("B1", "10", 5), buyer("B2", "8", 10)),
			cost:        "4",
			maxBatches:  Unbounded,
			wantSold:    15,
			wantProfit:  "70",
			wantBatches: []int64{5, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Cascade([]ProductDetail{tt.product}, d(tt.cost), tt.maxBatches, CascadeJoint)

			assert.Equal(t, tt.wantSold, res.BatchesSold)
			assert.True(t, res.Profit.Equal(d(tt.wantProfit)), "profit = %s, want %s", res.Profit, tt.wantProfit)
			require.Len(t, res.Fills, 1)
			require.Len(t, res.Fills[0], len(tt.wantBatches))
			for i, f := range res.Fills[0] {
				assert.Equal(t, tt.wantBatches[i], f.Batches)
				capacity := decimal.NewFromInt(f.Demand).Div(tt.product.Amount).Floor().IntPart()
				assert.LessOrEqual(t, f.Batches, capacity)
			}
			if tt.maxBatches != Unbounded {
				assert.LessOrEqual(t, res.BatchesSold, tt.maxBatches)
			}
		})
	}
}

func TestCascade_MultiProduct(t *testing.T) {
	products := []ProductDetail{
		product("Tallow", "1", buyer("A", "5", 10)),
		product("Leather", "1", buyer("B", "3", 4)),
	}
	cost := d("4") // 2 per unit over two units

	joint := Cascade(products, cost, 100, CascadeJoint)
	assert.Equal(t, int64(4), joint.BatchesSold)
	assert.True(t, joint.Profit.Equal(d("16")), "joint profit = %s", joint.Profit) // 3*4 + 1*4

	legacy := Cascade(products, cost, 100, CascadeLegacy)
	assert.Equal(t, int64(10), legacy.BatchesSold)
	assert.True(t, legacy.Profit.Equal(d("34")), "legacy profit = %s", legacy.Profit) // 3*10 + 1*4
}

func TestCascade_ByProductBelowCost(t *testing.T) {
	products := []ProductDetail{
		product("Iron Bar", "1", buyer("Forge", "10", 20)),
		product("Slag", "1", buyer("Dump", "0.50", 100)),
	}
	cost := d("4") // 2 per unit over two units

	joint := Cascade(products, cost, 250, CascadeJoint)
	assert.Equal(t, int64(20), joint.BatchesSold)
	assert.True(t, joint.Profit.Equal(d("130")), "joint profit = %s", joint.Profit) // 8*20 - 1.5*20
	require.Len(t, joint.Fills, 2)
	require.Len(t, joint.Fills[1], 1)
	assert.Equal(t, int64(20), joint.Fills[1][0].Batches)
	assert.True(t, joint.Fills[1][0].ProfitPerUnit.Equal(d("-1.5")))

	legacy := Cascade(products, cost, 250, CascadeLegacy)
	assert.Equal(t, int64(100), legacy.BatchesSold)
	assert.True(t, legacy.Profit.Equal(d("10")), "legacy profit = %s", legacy.Profit) // 8*20 - 1.5*100

	capped := Cascade(products, cost, 12, CascadeJoint)
	assert.Equal(t, int64(12), capped.BatchesSold)
	assert.True(t, capped.Profit.Equal(d("78")), "capped profit = %s", capped.Profit) // 6.5*12
}

func TestCascade_Empty(t *testing.T) {
	res := Cascade(nil, d("1"), 10, CascadeJoint)
	assert.Zero(t, res.BatchesSold)
	assert.True(t, res.Profit.IsZero())
}

func TestMinBatches(t *testing.T) {
	assert.Equal(t, int64(3), MinBatches(Unbounded, 3))
	assert.Equal(t, int64(3), MinBatches(3, Unbounded))
	assert.Equal(t, int64(2), MinBatches(2, 3))
	assert.Equal(t, Unbounded, MinBatches(Unbounded, Unbounded))
}

func TestRecipe(t *testing.T) {
	r := Recipe{Key: "Basic Research Paper"}
	assert.True(t, r.IsDenied())
	assert.True(t, Recipe{Key: "Advanced Skill Book"}.IsDenied())
	assert.False(t, Recipe{Key: "Stone Axe"}.IsDenied())

	assert.True(t, r.CraftTime().Equal(d("1")))
	fast := Recipe{BaseCraftTime: decimal.NewNullDecimal(d("0.05"))}
	assert.True(t, fast.ProfitPerSecond(d("6")).Equal(d("60")), "craft time floors at 0.1s")
	slow := Recipe{BaseCraftTime: decimal.NewNullDecimal(d("2"))}
	assert.True(t, slow.ProfitPerSecond(d("6")).Equal(d("3")))

	assert.Equal(t, "", Recipe{}.PrimaryProfession())
	assert.Equal(t, "Smelting", Recipe{SkillNeeds: []SkillNeed{{Skill: "Smelting"}, {Skill: "Mining"}}}.PrimaryProfession())
}
