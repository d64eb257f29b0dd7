package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultEngineConfig(), &mockLogger{})
}

func TestEngine_FindOpportunities_StoneAxe(t *testing.T) {
	opps := newTestEngine().FindOpportunities(context.Background(), []domain.Recipe{stoneAxe()}, stoneAxeMarket().snap)

	require.Len(t, opps, 1)
	o := opps[0]
	assert.Equal(t, "Stone Axe", o.Variant)
	assert.True(t, o.IngredientCost.Equal(dec("4")))
	assert.True(t, o.UnitProfit.Equal(dec("6")))
	assert.True(t, o.Margin.Equal(dec("150")))
	assert.Equal(t, int64(100), o.MaxBatchesByIngredients)
	assert.Equal(t, int64(20), o.MaxBatchesByDemand)
	assert.Equal(t, int64(20), o.MaxCraftableBatches)
	assert.True(t, o.TotalPossibleProfit.Equal(dec("120")), "total = %s", o.TotalPossibleProfit)
	assert.True(t, o.DemandLimited())
	assert.Equal(t, "Logging", o.Profession())
	require.Len(t, o.Products[0].Fills, 1)
	assert.Equal(t, int64(20), o.Products[0].Fills[0].Batches)
}

func TestEngine_FindOpportunities_Filters(t *testing.T) {
	m := stoneAxeMarket().
		buys("Outfitter", "Research Paper", "100", 100).
		buys("Cheap", "Stick", "1.50", 100).
		buys("Smithy", "Copper Axe", "50", 100)

	recipes := []domain.Recipe{
		stoneAxe(),
		recipe("Basic Research Paper", "", []domain.Ingredient{item("Iron Bar", "1")}, output("Research Paper", "1")),
		recipe("Stick", "", []domain.Ingredient{item("Iron Bar", "1")}, output("Stick", "1")), // unit profit -0.5
		recipe("Copper Axe", "", []domain.Ingredient{item("Copper Bar", "1")}, output("Copper Axe", "1")),
		{Key: "Empty", Variants: []domain.Variant{{Name: "Empty"}}},
	}

	opps := newTestEngine().FindOpportunities(context.Background(), recipes, m.snap)

	require.Len(t, opps, 1)
	assert.Equal(t, "Stone Axe", opps[0].Recipe)
}

func TestEngine_FindOpportunities_SortedByTotal(t *testing.T) {
	m := stoneAxeMarket().buys("Smithy", "Nail", "3.00", 1000)
	recipes := []domain.Recipe{
		stoneAxe(),
		recipe("Nail", "Smithing", []domain.Ingredient{item("Iron Bar", "1")}, output("Nail", "1")),
	}

	opps := newTestEngine().FindOpportunities(context.Background(), recipes, m.snap)

	require.Len(t, opps, 2)
	// Nail: 1 per batch, 200 batches of iron, demand 1000 -> 200.
	assert.Equal(t, "Nail", opps[0].Recipe)
	assert.True(t, opps[0].TotalPossibleProfit.Equal(dec("200")))
	assert.False(t, opps[0].DemandLimited())
	assert.Equal(t, "Stone Axe", opps[1].Recipe)
}

func TestEngine_FindOpportunities_ByProductBelowCost(t *testing.T) {
	m := newMarket().
		sells("Mine", "Iron Ore", "2", 500).
		buys("Forge", "Iron Bar", "10", 20).
		buys("Dump", "Slag", "0.50", 100)
	smelt := recipe("Iron Bar", "Smelting",
		[]domain.Ingredient{item("Iron Ore", "2")},
		output("Iron Bar", "1"), output("Slag", "1"))

	opps := newTestEngine().FindOpportunities(context.Background(), []domain.Recipe{smelt}, m.snap)

	require.Len(t, opps, 1)
	o := opps[0]
	assert.True(t, o.UnitProfit.Equal(dec("6.5")), "unit = %s", o.UnitProfit)
	assert.Equal(t, int64(250), o.MaxBatchesByIngredients)
	assert.Equal(t, int64(20), o.MaxBatchesByDemand)
	assert.Equal(t, int64(20), o.MaxCraftableBatches)
	assert.True(t, o.TotalPossibleProfit.Equal(dec("130")), "total = %s", o.TotalPossibleProfit)
	require.Len(t, o.Products, 2)
	require.Len(t, o.Products[1].Fills, 1)
	assert.Equal(t, int64(20), o.Products[1].Fills[0].Batches)

	cfg := DefaultEngineConfig()
	cfg.Cascade = domain.CascadeLegacy
	legacy := NewEngine(cfg, &mockLogger{}).FindOpportunities(context.Background(), []domain.Recipe{smelt}, m.snap)

	require.Len(t, legacy, 1)
	assert.Equal(t, int64(100), legacy[0].MaxBatchesByDemand)
	assert.True(t, legacy[0].TotalPossibleProfit.Equal(dec("10")), "legacy total = %s", legacy[0].TotalPossibleProfit)
}

func TestEngine_Professions(t *testing.T) {
	m := newMarket().
		sells("Forge", "Iron Bar", "2", 3). // too little stock for the conservative mode
		buys("Smithy", "Nail", "3", 100).
		buys("Smithy", "Hinge", "4", 10).
		buys("Mill", "Plank", "2.5", 10)

	recipes := []domain.Recipe{
		recipe("Nail", "Smithing", []domain.Ingredient{item("Iron Bar", "1")}, output("Nail", "1")),   // 1 * 100 = 100
		recipe("Hinge", "Smithing", []domain.Ingredient{item("Iron Bar", "1")}, output("Hinge", "1")), // 2 * 10 = 20
		recipe("Plank", "Carpentry", []domain.Ingredient{item("Iron Bar", "1")}, output("Plank", "1")), // 0.5 * 10 = 5, below 10
		recipe("Unskilled", "", []domain.Ingredient{item("Iron Bar", "1")}, output("Nail", "1")),
	}

	e := newTestEngine()
	assert.Empty(t, e.FindOpportunities(context.Background(), recipes, m.snap))

	summaries := e.Professions(context.Background(), recipes, m.snap)

	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, "Smithing", s.Profession)
	assert.Equal(t, 2, s.RecipeCount)
	assert.True(t, s.TotalProfit.Equal(dec("120")), "total = %s", s.TotalProfit)
	assert.True(t, s.AverageProfit.Equal(dec("60")))
	assert.Equal(t, "Nail", s.Best.Recipe)
	assert.Equal(t, domain.Unbounded, s.Best.MaxBatchesByIngredients)
	assert.Len(t, s.Top(1), 1)
}

func TestGroupByProfession_OrdersByTotal(t *testing.T) {
	opp := func(profession, total string) domain.Opportunity {
		return domain.Opportunity{
			Skills:              []domain.SkillNeed{{Skill: profession}},
			TotalPossibleProfit: dec(total),
		}
	}

	got := GroupByProfession([]domain.Opportunity{
		opp("Cooking", "90"),
		opp("Mining", "80"),
		opp("Mining", "70"),
		opp("Cooking", "5"),
	}, dec("10"))

	require.Len(t, got, 2)
	assert.Equal(t, "Mining", got[0].Profession)
	assert.True(t, got[0].TotalProfit.Equal(dec("150")))
	assert.Equal(t, "Cooking", got[1].Profession)
	assert.Equal(t, 1, got[1].RecipeCount)
}
