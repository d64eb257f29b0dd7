package domain

import (
	"github.com/shopspring/decimal"
)

// Unbounded marks a batch count with no limit, as in theoretical mode.
const Unbounded int64 = -1

// IngredientDetail is a resolved ingredient.
type IngredientDetail struct {
	Name      string // concrete item bought
	Tag       string // tag it was resolved from, if any
	Amount    decimal.Decimal
	UnitPrice decimal.Decimal
	Cost      decimal.Decimal // UnitPrice * Amount
	Store     string
	Available int64
	// MaxBatches is floor(Available / Amount).
	MaxBatches int64
}

// BuyerFill is the part of the cascade sold to one buyer.
type BuyerFill struct {
	Store         string
	Price         decimal.Decimal
	Demand        int64
	Batches       int64
	ProfitPerUnit decimal.Decimal
	Profit        decimal.Decimal
}

// ProductDetail is a resolved product with its buyers, best price first.
type ProductDetail struct {
	Name        string
	Amount      decimal.Decimal
	BestPrice   decimal.Decimal
	BestStore   string
	BestDemand  int64
	TotalDemand int64
	Revenue     decimal.Decimal // BestPrice * Amount
	Buyers      []Buyer
	Fills       []BuyerFill
}

// Buyer is one qualifying buy order for a product.
type Buyer struct {
	Store    string
	Price    decimal.Decimal
	Quantity int64
}

// Opportunity is a profitable recipe variant. It is built once per run.
type Opportunity struct {
	Recipe        string
	Variant       string
	CraftingTable string
	Skills        []SkillNeed
	CraftTime     decimal.Decimal
	LaborCost     decimal.Decimal

	IngredientCost  decimal.Decimal
	Revenue         decimal.Decimal
	UnitProfit      decimal.Decimal
	Margin          decimal.Decimal // percent of the ingredient cost, 0 when free
	ProfitPerSecond decimal.Decimal

	Ingredients []IngredientDetail
	Products    []ProductDetail

	MaxBatchesByIngredients int64 // Unbounded in theoretical mode
	MaxBatchesByDemand      int64
	MaxCraftableBatches     int64
	TotalPossibleProfit     decimal.Decimal
	TotalDemand             int64
}

// Profession returns the primary profession, the first skill listed.
func (o Opportunity) Profession() string {
	if len(o.Skills) == 0 {
		return ""
	}
	return o.Skills[0].Skill
}

// DemandLimited reports whether buyers, not ingredients, capped the batches.
func (o Opportunity) DemandLimited() bool {
	if o.MaxBatchesByIngredients == Unbounded {
		return true
	}
	return o.MaxBatchesByDemand < o.MaxBatchesByIngredients
}

// ProfessionSummary groups the opportunities of one primary profession.
type ProfessionSummary struct {
	Profession    string
	TotalProfit   decimal.Decimal
	RecipeCount   int
	AverageProfit decimal.Decimal
	Best          Opportunity
	// Opportunities are sorted by total possible profit, best first.
	Opportunities []Opportunity
}

// Top returns at most n of the summary's opportunities.
func (s ProfessionSummary) Top(n int) []Opportunity {
	if n <= 0 || n >= len(s.Opportunities) {
		return s.Opportunities
	}
	return s.Opportunities[:n]
}
