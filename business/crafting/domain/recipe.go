// Package domain contains the recipe catalog model and the crafting opportunity types.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RecipesPayload is the recipes endpoint response.
type RecipesPayload struct {
	Recipes []Recipe `json:"Recipes"`
}

// Recipe is a named crafting transformation with one or more variants.
type Recipe struct {
	Key           string              `json:"Key"`
	BaseCraftTime decimal.NullDecimal `json:"BaseCraftTime"`
	BaseLaborCost decimal.Decimal     `json:"BaseLaborCost"`
	CraftingTable string              `json:"CraftingTable"`
	SkillNeeds    []SkillNeed         `json:"SkillNeeds"`
	Variants      []Variant           `json:"Variants"`
}

// SkillNeed is a required skill level.
type SkillNeed struct {
	Skill string `json:"Skill"`
	Level int    `json:"Level"`
}

// Variant is one concrete ingredient/product list of a recipe.
type Variant struct {
	Name        string       `json:"Name"`
	Ingredients []Ingredient `json:"Ingredients"`
	Products    []Product    `json:"Products"`
}

// Ingredient is either a specific item or a tag standing for a class of items.
// The upstream field is spelled "Ammount".
type Ingredient struct {
	IsSpecificItem bool            `json:"IsSpecificItem"`
	Name           string          `json:"Name"`
	Tag            string          `json:"Tag"`
	Amount         decimal.Decimal `json:"Ammount"`
}

// Label returns the item name, or the tag for tag ingredients.
func (i Ingredient) Label() string {
	if i.IsSpecificItem || i.Tag == "" {
		return i.Name
	}
	return i.Tag
}

// Product is an output of a variant.
type Product struct {
	Name   string          `json:"Name"`
	Amount decimal.Decimal `json:"Ammount"`
}

var (
	defaultCraftTime = decimal.NewFromInt(1)
	minCraftTime     = decimal.NewFromFloat(0.1)
)

// CraftTime returns the base craft time in seconds, 1 when absent.
func (r Recipe) CraftTime() decimal.Decimal {
	if !r.BaseCraftTime.Valid {
		return defaultCraftTime
	}
	return r.BaseCraftTime.Decimal
}

// ProfitPerSecond divides profit by the craft time, floored at 0.1s.
func (r Recipe) ProfitPerSecond(profit decimal.Decimal) decimal.Decimal {
	return profit.Div(decimal.Max(r.CraftTime(), minCraftTime))
}

// PrimaryProfession is the first listed skill, or "" when none is needed.
func (r Recipe) PrimaryProfession() string {
	if len(r.SkillNeeds) == 0 {
		return ""
	}
	return r.SkillNeeds[0].Skill
}

// deniedWords mark recipes that are never worth crafting for sale.
var deniedWords = []string{"skill book", "research paper"}

// IsDenied reports whether the recipe name is on the deny-list.
func (r Recipe) IsDenied() bool {
	name := strings.ToLower(r.Key)
	for _, w := range deniedWords {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}
