package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = (*mockLogger)(nil)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type market struct {
	snap *marketDomain.Snapshot
}

func newMarket() *market {
	return &market{snap: marketDomain.NewSnapshot(marketDomain.SourceMemory, marketDomain.Policy{}, time.Unix(0, 0))}
}

func (m *market) sells(store, item, price string, qty int64) *market {
	m.snap.AddSeller(marketDomain.Offer{Item: item, Store: store, Price: dec(price), Quantity: qty, Direction: marketDomain.Selling})
	return m
}

func (m *market) buys(store, item, price string, qty int64) *market {
	m.snap.AddBuyer(marketDomain.Offer{Item: item, Store: store, Price: dec(price), Quantity: qty, Direction: marketDomain.Buying})
	return m
}

func item(name, amount string) domain.Ingredient {
	return domain.Ingredient{IsSpecificItem: true, Name: name, Amount: dec(amount)}
}

func tag(name, amount string) domain.Ingredient {
	return domain.Ingredient{Tag: name, Amount: dec(amount)}
}

func output(name, amount string) domain.Product {
	return domain.Product{Name: name, Amount: dec(amount)}
}

func recipe(key, skill string, ingredients []domain.Ingredient, products ...domain.Product) domain.Recipe {
	r := domain.Recipe{
		Key:           key,
		CraftingTable: "Workbench",
		Variants:      []domain.Variant{{Name: key, Ingredients: ingredients, Products: products}},
	}
	if skill != "" {
		r.SkillNeeds = []domain.SkillNeed{{Skill: skill, Level: 1}}
	}
	return r
}

// stoneAxeMarket lists Lumber, Board and Iron Bar for sale and one Stone Axe buyer.
func stoneAxeMarket() *market {
	return newMarket().
		sells("Mill", "Lumber", "1.00", 200).
		sells("Mill", "Board", "1.50", 200).
		sells("Forge", "Iron Bar", "2.00", 200).
		buys("Outfitter", "Stone Axe", "10.00", 20)
}

func stoneAxe() domain.Recipe {
	return recipe("Stone Axe", "Logging",
		[]domain.Ingredient{tag("Wood", "2"), item("Iron Bar", "1")},
		output("Stone Axe", "1"))
}
