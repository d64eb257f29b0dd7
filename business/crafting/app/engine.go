package app

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eco-market-bot/business/crafting/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

var hundred = decimal.NewFromInt(100)

// EngineConfig holds the crafting policy.
type EngineConfig struct {
	Resolver ResolverConfig
	// MinUnitProfit is the per-batch profit a variant needs before the cascade runs.
	MinUnitProfit decimal.Decimal
	// MinTotalProfit is the cascaded total a variant needs to be reported.
	MinTotalProfit decimal.Decimal
	// MinProfessionProfit is the theoretical total a variant needs to count for its profession.
	MinProfessionProfit decimal.Decimal
	Cascade             domain.CascadeMode
}

// DefaultEngineConfig returns the standard conservative policy.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Resolver: ResolverConfig{
			Tags:                  domain.DefaultTags(),
			Conservative:          true,
			MinIngredientQuantity: 50,
			MinRecipeBatches:      5,
		},
		MinUnitProfit:       decimal.NewFromInt(1),
		MinTotalProfit:      decimal.NewFromInt(1),
		MinProfessionProfit: decimal.NewFromInt(10),
		Cascade:             domain.CascadeJoint,
	}
}

// Engine turns a recipe catalog and a market snapshot into ranked crafting opportunities.
type Engine struct {
	cfg         EngineConfig
	resolver    *Resolver
	theoretical *Resolver
	log         logger.LoggerInterface
}

// NewEngine creates a crafting engine.
func NewEngine(cfg EngineConfig, log logger.LoggerInterface) *Engine {
	loose := cfg.Resolver
	loose.Conservative = false

	return &Engine{
		cfg:         cfg,
		resolver:    NewResolver(cfg.Resolver),
		theoretical: NewResolver(loose),
		log:         log,
	}
}

// Config returns the engine policy.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// FindOpportunities ranks variants by demand-cascaded total profit, bounded by
// how many batches the ingredients on sale allow.
func (e *Engine) FindOpportunities(ctx context.Context, recipes []domain.Recipe, snap *marketDomain.Snapshot) []domain.Opportunity {
	var out []domain.Opportunity

	e.eachVariant(ctx, recipes, func(r domain.Recipe, v domain.Variant) {
		res := e.resolver.Resolve(v, snap)
		if !res.OK() {
			e.log.Debug(ctx, "variant excluded", "recipe", r.Key, "variant", v.Name, "missing", missingList(res.Missing))
			return
		}

		profit := res.Revenue.Sub(res.Cost)
		if profit.LessThan(e.cfg.MinUnitProfit) {
			return
		}

		byIngredients := domain.Unbounded
		for _, ing := range res.Ingredients {
			byIngredients = domain.MinBatches(byIngredients, ing.MaxBatches)
		}

		opp := newOpportunity(r, v, res, byIngredients, e.cfg.Cascade)
		if opp.TotalPossibleProfit.LessThan(e.cfg.MinTotalProfit) {
			return
		}
		out = append(out, opp)
	})

	sortByTotal(out)
	return out
}

// FindTheoretical ranks variants as if every ingredient could be bought in any quantity.
// Only variants with a required skill and a positive unit profit are kept.
func (e *Engine) FindTheoretical(ctx context.Context, recipes []domain.Recipe, snap *marketDomain.Snapshot) []domain.Opportunity {
	var out []domain.Opportunity

	e.eachVariant(ctx, recipes, func(r domain.Recipe, v domain.Variant) {
		if r.PrimaryProfession() == "" {
			return
		}
		res := e.theoretical.Resolve(v, snap)
		if !res.OK() {
			e.log.Debug(ctx, "variant excluded", "recipe", r.Key, "variant", v.Name, "missing", missingList(res.Missing))
			return
		}
		if !res.Revenue.Sub(res.Cost).IsPositive() {
			return
		}
		out = append(out, newOpportunity(r, v, res, domain.Unbounded, e.cfg.Cascade))
	})

	sortByTotal(out)
	return out
}

// Professions groups theoretical opportunities at or above the profession threshold
// by primary profession, highest total first.
func (e *Engine) Professions(ctx context.Context, recipes []domain.Recipe, snap *marketDomain.Snapshot) []domain.ProfessionSummary {
	return GroupByProfession(e.FindTheoretical(ctx, recipes, snap), e.cfg.MinProfessionProfit)
}

// GroupByProfession summarizes opps per primary profession. opps must be sorted best first.
func GroupByProfession(opps []domain.Opportunity, minProfit decimal.Decimal) []domain.ProfessionSummary {
	index := make(map[string]int)
	var out []domain.ProfessionSummary

	for _, o := range opps {
		if o.TotalPossibleProfit.LessThan(minProfit) {
			continue
		}
		name := o.Profession()
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, domain.ProfessionSummary{Profession: name, Best: o})
		}
		s := &out[i]
		s.Opportunities = append(s.Opportunities, o)
		s.TotalProfit = s.TotalProfit.Add(o.TotalPossibleProfit)
		s.RecipeCount++
	}

	for i := range out {
		out[i].AverageProfit = out[i].TotalProfit.Div(decimal.NewFromInt(int64(out[i].RecipeCount)))
	}

	slices.SortStableFunc(out, func(a, b domain.ProfessionSummary) int {
		return b.TotalProfit.Cmp(a.TotalProfit)
	})
	return out
}

func (e *Engine) eachVariant(ctx context.Context, recipes []domain.Recipe, fn func(domain.Recipe, domain.Variant)) {
	for _, r := range recipes {
		if r.IsDenied() {
			continue
		}
		for _, v := range r.Variants {
			if len(v.Ingredients) == 0 || len(v.Products) == 0 {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			fn(r, v)
		}
	}
}

func newOpportunity(r domain.Recipe, v domain.Variant, res Resolution, byIngredients int64, mode domain.CascadeMode) domain.Opportunity {
	profit := res.Revenue.Sub(res.Cost)
	margin := decimal.Zero
	if res.Cost.IsPositive() {
		margin = profit.Div(res.Cost).Mul(hundred)
	}

	cascade := domain.Cascade(res.Products, res.Cost, byIngredients, mode)

	products := slices.Clone(res.Products)
	var demand int64
	for i := range products {
		products[i].Fills = cascade.Fills[i]
		demand += products[i].TotalDemand
	}

	return domain.Opportunity{
		Recipe:                  r.Key,
		Variant:                 v.Name,
		CraftingTable:           r.CraftingTable,
		Skills:                  r.SkillNeeds,
		CraftTime:               r.CraftTime(),
		LaborCost:               r.BaseLaborCost,
		IngredientCost:          res.Cost,
		Revenue:                 res.Revenue,
		UnitProfit:              profit,
		Margin:                  margin,
		ProfitPerSecond:         r.ProfitPerSecond(profit),
		Ingredients:             res.Ingredients,
		Products:                products,
		MaxBatchesByIngredients: byIngredients,
		MaxBatchesByDemand:      cascade.BatchesSold,
		MaxCraftableBatches:     domain.MinBatches(byIngredients, cascade.BatchesSold),
		TotalPossibleProfit:     cascade.Profit,
		TotalDemand:             demand,
	}
}

func sortByTotal(opps []domain.Opportunity) {
	slices.SortStableFunc(opps, func(a, b domain.Opportunity) int {
		return b.TotalPossibleProfit.Cmp(a.TotalPossibleProfit)
	})
}

func missingList(missing []domain.Exclusion) []string {
	out := make([]string, 0, len(missing))
	for _, m := range missing {
		out = append(out, m.String())
	}
	return out
}
