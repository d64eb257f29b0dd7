package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	arbApp "github.com/fd1az/eco-market-bot/business/arbitrage/app"
	arbDomain "github.com/fd1az/eco-market-bot/business/arbitrage/domain"
	craftApp "github.com/fd1az/eco-market-bot/business/crafting/app"
	craftDomain "github.com/fd1az/eco-market-bot/business/crafting/domain"
	marketDomain "github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/business/report/domain"
)

var (
	sirenThreshold           = decimal.NewFromInt(100)
	starThreshold            = decimal.NewFromInt(50)
	professionSirenThreshold = decimal.NewFromInt(1000)
	professionStarThreshold  = decimal.NewFromInt(500)

	grouping = message.NewPrinter(language.English)
)

const helpText = "**Market Bot Commands:**\n" +
	"• `/market` - Get current arbitrage report\n" +
	"• `/help` - Show this help\n" +
	"\n" +
	"Automatic reports sent at :00 and :30 minutes."

// FormatterConfig holds the list limits of each report.
type FormatterConfig struct {
	TopN           int // pairwise list in the analysis report
	CraftingTopN   int
	CategoryTopN   int
	FreeTopN       int
	ProfessionTopN int // opportunities listed per profession

	Categories        arbDomain.CategoryRules
	GoodDealThreshold decimal.Decimal
	MonitorInterval   time.Duration
}

// DefaultFormatterConfig returns the standard report limits.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		TopN:              10,
		CraftingTopN:      20,
		CategoryTopN:      5,
		FreeTopN:          5,
		ProfessionTopN:    3,
		Categories:        arbDomain.DefaultCategoryRules(),
		GoodDealThreshold: decimal.NewFromInt(50),
		MonitorInterval:   5 * time.Minute,
	}
}

// Formatter renders engine results as chat-ready documents.
type Formatter struct {
	cfg FormatterConfig
	now func() time.Time
}

// NewFormatter creates a formatter using the wall clock.
func NewFormatter(cfg FormatterConfig) *Formatter {
	return &Formatter{cfg: cfg, now: time.Now}
}

// WithClock replaces the clock used for report timestamps.
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	f.now = now
	return f
}

// Config returns the formatter limits.
func (f *Formatter) Config() FormatterConfig {
	return f.cfg
}

func (f *Formatter) timestamp() string {
	return f.now().Format("2006-01-02 15:04")
}

func (f *Formatter) clock() string {
	return f.now().Format("15:04:05")
}

// BestPairs renders the recurring market report. Every qualifying
// opportunity is listed; chunking keeps the message sizes in check.
func (f *Formatter) BestPairs(r *arbApp.BestPairs) *domain.Document {
	doc := domain.NewDocument("market report")

	header := fmt.Sprintf("**Market Report** - %s\nFound %d opportunities with >=$%s profit:",
		f.timestamp(), len(r.Opportunities), r.MinTotalProfit.String())
	if note := sourceNote(r.Snapshot); note != "" {
		header += "\n" + note
	}
	doc.Add(header)

	if len(r.Opportunities) == 0 {
		return doc.Add("No profitable opportunities found.")
	}

	for i, o := range r.Opportunities {
		doc.Add(fmt.Sprintf("**%d. %s %s** (%s)%s\n%s", i+1,
			domain.ItemEmoji(o.Item), o.Item, profitHighlight(o.TotalProfit), liquidityWarning(o),
			strings.Join(tradeLines(o), "\n")))
	}
	return doc
}

// Deal renders one monitored deal.
func (f *Formatter) Deal(o arbDomain.Opportunity) string {
	lines := []string{fmt.Sprintf("%s %s (%s)%s",
		domain.ItemEmoji(o.Item), o.Item, profitHighlight(o.TotalProfit), liquidityWarning(o))}
	for _, l := range tradeLines(o) {
		lines = append(lines, "  "+l)
	}
	return strings.Join(lines, "\n")
}

// Deals renders one monitor observation.
func (f *Formatter) Deals(c arbDomain.DealChanges) *domain.Document {
	doc := domain.NewDocument("deal monitor")
	ts := f.clock()
	threshold := f.cfg.GoodDealThreshold.String()

	if c.Initial {
		if len(c.Current) == 0 {
			return doc.Add(fmt.Sprintf("[%s] No good deals found ($%s+ profit). Monitoring...", ts, threshold))
		}
		doc.Add(fmt.Sprintf("[%s] 📊 Current good deals ($%s+ profit):\n%s", ts, threshold, strings.Repeat("=", 60)))
		for i, o := range c.Current {
			doc.Add(fmt.Sprintf("%d. %s", i+1, f.Deal(o)))
		}
		return doc.Add(fmt.Sprintf("Found %d good deals. Monitoring for changes every %s...",
			len(c.Current), humanInterval(f.cfg.MonitorInterval)))
	}

	if !c.HasChanges() {
		return doc.Add(fmt.Sprintf("[%s] 🔄 No changes. Monitoring %d good deals...", ts, len(c.Current)))
	}

	if len(c.Appeared) > 0 {
		doc.Add(fmt.Sprintf("[%s] 🆕 NEW GOOD DEALS:\n%s", ts, strings.Repeat("-", 40)))
		for _, o := range c.Appeared {
			doc.Add(f.Deal(o))
		}
	}
	if len(c.Disappeared) > 0 {
		lines := []string{fmt.Sprintf("[%s] ❌ COMPLETED DEALS:\n%s", ts, strings.Repeat("-", 40))}
		for _, o := range c.Disappeared {
			lines = append(lines, fmt.Sprintf("%s %s (%s profit) - NO LONGER AVAILABLE",
				domain.ItemEmoji(o.Item), o.Item, money(o.TotalProfit)))
		}
		doc.Add(strings.Join(lines, "\n"))
	}
	return doc
}

// Analysis renders the deep pairwise analysis. Category buckets are expected
// uncapped; the formatter shows CategoryTopN of each but counts them all.
func (f *Formatter) Analysis(a *arbApp.Analysis) *domain.Document {
	doc := domain.NewDocument("arbitrage analysis")
	rules := f.cfg.Categories

	header := fmt.Sprintf("ARBITRAGE ANALYSIS\n%s", strings.Repeat("=", 50))
	if note := sourceNote(a.Snapshot); note != "" {
		header += "\n" + note
	}
	doc.Add(header)

	top := limit(a.Pairs, f.cfg.TopN)
	if len(top) == 0 {
		doc.Add("No profitable pairs found.")
	} else {
		doc.Add(fmt.Sprintf("TOP %d MOST PROFITABLE:", len(top)))
	}
	for i, o := range top {
		doc.Add(fmt.Sprintf("%2d. %s\n    BUY:  %s @ %s (qty: %d)\n    SELL: %s @ %s (qty: %d)\n    PROFIT: %s (%s%% margin, %s%% ROI)",
			i+1, o.Item,
			o.Source.Store, money(o.Source.Price), o.Source.Quantity,
			o.Destination.Store, money(o.Destination.Price), o.Destination.Quantity,
			money(o.TotalProfit), o.Margin.StringFixed(1), o.ROI.StringFixed(1)))
	}

	for _, c := range arbDomain.Categories {
		lines := []string{categoryHeading(c, rules)}
		bucket := limit(a.Categories[c], f.cfg.CategoryTopN)
		if len(bucket) == 0 {
			lines = append(lines, "None found.")
		}
		for i, o := range bucket {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, categoryLine(c, o)))
		}
		doc.Add(strings.Join(lines, "\n"))
	}

	if free := limit(a.FreeItems, f.cfg.FreeTopN); len(free) > 0 {
		lines := []string{"FREE ITEMS ARBITRAGE:"}
		for i, fi := range free {
			lines = append(lines, fmt.Sprintf("%d. %s: FREE from %s -> %s at %s (%s profit)",
				i+1, fi.Item, fi.Source.Store, money(fi.Destination.Price), fi.Destination.Store, money(fi.TotalProfit)))
		}
		doc.Add(strings.Join(lines, "\n"))
	}

	return doc.Add(fmt.Sprintf("SUMMARY: %d total opportunities\n%s: %d\n%s: %d\n%s: %d\n%s: %d\nFree items: %d",
		len(a.Pairs),
		summaryLabel(arbDomain.CategoryHighProfit, rules), len(a.Categories[arbDomain.CategoryHighProfit]),
		summaryLabel(arbDomain.CategoryHighROI, rules), len(a.Categories[arbDomain.CategoryHighROI]),
		summaryLabel(arbDomain.CategoryLowRisk, rules), len(a.Categories[arbDomain.CategoryLowRisk]),
		summaryLabel(arbDomain.CategoryBulk, rules), len(a.Categories[arbDomain.CategoryBulk]),
		len(a.FreeItems)))
}

// Crafting renders the conservative crafting report.
func (f *Formatter) Crafting(r *craftApp.Result) *domain.Document {
	doc := domain.NewDocument("crafting report")

	header := fmt.Sprintf("**Crafting Profit Report** - %s\nFound %d profitable crafting opportunities:",
		f.timestamp(), len(r.Opportunities))
	if note := sourceNote(r.Snapshot); note != "" {
		header += "\n" + note
	}
	doc.Add(header)

	if len(r.Opportunities) == 0 {
		return doc.Add("No profitable crafting opportunities found.")
	}

	shown := limit(r.Opportunities, f.cfg.CraftingTopN)
	for i, o := range shown {
		doc.Add(craftingRecord(i+1, o))
	}
	if more := len(r.Opportunities) - len(shown); more > 0 {
		doc.Add(fmt.Sprintf("...and %d more opportunities", more))
	}
	return doc
}

func craftingRecord(rank int, o craftDomain.Opportunity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%d. %s %s** - %s\n", rank, domain.ItemEmoji(o.Variant), o.Variant,
		tiered(o.TotalPossibleProfit, "TOTAL PROFIT", sirenThreshold, starThreshold))
	fmt.Fprintf(&b, "Unit profit: %s | Profit/sec: %s | %s%% margin\n",
		money(o.UnitProfit), money(o.ProfitPerSecond), o.Margin.StringFixed(1))
	fmt.Fprintf(&b, "Table: %s | Time: %ss", o.CraftingTable, o.CraftTime.String())
	if len(o.Skills) > 0 {
		skills := make([]string, len(o.Skills))
		for i, s := range o.Skills {
			skills[i] = fmt.Sprintf("%s Lv.%d", s.Skill, s.Level)
		}
		fmt.Fprintf(&b, " | Skills: %s", strings.Join(skills, ", "))
	}
	b.WriteString("\n")

	ingredients := make([]string, len(o.Ingredients))
	for i, ing := range o.Ingredients {
		name := ing.Name
		if ing.Tag != "" {
			name = fmt.Sprintf("%s [%s]", ing.Name, ing.Tag)
		}
		ingredients[i] = fmt.Sprintf("%sx %s (%s, %d avail)", ing.Amount.String(), name, money(ing.UnitPrice), ing.Available)
	}
	fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(ingredients, ", "))

	products := make([]string, len(o.Products))
	for i, p := range o.Products {
		products[i] = fmt.Sprintf("%sx %s (%s, demand: %d)", p.Amount.String(), p.Name, money(p.BestPrice), p.BestDemand)
	}
	fmt.Fprintf(&b, "Products: %s\n", strings.Join(products, ", "))

	fmt.Fprintf(&b, "Max craftable: %d batches ", o.MaxCraftableBatches)
	if o.MaxBatchesByIngredients != o.MaxBatchesByDemand {
		by := "ingredients"
		if o.DemandLimited() {
			by = "demand"
		}
		fmt.Fprintf(&b, "(limited by %s: ingredients=%s, demand=%d) ", by, batches(o.MaxBatchesByIngredients), o.MaxBatchesByDemand)
	}
	fmt.Fprintf(&b, "(%s total profit)", money(o.TotalPossibleProfit))

	return b.String()
}

// Professions renders the theoretical per-profession ranking.
func (f *Formatter) Professions(r *craftApp.ProfessionResult) *domain.Document {
	doc := domain.NewDocument("profession report")

	header := fmt.Sprintf("**Profession Profit Analysis Report** - %s", f.timestamp())
	if r.Snapshot != nil && len(r.Snapshot.Policy.ExcludedBuyerStores) > 0 {
		header += "\nExcluded buyer stores: " + strings.Join(r.Snapshot.Policy.ExcludedBuyerStores, ", ")
	}
	if note := sourceNote(r.Snapshot); note != "" {
		header += "\n" + note
	}
	doc.Add(header)

	doc.Add("**METHODOLOGY:**\n" +
		"This analysis calculates the theoretical maximum profit potential for each profession\n" +
		"based purely on market demand, ignoring ingredient availability constraints.\n" +
		"• Ingredient costs: Uses cheapest available market prices\n" +
		"• Profit calculation: (Sell price - ingredient cost) × total demand from all buyers\n" +
		"• Total potential: Sum of profits from filling ALL buyer orders for each recipe\n" +
		"• Ranking: Professions ranked by combined profit potential across all their recipes")

	if len(r.Professions) == 0 {
		return doc.Add("No profitable crafting opportunities found for any profession.")
	}

	doc.Add("**PROFESSION RANKINGS** (by total profit potential):\n" + strings.Repeat("=", 60))

	combined := decimal.Zero
	for i, p := range r.Professions {
		combined = combined.Add(p.TotalProfit)

		var b strings.Builder
		fmt.Fprintf(&b, "**%d. %s %s** - %s\n", i+1, domain.ProfessionEmoji(p.Profession), p.Profession,
			tiered(p.TotalProfit, "TOTAL POTENTIAL", professionSirenThreshold, professionStarThreshold))
		fmt.Fprintf(&b, "Profitable recipes: %d | Avg profit per recipe: %s\n", p.RecipeCount, money(p.AverageProfit))
		fmt.Fprintf(&b, "Best opportunity: %s (%s)\n", p.Best.Variant, money(p.Best.TotalPossibleProfit))
		b.WriteString("Top opportunities (based on demand):")
		for j, o := range p.Top(f.cfg.ProfessionTopN) {
			fmt.Fprintf(&b, "\n  %d. %s %s: %s (demand: %d units, %s/unit)", j+1,
				domain.ItemEmoji(o.Variant), o.Variant, money(o.TotalPossibleProfit), o.TotalDemand, money(o.UnitProfit))
		}
		doc.Add(b.String())
	}

	best := r.Professions[0]
	return doc.Add(fmt.Sprintf("**SUMMARY:**\nTotal analyzed professions: %d\nCombined profit potential: %s\nMost profitable profession: %s (%s)",
		len(r.Professions), money(combined), best.Profession, money(best.TotalProfit)))
}

// Unavailable renders the single message sent when a run could not fetch data.
func (f *Formatter) Unavailable(err error) *domain.Document {
	doc := domain.NewDocument("data unavailable")
	text := fmt.Sprintf("❌ Market data unavailable - %s", f.timestamp())
	if err != nil {
		text += "\n" + err.Error()
	}
	return doc.Add(text)
}

// Help renders the bot command list.
func (f *Formatter) Help() *domain.Document {
	return domain.NewDocument("help").Add(helpText)
}

func tradeLines(o arbDomain.Opportunity) []string {
	lines := []string{
		fmt.Sprintf("%s → %s (%s%% margin)", money(o.Source.Price), money(o.Destination.Price), o.Margin.StringFixed(0)),
		fmt.Sprintf("Buy: %s (%s) qty:%d", o.Source.Store, balance(o.Source.Balance), o.Source.Quantity),
		fmt.Sprintf("Sell: %s (%s) qty:%d", o.Destination.Store, balance(o.Destination.Balance), o.Destination.Quantity),
	}
	maxTrade := fmt.Sprintf("Max trade: %d units", o.TradableQty)
	if o.InsufficientFunds {
		maxTrade += " (capped by " + o.LimitedBy.String() + ")"
	}
	if o.LiquidityRisk {
		maxTrade += fmt.Sprintf(" (Investment: %s, Remaining: %s)", money(o.Investment), money(o.RemainingBalance()))
	}
	return append(lines, maxTrade)
}

func profitHighlight(total decimal.Decimal) string {
	if total.GreaterThanOrEqual(sirenThreshold) {
		return fmt.Sprintf("🚨 %s profit 🚨", money(total))
	}
	return money(total) + " profit"
}

func liquidityWarning(o arbDomain.Opportunity) string {
	if o.LiquidityRisk {
		return " ⚠️ LOW LIQUIDITY"
	}
	return ""
}

func tiered(total decimal.Decimal, label string, siren, star decimal.Decimal) string {
	switch {
	case total.GreaterThanOrEqual(siren):
		return fmt.Sprintf("🚨 %s %s 🚨", money(total), label)
	case total.GreaterThanOrEqual(star):
		return fmt.Sprintf("⭐ %s %s ⭐", money(total), label)
	default:
		return fmt.Sprintf("%s %s", money(total), label)
	}
}

func categoryHeading(c arbDomain.Category, r arbDomain.CategoryRules) string {
	switch c {
	case arbDomain.CategoryHighProfit:
		return fmt.Sprintf("HIGH PROFIT (>$%s):", r.HighProfit.String())
	case arbDomain.CategoryHighROI:
		return fmt.Sprintf("HIGH ROI (>%s%%):", r.HighROI.String())
	case arbDomain.CategoryBulk:
		return fmt.Sprintf("BULK TRADE (>%d units):", r.BulkQuantity)
	default:
		return strings.ToUpper(c.Title()) + ":"
	}
}

func summaryLabel(c arbDomain.Category, r arbDomain.CategoryRules) string {
	switch c {
	case arbDomain.CategoryHighProfit:
		return fmt.Sprintf("High profit (>$%s)", r.HighProfit.String())
	case arbDomain.CategoryHighROI:
		return fmt.Sprintf("High ROI (>%s%%)", r.HighROI.String())
	case arbDomain.CategoryBulk:
		return "Bulk trade"
	default:
		return c.Title()
	}
}

func categoryLine(c arbDomain.Category, o arbDomain.Opportunity) string {
	switch c {
	case arbDomain.CategoryHighROI:
		return fmt.Sprintf("%s: %s%% ROI (%s profit)", o.Item, o.ROI.StringFixed(1), money(o.TotalProfit))
	case arbDomain.CategoryLowRisk:
		return fmt.Sprintf("%s: %s -> %s", o.Item, money(o.Investment), money(o.TotalProfit))
	case arbDomain.CategoryBulk:
		return fmt.Sprintf("%s: %d units (%s profit)", o.Item, o.TradableQty, money(o.TotalProfit))
	default:
		return fmt.Sprintf("%s: %s -> %s (%s profit)", o.Item, money(o.Source.Price), money(o.Destination.Price), money(o.TotalProfit))
	}
}

func sourceNote(s *marketDomain.Snapshot) string {
	if s != nil && s.Source == marketDomain.SourceFallback {
		return "(market API unreachable, using saved snapshot)"
	}
	return ""
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// balance renders a store balance with thousands separators and no decimals.
func balance(d decimal.Decimal) string {
	return "$" + grouping.Sprintf("%.0f", d.InexactFloat64())
}

func batches(n int64) string {
	if n == craftDomain.Unbounded {
		return "unbounded"
	}
	return fmt.Sprintf("%d", n)
}

func humanInterval(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
