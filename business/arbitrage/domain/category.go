package domain

import "github.com/shopspring/decimal"

// Category is a filter bucket of the pairwise analysis.
type Category string

const (
	CategoryHighProfit Category = "high_profit"
	CategoryHighROI    Category = "high_roi"
	CategoryLowRisk    Category = "low_risk"
	CategoryBulk       Category = "bulk"
)

// Categories lists the buckets in report order.
var Categories = []Category{CategoryHighProfit, CategoryHighROI, CategoryLowRisk, CategoryBulk}

// Title returns the report heading for the category.
func (c Category) Title() string {
	switch c {
	case CategoryHighProfit:
		return "High Profit"
	case CategoryHighROI:
		return "High ROI"
	case CategoryLowRisk:
		return "Low Risk"
	case CategoryBulk:
		return "Bulk Trades"
	default:
		return string(c)
	}
}

// CategoryRules holds the bucket thresholds.
type CategoryRules struct {
	HighProfit       decimal.Decimal // total profit >= this
	HighROI          decimal.Decimal // ROI percent >= this
	LowRiskMaxInvest decimal.Decimal // investment <= this
	LowRiskMinProfit decimal.Decimal // and total profit >= this
	BulkQuantity     int64           // tradable quantity >= this
}

// DefaultCategoryRules returns the standard thresholds.
func DefaultCategoryRules() CategoryRules {
	return CategoryRules{
		HighProfit:       decimal.NewFromInt(50),
		HighROI:          decimal.NewFromInt(50),
		LowRiskMaxInvest: decimal.NewFromInt(20),
		LowRiskMinProfit: decimal.NewFromInt(5),
		BulkQuantity:     100,
	}
}

// Matches reports whether o belongs to category c.
func (r CategoryRules) Matches(c Category, o Opportunity) bool {
	switch c {
	case CategoryHighProfit:
		return o.TotalProfit.GreaterThanOrEqual(r.HighProfit)
	case CategoryHighROI:
		return o.ROI.GreaterThanOrEqual(r.HighROI)
	case CategoryLowRisk:
		return o.Investment.LessThanOrEqual(r.LowRiskMaxInvest) && o.TotalProfit.GreaterThanOrEqual(r.LowRiskMinProfit)
	case CategoryBulk:
		return o.TradableQty >= r.BulkQuantity
	default:
		return false
	}
}

// Categorize buckets opps, keeping the input order and at most limit per bucket.
// A limit <= 0 keeps everything. Every category is present in the result.
func (r CategoryRules) Categorize(opps []Opportunity, limit int) map[Category][]Opportunity {
	out := make(map[Category][]Opportunity, len(Categories))
	for _, c := range Categories {
		bucket := []Opportunity{}
		for _, o := range opps {
			if limit > 0 && len(bucket) >= limit {
				break
			}
			if r.Matches(c, o) {
				bucket = append(bucket, o)
			}
		}
		out[c] = bucket
	}
	return out
}
