package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var colorTag = regexp.MustCompile(`<color=[^>]*>|</color>`)

// CanonicalStoreName strips color markup from a raw store name.
func CanonicalStoreName(raw string) string {
	return strings.TrimSpace(colorTag.ReplaceAllString(raw, ""))
}

// StoreInfo is the part of a store the engines need after bucketing.
type StoreInfo struct {
	Name     string
	Balance  decimal.Decimal
	Currency string
}

