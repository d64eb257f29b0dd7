package domain

import "fmt"

// Reason says why a recipe variant was left out of the results.
type Reason string

const (
	ReasonNoSellers    Reason = "no sellers"
	ReasonUnknownTag   Reason = "unknown tag"
	ReasonNoCandidate  Reason = "no tag candidate for sale"
	ReasonInsufficient Reason = "insufficient quantity"
	ReasonNoBuyers     Reason = "no buyers"
	ReasonLowDemand    Reason = "insufficient demand"
)

// Exclusion records one failed ingredient or product.
type Exclusion struct {
	Reason Reason
	Item   string
	Detail string
}

func (e Exclusion) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (%s)", e.Item, e.Reason)
	}
	return fmt.Sprintf("%s (%s: %s)", e.Item, e.Reason, e.Detail)
}
