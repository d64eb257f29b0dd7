package domain

import "strings"

// Policy controls which offers enter a snapshot.
type Policy struct {
	// ExcludedBuyerStores never appear as buyers.
	ExcludedBuyerStores []string
	// Currencies restricts stores by currency. Empty accepts all.
	Currencies []string
	// AllowZeroPriceSellers lets price-0 selling offers into the seller bucket.
	// They are always tracked in FreeSellers.
	AllowZeroPriceSellers bool
}

// IsExcludedBuyer reports whether store is on the buyer exclusion list.
func (p Policy) IsExcludedBuyer(store string) bool {
	for _, s := range p.ExcludedBuyerStores {
		if strings.EqualFold(strings.TrimSpace(s), store) {
			return true
		}
	}
	return false
}

// AcceptsCurrency reports whether stores trading in currency are analyzed.
func (p Policy) AcceptsCurrency(currency string) bool {
	if len(p.Currencies) == 0 {
		return true
	}
	for _, c := range p.Currencies {
		if strings.EqualFold(strings.TrimSpace(c), currency) {
			return true
		}
	}
	return false
}
