package domain

import "strings"

// DealKey identifies a deal as item|sourceStore|destinationStore.
type DealKey string

// NewDealKey builds a key from its parts.
func NewDealKey(item, source, destination string) DealKey {
	return DealKey(strings.Join([]string{item, source, destination}, "|"))
}

// Parts splits the key back into item, source and destination.
func (k DealKey) Parts() (item, source, destination string) {
	parts := strings.SplitN(string(k), "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// DealChanges is the outcome of comparing the current good deals with the previous run.
type DealChanges struct {
	// Initial is set on the first observation; Appeared then holds every current deal.
	Initial bool
	Current []Opportunity
	// Appeared are deals not seen in the previous run, in current ranking order.
	Appeared []Opportunity
	// Disappeared are deals from the previous run that are gone, in their old ranking order.
	Disappeared []Opportunity
}

// HasChanges reports whether anything appeared or disappeared.
func (c DealChanges) HasChanges() bool {
	return len(c.Appeared) > 0 || len(c.Disappeared) > 0
}
