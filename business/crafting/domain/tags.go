package domain

// TagTable maps an ingredient tag to its candidate items, in preference order.
type TagTable map[string][]string

// DefaultTags is the fixed substitution table.
func DefaultTags() TagTable {
	return TagTable{
		"Wood":       {"Lumber", "Board"},
		"Wood Board": {"Board"},
		"Lumber":     {"Lumber"},
		"Rock":       {"Stone", "Granite", "Limestone"},
		"Oil":        {"Oil", "Flaxseed Oil"},
	}
}

// Candidates returns the items a tag stands for.
func (t TagTable) Candidates(tag string) ([]string, bool) {
	items, ok := t[tag]
	return items, ok && len(items) > 0
}
