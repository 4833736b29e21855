package recipes

import "strings"

// Search filters an already-fetched list to recipes whose title contains
// term, case-insensitively. An empty term returns the list unchanged. No
// store interaction.
func Search(list []Recipe, term string) []Recipe {
	if term == "" {
		return list
	}
	term = strings.ToLower(term)
	matched := []Recipe{}
	for _, r := range list {
		if strings.Contains(strings.ToLower(r.Title), term) {
			matched = append(matched, r)
		}
	}
	return matched
}
