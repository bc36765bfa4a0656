package legal

import "strings"

// Category is the coarse crime class derived from a crime code.
type Category string

const (
	CategoryDUI     Category = "DUI"
	CategoryAssault Category = "ASSAULT"
	CategoryUnknown Category = "UNKNOWN"
)

// classifierRules are checked in order; the first matching rule wins.
var classifierRules = []struct {
	category Category
	markers  []string
}{
	{CategoryDUI, []string{"DUI", "23152"}},
	{CategoryAssault, []string{"ASSAULT", "240"}},
}

// Classify maps a free-text crime code to a Category by case-insensitive
// substring matching.
func Classify(code string) Category {
	upper := strings.ToUpper(code)
	for _, rule := range classifierRules {
		for _, marker := range rule.markers {
			if strings.Contains(upper, marker) {
				return rule.category
			}
		}
	}
	return CategoryUnknown
}
