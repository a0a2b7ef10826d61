package risk

import "strings"

// categoryRule maps description keywords to a spending category. Rules are
// evaluated in order; the first rule with a matching keyword wins, so "GAS"
// claims "GAS COMPANY" before the utilities rule sees it.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"dining", []string{"RESTAURANT", "CHIPOTLE", "STARBUCKS", "CAFE"}},
	{"grocery", []string{"SAFEWAY", "WHOLE FOODS", "GROCERY", "MARKET"}},
	{"gas", []string{"SHELL", "CHEVRON", "GAS", "FUEL"}},
	{"shopping", []string{"AMAZON", "TARGET", "WALMART"}},
	{"utilities", []string{"ELECTRIC", "GAS COMPANY", "WATER", "PHONE"}},
}

// spendingCategories is the closed set of category keys, including the two
// that no keyword rule currently feeds.
var spendingCategories = []string{
	"dining", "grocery", "gas", "shopping", "utilities", "entertainment", "other",
}

// categorize returns the spending category for a transaction description.
func categorize(description string) string {
	desc := strings.ToUpper(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category
			}
		}
	}
	return "other"
}
