package docproc

import "strings"

// CategoryRule pairs a category label with the keywords that select it.
type CategoryRule struct {
	Label    string
	Keywords []string
}

// CategoryGeneral is the fallback label when no rule matches.
const CategoryGeneral = "General Information"

// CategoryRules is the ordered checklist used by DetectCategory. The first
// matching rule wins, so the order here is significant.
var CategoryRules = []CategoryRule{
	{
		Label:    "Recording Grants",
		Keywords: []string{"recording", "album", "studio", "sound recording", "production grant"},
	},
	{
		Label:    "Touring & Showcase Grants",
		Keywords: []string{"touring", "tour support", "showcase", "live performance", "concert"},
	},
	{
		Label:    "Marketing & Promotion",
		Keywords: []string{"marketing", "promotion", "publicity", "radio campaign", "press"},
	},
	{
		Label:    "Application Guidelines",
		Keywords: []string{"guideline", "eligibility", "how to apply", "application process", "criteria"},
	},
	{
		Label:    "Budget & Financial",
		Keywords: []string{"budget", "financial", "funding amount", "expense", "cash flow"},
	},
}

// DetectCategory returns the first rule label whose keywords appear in the
// text (case-insensitive substring), or CategoryGeneral.
func DetectCategory(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return CategoryGeneral
}
