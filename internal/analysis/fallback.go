package analysis

import (
	"regexp"
	"strings"
)

var fallbackPriceRe = regexp.MustCompile(`\$\d+|\d+\.\d{2}`)

const proseRichnessChars = 500

// Fallback builds a deterministic best-effort result from cheap text
// signals, used whenever the model is unreachable or returns something
// unusable. The summary is worded so a reader can tell it is a generic
// default rather than a personalized analysis.
func Fallback(menuText string) Result {
	words := len(strings.Fields(menuText))

	score := 40.0
	if fallbackPriceRe.MatchString(menuText) {
		score += 20
	}
	if len(menuText) > proseRichnessChars {
		score += 20
	}
	wordBonus := float64(words) / 10
	if wordBonus > 20 {
		wordBonus = 20
	}
	score += wordBonus
	if score > 100 {
		score = 100
	}

	return Result{
		RevenueScore: int(score + 0.5),
		Summary: "This menu shows good potential for optimization. Strategic improvements to pricing display " +
			"and item descriptions could increase average order value by 15-20%. " +
			"These are general best-practice recommendations; a detailed item-level analysis was not available for this run.",
		QuickWins: []string{
			"Add appetizing descriptions to highlight premium ingredients and preparation methods",
			"Include 'Most Popular' or 'Chef's Favorite' badges on high-margin items",
			"Create combo meals to increase average transaction size",
		},
		VisualAppeal: []string{
			"Add high-quality photos for your top 5 best-selling dishes",
			"Use color-coded sections to make navigation easier",
			"Increase white space between sections for better readability",
		},
		StrategicPricing: []string{
			"Implement psychological pricing (e.g., $12.95 instead of $13.00)",
			"Position premium items at the top and bottom of each section",
			"Create a 'Premium Selection' section for high-margin specialty items",
		},
		MenuDesign: []string{
			"Limit each category to 7 items to reduce decision fatigue",
			"Use descriptive category names (e.g., 'Garden Fresh Salads' vs 'Salads')",
			"Add a highlighted 'Signature Dishes' section at the beginning",
		},
	}
}
