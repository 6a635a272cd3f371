package analysis

// Result is the canonical analysis shape. Every path that produces one —
// model response, non-menu sentinel, or fallback — must satisfy Valid().
type Result struct {
	RevenueScore     int      `json:"revenue_score"`
	Summary          string   `json:"summary"`
	QuickWins        []string `json:"quick_wins"`
	VisualAppeal     []string `json:"visual_appeal"`
	StrategicPricing []string `json:"strategic_pricing"`
	MenuDesign       []string `json:"menu_design"`
}

// Valid reports whether all six fields are present and usable. A zero
// revenue score is legitimate (the model's non-menu verdict), so only the
// range is checked, not truthiness.
func (r Result) Valid() bool {
	if r.RevenueScore < 0 || r.RevenueScore > 100 {
		return false
	}
	if r.Summary == "" {
		return false
	}
	for _, list := range [][]string{r.QuickWins, r.VisualAppeal, r.StrategicPricing, r.MenuDesign} {
		if !hasNonEmpty(list) {
			return false
		}
	}
	return true
}

func hasNonEmpty(list []string) bool {
	for _, s := range list {
		if s != "" {
			return true
		}
	}
	return false
}
