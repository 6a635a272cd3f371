package analysis

import "fmt"

// buildPrompt produces the single analysis prompt. It asks the model to
// re-check that the content is a real menu (returning a zero-score object if
// not) and otherwise to answer with pure JSON in the Result shape.
func buildPrompt(menuText string) string {
	return fmt.Sprintf(`You are a restaurant menu optimization expert. Analyze the following menu and provide detailed recommendations to increase revenue and average order value.

Menu Content:
%s

FIRST, verify this is a genuine restaurant menu with real food items and prices. If it is NOT a real menu, return this exact JSON instead of an analysis:
{
  "revenue_score": 0,
  "summary": "The provided content does not appear to be a restaurant menu, so no revenue analysis could be performed.",
  "quick_wins": ["Upload a real restaurant menu with food items and prices"],
  "visual_appeal": ["Upload a real restaurant menu with food items and prices"],
  "strategic_pricing": ["Upload a real restaurant menu with food items and prices"],
  "menu_design": ["Upload a real restaurant menu with food items and prices"]
}

Otherwise, provide a comprehensive analysis in VALID JSON format (no markdown, no code blocks, just pure JSON):
{
  "revenue_score": (number between 0-100 based on current menu optimization level),
  "summary": "(2-3 sentence executive summary of the menu's revenue optimization potential)",
  "quick_wins": ["specific actionable recommendation 1", "specific actionable recommendation 2", "specific actionable recommendation 3"],
  "visual_appeal": ["specific visual/design recommendation 1", "specific visual/design recommendation 2", "specific visual/design recommendation 3"],
  "strategic_pricing": ["specific pricing strategy recommendation 1", "specific pricing strategy recommendation 2", "specific pricing strategy recommendation 3"],
  "menu_design": ["specific layout/structure recommendation 1", "specific layout/structure recommendation 2", "specific layout/structure recommendation 3"]
}

Base your analysis on:
- The actual items and prices in the menu
- Revenue optimization opportunities
- Psychology-based menu design improvements
- Pricing strategy enhancements
- Upselling and cross-selling opportunities
- Menu item positioning and descriptions
- Visual hierarchy and readability

Return ONLY valid JSON, no additional text or markdown formatting.`, menuText)
}
