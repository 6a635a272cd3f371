package validate

import (
	"regexp"
	"strings"
)

// ReasonCode names why a document was rejected. Codes are stable and safe to
// show to API clients.
type ReasonCode string

const (
	ReasonDummyContent    ReasonCode = "DUMMY_CONTENT"
	ReasonNonMenu         ReasonCode = "NON_MENU_DOCUMENT"
	ReasonRepetitive      ReasonCode = "REPETITIVE_CONTENT"
	ReasonTooShort        ReasonCode = "TOO_SHORT"
	ReasonNoPrices        ReasonCode = "NO_PRICES"
	ReasonNoMenuVocab     ReasonCode = "NO_MENU_VOCABULARY"
	ReasonEmptyExtraction ReasonCode = "EMPTY_EXTRACTION"
)

// Result is the validator verdict. Message is phrased for end users.
type Result struct {
	Valid   bool
	Reason  ReasonCode
	Message string
}

func ok() Result { return Result{Valid: true} }

func reject(reason ReasonCode, message string) Result {
	return Result{Valid: false, Reason: reason, Message: message}
}

// Thresholds tune the document checks. Zero values take the documented
// defaults; the numbers are policy, not contract, and live in configuration.
type Thresholds struct {
	ImageMinChars    int
	StrictMinChars   int
	NoDigitsMaxChars int
	NoVocabMaxChars  int
	RepetitionTokens int
	MinDistinctRatio float64
}

func (t Thresholds) withDefaults() Thresholds {
	if t.ImageMinChars <= 0 {
		t.ImageMinChars = 10
	}
	if t.StrictMinChars <= 0 {
		t.StrictMinChars = 100
	}
	if t.NoDigitsMaxChars <= 0 {
		t.NoDigitsMaxChars = 500
	}
	if t.NoVocabMaxChars <= 0 {
		t.NoVocabMaxChars = 200
	}
	if t.RepetitionTokens <= 0 {
		t.RepetitionTokens = 50
	}
	if t.MinDistinctRatio <= 0 {
		t.MinDistinctRatio = 0.2
	}
	return t
}

var (
	dummyMarkers = []string{
		"lorem ipsum", "sample text", "placeholder", "test document",
		"dummy text", "example content",
	}
	nonMenuMarkers = []string{
		"curriculum vitae", "resume", "invoice", "receipt",
		"terms and conditions", "privacy policy", "bank statement",
		"tax return", "job application", "cover letter",
		"user manual", "annual report",
	}
	menuVocabulary = []string{
		"menu", "appetizer", "appetizers", "starter", "starters", "entree",
		"entrees", "main course", "mains", "dessert", "desserts", "beverage",
		"beverages", "drinks", "salad", "soup", "pizza", "pasta", "burger",
		"sandwich", "special", "specials", "breakfast", "lunch", "dinner",
		"side", "sides", "combo", "platter", "curry", "rice", "noodles",
		"grill", "grilled", "fried", "roasted", "served with", "choice of",
		"price", "$",
	}

	priceRe = regexp.MustCompile(`(?:[$€£₹¥]\s*\d+(?:[.,]\d{1,2})?)|(?:\d+(?:[.,]\d{1,2})?\s*(?:[$€£₹¥]|usd|eur|gbp|inr|rs\.?))`)
	digitRe = regexp.MustCompile(`\d`)
)

// Validator applies the document checks. Image-sourced text gets a lenient
// tier because model OCR output is noisy; everything else runs the strict
// rules in a fixed order so rejection reasons are deterministic.
type Validator struct {
	t Thresholds
}

func NewValidator(t Thresholds) *Validator {
	return &Validator{t: t.withDefaults()}
}

// CheckImage validates model-extracted image text. Rejects only when the
// text is extremely short, or is pure placeholder filler with no food term
// and no price anywhere in it.
func (v *Validator) CheckImage(content string) Result {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return reject(ReasonEmptyExtraction, "No text could be read from the image.")
	}
	if len(trimmed) < v.t.ImageMinChars {
		return reject(ReasonTooShort, "The image did not contain enough readable text to analyse.")
	}

	lower := strings.ToLower(trimmed)
	if containsAny(lower, dummyMarkers) && !containsMenuVocabulary(lower) && !priceRe.MatchString(lower) {
		return reject(ReasonDummyContent, "This looks like placeholder text, not a real menu.")
	}
	return ok()
}

// Check validates text from PDFs, URLs, and pasted input. Rules run in a
// fixed priority order; the first failing rule decides the reason.
func (v *Validator) Check(content string) Result {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)

	if containsAny(lower, dummyMarkers) {
		return reject(ReasonDummyContent, "This looks like placeholder text, not a real menu.")
	}

	if containsAny(lower, nonMenuMarkers) {
		return reject(ReasonNonMenu, "This document does not appear to be a restaurant menu.")
	}

	if isRepetitive(lower, v.t.RepetitionTokens, v.t.MinDistinctRatio) {
		return reject(ReasonRepetitive, "The content is too repetitive to be a real menu.")
	}

	if len(trimmed) < v.t.StrictMinChars {
		return reject(ReasonTooShort, "There is not enough content to analyse. Please provide a complete menu.")
	}

	if len(trimmed) < v.t.NoDigitsMaxChars && !digitRe.MatchString(trimmed) {
		return reject(ReasonNoPrices, "No prices were found. A menu normally lists prices for its items.")
	}

	if len(trimmed) < v.t.NoVocabMaxChars && !containsMenuVocabulary(lower) {
		return reject(ReasonNoMenuVocab, "The content does not mention any food or menu terms.")
	}

	return ok()
}

func containsAny(lower string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func containsMenuVocabulary(lower string) bool {
	for _, term := range menuVocabulary {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// isRepetitive flags content whose whitespace tokens are mostly duplicates,
// e.g. the same line pasted dozens of times to pad the length gate. Short
// documents are exempt because distinct ratios are meaningless there.
func isRepetitive(lower string, minTokens int, minDistinct float64) bool {
	tokens := strings.Fields(lower)
	if len(tokens) <= minTokens {
		return false
	}
	distinct := map[string]struct{}{}
	for _, tok := range tokens {
		distinct[tok] = struct{}{}
	}
	return float64(len(distinct))/float64(len(tokens)) < minDistinct
}
