package analyses

import (
	"time"

	"github.com/veenakrishnan01/menu-analyser/internal/analysis"
)

// SourceKind records how the analysed menu was submitted.
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceURL  SourceKind = "url"
	SourceText SourceKind = "text"
)

// Record is one persisted analysis. Records are immutable once written;
// the only mutation is deletion by the owner. RevenueScore duplicates
// Results.RevenueScore so listings can sort without unpacking the JSON.
type Record struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	BusinessName string          `json:"business_name,omitempty"`
	MenuSource   SourceKind      `json:"menu_source"`
	MenuURL      string          `json:"menu_url,omitempty"`
	MenuFileName string          `json:"menu_file_name,omitempty"`
	Results      analysis.Result `json:"analysis_results"`
	RevenueScore int             `json:"revenue_score"`
	CreatedAt    time.Time       `json:"created_at"`
}
