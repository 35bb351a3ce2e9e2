// Package review implements the PR review pipeline: collecting per-file
// diffs into an annotated blob, estimating its token cost, sending it to an
// AI provider in one shot or per-file chunks, and reconciling the free-form
// answers into a single structured result.
package review

// Severity ranks how urgent an issue is. Values outside the known set are
// preserved as-is so that unusual model output still round-trips.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Category classifies what kind of problem an issue describes. Unknown
// values are preserved as-is.
type Category string

const (
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryCodeSmell       Category = "code_smell"
	CategoryReadability     Category = "readability"
	CategoryMaintainability Category = "maintainability"
	CategoryBestPractice    Category = "best_practice"
)

// Issue is a single finding reported by the model. LineNumber, FilePath and
// Suggestion are optional; when the model omits them they stay nil and
// serialize as JSON null, matching the export format.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	LineNumber  *int     `json:"line_number"`
	FilePath    *string  `json:"file_path"`
	Suggestion  *string  `json:"suggestion"`
}

// ReviewResult is the reconciled outcome of a review run.
type ReviewResult struct {
	Issues          []Issue  `json:"issues"`
	Summary         string   `json:"summary"`
	OverallScore    int      `json:"overall_score"` // 0-100
	Recommendations []string `json:"recommendations"`
}
