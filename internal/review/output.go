package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatReviewReport renders a ReviewResult as CLI-friendly markdown: a
// header, the score, the summary, an issue table with per-issue detail
// blocks, and the top recommendations.
func FormatReviewReport(result ReviewResult, prNumber int, prTitle, repo string) string {
	var sb strings.Builder

	sb.WriteString("# PR Code Review\n\n")
	sb.WriteString(fmt.Sprintf("**Code Review Results for PR #%d**\n\n", prNumber))
	if prTitle != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", prTitle))
	}
	sb.WriteString(fmt.Sprintf("Repository: %s\n\n", repo))

	sb.WriteString("## Score\n\n")
	sb.WriteString(fmt.Sprintf("Overall Code Quality Score: **%d/100**\n\n", result.OverallScore))

	if result.Summary != "" {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(result.Summary)
		sb.WriteString("\n\n")
	}

	if len(result.Issues) > 0 {
		sb.WriteString(fmt.Sprintf("## Issues Found (%d)\n\n", len(result.Issues)))
		sb.WriteString("| Severity | Category | Title | File | Line |\n")
		sb.WriteString("|----------|----------|-------|------|------|\n")
		for _, issue := range result.Issues {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				strings.ToUpper(string(issue.Severity)),
				issue.Category,
				issue.Title,
				fileOrNA(issue.FilePath),
				lineOrNA(issue.LineNumber),
			))
		}
		sb.WriteString("\n")

		for i, issue := range result.Issues {
			sb.WriteString(fmt.Sprintf("### Issue #%d: %s\n\n", i+1, issue.Title))
			sb.WriteString(fmt.Sprintf("%s\n\n", issue.Description))
			sb.WriteString(fmt.Sprintf("- Category: %s\n", issue.Category))
			sb.WriteString(fmt.Sprintf("- Severity: %s\n", issue.Severity))
			sb.WriteString(fmt.Sprintf("- File: %s\n", fileOrNA(issue.FilePath)))
			sb.WriteString(fmt.Sprintf("- Line: %s\n\n", lineOrNA(issue.LineNumber)))
			sb.WriteString(fmt.Sprintf("**Suggestion:** %s\n\n", suggestionOr(issue.Suggestion)))
		}
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("## Top Recommendations\n\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	if len(result.Issues) == 0 {
		sb.WriteString("## Clean Code\n\n")
		sb.WriteString("No issues found! The code looks good.\n")
	}

	return sb.String()
}

// exportPayload is the JSON export shape. Field order matters: it defines
// the key order in the written file.
type exportPayload struct {
	PRNumber        int      `json:"pr_number"`
	Repo            string   `json:"repo"`
	OverallScore    int      `json:"overall_score"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Issues          []Issue  `json:"issues"`
}

// ExportJSON serializes a review for --output. Optional issue fields
// serialize as null; absent lists as empty arrays.
func ExportJSON(result ReviewResult, prNumber int, repo string) ([]byte, error) {
	recs := result.Recommendations
	if recs == nil {
		recs = []string{}
	}
	issues := result.Issues
	if issues == nil {
		issues = []Issue{}
	}

	return json.MarshalIndent(exportPayload{
		PRNumber:        prNumber,
		Repo:            repo,
		OverallScore:    result.OverallScore,
		Summary:         result.Summary,
		Recommendations: recs,
		Issues:          issues,
	}, "", "  ")
}

// Zero line numbers and empty paths read as absent in the report, not as
// literal values.
func lineOrNA(n *int) string {
	if n == nil || *n == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", *n)
}

func fileOrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func suggestionOr(s *string) string {
	if s == nil || *s == "" {
		return "No specific suggestion provided"
	}
	return *s
}
