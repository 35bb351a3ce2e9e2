package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParseReviewResponse extracts the JSON object from a free-form model answer
// and normalizes it into a ReviewResult. The model often wraps its JSON in
// prose or markdown fences, so the parser takes the substring from the first
// "{" to the last "}" before decoding.
//
// On any failure it returns a usable fallback result alongside the error;
// callers print the warning and keep going with the fallback.
func ParseReviewResponse(response string) (ReviewResult, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return fallbackResult(), errors.New("no JSON found in response")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(response[start:end+1]), &data); err != nil {
		return fallbackResult(), err
	}

	result := ReviewResult{
		Issues:          []Issue{},
		Summary:         stringOr(data["summary"], ""),
		OverallScore:    intOr(data["overall_score"], 0),
		Recommendations: stringSlice(data["recommendations"]),
	}

	if rawIssues, ok := data["issues"].([]interface{}); ok {
		for _, ri := range rawIssues {
			m, ok := ri.(map[string]interface{})
			if !ok {
				return fallbackResult(), fmt.Errorf("issue entry is %T, expected object", ri)
			}
			issue := Issue{
				Severity:    Severity(stringOr(m["severity"], "info")),
				Category:    Category(stringOr(m["category"], "best_practice")),
				Title:       stringOr(m["title"], ""),
				Description: stringOr(m["description"], ""),
			}
			if n, ok := m["line_number"].(float64); ok {
				ln := int(n)
				issue.LineNumber = &ln
			}
			if s, ok := m["file_path"].(string); ok {
				fp := s
				issue.FilePath = &fp
			}
			if s, ok := m["suggestion"].(string); ok {
				sg := s
				issue.Suggestion = &sg
			}
			result.Issues = append(result.Issues, issue)
		}
	}

	return result, nil
}

// fallbackResult is what a review degrades to when the model's answer could
// not be parsed at all.
func fallbackResult() ReviewResult {
	return ReviewResult{
		Issues:          []Issue{},
		Summary:         "Error parsing OpenAI response",
		OverallScore:    0,
		Recommendations: []string{"Review the code manually"},
	}
}

// MergeChunkResults combines per-chunk results into one ReviewResult.
// totalChunks is the number of chunks attempted, not the number that
// succeeded; the summary reports what was analyzed, and chunks that failed
// outright contribute nothing else. A chunk that parsed into the fallback
// still counts its zero score toward the average.
func MergeChunkResults(results []ReviewResult, totalChunks int) ReviewResult {
	issues := []Issue{}
	var recommendations []string
	scoreSum := 0

	for _, r := range results {
		issues = append(issues, r.Issues...)
		recommendations = append(recommendations, r.Recommendations...)
		scoreSum += r.OverallScore
	}

	score := 0
	if len(results) > 0 {
		score = floorDiv(scoreSum, len(results))
	}

	return ReviewResult{
		Issues:          issues,
		Summary:         fmt.Sprintf("Analyzed %d files with %d total issues found", totalChunks, len(issues)),
		OverallScore:    score,
		Recommendations: dedupeRecommendations(recommendations, 5),
	}
}

// dedupeRecommendations keeps the first occurrence of each recommendation,
// capped at max.
func dedupeRecommendations(recs []string, max int) []string {
	seen := make(map[string]struct{}, len(recs))
	out := make([]string, 0, max)
	for _, r := range recs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
		if len(out) == max {
			break
		}
	}
	return out
}

// floorDiv divides rounding toward negative infinity, so averages of
// negative scores stay consistent regardless of sign.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func stringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func intOr(v interface{}, def int) int {
	if n, ok := v.(float64); ok {
		return int(n)
	}
	return def
}

func stringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
