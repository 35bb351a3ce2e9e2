package review

import "fmt"

// The prompt wording below is load-bearing: scores and issue shapes coming
// back from the model are only as stable as the instructions and the JSON
// example they were tuned with. Change with care.

const systemPromptAnalysis = "You are an expert code reviewer and security analyst. " +
	"Analyze the provided code diff and identify issues in the following categories: " +
	"security vulnerabilities, code smells, performance issues, readability problems, " +
	"and maintainability concerns. Provide specific, actionable feedback."

const systemPromptChunk = "You are an expert code reviewer. " +
	"Analyze this code chunk and identify issues. Focus on the most critical problems."

// BuildAnalysisPrompt produces the single-shot review prompt embedding the
// whole diff blob.
func BuildAnalysisPrompt(diffContent, prTitle, prDescription string) string {
	return fmt.Sprintf(`
Please analyze the following pull request diff and provide a comprehensive code review.

Pull Request Title: %s
Pull Request Description: %s

Code Diff:
%s

Please analyze this code for:

1. **Security Vulnerabilities**: SQL injection, XSS, authentication issues, data exposure, etc.
2. **Code Smells**: Code duplication, long methods, complex conditionals, magic numbers, etc.
3. **Performance Issues**: Inefficient algorithms, memory leaks, unnecessary computations, etc.
4. **Readability Issues**: Poor naming, unclear logic, missing comments, etc.
5. **Maintainability Concerns**: Tight coupling, lack of abstraction, hardcoded values, etc.

For each issue found, provide:
- Severity (critical/high/medium/low/info)
- Category (security/performance/readability/maintainability/best_practice)
- Title (brief description)
- Description (detailed explanation)
- Line number (if applicable)
- File path (if applicable)
- Suggestion (how to fix)

Also provide:
- An overall summary
- A score from 0-100 (100 being perfect)
- Top 3 recommendations for improvement

Format your response as JSON with the following structure:
{
    "issues": [
        {
            "severity": "high",
            "category": "security",
            "title": "Potential SQL Injection",
            "description": "User input is directly concatenated into SQL query",
            "line_number": 42,
            "file_path": "src/database.py",
            "suggestion": "Use parameterized queries or ORM"
        }
    ],
    "summary": "Overall assessment of the code quality",
    "overall_score": 75,
    "recommendations": [
        "Implement input validation",
        "Add error handling",
        "Extract magic numbers to constants"
    ]
}
`, prTitle, prDescription, diffContent)
}

// BuildChunkPrompt produces the per-file prompt used during chunked
// analysis. The filename is embedded twice: once as context and once inside
// the JSON example so the model echoes it back in file_path.
func BuildChunkPrompt(chunkContent, filename, prTitle string) string {
	return fmt.Sprintf(`
Please analyze this code chunk from file: %s

Pull Request Title: %s

Code Chunk:
%s

Please identify the most critical issues in this code chunk. Focus on:
1. Security vulnerabilities (high priority)
2. Critical code smells
3. Major performance issues
4. Significant readability problems

For each issue found, provide:
- Severity (critical/high/medium/low/info)
- Category (security/performance/readability/maintainability/best_practice)
- Title (brief description)
- Description (detailed explanation)
- Line number (if applicable)
- Suggestion (how to fix)

Also provide:
- A brief summary
- A score from 0-100
- 2-3 key recommendations

Format your response as JSON:
{
    "issues": [
        {
            "severity": "high",
            "category": "security",
            "title": "Issue Title",
            "description": "Issue description",
            "line_number": 42,
            "file_path": "%s",
            "suggestion": "How to fix"
        }
    ],
    "summary": "Brief summary",
    "overall_score": 75,
    "recommendations": ["rec1", "rec2"]
}
`, filename, prTitle, chunkContent, filename)
}
