package review

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanix-darker/purr/internal/provider"
)

// scriptedProvider answers successive Complete calls from fixed scripts and
// records every request it receives.
type scriptedProvider struct {
	name      string
	responses []string
	errs      []error
	requests  []provider.CompletionRequest
}

func (p *scriptedProvider) Info() provider.ProviderInfo {
	return provider.ProviderInfo{Name: p.name, DefaultModel: "default-model"}
}

func (p *scriptedProvider) Complete(_ context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	i := len(p.requests)
	p.requests = append(p.requests, req)
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, p.errs[i]
	}
	content := ""
	if i < len(p.responses) {
		content = p.responses[i]
	}
	return &provider.CompletionResponse{Content: content}, nil
}

func (p *scriptedProvider) Validate(context.Context) error { return nil }

const goodReviewJSON = `{
  "issues": [{"severity": "medium", "category": "performance", "title": "N+1 query", "description": "Loop issues a query per row"}],
  "summary": "Mostly fine",
  "overall_score": 80,
  "recommendations": ["Batch the queries"]
}`

func TestAnalyzeSingleShot(t *testing.T) {
	p := &scriptedProvider{name: "openai", responses: []string{goodReviewJSON}}
	a := &Analyzer{Provider: p}

	result, err := a.Analyze(context.Background(), "File: a.go\n+x\n", "Add feature", "Does things")

	require.NoError(t, err)
	assert.Equal(t, 80, result.OverallScore)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "N+1 query", result.Issues[0].Title)

	require.Len(t, p.requests, 1)
	req := p.requests[0]
	assert.Equal(t, "gpt-4", req.Model)
	assert.Equal(t, 2000, req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.1, *req.Temperature, 1e-9)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, provider.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "expert code reviewer and security analyst")
	assert.Equal(t, provider.RoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "File: a.go")
	assert.Contains(t, req.Messages[1].Content, "Add feature")
	assert.Contains(t, req.Messages[1].Content, "Does things")
}

func TestAnalyzePicksWideContextModel(t *testing.T) {
	// ~3000 words estimate to ~5400 tokens: past the wide-context threshold
	// but under the chunking one.
	blob := "File: big.go\n" + strings.Repeat("alpha ", 3000)

	var out bytes.Buffer
	p := &scriptedProvider{name: "openai", responses: []string{goodReviewJSON}}
	a := &Analyzer{Provider: p, Out: &out}

	_, err := a.Analyze(context.Background(), blob, "t", "d")

	require.NoError(t, err)
	require.Len(t, p.requests, 1)
	assert.Equal(t, "gpt-3.5-turbo-16k", p.requests[0].Model)
	assert.Contains(t, out.String(), "Using GPT-3.5-turbo-16k for larger context window")
}

func TestAnalyzeNonOpenAIUsesProviderDefault(t *testing.T) {
	p := &scriptedProvider{name: "anthropic", responses: []string{goodReviewJSON}}
	a := &Analyzer{Provider: p}

	_, err := a.Analyze(context.Background(), "File: a.go\n+x\n", "t", "d")

	require.NoError(t, err)
	require.Len(t, p.requests, 1)
	// Empty model means the provider fills in its configured default.
	assert.Equal(t, "", p.requests[0].Model)
}

func TestAnalyzeModelOverride(t *testing.T) {
	p := &scriptedProvider{name: "openai", responses: []string{goodReviewJSON, goodReviewJSON}}

	a := &Analyzer{Provider: p, Model: "gpt-4o"}
	_, err := a.Analyze(context.Background(), "File: a.go\n+x\n", "t", "d")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.requests[0].Model)

	// "auto" is not an override.
	a = &Analyzer{Provider: p, Model: "auto"}
	_, err = a.Analyze(context.Background(), "File: a.go\n+x\n", "t", "d")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", p.requests[1].Model)
}

func TestAnalyzeEmptyResponse(t *testing.T) {
	p := &scriptedProvider{name: "openai", responses: []string{""}}
	a := &Analyzer{Provider: p}

	_, err := a.Analyze(context.Background(), "File: a.go\n+x\n", "t", "d")

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnalyzeProviderError(t *testing.T) {
	boom := errors.New("boom")
	p := &scriptedProvider{name: "openai", errs: []error{boom}}
	a := &Analyzer{Provider: p}

	_, err := a.Analyze(context.Background(), "File: a.go\n+x\n", "t", "d")

	assert.ErrorIs(t, err, boom)
}

func TestAnalyzeParseFailureWarnsAndFallsBack(t *testing.T) {
	var errBuf bytes.Buffer
	p := &scriptedProvider{name: "openai", responses: []string{"I refuse to emit JSON."}}
	a := &Analyzer{Provider: p, Err: &errBuf}

	result, err := a.Analyze(context.Background(), "File: a.go\n+x\n", "t", "d")

	// Parse failures degrade to the fallback instead of failing the run.
	require.NoError(t, err)
	assert.Equal(t, fallbackResult(), result)
	assert.Contains(t, errBuf.String(), "Warning: Could not parse OpenAI response:")
	assert.Contains(t, errBuf.String(), "Raw response: I refuse to emit JSON.")
}

func TestAnalyzeSwitchesToChunked(t *testing.T) {
	blob := "File: a.go\n" + strings.Repeat("alpha ", 2500) + "\n" +
		"File: b.go\n" + strings.Repeat("beta ", 2500) + "\n"
	require.Greater(t, EstimateTokens(blob), chunkTokenLimit)

	var out bytes.Buffer
	var stages []string
	p := &scriptedProvider{name: "openai", responses: []string{goodReviewJSON, goodReviewJSON}}
	a := &Analyzer{
		Provider: p,
		Out:      &out,
		OnProgress: func(stage string, current, total int) {
			stages = append(stages, stage)
		},
	}

	result, err := a.Analyze(context.Background(), blob, "Big PR", "")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "estimated tokens), analyzing in chunks...")

	require.Len(t, p.requests, 2)
	for _, req := range p.requests {
		assert.Equal(t, "gpt-4", req.Model)
		assert.Equal(t, 1500, req.MaxTokens)
		assert.Contains(t, req.Messages[0].Content, "Analyze this code chunk")
	}
	assert.Contains(t, p.requests[0].Messages[1].Content, "a.go")
	assert.Contains(t, p.requests[1].Messages[1].Content, "b.go")

	require.Len(t, stages, 2)
	assert.Equal(t, "Analyzing chunk 1/2: a.go", stages[0])
	assert.Equal(t, "Analyzing chunk 2/2: b.go", stages[1])

	assert.Len(t, result.Issues, 2)
	assert.Equal(t, 80, result.OverallScore)
	assert.Equal(t, "Analyzed 2 files with 2 total issues found", result.Summary)
}

func TestAnalyzeChunkedDropsFailedChunk(t *testing.T) {
	blob := "File: a.go\n+x\nFile: b.go\n+y\n"

	var errBuf bytes.Buffer
	p := &scriptedProvider{
		name:      "openai",
		errs:      []error{errors.New("rate limited"), nil},
		responses: []string{"", goodReviewJSON},
	}
	a := &Analyzer{Provider: p, Err: &errBuf}

	result, err := a.AnalyzeChunked(context.Background(), blob, "t")

	require.NoError(t, err)
	assert.Contains(t, errBuf.String(), "Warning: Error analyzing chunk a.go: rate limited")

	// The failed chunk still counts in the file total, but only the
	// surviving one feeds the average.
	assert.Equal(t, "Analyzed 2 files with 1 total issues found", result.Summary)
	assert.Equal(t, 80, result.OverallScore)
	assert.Len(t, result.Issues, 1)
}

func TestAnalyzeChunkedSkipsEmptyAnswers(t *testing.T) {
	blob := "File: a.go\n+x\nFile: b.go\n+y\n"

	var errBuf bytes.Buffer
	p := &scriptedProvider{name: "openai", responses: []string{"", goodReviewJSON}}
	a := &Analyzer{Provider: p, Err: &errBuf}

	result, err := a.AnalyzeChunked(context.Background(), blob, "t")

	require.NoError(t, err)
	assert.Empty(t, errBuf.String())
	assert.Equal(t, 80, result.OverallScore)
	assert.Equal(t, "Analyzed 2 files with 1 total issues found", result.Summary)
}

func TestAnalyzeChunkedStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scriptedProvider{name: "openai"}
	a := &Analyzer{Provider: p}

	_, err := a.AnalyzeChunked(ctx, "File: a.go\n+x\n", "t")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.requests)
}
