package review

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sanix-darker/purr/internal/provider"
)

// ErrEmptyResponse reports that the model returned no content at all. The
// CLI treats this as fatal for single-shot analysis.
var ErrEmptyResponse = errors.New("model returned empty response")

// ProgressFunc reports chunk progress to the CLI layer.
type ProgressFunc func(stage string, current, total int)

const (
	singleShotMaxTokens = 2000
	chunkMaxTokens      = 1500
	analysisTemperature = 0.1
)

// Analyzer drives review requests against an AI provider. Out receives
// informational messages, Err receives warnings; both default to io.Discard
// when unset. Model pins a specific model for every request; empty or
// "auto" enables size-based selection on OpenAI and the provider's default
// model everywhere else.
type Analyzer struct {
	Provider   provider.AIProvider
	Model      string
	Out        io.Writer
	Err        io.Writer
	OnProgress ProgressFunc
}

// Analyze reviews the blob, switching to chunked analysis when the
// estimated token count exceeds the single-request budget.
func (a *Analyzer) Analyze(ctx context.Context, blob, prTitle, prDescription string) (ReviewResult, error) {
	a.ensureWriters()

	estimated := EstimateTokens(blob)
	if estimated > chunkTokenLimit {
		fmt.Fprintf(a.Out, "Large diff detected (%d estimated tokens), analyzing in chunks...\n", estimated)
		return a.AnalyzeChunked(ctx, blob, prTitle)
	}
	return a.analyzeSingle(ctx, blob, prTitle, prDescription, estimated)
}

func (a *Analyzer) analyzeSingle(ctx context.Context, blob, prTitle, prDescription string, estimatedTokens int) (ReviewResult, error) {
	temp := float64(analysisTemperature)
	req := provider.CompletionRequest{
		Model:       a.singleShotModel(estimatedTokens),
		MaxTokens:   singleShotMaxTokens,
		Temperature: &temp,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: systemPromptAnalysis},
			{Role: provider.RoleUser, Content: BuildAnalysisPrompt(blob, prTitle, prDescription)},
		},
	}

	content, err := provider.CompleteText(ctx, a.Provider, req)
	if err != nil {
		return ReviewResult{}, err
	}
	if content == "" {
		return ReviewResult{}, ErrEmptyResponse
	}

	result, perr := ParseReviewResponse(content)
	if perr != nil {
		a.warnParseFailure(perr, content)
	}
	return result, nil
}

// AnalyzeChunked splits the blob into per-file segments and reviews each in
// its own request. A chunk whose request fails is reported as a warning and
// dropped; a chunk with an empty answer is dropped silently. Both still
// count toward the merged summary's file total.
func (a *Analyzer) AnalyzeChunked(ctx context.Context, blob, prTitle string) (ReviewResult, error) {
	a.ensureWriters()

	segments := SplitBlob(blob)

	var results []ReviewResult
	for i, seg := range segments {
		if ctx.Err() != nil {
			return ReviewResult{}, ctx.Err()
		}
		a.progress(fmt.Sprintf("Analyzing chunk %d/%d: %s", i+1, len(segments), seg.Name), i+1, len(segments))

		temp := float64(analysisTemperature)
		req := provider.CompletionRequest{
			Model:       a.chunkModel(),
			MaxTokens:   chunkMaxTokens,
			Temperature: &temp,
			Messages: []provider.Message{
				{Role: provider.RoleSystem, Content: systemPromptChunk},
				{Role: provider.RoleUser, Content: BuildChunkPrompt(seg.Text, seg.Name, prTitle)},
			},
		}

		content, err := provider.CompleteText(ctx, a.Provider, req)
		if err != nil {
			if ctx.Err() != nil {
				return ReviewResult{}, ctx.Err()
			}
			fmt.Fprintf(a.Err, "Warning: Error analyzing chunk %s: %v\n", seg.Name, err)
			continue
		}
		if content == "" {
			continue
		}

		result, perr := ParseReviewResponse(content)
		if perr != nil {
			a.warnParseFailure(perr, content)
		}
		results = append(results, result)
	}

	return MergeChunkResults(results, len(segments)), nil
}

// singleShotModel picks the model for whole-diff analysis. On OpenAI the
// wider-context model takes over past the size threshold; other providers
// use their configured default.
func (a *Analyzer) singleShotModel(estimatedTokens int) string {
	if a.modelOverridden() {
		return a.Model
	}
	if a.Provider.Info().Name != "openai" {
		return ""
	}
	if estimatedTokens > largeContextTokenLimit {
		fmt.Fprintln(a.Out, "Using GPT-3.5-turbo-16k for larger context window")
		return largeContextModel
	}
	return defaultModel
}

// chunkModel picks the model for per-file chunks; chunks are small enough
// that the default model always fits.
func (a *Analyzer) chunkModel() string {
	if a.modelOverridden() {
		return a.Model
	}
	if a.Provider.Info().Name == "openai" {
		return defaultModel
	}
	return ""
}

func (a *Analyzer) modelOverridden() bool {
	return a.Model != "" && a.Model != "auto"
}

func (a *Analyzer) warnParseFailure(err error, response string) {
	fmt.Fprintf(a.Err, "Warning: Could not parse OpenAI response: %v\n", err)
	fmt.Fprintf(a.Err, "Raw response: %s\n", response)
}

func (a *Analyzer) progress(stage string, current, total int) {
	if a.OnProgress != nil {
		a.OnProgress(stage, current, total)
	}
}

func (a *Analyzer) ensureWriters() {
	if a.Out == nil {
		a.Out = io.Discard
	}
	if a.Err == nil {
		a.Err = io.Discard
	}
}
