package review

import "strings"

const (
	// chunkTokenLimit is the estimated blob size above which analysis
	// switches from a single request to per-file chunks.
	chunkTokenLimit = 6000

	// largeContextTokenLimit is the single-shot size above which the
	// wider-context model replaces the default.
	largeContextTokenLimit = 4000
)

const (
	defaultModel      = "gpt-4"
	largeContextModel = "gpt-3.5-turbo-16k"
)

// EstimateTokens approximates the token cost of a text: 1.3 tokens per
// whitespace-separated word plus 0.1 per byte. Deliberately cheap and
// deterministic; it only has to be consistent with the thresholds above.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	chars := len(text)
	return int(float64(words)*1.3 + float64(chars)*0.1)
}
