package provider

import (
	"context"
)

// CompleteText runs a completion request and returns the assistant text.
// When the provider fills the top-level Content field that value wins;
// otherwise the first choice's content is used. An empty string with a nil
// error means the model genuinely returned nothing, which callers treat as
// its own condition rather than a transport failure.
func CompleteText(ctx context.Context, p AIProvider, req CompletionRequest) (string, error) {
	resp, err := p.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if resp.Content != "" {
		return resp.Content, nil
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Content, nil
	}
	return "", nil
}
