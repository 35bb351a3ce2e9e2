// Package doctor implements the connectivity smoke test: a fixed sequence
// of checks covering registry wiring, environment variables, and live
// round-trips to the hosting and completion APIs.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sanix-darker/purr/internal/provider"
	"github.com/sanix-darker/purr/internal/vcs"
)

// Check is one probe. Run returns a success detail line, or an error
// explaining the failure.
type Check struct {
	Name string
	Run  func(ctx context.Context) (string, error)
}

// Suite runs checks in order, printing each outcome and a final tally to
// Out.
type Suite struct {
	Out    io.Writer
	Checks []Check
}

// Run executes every check even when earlier ones fail; each failure is
// independent information. Returns the passed and total counts.
func (s *Suite) Run(ctx context.Context) (int, int) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}

	passed := 0
	for _, c := range s.Checks {
		fmt.Fprintf(out, "Testing %s...\n", c.Name)
		detail, err := c.Run(ctx)
		if err != nil {
			fmt.Fprintf(out, "FAILED: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "%s\n\n", detail)
		passed++
	}

	fmt.Fprintf(out, "Test Results: %d/%d tests passed\n", passed, len(s.Checks))
	return passed, len(s.Checks)
}

// RegistryCheck verifies that the configured AI provider and the GitHub
// VCS provider are registered.
func RegistryCheck(aiName string) Check {
	return Check{
		Name: "Provider Registry",
		Run: func(context.Context) (string, error) {
			names := provider.Names()
			if !contains(names, aiName) {
				return "", fmt.Errorf("AI provider %q not registered (available: %s)", aiName, strings.Join(names, ", "))
			}
			if !contains(vcs.Names(), "github") {
				return "", fmt.Errorf("VCS provider %q not registered", "github")
			}
			return fmt.Sprintf("All providers registered - ai: %s, vcs: github", aiName), nil
		},
	}
}

// EnvCheck verifies the required environment variables are set. With no
// arguments it checks the two credentials every command needs.
func EnvCheck(vars ...string) Check {
	if len(vars) == 0 {
		vars = []string{"GITHUB_TOKEN", "OPENAI_API_KEY"}
	}
	return Check{
		Name: "Environment Variables",
		Run: func(context.Context) (string, error) {
			var missing []string
			for _, v := range vars {
				if os.Getenv(v) == "" {
					missing = append(missing, v)
				}
			}
			if len(missing) > 0 {
				return "", fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
			}
			return "All environment variables are set", nil
		},
	}
}

// GitHubCheck dials the hosting API as the authenticated user. connect is
// lazy so construction problems (like a missing token) surface as check
// failures instead of aborting the suite.
func GitHubCheck(connect func() (vcs.VCSProvider, error)) Check {
	return Check{
		Name: "GitHub Connection",
		Run: func(ctx context.Context) (string, error) {
			vp, err := connect()
			if err != nil {
				return "", fmt.Errorf("GitHub connection failed: %v", err)
			}
			user, err := vp.GetUser(ctx)
			if err != nil {
				return "", fmt.Errorf("GitHub connection failed: %v", err)
			}
			return fmt.Sprintf("GitHub connection successful - authenticated as: %s", user.Login), nil
		},
	}
}

// CompletionCheck performs a tiny completion round-trip against the AI
// provider. On OpenAI it pins the cheap gpt-3.5-turbo model; elsewhere the
// provider's default is used.
func CompletionCheck(connect func() (provider.AIProvider, error)) Check {
	return Check{
		Name: "OpenAI Connection",
		Run: func(ctx context.Context) (string, error) {
			p, err := connect()
			if err != nil {
				return "", fmt.Errorf("OpenAI connection failed: %v", err)
			}
			model := ""
			if p.Info().Name == "openai" {
				model = "gpt-3.5-turbo"
			}
			_, err = p.Complete(ctx, provider.CompletionRequest{
				Model:     model,
				MaxTokens: 10,
				Messages: []provider.Message{
					{Role: provider.RoleUser, Content: "Say 'Hello, World!'"},
				},
			})
			if err != nil {
				return "", fmt.Errorf("OpenAI connection failed: %v", err)
			}
			return "OpenAI connection successful", nil
		},
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
