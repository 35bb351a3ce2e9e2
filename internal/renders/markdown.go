// Package renders turns markdown reports into terminal output.
package renders

import (
	"os"

	markdown "github.com/MichaelMure/go-term-markdown"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	leftPad      = 2
)

// RenderMarkdown formats markdown for the current terminal width, falling
// back to an 80-column layout when stdout is not a TTY.
func RenderMarkdown(content string) string {
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return string(markdown.Render(content, width, leftPad))
}
