package review

import (
	"fmt"
	"strings"

	"github.com/sanix-darker/purr/internal/vcs"
)

const (
	// largeFileThreshold is the additions+deletions count above which a
	// file's patch is truncated to keep the blob inside model context.
	largeFileThreshold = 1000

	// maxPatchLines is how many patch lines survive truncation.
	maxPatchLines = 500
)

// binaryExtensions are filename suffixes treated as binary content. Their
// diffs are never sent to the model.
var binaryExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".pdf", ".zip", ".tar.gz",
}

// FileSection is one file's contribution to the review blob. Skipped
// sections carry only a placeholder line and do not count toward totals.
type FileSection struct {
	Name    string
	Text    string
	Skipped bool
}

// Collection is the assembled review input: the ordered per-file sections
// plus the totals used for the progress message.
type Collection struct {
	Sections []FileSection
	Files    int // files that contributed a real diff
	Changes  int // additions+deletions across contributing files
}

// Blob returns the concatenated section texts, which is the exact text the
// analysis prompts embed. Sections appear in the platform's file order.
func (c *Collection) Blob() string {
	var sb strings.Builder
	for _, s := range c.Sections {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Collect turns the platform's changed-file list into an annotated diff
// blob. Binary files and files without patch text become one-line skip
// placeholders; oversized files are truncated to their first 500 patch
// lines; everything else is rendered in full with a metadata header.
func Collect(files []vcs.ChangedFile) Collection {
	var col Collection

	for _, f := range files {
		if f.Patch == "" || isBinaryPath(f.Filename) {
			col.Sections = append(col.Sections, FileSection{
				Name:    f.Filename,
				Text:    fmt.Sprintf("File: %s (binary file - skipped)\n", f.Filename),
				Skipped: true,
			})
			continue
		}

		var sb strings.Builder
		if f.Additions+f.Deletions > largeFileThreshold {
			sb.WriteString(fmt.Sprintf("File: %s (large file - showing first %d lines)\n", f.Filename, maxPatchLines))
			sb.WriteString(fmt.Sprintf("Status: %s\n", f.Status))
			sb.WriteString(fmt.Sprintf("Additions: %d, Deletions: %d\n", f.Additions, f.Deletions))
			sb.WriteString("---\n")

			patchLines := strings.Split(f.Patch, "\n")
			if len(patchLines) > maxPatchLines {
				patchLines = patchLines[:maxPatchLines]
			}
			sb.WriteString(strings.Join(patchLines, "\n"))
			sb.WriteString("\n... (truncated due to size)\n\n")
		} else {
			sb.WriteString(fmt.Sprintf("File: %s\n", f.Filename))
			sb.WriteString(fmt.Sprintf("Status: %s\n", f.Status))
			sb.WriteString(fmt.Sprintf("Additions: %d, Deletions: %d\n", f.Additions, f.Deletions))
			sb.WriteString("---\n")
			sb.WriteString(f.Patch)
			sb.WriteString("\n\n")
		}

		col.Sections = append(col.Sections, FileSection{
			Name: f.Filename,
			Text: sb.String(),
		})
		col.Files++
		col.Changes += f.Additions + f.Deletions
	}

	return col
}

func isBinaryPath(name string) bool {
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
