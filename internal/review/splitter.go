package review

import "strings"

// filePrefix marks the start of a file's section inside the review blob.
const filePrefix = "File: "

// Segment is one file's slice of the blob, reconstructed for chunked
// analysis. Text always includes the "File: ..." marker line.
type Segment struct {
	Name string
	Text string
}

// SplitBlob cuts a review blob back into per-file segments on "File: "
// marker lines. Lines before the first marker are dropped. A segment's name
// is everything after the marker prefix, so skip placeholders keep their
// annotation (e.g. "logo.png (binary file - skipped)").
func SplitBlob(blob string) []Segment {
	var segments []Segment
	var currentName string
	var currentLines []string

	flush := func() {
		if currentName != "" && len(currentLines) > 0 {
			segments = append(segments, Segment{
				Name: currentName,
				Text: strings.Join(currentLines, "\n"),
			})
		}
	}

	for _, line := range strings.Split(blob, "\n") {
		if strings.HasPrefix(line, filePrefix) {
			flush()
			currentName = line[len(filePrefix):]
			currentLines = []string{line}
			continue
		}
		if currentName != "" {
			currentLines = append(currentLines, line)
		}
	}
	flush()

	return segments
}
