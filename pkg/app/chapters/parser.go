package chapters

import (
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
)

const separator = " - "

// ParseChapters extracts "MM:SS - Title" lines from model output. A line is
// kept when it contains " - " and the text before the first separator has a
// colon. Everything else is dropped without error.
func ParseChapters(text string) []chapter.Chapter {
	out := make([]chapter.Chapter, 0)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*• ")
		left, right, found := strings.Cut(line, separator)
		if !found || !strings.Contains(left, ":") {
			continue
		}
		out = append(out, chapter.Chapter{
			Timestamp: strings.TrimSpace(strings.Trim(left, "* ")),
			Title:     strings.TrimSpace(right),
		})
	}
	return out
}
