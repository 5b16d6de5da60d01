package youtube

import (
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
)

// ExtractVideoID resolves the video id from a watch URL ("...?v=ID&...") or a
// short link ("youtu.be/ID?..."). The v= form wins when both appear.
func ExtractVideoID(rawURL string) (string, error) {
	var id string
	switch {
	case strings.Contains(rawURL, "v="):
		_, id, _ = strings.Cut(rawURL, "v=")
		id, _, _ = strings.Cut(id, "&")
	case strings.Contains(rawURL, "youtu.be/"):
		_, id, _ = strings.Cut(rawURL, "youtu.be/")
		id, _, _ = strings.Cut(id, "?")
	default:
		return "", domain.ErrInvalidURL
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.ErrInvalidURL
	}
	return id, nil
}
