package request

import (
	"errors"
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
)

var ErrMissingURL = errors.New("url is required")

type VideoRequest struct {
	URL      string  `json:"url"`
	Language *string `json:"language,omitempty"`
}

func (r *VideoRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrMissingURL
	}
	return nil
}

func (r *VideoRequest) ToDomain() chapter.VideoRequest {
	return chapter.VideoRequest{
		URL:      strings.TrimSpace(r.URL),
		Language: r.Language,
	}
}
