package chapter

import (
	"context"
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
)

type Chapter struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

// VideoRequest is the body accepted by every chapter endpoint.
type VideoRequest struct {
	URL      string  `json:"url"`
	Language *string `json:"language,omitempty"`
}

func (r VideoRequest) LanguageHint() string {
	if r.Language == nil {
		return ""
	}
	return strings.TrimSpace(*r.Language)
}

//go:generate mockery --name=Generator --dir=. --output=./mocks --filename=generator_mock.go --case=underscore --with-expecter
type Generator interface {
	Generate(ctx context.Context, segments []transcript.Segment, totalDuration string) ([]Chapter, error)
}

//go:generate mockery --name=Refiner --dir=. --output=./mocks --filename=refiner_mock.go --case=underscore --with-expecter
type Refiner interface {
	Refine(ctx context.Context, draft []Chapter, segments []transcript.Segment, totalDuration string) ([]Chapter, error)
}
