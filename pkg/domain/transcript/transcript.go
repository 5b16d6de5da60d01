package transcript

import (
	"context"
	"fmt"
	"math"
)

// Segment is one timed caption line. Start and Duration are in seconds.
type Segment struct {
	Time     string  `json:"time"`
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Track is a caption track offered for a video.
type Track struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Generated    bool   `json:"generated"`
	URL          string `json:"url"`
}

type Transcript struct {
	VideoID       string    `json:"video_id"`
	Language      string    `json:"language"`
	Segments      []Segment `json:"segments"`
	TotalDuration string    `json:"total_duration"`
}

//go:generate mockery --name=Provider --dir=. --output=./mocks --filename=provider_mock.go --case=underscore --with-expecter
type Provider interface {
	List(ctx context.Context, videoID string) ([]Track, error)
	Fetch(ctx context.Context, track Track) ([]Segment, error)
}

// FormatTime renders seconds as MM:SS using floor division. Minutes are not
// capped at 59, so 6000 seconds is "100:00".
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// TotalDuration sums segment durations.
func TotalDuration(segments []Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Duration
	}
	return total
}
