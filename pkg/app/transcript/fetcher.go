package transcript

import (
	"context"
	"fmt"
	"sort"

	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	domain_transcript "github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/youtube"
	"github.com/sirupsen/logrus"
)

const resourceName = "transcript"

//go:generate mockery --name=Fetcher --dir=. --output=./mocks --filename=transcript_fetcher_mock.go --case=underscore --with-expecter
type Fetcher interface {
	Fetch(ctx context.Context, videoURL, languageHint string) (*domain_transcript.Transcript, error)
}

type fetcher struct {
	provider domain_transcript.Provider
	logger   *logrus.Logger
}

func NewFetcher(provider domain_transcript.Provider, logger *logrus.Logger) Fetcher {
	return &fetcher{
		provider: provider,
		logger:   logger,
	}
}

// Fetch resolves the video, picks a caption track and downloads it. Every
// failure is reported as a not-found error.
func (f *fetcher) Fetch(ctx context.Context, videoURL, languageHint string) (*domain_transcript.Transcript, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return nil, domain.NewNotFoundError(resourceName, err)
	}

	tracks, err := f.provider.List(ctx, videoID)
	if err != nil {
		f.logger.WithError(err).WithField("video_id", videoID).Warn("failed to list caption tracks")
		return nil, domain.NewNotFoundError(resourceName, err)
	}

	track, err := SelectTrack(tracks, languageHint)
	if err != nil {
		return nil, domain.NewNotFoundError(resourceName, fmt.Errorf("video %s: %w", videoID, err))
	}

	segments, err := f.provider.Fetch(ctx, track)
	if err != nil {
		f.logger.WithError(err).WithFields(logrus.Fields{
			"video_id": videoID,
			"language": track.LanguageCode,
		}).Warn("failed to download captions")
		return nil, domain.NewNotFoundError(resourceName, err)
	}
	if len(segments) == 0 {
		return nil, domain.NewNotFoundError(
			resourceName,
			fmt.Errorf("%w: video %s has no caption lines", domain.ErrTranscriptNotFound, videoID),
		)
	}

	return &domain_transcript.Transcript{
		VideoID:       videoID,
		Language:      track.LanguageCode,
		Segments:      segments,
		TotalDuration: domain_transcript.FormatTime(domain_transcript.TotalDuration(segments)),
	}, nil
}

// SelectTrack applies the language rule: the hinted language when given,
// otherwise English, otherwise the smallest language code. Manually created
// tracks beat generated ones for the same language.
func SelectTrack(tracks []domain_transcript.Track, languageHint string) (domain_transcript.Track, error) {
	if len(tracks) == 0 {
		return domain_transcript.Track{}, domain.ErrTranscriptNotFound
	}

	byLanguage := make(map[string]domain_transcript.Track, len(tracks))
	for _, t := range tracks {
		current, seen := byLanguage[t.LanguageCode]
		if !seen || (current.Generated && !t.Generated) {
			byLanguage[t.LanguageCode] = t
		}
	}

	if languageHint != "" {
		if t, ok := byLanguage[languageHint]; ok {
			return t, nil
		}
		return domain_transcript.Track{}, fmt.Errorf("%w: %q", domain.ErrLanguageUnavailable, languageHint)
	}

	if t, ok := byLanguage[common.DefaultLanguage]; ok {
		return t, nil
	}
	codes := make([]string, 0, len(byLanguage))
	for code := range byLanguage {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return byLanguage[codes[0]], nil
}
