package transcript_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/NeuralTrust/ChapterGenie/pkg/app/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sampleSegments = []transcript.Segment{
	{Time: "00:00", Text: "hello", Start: 0, Duration: 30},
	{Time: "00:30", Text: "world", Start: 30, Duration: 45.9},
}

func TestSelectTrack(t *testing.T) {
	tracks := []transcript.Track{
		{LanguageCode: "fr", URL: "fr"},
		{LanguageCode: "en", URL: "en-asr", Generated: true},
		{LanguageCode: "en", URL: "en-manual"},
		{LanguageCode: "de", URL: "de"},
	}

	got, err := app.SelectTrack(tracks, "")
	require.NoError(t, err)
	assert.Equal(t, "en-manual", got.URL)

	got, err = app.SelectTrack(tracks, "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr", got.URL)

	_, err = app.SelectTrack(tracks, "ja")
	assert.ErrorIs(t, err, domain.ErrLanguageUnavailable)

	got, err = app.SelectTrack(tracks[3:], "")
	require.NoError(t, err)
	assert.Equal(t, "de", got.LanguageCode)

	_, err = app.SelectTrack(nil, "")
	assert.ErrorIs(t, err, domain.ErrTranscriptNotFound)
}

func TestSelectTrack_SmallestCodeWithoutEnglish(t *testing.T) {
	tracks := []transcript.Track{
		{LanguageCode: "pt"},
		{LanguageCode: "es"},
		{LanguageCode: "it"},
	}
	got, err := app.SelectTrack(tracks, "")
	require.NoError(t, err)
	assert.Equal(t, "es", got.LanguageCode)
}

func TestFetcher_Fetch(t *testing.T) {
	provider := new(mocks.Provider)
	track := transcript.Track{LanguageCode: "en", URL: "u"}
	provider.On("List", mock.Anything, "abc").Return([]transcript.Track{track}, nil).Once()
	provider.On("Fetch", mock.Anything, track).Return(sampleSegments, nil).Once()

	f := app.NewFetcher(provider, logrus.New())
	got, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc", "")
	require.NoError(t, err)

	assert.Equal(t, "abc", got.VideoID)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, "01:15", got.TotalDuration)
	assert.Len(t, got.Segments, 2)
	provider.AssertExpectations(t)
}

func TestFetcher_Fetch_Failures(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		provider := new(mocks.Provider)
		_, err := app.NewFetcher(provider, logrus.New()).Fetch(context.Background(), "https://vimeo.com/1", "")
		require.Error(t, err)
		assert.True(t, domain.IsNotFoundError(err))
		assert.ErrorIs(t, err, domain.ErrInvalidURL)
		provider.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("list fails", func(t *testing.T) {
		provider := new(mocks.Provider)
		provider.On("List", mock.Anything, "abc").Return(nil, errors.New("Transcripts are disabled")).Once()
		_, err := app.NewFetcher(provider, logrus.New()).Fetch(context.Background(), "https://youtu.be/abc", "")
		require.Error(t, err)
		assert.True(t, domain.IsNotFoundError(err))
		assert.Equal(t, "Error fetching transcript: Transcripts are disabled", err.Error())
	})

	t.Run("language unavailable", func(t *testing.T) {
		provider := new(mocks.Provider)
		provider.On("List", mock.Anything, "abc").
			Return([]transcript.Track{{LanguageCode: "en"}}, nil).Once()
		_, err := app.NewFetcher(provider, logrus.New()).Fetch(context.Background(), "https://youtu.be/abc", "es")
		require.Error(t, err)
		assert.True(t, domain.IsNotFoundError(err))
		assert.ErrorIs(t, err, domain.ErrLanguageUnavailable)
	})

	t.Run("empty captions", func(t *testing.T) {
		provider := new(mocks.Provider)
		track := transcript.Track{LanguageCode: "en"}
		provider.On("List", mock.Anything, "abc").Return([]transcript.Track{track}, nil).Once()
		provider.On("Fetch", mock.Anything, track).Return([]transcript.Segment{}, nil).Once()
		_, err := app.NewFetcher(provider, logrus.New()).Fetch(context.Background(), "https://youtu.be/abc", "")
		assert.True(t, domain.IsNotFoundError(err))
	})
}
