package youtube_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx/mocks"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/youtube"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const watchPage = `<html><script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"},` +
	`"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"https://www.youtube.com/api/timedtext?v=vid1&lang=en","name":{"simpleText":"English"},"languageCode":"en"},` +
	`{"baseUrl":"/api/timedtext?v=vid1&lang=de&kind=asr","name":{"runs":[{"text":"German (auto)"}]},"languageCode":"de","kind":"asr"}` +
	`]}}};var meta = {};</script></html>`

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func urlIs(want string) interface{} {
	return mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == want
	})
}

func newClient(httpClient *mocks.MockHTTPClient) transcript.Provider {
	return youtube.NewClient(logrus.New(), httpClient, nil, youtube.Options{BaseURL: "https://yt.test/"})
}

func TestClient_List(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://yt.test/watch?v=vid1" &&
			req.Header.Get("Accept-Language") == youtube.DefaultAcceptLanguage
	})).Return(response(http.StatusOK, watchPage), nil).Once()

	tracks, err := newClient(httpClient).List(context.Background(), "vid1")
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "en", tracks[0].LanguageCode)
	assert.Equal(t, "English", tracks[0].Name)
	assert.False(t, tracks[0].Generated)

	assert.Equal(t, "de", tracks[1].LanguageCode)
	assert.Equal(t, "German (auto)", tracks[1].Name)
	assert.True(t, tracks[1].Generated)
	httpClient.AssertExpectations(t)
}

func TestClient_List_NoCaptions(t *testing.T) {
	page := `var ytInitialPlayerResponse = {"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}};`
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", urlIs("https://yt.test/watch?v=gone")).
		Return(response(http.StatusOK, page), nil).Once()

	_, err := newClient(httpClient).List(context.Background(), "gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTranscriptNotFound)
	assert.Contains(t, err.Error(), "Video unavailable")
}

func TestClient_List_MissingPlayerResponse(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(response(http.StatusOK, "<html></html>"), nil).Once()

	_, err := newClient(httpClient).List(context.Background(), "vid1")
	assert.Error(t, err)
}

func TestClient_List_HTTPFailure(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(nil, errors.New("dial tcp: refused")).Once()

	_, err := newClient(httpClient).List(context.Background(), "vid1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestClient_List_BadStatus(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(response(http.StatusTooManyRequests, "slow down"), nil).Once()

	_, err := newClient(httpClient).List(context.Background(), "vid1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_Fetch(t *testing.T) {
	xml := `<transcript><text start="0" dur="1.5">hi there</text><text start="61" dur="2">next</text></transcript>`
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", urlIs("https://yt.test/api/timedtext?v=vid1&lang=de&kind=asr")).
		Return(response(http.StatusOK, xml), nil).Once()

	segments, err := newClient(httpClient).Fetch(context.Background(), transcript.Track{
		LanguageCode: "de",
		URL:          "/api/timedtext?v=vid1&lang=de&kind=asr",
	})
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "hi there", segments[0].Text)
	assert.Equal(t, "01:01", segments[1].Time)
	httpClient.AssertExpectations(t)
}

func TestClient_Fetch_EmptyBody(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(response(http.StatusOK, "  "), nil).Once()

	_, err := newClient(httpClient).Fetch(context.Background(), transcript.Track{
		LanguageCode: "en",
		URL:          "https://yt.test/api/timedtext?v=vid1",
	})
	assert.Error(t, err)
}
