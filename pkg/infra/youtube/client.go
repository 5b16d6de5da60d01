package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL        = "https://www.youtube.com"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
	maxPageSize           = 16 * 1024 * 1024
)

var errEmptyTimedText = errors.New("empty timedtext response")

type Options struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
}

type client struct {
	logger     *logrus.Logger
	httpClient httpx.Client
	breaker    httpx.CircuitBreaker
	opts       Options
}

// NewClient returns a transcript.Provider that scrapes caption tracks from
// the public watch page and downloads them from the timedtext endpoint.
func NewClient(
	logger *logrus.Logger,
	httpClient httpx.Client,
	breaker httpx.CircuitBreaker,
	opts Options,
) transcript.Provider {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.AcceptLanguage == "" {
		opts.AcceptLanguage = DefaultAcceptLanguage
	}
	if breaker == nil {
		breaker = httpx.NewPassthroughBreaker()
	}
	return &client{
		logger:     logger,
		httpClient: httpClient,
		breaker:    breaker,
		opts:       opts,
	}
}

func (c *client) List(ctx context.Context, videoID string) ([]transcript.Track, error) {
	watchURL := c.opts.BaseURL + "/watch?v=" + url.QueryEscape(videoID)
	page, err := c.get(ctx, watchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	playerResponse, err := extractPlayerResponse(page)
	if err != nil {
		return nil, err
	}
	tracks, err := parseCaptionTracks(playerResponse)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"tracks":   len(tracks),
	}).Debug("caption tracks listed")
	return tracks, nil
}

func (c *client) Fetch(ctx context.Context, track transcript.Track) ([]transcript.Segment, error) {
	trackURL := track.URL
	if strings.HasPrefix(trackURL, "/") {
		trackURL = c.opts.BaseURL + trackURL
	}

	body, err := c.get(ctx, trackURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s captions: %w", track.LanguageCode, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%s captions: %w", track.LanguageCode, errEmptyTimedText)
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *client) get(ctx context.Context, target string) ([]byte, error) {
	var body []byte
	err := c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept-Language", c.opts.AcceptLanguage)
		if c.opts.UserAgent != "" {
			req.Header.Set("User-Agent", c.opts.UserAgent)
		}
		req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+1"})

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
		}
		body = data
		return nil
	})
	return body, err
}
