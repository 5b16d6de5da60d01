package youtube

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/valyala/fastjson"
)

var playerResponseMarkers = [][]byte{
	[]byte("ytInitialPlayerResponse = "),
	[]byte("ytInitialPlayerResponse="),
}

var errPlayerResponseMissing = errors.New("ytInitialPlayerResponse not found in watch page")

// extractPlayerResponse returns the JSON object assigned to
// ytInitialPlayerResponse in a watch page.
func extractPlayerResponse(page []byte) ([]byte, error) {
	for _, marker := range playerResponseMarkers {
		idx := bytes.Index(page, marker)
		if idx < 0 {
			continue
		}
		if obj := balancedObject(page[idx+len(marker):]); obj != nil {
			return obj, nil
		}
	}
	return nil, errPlayerResponseMissing
}

// balancedObject returns the leading {...} of b, honouring string literals
// and escapes, or nil when b does not start with a complete object.
func balancedObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, c := range b {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// parseCaptionTracks lists the caption tracks declared in a player response.
func parseCaptionTracks(playerResponse []byte) ([]transcript.Track, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(playerResponse)
	if err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}

	items := v.GetArray("captions", "playerCaptionsTracklistRenderer", "captionTracks")
	if len(items) == 0 {
		if reason := playabilityReason(v); reason != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrTranscriptNotFound, reason)
		}
		return nil, fmt.Errorf("%w: transcripts are disabled for this video", domain.ErrTranscriptNotFound)
	}

	tracks := make([]transcript.Track, 0, len(items))
	for _, item := range items {
		baseURL := string(item.GetStringBytes("baseUrl"))
		lang := string(item.GetStringBytes("languageCode"))
		if baseURL == "" || lang == "" {
			continue
		}
		tracks = append(tracks, transcript.Track{
			LanguageCode: lang,
			Name:         trackName(item),
			Generated:    string(item.GetStringBytes("kind")) == "asr",
			URL:          baseURL,
		})
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no usable caption tracks", domain.ErrTranscriptNotFound)
	}
	return tracks, nil
}

func trackName(item *fastjson.Value) string {
	if name := item.GetStringBytes("name", "simpleText"); len(name) > 0 {
		return string(name)
	}
	return string(item.GetStringBytes("name", "runs", "0", "text"))
}

func playabilityReason(v *fastjson.Value) string {
	status := string(v.GetStringBytes("playabilityStatus", "status"))
	if status == "" || status == "OK" {
		return ""
	}
	if reason := v.GetStringBytes("playabilityStatus", "reason"); len(reason) > 0 {
		return string(reason)
	}
	return "video is " + status
}
