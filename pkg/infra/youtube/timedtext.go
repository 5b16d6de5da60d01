package youtube

import (
	"encoding/xml"
	"fmt"
	"html"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// timedTextDoc covers both caption payloads YouTube serves: the legacy
// <transcript><text start dur> form in seconds and srv3
// <timedtext><body><p t d> in milliseconds.
type timedTextDoc struct {
	XMLName xml.Name
	Texts   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",innerxml"`
	} `xml:"text"`
	Paragraphs []struct {
		T    string `xml:"t,attr"`
		D    string `xml:"d,attr"`
		Body string `xml:",innerxml"`
	} `xml:"body>p"`
}

func parseTimedText(data []byte) ([]transcript.Segment, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(doc.Texts)+len(doc.Paragraphs))
	for _, t := range doc.Texts {
		start, err := parseSeconds(t.Start, 1)
		if err != nil {
			return nil, err
		}
		dur, err := parseSeconds(t.Dur, 1)
		if err != nil {
			return nil, err
		}
		segments = appendSegment(segments, start, dur, t.Body)
	}
	for _, p := range doc.Paragraphs {
		start, err := parseSeconds(p.T, 1000)
		if err != nil {
			return nil, err
		}
		dur, err := parseSeconds(p.D, 1000)
		if err != nil {
			return nil, err
		}
		segments = appendSegment(segments, start, dur, p.Body)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments, nil
}

func appendSegment(segments []transcript.Segment, start, dur float64, body string) []transcript.Segment {
	text := cleanText(body)
	if text == "" {
		return segments
	}
	return append(segments, transcript.Segment{
		Time:     transcript.FormatTime(start),
		Text:     text,
		Start:    start,
		Duration: dur,
	})
}

// cleanText strips markup and entity escapes. Captions are escaped twice
// (once for XML, once for HTML), so unescaping runs after tag removal too.
func cleanText(raw string) string {
	text := html.UnescapeString(raw)
	text = tagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

func parseSeconds(raw string, divisor float64) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timing %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid timing %q", raw)
	}
	return v / divisor, nil
}
