package chapters_test

import (
	"testing"

	"github.com/NeuralTrust/ChapterGenie/pkg/app/chapters"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/stretchr/testify/assert"
)

func TestParseChapters(t *testing.T) {
	text := `
Here are the chapters:
00:00 - Introduction
03:15 -   Setting up the project
not a chapter - because no colon
Note: this line has no separator
- 07:40 - Deploying
**12:05** - Wrap up - and questions
`
	got := chapters.ParseChapters(text)
	assert.Equal(t, []chapter.Chapter{
		{Timestamp: "00:00", Title: "Introduction"},
		{Timestamp: "03:15", Title: "Setting up the project"},
		{Timestamp: "07:40", Title: "Deploying"},
		{Timestamp: "12:05", Title: "Wrap up - and questions"},
	}, got)
}

func TestParseChapters_NoMatches(t *testing.T) {
	got := chapters.ParseChapters("I could not find any chapters.")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, chapters.ParseChapters(""))
}

func TestParseChapters_KeepsOutOfRangeTimestamps(t *testing.T) {
	got := chapters.ParseChapters("00:00 - Intro\n99:59 - Beyond the end")
	assert.Len(t, got, 2)
	assert.Equal(t, "99:59", got[1].Timestamp)
}

func TestRenderTranscript(t *testing.T) {
	out := chapters.RenderTranscript([]transcript.Segment{
		{Time: "00:00", Text: "hello"},
		{Time: "01:05", Text: "world"},
	})
	assert.Equal(t, "[00:00] hello\n[01:05] world", out)
	assert.Equal(t, "", chapters.RenderTranscript(nil))
}

func TestRenderChapters(t *testing.T) {
	out := chapters.RenderChapters([]chapter.Chapter{
		{Timestamp: "00:00", Title: "Intro"},
		{Timestamp: "02:00", Title: "Body"},
	})
	assert.Equal(t, "00:00 - Intro\n02:00 - Body", out)
}
