package chapters

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
)

const outputFormat = `OUTPUT FORMAT (ONLY):
00:00 - Introduction
MM:SS - Chapter Title
MM:SS - Chapter Title
...`

const generationInstructions = `You are a video summarization assistant. From the transcript and the total duration of a YouTube video, produce clear and concise chapter timestamps that mark only the major segments of the video, spread evenly across its length.

1. Input
- You receive the full transcript with MM:SS timestamps and the total duration of the video (for example 20:00).
- If the transcript is not in English, translate it to English first and write every title in English.

2. Chapters
- Start a chapter only at a significant topic shift. Merge minor transitions and repeated content into the surrounding chapter.
- Scale the number of chapters with the length of the video. A 20-minute video should get between 5 and 8 chapters.
- Cover the beginning, the middle and the end of the video evenly.
- Never place a timestamp after the total duration.

3. Format
- Each chapter is one line with the approximate start time as MM:SS (for example 03:15), then " - ", then a short descriptive title.
- List chapters in chronological order. The first chapter starts at 00:00 and the last one covers the conclusion of the video.
- Output nothing except the chapter lines.`

const refinementInstructions = `You are an advanced video summarization assistant who refines chapter timestamps for YouTube videos. You receive a preliminary chapter list produced by another model together with the full transcript. Produce the final, optimized chapter list.

1. Input
- The initial chapters, one per line as MM:SS - Title.
- The full transcript with MM:SS timestamps and the total duration of the video.
- If the transcript is not in English, translate it to English first and write every title in English.

2. Review
- Check every initial chapter against the transcript.
- Drop chapters that are redundant or too granular, and merge chapters that cover the same or consecutive topics.
- Make sure the final chapters cover the whole video and are evenly distributed.

3. Output
- A 20-minute video should end up with between 5 and 8 chapters.
- Never place a timestamp after the total duration.
- Keep titles short and descriptive, list chapters in chronological order and output nothing except the chapter lines.`

// RenderTranscript formats segments as "[MM:SS] text" lines.
func RenderTranscript(segments []transcript.Segment) string {
	lines := make([]string, len(segments))
	for i, s := range segments {
		lines[i] = fmt.Sprintf("[%s] %s", s.Time, s.Text)
	}
	return strings.Join(lines, "\n")
}

// RenderChapters formats chapters as "MM:SS - Title" lines.
func RenderChapters(chs []chapter.Chapter) string {
	lines := make([]string, len(chs))
	for i, c := range chs {
		lines[i] = c.Timestamp + " - " + c.Title
	}
	return strings.Join(lines, "\n")
}

func generationPrompt(segments []transcript.Segment, totalDuration string) string {
	var b strings.Builder
	b.WriteString(generationInstructions)
	b.WriteString("\n\nTRANSCRIPT WITH TIMESTAMPS:\n")
	b.WriteString(RenderTranscript(segments))
	b.WriteString("\n\nTOTAL DURATION:\n")
	b.WriteString(totalDuration)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)
	return b.String()
}

func refinementPrompt(draft []chapter.Chapter, segments []transcript.Segment, totalDuration string) string {
	var b strings.Builder
	b.WriteString(refinementInstructions)
	b.WriteString("\n\nINITIAL CHAPTERS:\n")
	b.WriteString(RenderChapters(draft))
	b.WriteString("\n\nTRANSCRIPT WITH TIMESTAMPS:\n")
	b.WriteString(RenderTranscript(segments))
	b.WriteString("\n\nTOTAL DURATION:\n")
	b.WriteString(totalDuration)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)
	return b.String()
}
