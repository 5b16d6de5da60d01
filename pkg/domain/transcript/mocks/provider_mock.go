package mocks

import (
	"context"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) List(ctx context.Context, videoID string) ([]transcript.Track, error) {
	args := m.Called(ctx, videoID)
	tracks, _ := args.Get(0).([]transcript.Track)
	return tracks, args.Error(1)
}

func (m *Provider) Fetch(ctx context.Context, track transcript.Track) ([]transcript.Segment, error) {
	args := m.Called(ctx, track)
	segments, _ := args.Get(0).([]transcript.Segment)
	return segments, args.Error(1)
}
