package mocks

import (
	"context"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/stretchr/testify/mock"
)

type Refiner struct {
	mock.Mock
}

func (m *Refiner) Refine(
	ctx context.Context,
	draft []chapter.Chapter,
	segments []transcript.Segment,
	totalDuration string,
) ([]chapter.Chapter, error) {
	args := m.Called(ctx, draft, segments, totalDuration)
	chs, _ := args.Get(0).([]chapter.Chapter)
	return chs, args.Error(1)
}
