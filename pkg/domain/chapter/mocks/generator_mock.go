package mocks

import (
	"context"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/stretchr/testify/mock"
)

type Generator struct {
	mock.Mock
}

func (m *Generator) Generate(ctx context.Context, segments []transcript.Segment, totalDuration string) ([]chapter.Chapter, error) {
	args := m.Called(ctx, segments, totalDuration)
	chs, _ := args.Get(0).([]chapter.Chapter)
	return chs, args.Error(1)
}
