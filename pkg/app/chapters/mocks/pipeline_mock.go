package mocks

import (
	"context"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/stretchr/testify/mock"
)

type Pipeline struct {
	mock.Mock
}

func (m *Pipeline) Run(ctx context.Context, req chapter.VideoRequest) ([]chapter.Chapter, error) {
	args := m.Called(ctx, req)
	chs, _ := args.Get(0).([]chapter.Chapter)
	return chs, args.Error(1)
}
