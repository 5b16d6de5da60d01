package mocks

import (
	"context"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain/transcript"
	"github.com/stretchr/testify/mock"
)

type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) Fetch(ctx context.Context, videoURL, languageHint string) (*transcript.Transcript, error) {
	args := m.Called(ctx, videoURL, languageHint)
	t, _ := args.Get(0).(*transcript.Transcript)
	return t, args.Error(1)
}
