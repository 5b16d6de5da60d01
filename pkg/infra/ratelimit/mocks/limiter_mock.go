package mocks

import (
	"context"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/infra/ratelimit"
	"github.com/stretchr/testify/mock"
)

type Limiter struct {
	mock.Mock
}

func (m *Limiter) Check(ctx context.Context, clientID string, now time.Time) (*ratelimit.Result, error) {
	args := m.Called(ctx, clientID, now)
	res, _ := args.Get(0).(*ratelimit.Result)
	return res, args.Error(1)
}
