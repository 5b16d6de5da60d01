package chapters

import (
	"context"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/app/transcript"
	"github.com/NeuralTrust/ChapterGenie/pkg/common"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/NeuralTrust/ChapterGenie/pkg/domain/chapter"
	"github.com/NeuralTrust/ChapterGenie/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

type Stage string

const (
	StageReceived          Stage = "received"
	StageTranscriptFetched Stage = "transcript_fetched"
	StageChaptersDrafted   Stage = "chapters_drafted"
	StageChaptersRefined   Stage = "chapters_refined"
	StageResponded         Stage = "responded"
	StageFailed            Stage = "failed"
)

//go:generate mockery --name=Pipeline --dir=. --output=./mocks --filename=pipeline_mock.go --case=underscore --with-expecter
type Pipeline interface {
	Run(ctx context.Context, req chapter.VideoRequest) ([]chapter.Chapter, error)
}

type pipeline struct {
	fetcher   transcript.Fetcher
	generator chapter.Generator
	refiner   chapter.Refiner
	logger    *logrus.Logger
}

func NewPipeline(
	fetcher transcript.Fetcher,
	generator chapter.Generator,
	refiner chapter.Refiner,
	logger *logrus.Logger,
) Pipeline {
	return &pipeline{
		fetcher:   fetcher,
		generator: generator,
		refiner:   refiner,
		logger:    logger,
	}
}

// Run fetches the transcript, drafts chapters and refines them. A failure in
// any stage aborts the request with no partial result.
func (p *pipeline) Run(ctx context.Context, req chapter.VideoRequest) ([]chapter.Chapter, error) {
	log := p.logger.WithFields(logrus.Fields{
		"url":        req.URL,
		"request_id": ctx.Value(common.RequestIDKey),
	})
	log.WithField("stage", StageReceived).Info("chapter request received")

	started := time.Now()
	tr, err := p.fetcher.Fetch(ctx, req.URL, req.LanguageHint())
	if err != nil {
		return nil, p.fail(log, StageTranscriptFetched, started, err)
	}
	p.observe(StageTranscriptFetched, "ok", started)
	log.WithFields(logrus.Fields{
		"stage":    StageTranscriptFetched,
		"video_id": tr.VideoID,
		"language": tr.Language,
		"segments": len(tr.Segments),
		"duration": tr.TotalDuration,
	}).Info("transcript fetched")

	started = time.Now()
	draft, err := p.generator.Generate(ctx, tr.Segments, tr.TotalDuration)
	if err != nil {
		return nil, p.fail(log, StageChaptersDrafted, started, err)
	}
	p.observe(StageChaptersDrafted, "ok", started)
	log.WithFields(logrus.Fields{
		"stage":    StageChaptersDrafted,
		"chapters": len(draft),
	}).Info("initial chapters generated")

	started = time.Now()
	final, err := p.refiner.Refine(ctx, draft, tr.Segments, tr.TotalDuration)
	if err != nil {
		return nil, p.fail(log, StageChaptersRefined, started, err)
	}
	p.observe(StageChaptersRefined, "ok", started)
	log.WithFields(logrus.Fields{
		"stage":    StageResponded,
		"chapters": len(final),
	}).Info("chapters refined")

	return final, nil
}

func (p *pipeline) fail(log *logrus.Entry, stage Stage, started time.Time, err error) error {
	p.observe(stage, "failed", started)
	log.WithError(err).WithFields(logrus.Fields{
		"stage":  StageFailed,
		"during": stage,
		"kind":   failureKind(err),
	}).Error("chapter request failed")
	return err
}

func (p *pipeline) observe(stage Stage, outcome string, started time.Time) {
	prometheus.StageLatency.
		WithLabelValues(string(stage), outcome).
		Observe(float64(time.Since(started).Milliseconds()))
}

func failureKind(err error) string {
	switch {
	case domain.IsNotFoundError(err):
		return "not_found"
	case domain.IsGenerationError(err):
		return "generation"
	default:
		return "internal"
	}
}
