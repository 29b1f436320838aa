package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"surveydash/internal/analytics"
	"surveydash/internal/cache"
	"surveydash/internal/metrics"
	"surveydash/internal/model"
	"surveydash/internal/repository"
)

// ReportService builds and caches per-survey analytics reports
type ReportService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	cache        cache.ReportCache
	registry     *analytics.Registry
	metrics      *metrics.Metrics

	group singleflight.Group
	now   func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	reportCache cache.ReportCache,
	registry *analytics.Registry,
	m *metrics.Metrics,
) *ReportService {
	return &ReportService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		cache:        reportCache,
		registry:     registry,
		metrics:      m,
		now:          time.Now,
	}
}

// Report returns the analytics report of a survey, building it when the
// cache has none. Concurrent builds for the same survey and cache generation
// share one result; a build that outlives an invalidation is not cached.
func (s *ReportService) Report(ctx context.Context, surveyID string) (*model.AnalyticsReport, error) {
	cached, err := s.cache.Get(ctx, surveyID)
	if err != nil {
		slog.WarnContext(ctx, "report cache read failed", "survey_id", surveyID, "error", err)
	}
	if cached != nil {
		s.metrics.ReportBuild(metrics.ResultCacheHit)
		return cached, nil
	}

	gen := s.cache.Generation(surveyID)
	key := surveyID + "@" + strconv.FormatUint(gen, 10)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		// joined callers must not fail because the first one went away
		return s.build(context.WithoutCancel(ctx), surveyID, gen)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.DebugContext(ctx, "report build shared", "survey_id", surveyID)
	}
	return v.(*model.AnalyticsReport), nil
}

func (s *ReportService) build(ctx context.Context, surveyID string, gen uint64) (*model.AnalyticsReport, error) {
	start := time.Now()

	report, err := s.assemble(ctx, surveyID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.metrics.ReportBuild(metrics.ResultError)
		}
		return nil, err
	}

	s.metrics.ReportBuild(metrics.ResultBuilt)
	s.metrics.ReportBuildDuration(time.Since(start))
	for _, sum := range report.Summaries {
		s.metrics.IgnoredAnswers(string(sum.Kind), sum.IgnoredCount)
	}

	stored, err := s.cache.SetIfCurrent(ctx, report, gen)
	if err != nil {
		slog.WarnContext(ctx, "report cache write failed", "survey_id", surveyID, "error", err)
	}
	if !stored {
		slog.DebugContext(ctx, "report invalidated during build, not cached", "survey_id", surveyID)
	}

	slog.InfoContext(ctx, "report built",
		"survey_id", surveyID,
		"responses", report.TotalResponses,
		"questions", len(report.Summaries),
		"duration", time.Since(start))
	return report, nil
}

func (s *ReportService) assemble(ctx context.Context, surveyID string) (*model.AnalyticsReport, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey == nil {
		return nil, ErrNotFound
	}

	responses, err := s.responseRepo.List(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	report, err := analytics.BuildReportFromResponses(s.registry, survey, survey.Questions, responses)
	if err != nil {
		return nil, fmt.Errorf("build report %s: %w", surveyID, err)
	}
	report.GeneratedAt = s.now().UTC()
	return report, nil
}

// ChartData returns the chart series of one question of a survey's report
func (s *ReportService) ChartData(ctx context.Context, surveyID, questionID string) (*model.ChartData, error) {
	report, err := s.Report(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	for i := range report.Summaries {
		if report.Summaries[i].QuestionID == questionID {
			data := report.Summaries[i].ChartData()
			return &data, nil
		}
	}
	return nil, ErrNotFound
}

// Invalidate drops any cached report of a survey
func (s *ReportService) Invalidate(ctx context.Context, surveyID string) error {
	return s.cache.Invalidate(ctx, surveyID)
}
