package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"surveydash/internal/analytics"
	"surveydash/internal/cache"
	"surveydash/internal/metrics"
	"surveydash/internal/model"
	"surveydash/internal/repository"
)

// ResponseList is one page of responses with stats over every match
type ResponseList struct {
	Page  analytics.Page[model.Response] `json:"page"`
	Stats model.ResponseStats            `json:"stats"`
}

// ResponseService handles response submission and browsing
type ResponseService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	reports      cache.ReportCache
	registry     *analytics.Registry
	metrics      *metrics.Metrics

	pageSize int
	now      func() time.Time
}

// NewResponseService creates a new response service
func NewResponseService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	reports cache.ReportCache,
	registry *analytics.Registry,
	m *metrics.Metrics,
	pageSize int,
) *ResponseService {
	return &ResponseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		reports:      reports,
		registry:     registry,
		metrics:      m,
		pageSize:     pageSize,
		now:          time.Now,
	}
}

// Submit records a response against a published survey. Questions may be
// left out; those present are checked against their question.
func (s *ResponseService) Submit(ctx context.Context, surveyID string, req *model.SubmitResponseRequest) (*model.Response, error) {
	response, err := s.submit(ctx, surveyID, req)
	switch {
	case err == nil:
		s.metrics.ResponseSubmitted(metrics.SubmitAccepted)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSurveyNotOpen), errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrUnknownQuestion), errors.Is(err, ErrDuplicateAnswer), errors.Is(err, ErrInvalidAnswer):
		s.metrics.ResponseSubmitted(metrics.SubmitRejected)
	default:
		s.metrics.ResponseSubmitted(metrics.SubmitError)
	}
	return response, err
}

func (s *ResponseService) submit(ctx context.Context, surveyID string, req *model.SubmitResponseRequest) (*model.Response, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey == nil {
		return nil, ErrNotFound
	}
	if survey.Status != model.SurveyPublished {
		return nil, ErrSurveyNotOpen
	}

	response := &model.Response{
		ID:             uuid.NewString(),
		SurveyID:       surveyID,
		RespondentID:   req.RespondentID,
		RespondentName: req.RespondentName,
		Answers:        make([]model.Answer, 0, len(req.Answers)),
		CreatedAt:      s.now().UTC(),
	}
	if response.RespondentID == "" {
		response.RespondentID = "anon_" + response.ID[:8]
	}

	seen := make(map[string]bool, len(req.Answers))
	for _, a := range req.Answers {
		q, ok := survey.Question(a.QuestionID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, a.QuestionID)
		}
		if seen[a.QuestionID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true

		if err := analytics.ValidateAnswer(s.registry, q, a.Value); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAnswer, a.QuestionID, err)
		}
		response.Answers = append(response.Answers, model.Answer{
			ID:         uuid.NewString(),
			ResponseID: response.ID,
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}

	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}
	s.invalidate(ctx, surveyID)

	slog.DebugContext(ctx, "response submitted",
		"survey_id", surveyID, "response_id", response.ID, "answers", len(response.Answers))
	return response, nil
}

// List returns a page of responses matching query, optionally restricted to
// one survey. Stats describe every matching response, not just the page.
func (s *ResponseService) List(ctx context.Context, query, surveyID string, page int) (*ResponseList, error) {
	responses, err := s.responseRepo.List(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	surveys, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	titles := make(map[string]string, len(surveys))
	for _, sv := range surveys {
		titles[sv.ID] = sv.Title
	}

	filter := analytics.ResponseFilter{Query: query, SurveyID: surveyID, SurveyTitles: titles}
	matched := analytics.FilterResponses(responses, filter)

	return &ResponseList{
		// matched is already filtered; the empty filter only orders and pages it
		Page:  analytics.PaginateResponses(matched, s.pageSize, page, analytics.ResponseFilter{}),
		Stats: analytics.ComputeResponseStats(matched, s.now()),
	}, nil
}

// Detail returns a response with each answer labelled by its question
func (s *ResponseService) Detail(ctx context.Context, id string) (*model.ResponseDetail, error) {
	response, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get response: %w", err)
	}
	if response == nil {
		return nil, ErrNotFound
	}

	detail := &model.ResponseDetail{
		Response: *response,
		Answers:  make([]model.AnswerDetail, 0, len(response.Answers)),
	}

	survey, err := s.surveyRepo.GetByID(ctx, response.SurveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey != nil {
		detail.SurveyTitle = survey.Title
	}

	for _, a := range response.Answers {
		ad := model.AnswerDetail{Answer: a}
		if survey != nil {
			if q, ok := survey.Question(a.QuestionID); ok {
				ad.QuestionLabel = q.Label
				ad.QuestionKind = q.Kind
			}
		}
		detail.Answers = append(detail.Answers, ad)
	}
	return detail, nil
}

// Delete removes a response; only the owner of its survey may do so
func (s *ResponseService) Delete(ctx context.Context, hostID, id string) error {
	response, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get response: %w", err)
	}
	if response == nil {
		return ErrNotFound
	}

	survey, err := s.surveyRepo.GetByID(ctx, response.SurveyID)
	if err != nil {
		return fmt.Errorf("get survey: %w", err)
	}
	if survey == nil || survey.CreatedBy != hostID {
		return ErrForbidden
	}

	if err := s.responseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete response: %w", err)
	}
	s.invalidate(ctx, response.SurveyID)

	slog.InfoContext(ctx, "response deleted", "response_id", id, "survey_id", response.SurveyID)
	return nil
}

func (s *ResponseService) invalidate(ctx context.Context, surveyID string) {
	if err := s.reports.Invalidate(ctx, surveyID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate report cache", "survey_id", surveyID, "error", err)
	}
}
