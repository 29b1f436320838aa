package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"surveydash/internal/analytics"
	"surveydash/internal/cache"
	"surveydash/internal/model"
	"surveydash/internal/repository"
)

// Dashboard is one page of the survey list plus the recently updated strip
type Dashboard struct {
	Page   analytics.Page[model.Survey] `json:"page"`
	Recent []model.Survey               `json:"recentSurveys,omitempty"`
}

// SurveyService handles survey CRUD operations
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	reports      cache.ReportCache
	registry     *analytics.Registry

	pageSize int
	recent   int
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	reports cache.ReportCache,
	registry *analytics.Registry,
	pageSize, recent int,
) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		reports:      reports,
		registry:     registry,
		pageSize:     pageSize,
		recent:       recent,
	}
}

// Create validates and stores a new draft survey owned by hostID
func (s *SurveyService) Create(ctx context.Context, hostID string, req *model.CreateSurveyRequest) (*model.Survey, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	survey := &model.Survey{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      model.SurveyDraft,
		CreatedBy:   hostID,
		Questions:   make([]model.Question, 0, len(req.Questions)),
	}

	for i, qr := range req.Questions {
		q := model.Question{
			ID:       uuid.NewString(),
			SurveyID: survey.ID,
			Kind:     qr.Kind,
			Label:    qr.Label,
			Choices:  qr.Choices,
			ScaleMin: qr.ScaleMin,
			ScaleMax: qr.ScaleMax,
		}
		if err := analytics.ValidateQuestion(s.registry, &q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidQuestion, i+1, err)
		}
		survey.Questions = append(survey.Questions, q)
	}

	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}

	slog.InfoContext(ctx, "survey created",
		"survey_id", survey.ID, "host_id", hostID, "questions", len(survey.Questions))
	return survey, nil
}

// Get returns a survey with its response count
func (s *SurveyService) Get(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey == nil {
		return nil, ErrNotFound
	}

	count, err := s.responseRepo.CountBySurvey(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count responses: %w", err)
	}
	survey.ResponseCount = count
	return survey, nil
}

// Dashboard returns the requested page of surveys matching query, most
// recently updated first, and the most recently updated surveys overall.
func (s *SurveyService) Dashboard(ctx context.Context, query string, page int) (*Dashboard, error) {
	surveys, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}

	counts, err := s.responseRepo.CountsBySurvey(ctx)
	if err != nil {
		return nil, fmt.Errorf("count responses: %w", err)
	}
	for i := range surveys {
		surveys[i].ResponseCount = counts[surveys[i].ID]
	}

	dash := &Dashboard{
		Page: analytics.PaginateSurveys(surveys, s.pageSize, page, query),
	}

	recent := make([]model.Survey, len(surveys))
	copy(recent, surveys)
	analytics.SortSurveysByUpdate(recent)
	if len(recent) > s.recent {
		recent = recent[:s.recent]
	}
	dash.Recent = recent

	return dash, nil
}

// UpdateStatus moves a survey owned by hostID to status
func (s *SurveyService) UpdateStatus(ctx context.Context, hostID, id string, status model.SurveyStatus) (*model.Survey, error) {
	survey, err := s.owned(ctx, hostID, id)
	if err != nil {
		return nil, err
	}
	if !survey.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, survey.Status, status)
	}

	prev := survey.Status
	survey.Status = status
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, fmt.Errorf("update survey: %w", err)
	}

	slog.InfoContext(ctx, "survey status changed",
		"survey_id", id, "from", prev, "to", status)
	return survey, nil
}

// Delete removes a survey owned by hostID together with its responses
func (s *SurveyService) Delete(ctx context.Context, hostID, id string) error {
	if _, err := s.owned(ctx, hostID, id); err != nil {
		return err
	}

	removed, err := s.responseRepo.DeleteBySurvey(ctx, id)
	if err != nil {
		return fmt.Errorf("delete responses: %w", err)
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}
	if err := s.reports.Invalidate(ctx, id); err != nil {
		slog.WarnContext(ctx, "failed to invalidate report cache", "survey_id", id, "error", err)
	}

	slog.InfoContext(ctx, "survey deleted",
		"survey_id", id, "host_id", hostID, "responses_removed", removed)
	return nil
}

// QuestionKinds lists the question kinds surveys may use
func (s *SurveyService) QuestionKinds() []model.QuestionKind {
	return s.registry.Kinds()
}

func (s *SurveyService) owned(ctx context.Context, hostID, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}
	if survey == nil {
		return nil, ErrNotFound
	}
	if survey.CreatedBy != hostID {
		return nil, ErrForbidden
	}
	return survey, nil
}
