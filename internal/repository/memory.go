package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"surveydash/internal/model"
)

// MemoryStore keeps surveys and responses in process memory. It backs both
// repositories when the server runs without MongoDB.
type MemoryStore struct {
	mu        sync.RWMutex
	surveys   map[string]model.Survey
	responses map[string]model.Response
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		surveys:   map[string]model.Survey{},
		responses: map[string]model.Response{},
	}
}

// Surveys returns a SurveyRepo view of the store
func (s *MemoryStore) Surveys() SurveyRepo {
	return memorySurveys{s}
}

// Responses returns a ResponseRepo view of the store
func (s *MemoryStore) Responses() ResponseRepo {
	return memoryResponses{s}
}

type memorySurveys struct{ s *MemoryStore }

func (m memorySurveys) Create(_ context.Context, survey *model.Survey) error {
	now := time.Now().UTC()
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = now
	}
	survey.UpdatedAt = now

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.surveys[survey.ID] = cloneSurvey(*survey)
	return nil
}

func (m memorySurveys) GetByID(_ context.Context, id string) (*model.Survey, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	survey, ok := m.s.surveys[id]
	if !ok {
		return nil, nil
	}
	survey = cloneSurvey(survey)
	return &survey, nil
}

func (m memorySurveys) List(context.Context) ([]model.Survey, error) {
	m.s.mu.RLock()
	out := make([]model.Survey, 0, len(m.s.surveys))
	for _, survey := range m.s.surveys {
		out = append(out, cloneSurvey(survey))
	}
	m.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m memorySurveys) Update(_ context.Context, survey *model.Survey) error {
	survey.UpdatedAt = time.Now().UTC()

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.surveys[survey.ID]; ok {
		m.s.surveys[survey.ID] = cloneSurvey(*survey)
	}
	return nil
}

func (m memorySurveys) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.surveys, id)
	return nil
}

type memoryResponses struct{ s *MemoryStore }

func (m memoryResponses) Create(_ context.Context, response *model.Response) error {
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now().UTC()
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.responses[response.ID] = cloneResponse(*response)
	return nil
}

func (m memoryResponses) GetByID(_ context.Context, id string) (*model.Response, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	response, ok := m.s.responses[id]
	if !ok {
		return nil, nil
	}
	response = cloneResponse(response)
	return &response, nil
}

func (m memoryResponses) List(_ context.Context, surveyID string) ([]model.Response, error) {
	m.s.mu.RLock()
	out := []model.Response{}
	for _, response := range m.s.responses {
		if surveyID == "" || response.SurveyID == surveyID {
			out = append(out, cloneResponse(response))
		}
	}
	m.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m memoryResponses) CountBySurvey(_ context.Context, surveyID string) (int, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	n := 0
	for _, response := range m.s.responses {
		if response.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

func (m memoryResponses) CountsBySurvey(context.Context) (map[string]int, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	counts := map[string]int{}
	for _, response := range m.s.responses {
		counts[response.SurveyID]++
	}
	return counts, nil
}

func (m memoryResponses) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.responses, id)
	return nil
}

func (m memoryResponses) DeleteBySurvey(_ context.Context, surveyID string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for id, response := range m.s.responses {
		if response.SurveyID == surveyID {
			delete(m.s.responses, id)
			n++
		}
	}
	return n, nil
}

func cloneSurvey(s model.Survey) model.Survey {
	qs := make([]model.Question, len(s.Questions))
	for i, q := range s.Questions {
		q.Choices = append([]string(nil), q.Choices...)
		qs[i] = q
	}
	s.Questions = qs
	return s
}

func cloneResponse(r model.Response) model.Response {
	r.Answers = append([]model.Answer(nil), r.Answers...)
	for i, a := range r.Answers {
		if a.Value.Rating != nil {
			r.Answers[i].Value.Rating = model.IntPtr(*a.Value.Rating)
		}
	}
	return r
}
