package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"surveydash/internal/analytics"
	"surveydash/internal/cache"
	"surveydash/internal/metrics"
	"surveydash/internal/model"
)

var errStore = errors.New("store unavailable")

type stubSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]model.Survey
	fail    bool
}

func newStubSurveyRepo(surveys ...model.Survey) *stubSurveyRepo {
	r := &stubSurveyRepo{surveys: map[string]model.Survey{}}
	for _, s := range surveys {
		r.surveys[s.ID] = s
	}
	return r
}

func (r *stubSurveyRepo) Create(_ context.Context, s *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStore
	}
	r.surveys[s.ID] = *s
	return nil
}

func (r *stubSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStore
	}
	s, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *stubSurveyRepo) List(context.Context) ([]model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStore
	}
	out := make([]model.Survey, 0, len(r.surveys))
	for _, s := range r.surveys {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSurveyRepo) Update(_ context.Context, s *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surveys[s.ID] = *s
	return nil
}

func (r *stubSurveyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	return nil
}

type stubResponseRepo struct {
	mu        sync.Mutex
	responses map[string]model.Response
	lists     atomic.Int32
	listDelay time.Duration
	afterList func() // runs once, after the next List has read the store
}

func newStubResponseRepo(responses ...model.Response) *stubResponseRepo {
	r := &stubResponseRepo{responses: map[string]model.Response{}}
	for _, resp := range responses {
		r.responses[resp.ID] = resp
	}
	return r
}

func (r *stubResponseRepo) Create(_ context.Context, resp *model.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[resp.ID] = *resp
	return nil
}

func (r *stubResponseRepo) GetByID(_ context.Context, id string) (*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[id]
	if !ok {
		return nil, nil
	}
	return &resp, nil
}

func (r *stubResponseRepo) List(ctx context.Context, surveyID string) ([]model.Response, error) {
	r.lists.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.listDelay > 0 {
		time.Sleep(r.listDelay)
	}
	r.mu.Lock()
	out := []model.Response{}
	for _, resp := range r.responses {
		if surveyID == "" || resp.SurveyID == surveyID {
			out = append(out, resp)
		}
	}
	hook := r.afterList
	r.afterList = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *stubResponseRepo) CountBySurvey(_ context.Context, surveyID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

func (r *stubResponseRepo) CountsBySurvey(context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int{}
	for _, resp := range r.responses {
		counts[resp.SurveyID]++
	}
	return counts, nil
}

func (r *stubResponseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.responses, id)
	return nil
}

func (r *stubResponseRepo) DeleteBySurvey(_ context.Context, surveyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, resp := range r.responses {
		if resp.SurveyID == surveyID {
			delete(r.responses, id)
			n++
		}
	}
	return n, nil
}

const ownerID = "host_owner01"

// feedbackFixture is a published survey with one choice and one rating question
func feedbackFixture() model.Survey {
	return model.Survey{
		ID:        "S1",
		Title:     "Event feedback",
		Status:    model.SurveyPublished,
		CreatedBy: ownerID,
		UpdatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Questions: []model.Question{
			{ID: "Q1", SurveyID: "S1", Kind: model.KindMultiChoice, Label: "Would you come back?", Choices: []string{"Yes", "No"}},
			{ID: "Q2", SurveyID: "S1", Kind: model.KindLikert, Label: "Rate the venue", ScaleMin: 1, ScaleMax: 5},
		},
	}
}

func fixtureResponse(id, choice string, rating int, at time.Time) model.Response {
	answers := []model.Answer{{QuestionID: "Q1", Value: model.AnswerValue{Choice: choice}}}
	if rating > 0 {
		answers = append(answers, model.Answer{QuestionID: "Q2", Value: model.AnswerValue{Rating: model.IntPtr(rating)}})
	}
	return model.Response{ID: id, SurveyID: "S1", RespondentID: "u-" + id, Answers: answers, CreatedAt: at}
}

type fixture struct {
	surveys   *stubSurveyRepo
	responses *stubResponseRepo
	cache     cache.ReportCache
	registry  *analytics.Registry
	metrics   *metrics.Metrics
	reg       *prometheus.Registry
}

func newFixture(surveys []model.Survey, responses []model.Response) *fixture {
	reg := prometheus.NewRegistry()
	return &fixture{
		surveys:   newStubSurveyRepo(surveys...),
		responses: newStubResponseRepo(responses...),
		cache:     cache.NewReportCache(nil, time.Minute),
		registry:  analytics.NewRegistry(),
		metrics:   metrics.New(reg),
		reg:       reg,
	}
}

// counter returns the value of the counter series name{label=value}, or 0
func (f *fixture) counter(name, label, value string) float64 {
	families, err := f.reg.Gather()
	if err != nil {
		return 0
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func (f *fixture) surveyService() *SurveyService {
	return NewSurveyService(f.surveys, f.responses, f.cache, f.registry, 5, 4)
}

func (f *fixture) responseService(now time.Time) *ResponseService {
	s := NewResponseService(f.surveys, f.responses, f.cache, f.registry, f.metrics, 10)
	s.now = func() time.Time { return now }
	return s
}

func (f *fixture) reportService() *ReportService {
	return NewReportService(f.surveys, f.responses, f.cache, f.registry, f.metrics)
}
