package analytics

import (
	"errors"
	"fmt"

	"surveydash/internal/model"
)

// ErrMalformedInput is returned when a snapshot references a question the survey does not have
var ErrMalformedInput = errors.New("malformed analytics input")

// BuildReport produces the analytics report of a survey.
// Summaries follow the order of questions; answersByQuestion is keyed by question ID.
// TotalResponses is taken from survey.ResponseCount.
func BuildReport(r *Registry, survey *model.Survey, questions []model.Question, answersByQuestion map[string][]model.Answer) (*model.AnalyticsReport, error) {
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}
	for qID, answers := range answersByQuestion {
		if _, ok := known[qID]; !ok {
			return nil, fmt.Errorf("%w: answers reference unknown question %q", ErrMalformedInput, qID)
		}
		for _, a := range answers {
			if a.QuestionID != qID {
				return nil, fmt.Errorf("%w: answer %q for question %q filed under %q", ErrMalformedInput, a.ID, a.QuestionID, qID)
			}
		}
	}

	report := &model.AnalyticsReport{
		SurveyID:       survey.ID,
		SurveyTitle:    survey.Title,
		TotalResponses: survey.ResponseCount,
		Summaries:      make([]model.Summary, 0, len(questions)),
	}
	for i := range questions {
		q := &questions[i]
		report.Summaries = append(report.Summaries, Aggregate(r, q, answersByQuestion[q.ID]))
	}
	return report, nil
}

// BuildReportFromResponses groups the answers of materialized responses by
// question and builds the report. TotalResponses is len(responses).
func BuildReportFromResponses(r *Registry, survey *model.Survey, questions []model.Question, responses []model.Response) (*model.AnalyticsReport, error) {
	byQuestion := make(map[string][]model.Answer, len(questions))
	for _, resp := range responses {
		if resp.SurveyID != survey.ID {
			return nil, fmt.Errorf("%w: response %q belongs to survey %q", ErrMalformedInput, resp.ID, resp.SurveyID)
		}
		for _, a := range resp.Answers {
			byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
		}
	}

	snapshot := *survey
	snapshot.ResponseCount = len(responses)
	return BuildReport(r, &snapshot, questions, byQuestion)
}
