package analytics

import "surveydash/internal/model"

// Aggregate reduces one question's answers to its summary using the
// capability registered for the question's kind.
// The result depends only on (q, answers): same inputs, same summary.
func Aggregate(r *Registry, q *model.Question, answers []model.Answer) model.Summary {
	return r.Resolve(q.Kind).Aggregate(q, answers)
}

// ValidateAnswer checks one answer against its question.
// Blank answers are always valid; questions may be skipped.
func ValidateAnswer(r *Registry, q *model.Question, v model.AnswerValue) error {
	c := r.Resolve(q.Kind)
	if c.IsBlank(v) {
		return nil
	}
	return c.ValidateAnswer(q, v)
}

// ValidateQuestion checks a question's configuration for its kind
func ValidateQuestion(r *Registry, q *model.Question) error {
	return r.Resolve(q.Kind).ValidateConfig(q)
}
