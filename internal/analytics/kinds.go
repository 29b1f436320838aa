package analytics

import (
	"errors"
	"fmt"

	"surveydash/internal/model"
)

var (
	ErrInvalidConfig   = errors.New("invalid question configuration")
	ErrInvalidValue    = errors.New("invalid answer value")
	ErrUnsupportedKind = errors.New("unsupported question kind")
)

// MaxLikertPoints bounds the number of buckets a likert scale may have
const MaxLikertPoints = 101

func newSummary(q *model.Question, t model.SummaryType) model.Summary {
	return model.Summary{
		QuestionID: q.ID,
		Label:      q.Label,
		Kind:       q.Kind,
		Type:       t,
	}
}

// MultiChoice summarizes single-selection questions as a label distribution
type MultiChoice struct{}

// ValidateConfig requires a non-empty list of distinct, non-empty choices
func (MultiChoice) ValidateConfig(q *model.Question) error {
	if len(q.Choices) == 0 {
		return fmt.Errorf("%w: question %q has no choices", ErrInvalidConfig, q.ID)
	}
	seen := make(map[string]struct{}, len(q.Choices))
	for _, c := range q.Choices {
		if c == "" {
			return fmt.Errorf("%w: question %q has an empty choice", ErrInvalidConfig, q.ID)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: question %q repeats choice %q", ErrInvalidConfig, q.ID, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// ValidateAnswer accepts exactly one of the configured choices
func (MultiChoice) ValidateAnswer(q *model.Question, v model.AnswerValue) error {
	if v.Rating != nil {
		return fmt.Errorf("%w: question %q expects a choice, got a rating", ErrInvalidValue, q.ID)
	}
	for _, c := range q.Choices {
		if c == v.Choice {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a choice of question %q", ErrInvalidValue, v.Choice, q.ID)
}

// IsBlank reports an answer with neither a choice nor a rating
func (MultiChoice) IsBlank(v model.AnswerValue) bool {
	return v.Choice == "" && v.Rating == nil
}

// Aggregate counts every configured choice, in configured order, zero counts included
func (m MultiChoice) Aggregate(q *model.Question, answers []model.Answer) model.Summary {
	summary := newSummary(q, model.SummaryDistribution)

	index := make(map[string]int, len(q.Choices))
	summary.Labels = make([]model.LabelCount, 0, len(q.Choices))
	for _, c := range q.Choices {
		if _, dup := index[c]; dup {
			continue
		}
		index[c] = len(summary.Labels)
		summary.Labels = append(summary.Labels, model.LabelCount{Label: c})
	}

	for _, a := range answers {
		if m.IsBlank(a.Value) {
			continue
		}
		i, ok := index[a.Value.Choice]
		if !ok || a.Value.Rating != nil {
			summary.IgnoredCount++
			continue
		}
		summary.Labels[i].Count++
	}
	return summary
}

// Likert summarizes integer rating questions as a rating distribution plus mean
type Likert struct{}

// ValidateConfig requires min < max and at most MaxLikertPoints points.
// The span is computed unsigned so extreme bounds cannot wrap.
func (Likert) ValidateConfig(q *model.Question) error {
	if q.ScaleMin >= q.ScaleMax {
		return fmt.Errorf("%w: question %q scale min %d must be below max %d", ErrInvalidConfig, q.ID, q.ScaleMin, q.ScaleMax)
	}
	if uint(q.ScaleMax)-uint(q.ScaleMin) >= MaxLikertPoints {
		return fmt.Errorf("%w: question %q scale has more than %d points", ErrInvalidConfig, q.ID, MaxLikertPoints)
	}
	return nil
}

// ValidateAnswer accepts a rating inside [min, max] and no choice
func (Likert) ValidateAnswer(q *model.Question, v model.AnswerValue) error {
	if v.Rating == nil || v.Choice != "" {
		return fmt.Errorf("%w: question %q expects a rating", ErrInvalidValue, q.ID)
	}
	if *v.Rating < q.ScaleMin || *v.Rating > q.ScaleMax {
		return fmt.Errorf("%w: rating %d outside [%d, %d] for question %q", ErrInvalidValue, *v.Rating, q.ScaleMin, q.ScaleMax, q.ID)
	}
	return nil
}

// IsBlank reports an answer with neither a choice nor a rating
func (Likert) IsBlank(v model.AnswerValue) bool {
	return v.Choice == "" && v.Rating == nil
}

// Aggregate counts every rating in [min, max], zero counts included, and
// averages the valid ratings. Blank answers are not part of the denominator.
func (l Likert) Aggregate(q *model.Question, answers []model.Answer) model.Summary {
	summary := newSummary(q, model.SummaryRating)

	if err := l.ValidateConfig(q); err != nil {
		for _, a := range answers {
			if !l.IsBlank(a.Value) {
				summary.IgnoredCount++
			}
		}
		summary.Ratings = []model.RatingCount{}
		return summary
	}

	points := int(uint(q.ScaleMax)-uint(q.ScaleMin)) + 1
	summary.Ratings = make([]model.RatingCount, points)
	for i := range summary.Ratings {
		summary.Ratings[i].Rating = q.ScaleMin + i
	}

	var sum float64
	n := 0
	for _, a := range answers {
		if l.IsBlank(a.Value) {
			continue
		}
		if err := l.ValidateAnswer(q, a.Value); err != nil {
			summary.IgnoredCount++
			continue
		}
		rating := *a.Value.Rating
		summary.Ratings[rating-q.ScaleMin].Count++
		sum += float64(rating)
		n++
	}

	if n > 0 {
		avg := sum / float64(n)
		summary.Average = &avg
	}
	return summary
}

// Unsupported is the fallback for kinds nobody registered
type Unsupported struct{}

// ValidateConfig always fails with ErrUnsupportedKind
func (Unsupported) ValidateConfig(q *model.Question) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedKind, q.Kind)
}

// ValidateAnswer always fails with ErrUnsupportedKind
func (Unsupported) ValidateAnswer(q *model.Question, _ model.AnswerValue) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedKind, q.Kind)
}

// IsBlank reports an answer with neither a choice nor a rating
func (Unsupported) IsBlank(v model.AnswerValue) bool {
	return v.Choice == "" && v.Rating == nil
}

// Aggregate returns an empty unsupported summary
func (Unsupported) Aggregate(q *model.Question, _ []model.Answer) model.Summary {
	return newSummary(q, model.SummaryUnsupported)
}
