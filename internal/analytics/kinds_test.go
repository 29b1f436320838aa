package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveydash/internal/model"
)

func choice(qID, c string) model.Answer {
	return model.Answer{QuestionID: qID, Value: model.AnswerValue{Choice: c}}
}

func rating(qID string, v int) model.Answer {
	return model.Answer{QuestionID: qID, Value: model.AnswerValue{Rating: model.IntPtr(v)}}
}

func TestMultiChoice_Aggregate(t *testing.T) {
	q := &model.Question{ID: "q1", Kind: model.KindMultiChoice, Label: "Pick", Choices: []string{"A", "B", "C"}}

	tests := []struct {
		name     string
		answers  []model.Answer
		expected []model.LabelCount
		ignored  int
	}{
		{
			name:     "keeps zero-count choices",
			answers:  []model.Answer{choice("q1", "B"), choice("q1", "A"), choice("q1", "B")},
			expected: []model.LabelCount{{Label: "A", Count: 1}, {Label: "B", Count: 2}, {Label: "C", Count: 0}},
		},
		{
			name:     "no answers",
			expected: []model.LabelCount{{Label: "A", Count: 0}, {Label: "B", Count: 0}, {Label: "C", Count: 0}},
		},
		{
			name:     "blank answers are neither counted nor ignored",
			answers:  []model.Answer{{QuestionID: "q1"}, choice("q1", "C")},
			expected: []model.LabelCount{{Label: "A", Count: 0}, {Label: "B", Count: 0}, {Label: "C", Count: 1}},
		},
		{
			name:     "unknown choices and ratings are ignored",
			answers:  []model.Answer{choice("q1", "D"), rating("q1", 3), choice("q1", "a"), choice("q1", "A")},
			expected: []model.LabelCount{{Label: "A", Count: 1}, {Label: "B", Count: 0}, {Label: "C", Count: 0}},
			ignored:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Aggregate(NewRegistry(), q, tt.answers)
			assert.Equal(t, model.SummaryDistribution, s.Type)
			assert.Equal(t, "Pick", s.Label)
			assert.Equal(t, tt.expected, s.Labels)
			assert.Equal(t, tt.ignored, s.IgnoredCount)
			assert.Nil(t, s.Average)
		})
	}
}

func TestMultiChoice_OrderFollowsConfigurationNotFrequency(t *testing.T) {
	q := &model.Question{ID: "q1", Kind: model.KindMultiChoice, Choices: []string{"Rarely", "Often"}}
	answers := []model.Answer{choice("q1", "Often"), choice("q1", "Often"), choice("q1", "Rarely")}

	s := Aggregate(NewRegistry(), q, answers)
	assert.Equal(t, []model.LabelCount{{Label: "Rarely", Count: 1}, {Label: "Often", Count: 2}}, s.Labels)

	reversed := []model.Answer{answers[2], answers[1], answers[0]}
	assert.Equal(t, s, Aggregate(NewRegistry(), q, reversed))
}

func TestLikert_Aggregate(t *testing.T) {
	q := &model.Question{ID: "q2", Kind: model.KindLikert, ScaleMin: 1, ScaleMax: 5}

	t.Run("average and full distribution", func(t *testing.T) {
		s := Aggregate(NewRegistry(), q, []model.Answer{rating("q2", 3), rating("q2", 5), rating("q2", 4)})
		require.NotNil(t, s.Average)
		assert.InDelta(t, 4.0, *s.Average, 1e-9)
		assert.Equal(t, []model.RatingCount{{Rating: 1, Count: 0}, {Rating: 2, Count: 0}, {Rating: 3, Count: 1}, {Rating: 4, Count: 1}, {Rating: 5, Count: 1}}, s.Ratings)
		assert.Equal(t, model.SummaryRating, s.Type)
	})

	t.Run("no answers gives no-data average", func(t *testing.T) {
		s := Aggregate(NewRegistry(), q, nil)
		assert.Nil(t, s.Average)
		assert.Len(t, s.Ratings, 5)
		for _, rc := range s.Ratings {
			assert.Zero(t, rc.Count)
		}
	})

	t.Run("blank answers do not count toward the denominator", func(t *testing.T) {
		s := Aggregate(NewRegistry(), q, []model.Answer{rating("q2", 2), {QuestionID: "q2"}, rating("q2", 4)})
		require.NotNil(t, s.Average)
		assert.InDelta(t, 3.0, *s.Average, 1e-9)
		assert.Zero(t, s.IgnoredCount)
	})

	t.Run("out of range ratings are ignored and reported", func(t *testing.T) {
		s := Aggregate(NewRegistry(), q, []model.Answer{rating("q2", 0), rating("q2", 6), choice("q2", "5"), rating("q2", 5)})
		require.NotNil(t, s.Average)
		assert.InDelta(t, 5.0, *s.Average, 1e-9)
		assert.Equal(t, 3, s.IgnoredCount)
	})

	t.Run("only invalid ratings gives no-data average", func(t *testing.T) {
		s := Aggregate(NewRegistry(), q, []model.Answer{rating("q2", 9)})
		assert.Nil(t, s.Average)
		assert.Equal(t, 1, s.IgnoredCount)
	})

	t.Run("negative scales", func(t *testing.T) {
		nq := &model.Question{ID: "q3", Kind: model.KindLikert, ScaleMin: -2, ScaleMax: 2}
		s := Aggregate(NewRegistry(), nq, []model.Answer{rating("q3", -2), rating("q3", 1)})
		assert.Equal(t, []model.RatingCount{{Rating: -2, Count: 1}, {Rating: -1, Count: 0}, {Rating: 0, Count: 0}, {Rating: 1, Count: 1}, {Rating: 2, Count: 0}}, s.Ratings)
		require.NotNil(t, s.Average)
		assert.InDelta(t, -0.5, *s.Average, 1e-9)
	})

	t.Run("inconsistent scale ignores every answer", func(t *testing.T) {
		bad := &model.Question{ID: "q4", Kind: model.KindLikert, ScaleMin: 5, ScaleMax: 1}
		s := Aggregate(NewRegistry(), bad, []model.Answer{rating("q4", 3), {QuestionID: "q4"}})
		assert.Empty(t, s.Ratings)
		assert.Nil(t, s.Average)
		assert.Equal(t, 1, s.IgnoredCount)
	})

	t.Run("extreme bounds are rejected without allocating", func(t *testing.T) {
		for _, bounds := range [][2]int{{0, math.MaxInt}, {math.MinInt, math.MaxInt}, {math.MinInt, 0}} {
			wide := &model.Question{ID: "q5", Kind: model.KindLikert, ScaleMin: bounds[0], ScaleMax: bounds[1]}
			s := Aggregate(NewRegistry(), wide, []model.Answer{rating("q5", 1)})
			assert.Empty(t, s.Ratings)
			assert.Equal(t, 1, s.IgnoredCount)
		}
	})

	t.Run("scale ending at max int", func(t *testing.T) {
		top := &model.Question{ID: "q6", Kind: model.KindLikert, ScaleMin: math.MaxInt - 2, ScaleMax: math.MaxInt}
		s := Aggregate(NewRegistry(), top, []model.Answer{rating("q6", math.MaxInt), rating("q6", math.MaxInt)})
		require.Len(t, s.Ratings, 3)
		assert.Equal(t, model.RatingCount{Rating: math.MaxInt, Count: 2}, s.Ratings[2])
		require.NotNil(t, s.Average)
		assert.InEpsilon(t, float64(math.MaxInt), *s.Average, 1e-9)
	})
}

func TestValidateQuestion(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		q       model.Question
		wantErr error
	}{
		{"valid multi choice", model.Question{Kind: model.KindMultiChoice, Choices: []string{"Yes", "No"}}, nil},
		{"no choices", model.Question{Kind: model.KindMultiChoice}, ErrInvalidConfig},
		{"duplicate choices", model.Question{Kind: model.KindMultiChoice, Choices: []string{"Yes", "Yes"}}, ErrInvalidConfig},
		{"empty choice", model.Question{Kind: model.KindMultiChoice, Choices: []string{"Yes", ""}}, ErrInvalidConfig},
		{"valid likert", model.Question{Kind: model.KindLikert, ScaleMin: 1, ScaleMax: 7}, nil},
		{"likert min equals max", model.Question{Kind: model.KindLikert, ScaleMin: 3, ScaleMax: 3}, ErrInvalidConfig},
		{"likert too wide", model.Question{Kind: model.KindLikert, ScaleMin: 0, ScaleMax: MaxLikertPoints}, ErrInvalidConfig},
		{"likert widest allowed", model.Question{Kind: model.KindLikert, ScaleMin: 0, ScaleMax: MaxLikertPoints - 1}, nil},
		{"likert span overflows", model.Question{Kind: model.KindLikert, ScaleMin: 0, ScaleMax: math.MaxInt}, ErrInvalidConfig},
		{"likert full int range", model.Question{Kind: model.KindLikert, ScaleMin: math.MinInt, ScaleMax: math.MaxInt}, ErrInvalidConfig},
		{"likert near max int", model.Question{Kind: model.KindLikert, ScaleMin: math.MaxInt - 4, ScaleMax: math.MaxInt}, nil},
		{"unknown kind", model.Question{Kind: "ranking"}, ErrUnsupportedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(r, &tt.q)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAnswer(t *testing.T) {
	r := NewRegistry()
	mc := &model.Question{ID: "q1", Kind: model.KindMultiChoice, Choices: []string{"Yes", "No"}}
	lk := &model.Question{ID: "q2", Kind: model.KindLikert, ScaleMin: 1, ScaleMax: 5}

	assert.NoError(t, ValidateAnswer(r, mc, model.AnswerValue{Choice: "Yes"}))
	assert.NoError(t, ValidateAnswer(r, mc, model.AnswerValue{}), "blank answers are allowed")
	assert.ErrorIs(t, ValidateAnswer(r, mc, model.AnswerValue{Choice: "Maybe"}), ErrInvalidValue)

	assert.NoError(t, ValidateAnswer(r, lk, model.AnswerValue{Rating: model.IntPtr(5)}))
	assert.ErrorIs(t, ValidateAnswer(r, lk, model.AnswerValue{Rating: model.IntPtr(6)}), ErrInvalidValue)
	assert.ErrorIs(t, ValidateAnswer(r, lk, model.AnswerValue{Choice: "3"}), ErrInvalidValue)
}
