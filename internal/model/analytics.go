package model

import (
	"strconv"
	"time"
)

// SummaryType tags which variant of Summary is populated
type SummaryType string

const (
	SummaryDistribution SummaryType = "distribution" // Labels only
	SummaryRating       SummaryType = "rating"       // Ratings + Average
	SummaryUnsupported  SummaryType = "unsupported"  // nothing
)

// LabelCount is one bar of a choice distribution
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RatingCount is one bar of a rating distribution
type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// Summary is the aggregate of one question's answers
type Summary struct {
	QuestionID string       `json:"questionId"`
	Label      string       `json:"label"`
	Kind       QuestionKind `json:"kind"`
	Type       SummaryType  `json:"type"`

	Labels  []LabelCount  `json:"labels,omitempty"`
	Ratings []RatingCount `json:"ratings,omitempty"`
	// Average is nil when no valid rating was given
	Average *float64 `json:"average"`

	// Answers excluded because their value was inconsistent with the question
	IgnoredCount int `json:"ignoredCount"`
}

// AnalyticsReport is the per-question analytics of one survey
type AnalyticsReport struct {
	SurveyID       string    `json:"surveyId"`
	SurveyTitle    string    `json:"surveyTitle"`
	TotalResponses int       `json:"totalResponses"`
	Summaries      []Summary `json:"summaries"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// ChartData is the flat labels/values payload consumed by dashboard charts
type ChartData struct {
	Labels  []string `json:"labels"`
	Values  []int    `json:"values"`
	Average *float64 `json:"average"`
}

// ChartData flattens a summary into chart series
func (s *Summary) ChartData() ChartData {
	data := ChartData{Labels: []string{}, Values: []int{}, Average: s.Average}
	switch s.Type {
	case SummaryDistribution:
		for _, lc := range s.Labels {
			data.Labels = append(data.Labels, lc.Label)
			data.Values = append(data.Values, lc.Count)
		}
	case SummaryRating:
		for _, rc := range s.Ratings {
			data.Labels = append(data.Labels, strconv.Itoa(rc.Rating))
			data.Values = append(data.Values, rc.Count)
		}
	}
	return data
}
