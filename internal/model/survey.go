package model

import "time"

// SurveyStatus is the lifecycle state of a survey
type SurveyStatus string

const (
	SurveyDraft     SurveyStatus = "draft"
	SurveyPublished SurveyStatus = "published"
	SurveyClosed    SurveyStatus = "closed"
)

// Survey is a named collection of questions created by a host
type Survey struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Status      SurveyStatus `json:"status" bson:"status"`
	CreatedBy   string       `json:"createdBy" bson:"createdBy"` // host ID
	Questions   []Question   `json:"questions" bson:"questions"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`

	// Derived from the responses collection, never stored
	ResponseCount int `json:"responseCount" bson:"-"`
}

// CanTransition reports whether a survey may move from its current status to next
func (s *Survey) CanTransition(next SurveyStatus) bool {
	switch s.Status {
	case SurveyDraft:
		return next == SurveyPublished
	case SurveyPublished:
		return next == SurveyClosed
	}
	return false
}

// Question returns the survey question with the given ID
func (s *Survey) Question(id string) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}
