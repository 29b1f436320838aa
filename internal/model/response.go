package model

import "time"

// AnswerValue holds the kind-specific value of an answer.
// A zero value (empty Choice, nil Rating) means the respondent left the question blank.
type AnswerValue struct {
	Choice string `json:"choice,omitempty" bson:"choice,omitempty"` // multi_choice
	Rating *int   `json:"rating,omitempty" bson:"rating,omitempty"` // likert
}

// Answer is one respondent's value for one question
type Answer struct {
	ID         string      `json:"id" bson:"id"`
	ResponseID string      `json:"responseId" bson:"responseId"`
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      AnswerValue `json:"value" bson:"value"`
}

// Response is one respondent's submission against a survey
type Response struct {
	ID             string    `json:"id" bson:"_id"`
	SurveyID       string    `json:"surveyId" bson:"surveyId"`
	RespondentID   string    `json:"respondentId" bson:"respondentId"`
	RespondentName string    `json:"respondentName" bson:"respondentName"`
	Answers        []Answer  `json:"answers" bson:"answers"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// ResponseStats are the headline numbers shown above the response list
type ResponseStats struct {
	Total           int        `json:"totalResponses"`
	FirstResponseAt *time.Time `json:"surveyStartDate,omitempty"`
	DurationDays    int        `json:"surveyDurationDays"`
}

// AnswerDetail is an answer joined to the question it answers
type AnswerDetail struct {
	Answer
	QuestionLabel string       `json:"questionLabel"`
	QuestionKind  QuestionKind `json:"questionKind"`
}

// ResponseDetail is a single response with labelled answers
type ResponseDetail struct {
	Response    Response       `json:"response"`
	SurveyTitle string         `json:"surveyTitle"`
	Answers     []AnswerDetail `json:"answers"`
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
