package model

// CreateSurveyRequest is the request body for creating a survey
type CreateSurveyRequest struct {
	Title       string                  `json:"title" validate:"required,max=200"`
	Description string                  `json:"description" validate:"max=2000"`
	Questions   []CreateQuestionRequest `json:"questions" validate:"dive"`
}

// CreateQuestionRequest describes one question of a new survey.
// Kind-specific fields are checked by the question kind itself.
type CreateQuestionRequest struct {
	Kind     QuestionKind `json:"kind" validate:"required"`
	Label    string       `json:"label" validate:"required,max=500"`
	Choices  []string     `json:"choices,omitempty"`
	ScaleMin int          `json:"scaleMin,omitempty" validate:"min=-1000,max=1000"`
	ScaleMax int          `json:"scaleMax,omitempty" validate:"min=-1000,max=1000"`
}

// UpdateStatusRequest moves a survey along its lifecycle
type UpdateStatusRequest struct {
	Status SurveyStatus `json:"status" validate:"required,oneof=draft published closed"`
}

// SubmitResponseRequest is one respondent's submission
type SubmitResponseRequest struct {
	RespondentID   string          `json:"respondentId" validate:"max=200"`
	RespondentName string          `json:"respondentName" validate:"max=200"`
	Answers        []AnswerRequest `json:"answers" validate:"dive"`
}

// AnswerRequest is one submitted answer
type AnswerRequest struct {
	QuestionID string      `json:"questionId" validate:"required"`
	Value      AnswerValue `json:"value"`
}
