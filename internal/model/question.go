package model

// QuestionKind is the discriminant that selects how answers are validated and summarized.
// The set is open: new kinds are added by registering a capability, not by editing this file.
type QuestionKind string

const (
	KindMultiChoice QuestionKind = "multi_choice" // one selected choice out of Choices
	KindLikert      QuestionKind = "likert"       // integer rating within [ScaleMin, ScaleMax]
)

// Question is a single prompt within a survey
type Question struct {
	ID       string       `json:"id" bson:"id"`
	SurveyID string       `json:"surveyId" bson:"surveyId"`
	Kind     QuestionKind `json:"kind" bson:"kind"`
	Label    string       `json:"label" bson:"label"`

	// multi_choice only
	Choices []string `json:"choices,omitempty" bson:"choices,omitempty"`

	// likert only
	ScaleMin int `json:"scaleMin,omitempty" bson:"scaleMin,omitempty"`
	ScaleMax int `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"`
}
