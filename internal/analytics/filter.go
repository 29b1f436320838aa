package analytics

import (
	"strings"

	"golang.org/x/text/cases"

	"surveydash/internal/model"
)

// ResponseFilter narrows a response listing
type ResponseFilter struct {
	// Query is matched case-insensitively against respondent name, respondent ID and survey title
	Query string
	// SurveyID restricts the listing to one survey when set
	SurveyID string
	// SurveyTitles maps survey IDs to titles for Query matching
	SurveyTitles map[string]string
}

// matcher does case-insensitive substring matching with full Unicode case folding.
// A cases.Caser keeps internal state, so each filter call gets its own.
type matcher struct {
	folder cases.Caser
	needle string
}

func newMatcher(query string) *matcher {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	m := &matcher{folder: cases.Fold()}
	m.needle = m.folder.String(query)
	return m
}

func (m *matcher) match(fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(m.folder.String(f), m.needle) {
			return true
		}
	}
	return false
}

// FilterSurveys returns the surveys whose title or description contains query.
// The input slice is not modified; a blank query matches everything.
func FilterSurveys(surveys []model.Survey, query string) []model.Survey {
	m := newMatcher(query)
	out := make([]model.Survey, 0, len(surveys))
	for _, s := range surveys {
		if m == nil || m.match(s.Title, s.Description) {
			out = append(out, s)
		}
	}
	return out
}

// FilterResponses returns the responses matching f. The input slice is not modified.
func FilterResponses(responses []model.Response, f ResponseFilter) []model.Response {
	m := newMatcher(f.Query)
	out := make([]model.Response, 0, len(responses))
	for _, r := range responses {
		if f.SurveyID != "" && r.SurveyID != f.SurveyID {
			continue
		}
		if m != nil && !m.match(r.RespondentName, r.RespondentID, f.SurveyTitles[r.SurveyID]) {
			continue
		}
		out = append(out, r)
	}
	return out
}
