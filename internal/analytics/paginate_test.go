package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveydash/internal/model"
)

// makeResponses returns n responses; R01 is the oldest and R<n> the newest.
func makeResponses(n int) []model.Response {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Response, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Response{
			ID:             fmt.Sprintf("R%02d", i),
			SurveyID:       "S1",
			RespondentID:   fmt.Sprintf("user-%02d", i),
			RespondentName: fmt.Sprintf("Respondent %02d", i),
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func ids(rs []model.Response) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestPaginateResponses_Clamping(t *testing.T) {
	responses := makeResponses(25)

	tests := []struct {
		name        string
		page        int
		currentPage int
		first, last string
		count       int
	}{
		{"page zero clamps to first", 0, 1, "R25", "R16", 10},
		{"negative page clamps to first", -3, 1, "R25", "R16", 10},
		{"middle page", 2, 2, "R15", "R06", 10},
		{"last page", 3, 3, "R05", "R01", 5},
		{"beyond range clamps to last", 99, 3, "R05", "R01", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := PaginateResponses(responses, 10, tt.page, ResponseFilter{})
			assert.Equal(t, 25, page.TotalCount)
			assert.Equal(t, 3, page.PageCount)
			assert.Equal(t, tt.currentPage, page.CurrentPage)
			require.Len(t, page.Items, tt.count)
			assert.Equal(t, tt.first, page.Items[0].ID)
			assert.Equal(t, tt.last, page.Items[len(page.Items)-1].ID)
		})
	}
}

func TestPaginateResponses_FilterBeforePaginate(t *testing.T) {
	responses := makeResponses(25)
	for _, i := range []int{0, 4, 9, 14, 19, 24} {
		responses[i].RespondentName = "Alice " + responses[i].ID
	}

	page := PaginateResponses(responses, 10, 1, ResponseFilter{Query: "alice"})
	assert.Equal(t, 6, page.TotalCount)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, []string{"R25", "R20", "R15", "R10", "R05", "R01"}, ids(page.Items))
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestPaginateResponses_DoesNotReorderInput(t *testing.T) {
	responses := makeResponses(3)
	_ = PaginateResponses(responses, 10, 1, ResponseFilter{})
	assert.Equal(t, []string{"R01", "R02", "R03"}, ids(responses))
}

func TestPaginateResponses_TiesBrokenByID(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	responses := []model.Response{
		{ID: "a", CreatedAt: at},
		{ID: "c", CreatedAt: at},
		{ID: "b", CreatedAt: at},
	}
	page := PaginateResponses(responses, 10, 1, ResponseFilter{})
	assert.Equal(t, []string{"c", "b", "a"}, ids(page.Items))
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]int{}, 10, 5)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 0, page.TotalCount)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestPaginate_PageSizeFallback(t *testing.T) {
	items := make([]int, 23)
	page := Paginate(items, 0, 1)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Equal(t, 3, page.PageCount)
	assert.True(t, page.HasNext)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	page := Paginate(items, 5, 2)
	assert.Equal(t, 2, page.PageCount)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, page.Items)
	assert.True(t, page.HasPrevious)
	assert.False(t, page.HasNext)

	// the window is a copy
	page.Items[0] = 100
	assert.Equal(t, 6, items[5])
}

func TestPaginateSurveys(t *testing.T) {
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	surveys := []model.Survey{
		{ID: "s1", Title: "Onboarding", Description: "first week", UpdatedAt: base},
		{ID: "s2", Title: "Cafeteria", Description: "lunch quality", UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "s3", Title: "Quarterly pulse", Description: "Onboarding follow-up", UpdatedAt: base.Add(time.Hour)},
		{ID: "s4", Title: "Offsite", Description: "venue", UpdatedAt: base.Add(2 * time.Hour)},
	}

	all := PaginateSurveys(surveys, 5, 1, "")
	require.Len(t, all.Items, 4)
	assert.Equal(t, "s2", all.Items[0].ID)
	assert.Equal(t, "s1", all.Items[3].ID)

	matched := PaginateSurveys(surveys, 5, 1, "ONBOARDING")
	require.Len(t, matched.Items, 2)
	assert.Equal(t, "s3", matched.Items[0].ID, "description matches count too")
	assert.Equal(t, "s1", matched.Items[1].ID)
}
