package analytics

import (
	"sort"

	"surveydash/internal/model"
)

// DefaultPageSize is used when a caller passes a page size below 1
const DefaultPageSize = 10

// Page is one window of a listing
type Page[T any] struct {
	Items       []T  `json:"items"`
	TotalCount  int  `json:"totalCount"`
	PageCount   int  `json:"pageCount"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// Paginate returns the 1-based page pageNumber of items.
// Out-of-range page numbers clamp to the first or last page; an empty
// listing still has one (empty) page.
func Paginate[T any](items []T, pageSize, pageNumber int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > pageCount {
		pageNumber = pageCount
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:       window,
		TotalCount:  total,
		PageCount:   pageCount,
		CurrentPage: pageNumber,
		PageSize:    pageSize,
		HasPrevious: pageNumber > 1,
		HasNext:     pageNumber < pageCount,
	}
}

// PaginateResponses filters responses, orders them most recent first and
// returns the requested page. Filtering happens before paging so page counts
// always describe the filtered set.
func PaginateResponses(responses []model.Response, pageSize, pageNumber int, filter ResponseFilter) Page[model.Response] {
	matched := FilterResponses(responses, filter)
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return Paginate(matched, pageSize, pageNumber)
}

// PaginateSurveys filters surveys on title/description, orders them by last
// update (most recent first) and returns the requested page.
func PaginateSurveys(surveys []model.Survey, pageSize, pageNumber int, query string) Page[model.Survey] {
	matched := FilterSurveys(surveys, query)
	SortSurveysByUpdate(matched)
	return Paginate(matched, pageSize, pageNumber)
}

// SortSurveysByUpdate orders surveys most recently updated first, ID desc on ties
func SortSurveysByUpdate(surveys []model.Survey) {
	sort.SliceStable(surveys, func(i, j int) bool {
		a, b := surveys[i], surveys[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID > b.ID
	})
}
