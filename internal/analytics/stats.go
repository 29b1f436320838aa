package analytics

import (
	"time"

	"surveydash/internal/model"
)

// ComputeResponseStats returns the total, the earliest submission and the
// number of whole days between it and now.
func ComputeResponseStats(responses []model.Response, now time.Time) model.ResponseStats {
	stats := model.ResponseStats{Total: len(responses)}
	if len(responses) == 0 {
		return stats
	}

	first := responses[0].CreatedAt
	for _, r := range responses[1:] {
		if r.CreatedAt.Before(first) {
			first = r.CreatedAt
		}
	}
	stats.FirstResponseAt = &first

	if elapsed := now.Sub(first); elapsed > 0 {
		stats.DurationDays = int(elapsed / (24 * time.Hour))
	}
	return stats
}
