package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveydash/internal/config"
	"surveydash/internal/model"
)

func TestOpen_MemoryWithoutRedis(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Store = "memory"
	cfg.RedisAddr = ""

	a, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer a.Close(ctx)

	require.NoError(t, a.SurveyRepo.Create(ctx, &model.Survey{ID: "S1", Title: "Smoke"}))
	got, err := a.SurveyRepo.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "Smoke", got.Title)

	require.NoError(t, a.ReportCache.Set(ctx, &model.AnalyticsReport{SurveyID: "S1"}))
	cached, err := a.ReportCache.Get(ctx, "S1")
	require.NoError(t, err)
	assert.NotNil(t, cached)
}
