package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.SurveyPageSize)
	assert.Equal(t, 10, cfg.ResponsePageSize)
	assert.Equal(t, 4, cfg.RecentSurveys)
	assert.Equal(t, "surveydash", cfg.MongoDatabase)
	assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, "mongo", cfg.Store)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("REDIS_URI", "redis://cache:6380")
	t.Setenv("PORT", "9090")
	t.Setenv("RESPONSE_PAGE_SIZE", "25")
	t.Setenv("REPORT_CACHE_TTL", "90s")
	t.Setenv("SUBMIT_RATE_LIMIT", "0.5")
	t.Setenv("DEBUG", "1")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 25, cfg.ResponsePageSize)
	assert.Equal(t, 90*time.Second, cfg.ReportCacheTTL)
	assert.InDelta(t, 0.5, cfg.SubmitRateLimit, 1e-9)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.TrustedProxies)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surveydash.yaml")
	content := `
mongo_database: dashboards
survey_page_size: 8
report_cache_ttl: 2m
host_username: owner
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HOST_USERNAME", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dashboards", cfg.MongoDatabase)
	assert.Equal(t, 8, cfg.SurveyPageSize)
	assert.Equal(t, 2*time.Minute, cfg.ReportCacheTTL)
	assert.Equal(t, "from-env", cfg.HostUsername, "env wins over file")
	assert.Equal(t, 10, cfg.ResponsePageSize, "unset keys keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"page size zero", map[string]string{"SURVEY_PAGE_SIZE": "0"}},
		{"page size not a number", map[string]string{"RESPONSE_PAGE_SIZE": "ten"}},
		{"short jwt secret", map[string]string{"JWT_SECRET": "short"}},
		{"bad ttl", map[string]string{"REPORT_CACHE_TTL": "soon"}},
		{"non numeric port", map[string]string{"PORT": "http"}},
		{"unknown store", map[string]string{"STORE_BACKEND": "sqlite"}},
		{"trusted proxy hostname", map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8,lb.internal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
