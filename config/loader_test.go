package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Search.CandidateLimit)
	assert.Equal(t, 10, cfg.Search.TopK)
	assert.Equal(t, 8, cfg.Search.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.TravelTime.Timeout)
	assert.Equal(t, 45.4215, cfg.Commute.DefaultDestinationLat)
	assert.Equal(t, 800.0, cfg.Walkability.RadiusMeters)
	assert.Equal(t, filepath.Join("resources", "listings.json"), cfg.Data.Listings)
	assert.False(t, cfg.TravelTime.HasCredentials())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
env: prod
server:
  addr: ":9000"
log:
  level: debug
  format: console
traveltime:
  app_id: abc
  api_key: secret
  timeout: 2s
search:
  top_k: 5
data:
  incidents: /data/incidents.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 2*time.Second, cfg.TravelTime.Timeout)
	assert.True(t, cfg.TravelTime.HasCredentials())
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 30, cfg.Search.CandidateLimit)
	assert.Equal(t, "/data/incidents.json", cfg.Data.Incidents)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "search:\n  max_concurrency: 4\ntraveltime:\n  api_key: from-file\n")
	t.Setenv("NESTFINDER_SEARCH_MAX_CONCURRENCY", "16")
	t.Setenv("NESTFINDER_TRAVELTIME_API_KEY", "from-env")
	t.Setenv("NESTFINDER_REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Search.MaxConcurrency)
	assert.Equal(t, "from-env", cfg.TravelTime.APIKey)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"negative top k", "search:\n  top_k: -1\n", "search.top_k"},
		{"bad env", "env: staging\n", "env must be"},
		{"bad log format", "log:\n  format: xml\n", "log.format"},
		{"negative timeout", "traveltime:\n  timeout: -1s\n", "traveltime.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "search: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "# "+strings.Repeat("x", maxConfigFileSize)))
	assert.ErrorContains(t, err, "exceeds")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "traveltime.api_key", envKey("NESTFINDER_TRAVELTIME_API_KEY"))
	assert.Equal(t, "env", envKey("NESTFINDER_ENV"))
	assert.Equal(t, "search.candidate_limit", envKey("NESTFINDER_SEARCH_CANDIDATE_LIMIT"))
}

func TestResolvePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/nestfinder")
	assert.Equal(t, "", ResolvePath(""))
	assert.Equal(t, "/abs/x.json", ResolvePath("/abs/x.json"))
	assert.Equal(t, "/srv/nestfinder/resources/x.json", ResolvePath("resources/x.json"))
}
