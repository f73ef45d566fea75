package di

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nestfinder/config"
	"nestfinder/models"
)

func loadConfig(t *testing.T, env string) *config.Config {
	t.Helper()
	t.Setenv("PROJECT_ROOT", "..")
	t.Setenv("NESTFINDER_ENV", env)
	t.Setenv("NESTFINDER_SQLITE_PATH", filepath.Join(t.TempDir(), "listings.db"))
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNewContainer_Dev(t *testing.T) {
	cfg := loadConfig(t, config.EnvDev)

	c, err := NewContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.ListingStore)
	assert.NotNil(t, c.TravelTimeAPI)
	assert.NotEmpty(t, c.Datasets.Listings)
	assert.True(t, c.Datasets.HasPOIs())
	assert.NotNil(t, c.Datasets.Safety)

	resp, err := c.CoordinatorService.Search(context.Background(), models.SearchCriteria{
		BudgetMin:   1500,
		BudgetMax:   2200,
		Destination: models.Destination{Pinned: &models.Coordinates{Lat: 45.4236, Lng: -75.7009}},
		Priorities:  []models.Priority{models.PriorityShortCommute, models.PriorityWalkable},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Best Overall Match", resp.Recommendations[0].Headline)
	for _, r := range resp.Recommendations {
		assert.False(t, r.Walkability.Degraded(), r.Listing.ID)
	}
}

func TestNewContainer_ProdUsesSQLite(t *testing.T) {
	cfg := loadConfig(t, config.EnvProd)

	c, err := NewContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	require.NotNil(t, c.ListingStore)
	assert.Nil(t, c.TravelTimeAPI)

	n, err := c.ListingStore.CountListings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(c.Datasets.Listings), n)

	c.Router.RegisterRoutes()
	body := `{"budget_min": 1400, "budget_max": 2600, "priorities": ["low_price"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/search?verbose=false", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `"rank":1`))
}
