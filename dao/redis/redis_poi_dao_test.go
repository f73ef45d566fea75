package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestfinder/db"
	"nestfinder/models"
)

var parliament = models.Coordinates{Lat: 45.4215, Lng: -75.6972}

func TestRedisPOIDao_NearbyPlaces(t *testing.T) {
	ctx := context.Background()
	dao := NewRedisPOIDao(db.NewMockRedisClient(), nil)

	require.NoError(t, dao.ReplaceCategory(ctx, models.CategoryParks, []models.PointOfInterest{
		{Name: "Far Park", Lat: 45.3920, Lng: -75.6972},
		{Name: "Major's Hill Park", Lat: 45.4250, Lng: -75.6972},
	}))
	require.NoError(t, dao.ReplaceCategory(ctx, models.CategoryGroceries, []models.PointOfInterest{
		{Name: "Metro", Lat: 45.4215, Lng: -75.6972},
	}))

	parks, err := dao.NearbyPlaces(ctx, models.CategoryParks, parliament, 800)
	require.NoError(t, err)
	require.Len(t, parks, 1)
	assert.Equal(t, "Major's Hill Park", parks[0].Name)
	assert.InDelta(t, 389, parks[0].DistanceM, 5)

	groceries, err := dao.NearbyPlaces(ctx, models.CategoryGroceries, parliament, 800)
	require.NoError(t, err)
	assert.Equal(t, []models.NearbyPlace{{Name: "Metro", DistanceM: 0}}, groceries)

	schools, err := dao.NearbyPlaces(ctx, models.CategorySchools, parliament, 800)
	require.NoError(t, err)
	assert.Empty(t, schools)
}

func TestRedisPOIDao_ReplaceCategoryDropsStaleMembers(t *testing.T) {
	ctx := context.Background()
	client := db.NewMockRedisClient()
	dao := NewRedisPOIDao(client, nil)

	require.NoError(t, dao.ReplaceCategory(ctx, models.CategoryParks, []models.PointOfInterest{
		{Name: "Old A", Lat: 45.4215, Lng: -75.6972},
		{Name: "Old B", Lat: 45.4216, Lng: -75.6972},
	}))
	require.NoError(t, dao.ReplaceCategory(ctx, models.CategoryParks, []models.PointOfInterest{
		{Name: "New", Lat: 45.4215, Lng: -75.6972},
	}))

	parks, err := dao.NearbyPlaces(ctx, models.CategoryParks, parliament, 800)
	require.NoError(t, err)
	assert.Equal(t, []models.NearbyPlace{{Name: "New", DistanceM: 0}}, parks)

	keys, err := client.Keys(ctx, "poi_place_v1:parks:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"poi_place_v1:parks:0"}, keys)
}
