package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestfinder/config"
	"nestfinder/dao/redis"
	"nestfinder/db"
	"nestfinder/models"
)

type recordingWriter struct {
	stored []models.Listing
}

func (w *recordingWriter) UpsertMany(_ context.Context, items []models.Listing) error {
	w.stored = append(w.stored, items...)
	return nil
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const listingsFixture = `[
  {"id": "glebe-1", "title": "Bank St 1BR", "neighborhood": "The Glebe", "price": 1850, "bedrooms": 1, "bathrooms": 1,
   "amenities": ["gym"], "laundry_type": "in_unit", "lat": 45.4015, "lng": -75.6868},
  {"id": "vanier-1", "title": "Montreal Rd 1BR", "neighborhood": "Vanier", "price": 1550, "bedrooms": 1, "bathrooms": 1,
   "amenities": [], "laundry_type": "none"}
]`

const parksFixture = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"NAME": "Lansdowne Park", "LATITUDE": 45.3990, "LONGITUDE": -75.6840}, "geometry": null},
  {"type": "Feature", "properties": {"NAME": "Brown's Inlet", "LATITUDE": 45.4030, "LONGITUDE": -75.6900}, "geometry": null}
]}`

const groceriesFixture = `[
  {"name": "Whole Foods Lansdowne", "lat": 45.3985, "lng": -75.6835},
  {"name": "No Coordinates", "lat": null, "lng": null}
]`

const incidentsFixture = `{
  "The Glebe": {"theft": 10},
  "Vanier": {"assault": 20, "theft": 30}
}`

func TestDatasetLoader_LoadsAndIndexes(t *testing.T) {
	dir := t.TempDir()
	data := config.DataConfig{
		Listings:  writeFile(t, dir, "listings.json", listingsFixture),
		Parks:     writeFile(t, dir, "parks.geojson", parksFixture),
		Schools:   filepath.Join(dir, "missing-schools.geojson"),
		Groceries: writeFile(t, dir, "groceries.json", groceriesFixture),
		Incidents: writeFile(t, dir, "incidents.json", incidentsFixture),
	}

	writer := &recordingWriter{}
	dao := redis.NewRedisPOIDao(db.NewMockRedisClient(), nil)
	loader := NewDatasetLoaderService(data, writer, dao, nil)

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Listings, 2)
	assert.Len(t, writer.stored, 2)
	assert.Equal(t, map[models.POICategory]int{
		models.CategoryParks:     2,
		models.CategoryGroceries: 1,
	}, ds.POICounts)
	assert.False(t, ds.HasPOIs())
	assert.Equal(t, []models.POICategory{models.CategorySchools}, ds.MissingPOICategories())

	require.NotNil(t, ds.Safety)
	glebe, ok := ds.Safety.Score("The Glebe")
	require.True(t, ok)
	vanier, ok := ds.Safety.Score("Vanier")
	require.True(t, ok)
	assert.Equal(t, 95, glebe)
	assert.Equal(t, 40, vanier)

	places, err := dao.NearbyPlaces(context.Background(), models.CategoryParks, models.Coordinates{Lat: 45.4015, Lng: -75.6868}, 800)
	require.NoError(t, err)
	assert.Len(t, places, 2)

	_, found := ds.Neighborhoods.Lookup("The Glebe")
	assert.True(t, found)
	avg, found := ds.Market.Lookup("The Glebe", 1)
	assert.True(t, found)
	assert.Equal(t, 1900, avg)
}

func TestDatasetLoader_MissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	data := config.DataConfig{
		Listings:  filepath.Join(dir, "nope.json"),
		Incidents: filepath.Join(dir, "nope-incidents.json"),
		Parks:     filepath.Join(dir, "nope-parks.geojson"),
	}

	ds, err := NewDatasetLoaderService(data, nil, nil, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ds.Listings)
	assert.Nil(t, ds.Safety)
	assert.False(t, ds.HasPOIs())
	assert.NotNil(t, ds.Neighborhoods)
	assert.NotNil(t, ds.Market)
}

func TestDatasetLoader_AllPOICategoriesLoaded(t *testing.T) {
	dir := t.TempDir()
	data := config.DataConfig{
		Parks: writeFile(t, dir, "parks.geojson", parksFixture),
		Schools: writeFile(t, dir, "schools.geojson", `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-75.6860, 45.4120]}, "properties": {"NAME": "Lisgar Collegiate"}}
]}`),
		Groceries: writeFile(t, dir, "groceries.json", `[]`),
	}

	ds, err := NewDatasetLoaderService(data, nil, redis.NewRedisPOIDao(db.NewMockRedisClient(), nil), nil).Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, ds.MissingPOICategories())
	assert.True(t, ds.HasPOIs())
	assert.Equal(t, 0, ds.POICounts[models.CategoryGroceries])
}

func TestDatasetLoader_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	data := config.DataConfig{
		Listings: writeFile(t, dir, "listings.json", `{"not": "a list"`),
	}

	_, err := NewDatasetLoaderService(data, nil, nil, nil).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[DatasetLoaderService] failed to load listings")
}

func TestDatasetLoader_CustomReferenceTables(t *testing.T) {
	dir := t.TempDir()
	data := config.DataConfig{
		Neighborhoods: writeFile(t, dir, "neighborhoods.json",
			`[{"name": "Orleans", "safety_score": 85, "walkability_score": 50, "nightlife_score": 20, "quiet_score": 85}]`),
		MarketAverages: writeFile(t, dir, "market.json",
			`[{"neighborhood": "Orleans", "bedrooms": 2, "average": 2050}]`),
	}

	ds, err := NewDatasetLoaderService(data, nil, nil, nil).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Orleans"}, ds.Neighborhoods.Names())
	avg, found := ds.Market.Lookup("Orleans", 2)
	assert.True(t, found)
	assert.Equal(t, 2050, avg)

	avg, found = ds.Market.Lookup("Orleans", 1)
	assert.False(t, found)
	assert.Equal(t, 1700, avg)
}

func TestStaticListingSource_FiltersInOrder(t *testing.T) {
	src := NewStaticListingSource(ottawaListings())

	got, err := src.FetchCandidates(context.Background(), 1500, 2000, oneBedroom(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "glebe-1", got[0].ID)
	assert.Equal(t, "vanier-1", got[1].ID)

	none, err := src.FetchCandidates(context.Background(), 100, 200, nil, 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	two := 2
	got, err = src.FetchCandidates(context.Background(), 0, 5000, &two, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
