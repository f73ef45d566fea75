package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"go.uber.org/zap"

	"nestfinder/db"
	"nestfinder/models"
)

const POI_GEO_KEY_FORMAT_V1 = "poi_geo_v1:%s"
const POI_PLACE_MEMBER_FORMAT_V1 = "poi_place_v1:%s:%d"

// RedisPOIDao keeps one geo index per point-of-interest category.
type RedisPOIDao struct {
	client db.RedisClient
	logger *zap.Logger
}

func NewRedisPOIDao(client db.RedisClient, logger *zap.Logger) *RedisPOIDao {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPOIDao{client: client, logger: logger.Named("RedisPOIDao")}
}

func geoKey(category models.POICategory) string {
	return fmt.Sprintf(POI_GEO_KEY_FORMAT_V1, category)
}

// ReplaceCategory drops whatever is indexed for category and indexes pois.
func (dao *RedisPOIDao) ReplaceCategory(ctx context.Context, category models.POICategory, pois []models.PointOfInterest) error {
	stale, err := dao.client.Keys(ctx, fmt.Sprintf("poi_place_v1:%s:*", category))
	if err != nil {
		return fmt.Errorf("[RedisPOIDao] failed to list %s members: %w", category, err)
	}
	if err := dao.client.Del(ctx, append(stale, geoKey(category))...); err != nil {
		return fmt.Errorf("[RedisPOIDao] failed to clear %s: %w", category, err)
	}

	for i, p := range pois {
		member := fmt.Sprintf(POI_PLACE_MEMBER_FORMAT_V1, category, i)
		if err := dao.client.AddLocationWithJSON(ctx, geoKey(category), member, p.Lat, p.Lng, p); err != nil {
			return fmt.Errorf("[RedisPOIDao] failed to index %s %q: %w", category, p.Name, err)
		}
	}

	dao.logger.Info("indexed points of interest", zap.String("category", string(category)), zap.Int("count", len(pois)))
	return nil
}

// NearbyPlaces returns the category's places within radiusMeters of at,
// closest first.
func (dao *RedisPOIDao) NearbyPlaces(ctx context.Context, category models.POICategory, at models.Coordinates, radiusMeters float64) ([]models.NearbyPlace, error) {
	members, err := dao.client.GetLocationsWithinRadius(ctx, geoKey(category), at.Lat, at.Lng, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("[RedisPOIDao] failed to get nearby %s: %w", category, err)
	}

	places := make([]models.NearbyPlace, 0, len(members))
	for _, m := range members {
		var poi models.PointOfInterest
		if err := json.Unmarshal([]byte(m.JSON), &poi); err != nil {
			return nil, fmt.Errorf("failed to unmarshal point of interest JSON: %w", err)
		}
		places = append(places, models.NearbyPlace{Name: poi.Name, DistanceM: int(math.Round(m.DistanceM))})
	}
	return places, nil
}
