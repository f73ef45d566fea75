package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GeoRedisClient implements RedisClient on top of go-redis.
type GeoRedisClient struct {
	client *redis.Client
	logger *zap.Logger
}

func NewGeoRedisClient(client *redis.Client, logger *zap.Logger) *GeoRedisClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeoRedisClient{
		client: client,
		logger: logger.Named("GeoRedisClient"),
	}
}

// Set sets a key-value pair in Redis
func (r *GeoRedisClient) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *GeoRedisClient) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return v, err
}

// AddLocationWithJSON stores geolocation along with associated JSON data.
func (r *GeoRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      memberKey,
		Latitude:  lat,
		Longitude: lon,
	})
	pipe.Set(ctx, memberKey, jsonData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add geolocation %s: %w", memberKey, err)
	}

	r.logger.Debug("added geolocation", zap.String("geo_key", geoKey), zap.String("member", memberKey))
	return nil
}

// GetLocationsWithinRadius runs GEORADIUS in meters and loads the JSON of
// every hit with a single MGET.
func (r *GeoRedisClient) GetLocationsWithinRadius(ctx context.Context, key string, lat, lon, radiusMeters float64) ([]GeoMember, error) {
	results, err := r.client.GeoRadius(ctx, key, lon, lat, &redis.GeoRadiusQuery{
		Radius:   radiusMeters,
		Unit:     "m",
		WithDist: true,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby locations: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	names := make([]string, len(results))
	for i, loc := range results {
		names[i] = loc.Name
	}
	docs, err := r.client.MGet(ctx, names...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load location documents: %w", err)
	}

	members := make([]GeoMember, 0, len(results))
	for i, loc := range results {
		doc, ok := docs[i].(string)
		if !ok {
			r.logger.Warn("skipping member without document", zap.String("member", loc.Name))
			continue
		}
		members = append(members, GeoMember{Name: loc.Name, DistanceM: loc.Dist, JSON: doc})
	}
	return members, nil
}

func (r *GeoRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	return r.client.Keys(ctx, pattern).Result()
}

func (r *GeoRedisClient) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *GeoRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
