package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// GeoMember is one member of a geo set returned by a radius query, with the
// JSON document stored under the member name.
type GeoMember struct {
	Name      string
	DistanceM float64
	JSON      string
}

// RedisClient defines the methods available in the RedisClient
type RedisClient interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	// GetLocationsWithinRadius returns members ordered by ascending distance.
	GetLocationsWithinRadius(ctx context.Context, key string, lat, lon, radiusMeters float64) ([]GeoMember, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
