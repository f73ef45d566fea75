package db

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"

	"nestfinder/models"
	"nestfinder/scoring"
)

// MockRedisClient is an in-memory RedisClient. Radius queries use
// great-circle distance so results match what Redis would return.
type MockRedisClient struct {
	data    map[string]string            // Key-value store
	geoData map[string]map[string]GeoLoc // Geolocation data
	mu      sync.RWMutex
}

// GeoLoc represents a geolocation with latitude and longitude.
type GeoLoc struct {
	Latitude  float64
	Longitude float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		geoData: make(map[string]map[string]GeoLoc),
	}
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (m *MockRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]GeoLoc)
	}
	m.geoData[geoKey][memberKey] = GeoLoc{Latitude: lat, Longitude: lon}
	m.data[memberKey] = string(jsonData)
	return nil
}

func (m *MockRedisClient) GetLocationsWithinRadius(ctx context.Context, key string, lat, lon, radiusMeters float64) ([]GeoMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	center := models.Coordinates{Lat: lat, Lng: lon}
	var results []GeoMember
	for memberKey, loc := range m.geoData[key] {
		d := scoring.HaversineMeters(center, models.Coordinates{Lat: loc.Latitude, Lng: loc.Longitude})
		if d > radiusMeters {
			continue
		}
		if doc, exists := m.data[memberKey]; exists {
			results = append(results, GeoMember{Name: memberKey, DistanceM: d, JSON: doc})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceM != results[j].DistanceM {
			return results[i].DistanceM < results[j].DistanceM
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// Keys supports the glob subset understood by path.Match.
func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	for k := range m.geoData {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
		delete(m.geoData, k)
	}
	return nil
}

func (m *MockRedisClient) Ping(ctx context.Context) error {
	return nil
}
