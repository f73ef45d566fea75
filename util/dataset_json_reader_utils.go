package util

import (
	"encoding/json"
	"fmt"
	"os"

	"nestfinder/models"
	"nestfinder/scoring"
)

// ReadJSONFile decodes the JSON document at filePath into v.
func ReadJSONFile(filePath string, v interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %q: %w", filePath, err)
	}
	return nil
}

// ReadListingsFromJSON loads a JSON array of listings and normalizes each
// of them. One invalid listing fails the whole file.
func ReadListingsFromJSON(filePath string) ([]models.Listing, error) {
	var listings []models.Listing
	if err := ReadJSONFile(filePath, &listings); err != nil {
		return nil, err
	}
	for i := range listings {
		if err := listings[i].Normalize(); err != nil {
			return nil, fmt.Errorf("failed to load %q: %w", filePath, err)
		}
	}
	return listings, nil
}

type geoJSONFeatureCollection struct {
	Features []struct {
		Geometry struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]interface{} `json:"properties"`
	} `json:"features"`
}

func stringProp(props map[string]interface{}, key, fallback string) string {
	if s, ok := props[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func floatProp(props map[string]interface{}, key string) (float64, bool) {
	f, ok := props[key].(float64)
	return f, ok
}

// ReadParksFromGeoJSON reads park features whose position is carried in the
// LATITUDE / LONGITUDE properties. Features without them are skipped.
func ReadParksFromGeoJSON(filePath string) ([]models.PointOfInterest, error) {
	var fc geoJSONFeatureCollection
	if err := ReadJSONFile(filePath, &fc); err != nil {
		return nil, err
	}

	parks := make([]models.PointOfInterest, 0, len(fc.Features))
	for _, f := range fc.Features {
		lat, okLat := floatProp(f.Properties, "LATITUDE")
		lng, okLng := floatProp(f.Properties, "LONGITUDE")
		if !okLat || !okLng {
			continue
		}
		parks = append(parks, models.PointOfInterest{
			Name: stringProp(f.Properties, "NAME", "Unknown Park"),
			Lat:  lat,
			Lng:  lng,
		})
	}
	return parks, nil
}

// ReadSchoolsFromGeoJSON reads Point features. GeoJSON positions are
// [lng, lat].
func ReadSchoolsFromGeoJSON(filePath string) ([]models.PointOfInterest, error) {
	var fc geoJSONFeatureCollection
	if err := ReadJSONFile(filePath, &fc); err != nil {
		return nil, err
	}

	schools := make([]models.PointOfInterest, 0, len(fc.Features))
	for _, f := range fc.Features {
		var pos []float64
		if err := json.Unmarshal(f.Geometry.Coordinates, &pos); err != nil || len(pos) < 2 {
			continue
		}
		schools = append(schools, models.PointOfInterest{
			Name: stringProp(f.Properties, "NAME", "Unknown School"),
			Lat:  pos[1],
			Lng:  pos[0],
		})
	}
	return schools, nil
}

// ReadGroceriesFromJSON reads a JSON array of {name, lat, lng}, dropping
// entries without coordinates.
func ReadGroceriesFromJSON(filePath string) ([]models.PointOfInterest, error) {
	var raw []struct {
		Name string   `json:"name"`
		Lat  *float64 `json:"lat"`
		Lng  *float64 `json:"lng"`
	}
	if err := ReadJSONFile(filePath, &raw); err != nil {
		return nil, err
	}

	groceries := make([]models.PointOfInterest, 0, len(raw))
	for _, g := range raw {
		if g.Lat == nil || g.Lng == nil {
			continue
		}
		groceries = append(groceries, models.PointOfInterest{Name: g.Name, Lat: *g.Lat, Lng: *g.Lng})
	}
	return groceries, nil
}

// ReadIncidentsFromJSON reads {neighborhood: {category: count}}.
func ReadIncidentsFromJSON(filePath string) (map[string]map[string]int, error) {
	var incidents map[string]map[string]int
	if err := ReadJSONFile(filePath, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

func ReadNeighborhoodProfilesFromJSON(filePath string) ([]scoring.NeighborhoodProfile, error) {
	var profiles []scoring.NeighborhoodProfile
	if err := ReadJSONFile(filePath, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func ReadMarketAveragesFromJSON(filePath string) ([]scoring.MarketAverage, error) {
	var rows []scoring.MarketAverage
	if err := ReadJSONFile(filePath, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
