package traveltime

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"nestfinder/api"
	"nestfinder/metrics"
	"nestfinder/models"
)

const (
	geocodingEndpoint  = "/v4/geocoding/search"
	timeFilterEndpoint = "/v4/time-filter"

	destinationLocationID = "__destination"
	// the remote caps travel_time at four hours
	maxTravelTimeSeconds = 4 * 60 * 60
)

type coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type location struct {
	ID     string `json:"id"`
	Coords coords `json:"coords"`
}

type transportation struct {
	Type string `json:"type"`
}

type arrivalSearch struct {
	ID                   string         `json:"id"`
	ArrivalLocationID    string         `json:"arrival_location_id"`
	DepartureLocationIDs []string       `json:"departure_location_ids"`
	Transportation       transportation `json:"transportation"`
	ArrivalTime          string         `json:"arrival_time"`
	TravelTime           int            `json:"travel_time"`
	Properties           []string       `json:"properties"`
}

type timeFilterRequest struct {
	Locations         []location      `json:"locations"`
	DepartureSearches []interface{}   `json:"departure_searches"`
	ArrivalSearches   []arrivalSearch `json:"arrival_searches"`
}

type timeFilterResponse struct {
	Results []struct {
		SearchID  string `json:"search_id"`
		Locations []struct {
			ID         string `json:"id"`
			Properties []struct {
				TravelTime int `json:"travel_time"`
			} `json:"properties"`
		} `json:"locations"`
		Unreachable []string `json:"unreachable"`
	} `json:"results"`
}

type geocodingResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

// TravelTimeApiClient talks to the TravelTime v4 REST API.
type TravelTimeApiClient struct {
	*api.HTTPClient
	appID   string
	apiKey  string
	country string
	limiter *rate.Limiter
	logger  *zap.Logger
	now     func() time.Time
}

// NewTravelTimeApiClient creates a client limited to rps requests per second.
func NewTravelTimeApiClient(httpClient *api.HTTPClient, rps float64, burst int, logger *zap.Logger) *TravelTimeApiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TravelTimeApiClient{
		HTTPClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logger.Named("TravelTimeApiClient"),
		now:        time.Now,
	}
}

func (c *TravelTimeApiClient) SetCredentials(appID, apiKey string) {
	c.appID = appID
	c.apiKey = apiKey
}

// SetCountry restricts geocoding to an ISO country code such as "CA".
func (c *TravelTimeApiClient) SetCountry(country string) {
	c.country = country
}

func (c *TravelTimeApiClient) headers() map[string]string {
	return map[string]string{
		"X-Application-Id": c.appID,
		"X-Api-Key":        c.apiKey,
	}
}

func (c *TravelTimeApiClient) do(ctx context.Context, method, endpoint string, body, response interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	err := c.Request(ctx, method, endpoint, c.headers(), body, response)
	metrics.TravelTimeRequests.WithLabelValues(metrics.ResultLabel(err)).Inc()
	return err
}

// Geocode converts an address into coordinates using the first match.
func (c *TravelTimeApiClient) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	q := url.Values{}
	q.Set("query", address)
	q.Set("limit", "1")
	if c.country != "" {
		q.Set("within.country", c.country)
	}

	var response geocodingResponse
	if err := c.do(ctx, "GET", geocodingEndpoint+"?"+q.Encode(), nil, &response); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", address, err)
	}
	if len(response.Features) == 0 || len(response.Features[0].Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("geocoding %q: %w", address, ErrGeocodeNotFound)
	}

	// GeoJSON order is lng, lat
	pt := response.Features[0].Geometry.Coordinates
	return &models.Coordinates{Lat: pt[1], Lng: pt[0]}, nil
}

// TravelTimes sends one time-filter request with an arrival search per
// mode, all of them arriving at dest from every origin.
func (c *TravelTimeApiClient) TravelTimes(ctx context.Context, origins []Origin, dest models.Coordinates) (map[string]map[models.TransportMode]int, error) {
	out := make(map[string]map[models.TransportMode]int, len(origins))
	if len(origins) == 0 {
		return out, nil
	}

	req := timeFilterRequest{
		Locations:         make([]location, 0, len(origins)+1),
		DepartureSearches: []interface{}{},
	}
	req.Locations = append(req.Locations, location{ID: destinationLocationID, Coords: coords{Lat: dest.Lat, Lng: dest.Lng}})
	ids := make([]string, 0, len(origins))
	for _, o := range origins {
		req.Locations = append(req.Locations, location{ID: o.ID, Coords: coords{Lat: o.Coordinates.Lat, Lng: o.Coordinates.Lng}})
		ids = append(ids, o.ID)
	}

	arrival := c.now().UTC().Format(time.RFC3339)
	for _, mode := range models.TransportModes {
		req.ArrivalSearches = append(req.ArrivalSearches, arrivalSearch{
			ID:                   string(mode),
			ArrivalLocationID:    destinationLocationID,
			DepartureLocationIDs: ids,
			Transportation:       transportation{Type: transportationTypes[mode]},
			ArrivalTime:          arrival,
			TravelTime:           maxTravelTimeSeconds,
			Properties:           []string{"travel_time"},
		})
	}

	var response timeFilterResponse
	if err := c.do(ctx, "POST", timeFilterEndpoint, req, &response); err != nil {
		return nil, fmt.Errorf("time filter for %d origins: %w", len(origins), err)
	}

	for _, result := range response.Results {
		mode := models.TransportMode(result.SearchID)
		if _, known := transportationTypes[mode]; !known {
			c.logger.Debug("ignoring unknown search in time filter answer", zap.String("search_id", result.SearchID))
			continue
		}
		for _, loc := range result.Locations {
			if len(loc.Properties) == 0 {
				continue
			}
			if out[loc.ID] == nil {
				out[loc.ID] = make(map[models.TransportMode]int, len(models.TransportModes))
			}
			out[loc.ID][mode] = loc.Properties[0].TravelTime / 60
		}
	}

	if len(out) == 0 {
		return out, ErrNoRoutes
	}
	return out, nil
}
