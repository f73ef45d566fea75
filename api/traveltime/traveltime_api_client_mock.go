package traveltime

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"nestfinder/models"
	"nestfinder/util"
)

// mockGeocode is where the mock places every address: downtown Ottawa.
var mockGeocode = models.Coordinates{Lat: 45.4215, Lng: -75.6972}

// TravelTimeApiClientMock answers every origin with the same fixed minutes,
// optionally after a delay, and counts its calls.
type TravelTimeApiClientMock struct {
	Minutes map[models.TransportMode]int
	// Destination is the geocoding answer. Nil means the address is unknown.
	Destination *models.Coordinates
	Err         error
	Delay       time.Duration

	geocodes    atomic.Int64
	travelTimes atomic.Int64
}

func NewTravelTimeApiClientMock(minutes map[models.TransportMode]int) *TravelTimeApiClientMock {
	dest := mockGeocode
	return &TravelTimeApiClientMock{Minutes: minutes, Destination: &dest}
}

// NewTravelTimeApiClientMockFromJSON loads minutes per mode from a fixture
// such as {"transit": 25, "driving": 12}.
func NewTravelTimeApiClientMockFromJSON(path string) (*TravelTimeApiClientMock, error) {
	var fixture map[models.TransportMode]int
	if err := util.ReadJSONFile(path, &fixture); err != nil {
		return nil, fmt.Errorf("could not read travel time fixture: %w", err)
	}
	return NewTravelTimeApiClientMock(fixture), nil
}

func (c *TravelTimeApiClientMock) GeocodeCalls() int64 {
	return c.geocodes.Load()
}

func (c *TravelTimeApiClientMock) TravelTimeCalls() int64 {
	return c.travelTimes.Load()
}

func (c *TravelTimeApiClientMock) wait(ctx context.Context) error {
	if c.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(c.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *TravelTimeApiClientMock) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	c.geocodes.Add(1)
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if c.Destination == nil {
		return nil, fmt.Errorf("geocoding %q: %w", address, ErrGeocodeNotFound)
	}
	dest := *c.Destination
	return &dest, nil
}

func (c *TravelTimeApiClientMock) TravelTimes(ctx context.Context, origins []Origin, dest models.Coordinates) (map[string]map[models.TransportMode]int, error) {
	c.travelTimes.Add(1)
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if c.Err != nil {
		return nil, c.Err
	}

	out := make(map[string]map[models.TransportMode]int, len(origins))
	if len(c.Minutes) == 0 {
		return out, nil
	}
	for _, o := range origins {
		minutes := make(map[models.TransportMode]int, len(c.Minutes))
		for mode, m := range c.Minutes {
			minutes[mode] = m
		}
		out[o.ID] = minutes
	}
	return out, nil
}
