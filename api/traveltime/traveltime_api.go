package traveltime

import (
	"context"
	"errors"

	"nestfinder/models"
)

var (
	// ErrGeocodeNotFound is returned when an address yields no coordinates.
	ErrGeocodeNotFound = errors.New("address could not be geocoded")
	// ErrNoRoutes is returned when no origin could be routed with any mode.
	ErrNoRoutes = errors.New("no travel time could be resolved for any mode")
)

// Origin is one departure point of a batch lookup, usually a listing.
type Origin struct {
	ID          string
	Coordinates models.Coordinates
}

// TravelTimeAPI locates the renter's destination and resolves travel times
// from many listings to it.
type TravelTimeAPI interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
	// TravelTimes returns whole minutes keyed by origin ID, then mode. Pairs
	// that are unreachable with a mode are left out. Every mode for every
	// origin is answered by a single request.
	TravelTimes(ctx context.Context, origins []Origin, dest models.Coordinates) (map[string]map[models.TransportMode]int, error)
}

// transportationTypes maps our modes onto the remote transportation types.
var transportationTypes = map[models.TransportMode]string{
	models.ModeTransit: "public_transport",
	models.ModeDriving: "driving",
	models.ModeBiking:  "cycling",
	models.ModeWalking: "walking",
}
