package models

import (
	"errors"
	"fmt"
)

// LaundryType describes what laundry a listing offers.
type LaundryType string

const (
	LaundryNone       LaundryType = "none"
	LaundryInUnit     LaundryType = "in_unit"
	LaundryInBuilding LaundryType = "in_building"
)

// ErrInvalidListing is returned for listings with a negative price or
// bedroom count.
var ErrInvalidListing = errors.New("invalid listing")

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair lies within the WGS84 ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Listing is a single apartment offered by a listing source.
type Listing struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Address         string      `json:"address"`
	Neighborhood    string      `json:"neighborhood"`
	Price           int         `json:"price"`
	Bedrooms        int         `json:"bedrooms"`
	Bathrooms       float64     `json:"bathrooms"`
	Sqft            *int        `json:"sqft,omitempty"`
	Amenities       []string    `json:"amenities"`
	PetFriendly     bool        `json:"pet_friendly"`
	ParkingIncluded bool        `json:"parking_included"`
	LaundryType     LaundryType `json:"laundry_type"`
	ImageURL        string      `json:"image_url,omitempty"`
	SourceURL       string      `json:"source_url,omitempty"`
	Lat             *float64    `json:"lat,omitempty"`
	Lng             *float64    `json:"lng,omitempty"`
}

// Normalize fills the defaults every listing source applies on ingest and
// rejects listings that break the price and bedroom invariants.
func (l *Listing) Normalize() error {
	if l.Price < 0 || l.Bedrooms < 0 {
		return fmt.Errorf("%w %s: price and bedrooms must be non-negative", ErrInvalidListing, l.ID)
	}
	if l.LaundryType == "" {
		l.LaundryType = LaundryNone
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	return nil
}

// Coordinates returns the listing location, or nil when it was not geocoded.
func (l *Listing) Coordinates() *Coordinates {
	if l.Lat == nil || l.Lng == nil {
		return nil
	}
	return &Coordinates{Lat: *l.Lat, Lng: *l.Lng}
}

// HasAmenity reports whether the listing carries the given amenity tag.
func (l *Listing) HasAmenity(tag string) bool {
	for _, a := range l.Amenities {
		if a == tag {
			return true
		}
	}
	return false
}

func (l *Listing) ToString() string {
	return fmt.Sprintf("Listing(id=%s, title=%s, neighborhood=%s, price=%d, bedrooms=%d)",
		l.ID, l.Title, l.Neighborhood, l.Price, l.Bedrooms)
}
