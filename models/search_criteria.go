package models

import (
	"errors"
	"fmt"
)

// ErrInvalidCriteria is the sentinel every criteria validation error unwraps to.
var ErrInvalidCriteria = errors.New("invalid search criteria")

const MaxBedrooms = 10

// TransportMode is a way of getting to the destination.
type TransportMode string

const (
	ModeTransit TransportMode = "transit"
	ModeDriving TransportMode = "driving"
	ModeBiking  TransportMode = "biking"
	ModeWalking TransportMode = "walking"
)

// TransportModes lists every mode in tie-break preference order.
var TransportModes = []TransportMode{ModeTransit, ModeDriving, ModeBiking, ModeWalking}

var transportModeLabels = map[TransportMode]string{
	ModeTransit: "Public Transit",
	ModeDriving: "Driving",
	ModeBiking:  "Biking",
	ModeWalking: "Walking",
}

func (m TransportMode) Valid() bool {
	_, ok := transportModeLabels[m]
	return ok
}

func (m TransportMode) Label() string {
	return transportModeLabels[m]
}

// Priority is a renter-declared tag; the first entries weigh the most.
type Priority string

const (
	PriorityShortCommute Priority = "short_commute"
	PriorityLowPrice     Priority = "low_price"
	PrioritySafeArea     Priority = "safe_area"
	PriorityNightlife    Priority = "nightlife"
	PriorityQuietArea    Priority = "quiet_area"
	PriorityPetFriendly  Priority = "pet_friendly"
	PriorityWalkable     Priority = "walkable"
	PriorityParking      Priority = "parking"
	PriorityGym          Priority = "gym"
	PriorityLaundry      Priority = "laundry"
)

// Priorities lists the known tags in display order.
var Priorities = []Priority{
	PriorityShortCommute, PriorityLowPrice, PrioritySafeArea, PriorityNightlife, PriorityQuietArea,
	PriorityPetFriendly, PriorityWalkable, PriorityParking, PriorityGym, PriorityLaundry,
}

var priorityLabels = map[Priority]string{
	PriorityShortCommute: "Short Commute",
	PriorityLowPrice:     "Low Price",
	PrioritySafeArea:     "Safe Area",
	PriorityNightlife:    "Nightlife",
	PriorityQuietArea:    "Quiet Area",
	PriorityPetFriendly:  "Pet Friendly",
	PriorityWalkable:     "Walkable",
	PriorityParking:      "Parking",
	PriorityGym:          "Gym Access",
	PriorityLaundry:      "In-Unit Laundry",
}

func (p Priority) Known() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (p Priority) Label() string {
	return priorityLabels[p]
}

// Destination is where the renter commutes to. Pinned coordinates always
// take precedence over the address.
type Destination struct {
	Address string       `json:"address,omitempty"`
	Pinned  *Coordinates `json:"pinned,omitempty"`
}

// Empty reports whether neither an address nor a pin was supplied.
func (d Destination) Empty() bool {
	return d.Pinned == nil && d.Address == ""
}

// SearchCriteria is the validated input of one search.
type SearchCriteria struct {
	BudgetMin         int           `json:"budget_min"`
	BudgetMax         int           `json:"budget_max"`
	Bedrooms          *int          `json:"bedrooms,omitempty"`
	Destination       Destination   `json:"destination"`
	Priorities        []Priority    `json:"priorities"`
	TransportMode     TransportMode `json:"transport_mode"`
	MaxCommuteMinutes int           `json:"max_commute_minutes"`
}

// ApplyDefaults fills optional fields the caller left empty.
func (c *SearchCriteria) ApplyDefaults() {
	if c.TransportMode == "" {
		c.TransportMode = ModeTransit
	}
	if c.MaxCommuteMinutes == 0 {
		c.MaxCommuteMinutes = 45
	}
	if c.Priorities == nil {
		c.Priorities = []Priority{}
	}
}

// Validate rejects criteria that must never reach scoring.
func (c *SearchCriteria) Validate() error {
	if c.BudgetMin < 0 {
		return &ValidationError{Field: "budget_min", Message: "must not be negative"}
	}
	if c.BudgetMax < 0 {
		return &ValidationError{Field: "budget_max", Message: "must not be negative"}
	}
	if c.BudgetMin > c.BudgetMax {
		return &ValidationError{Field: "budget_min", Message: fmt.Sprintf("%d is greater than budget_max %d", c.BudgetMin, c.BudgetMax)}
	}
	if c.Bedrooms != nil && (*c.Bedrooms < 0 || *c.Bedrooms > MaxBedrooms) {
		return &ValidationError{Field: "bedrooms", Message: fmt.Sprintf("must be between 0 and %d", MaxBedrooms)}
	}
	if !c.TransportMode.Valid() {
		return &ValidationError{Field: "transport_mode", Message: fmt.Sprintf("unknown mode %q", c.TransportMode)}
	}
	if c.MaxCommuteMinutes <= 0 {
		return &ValidationError{Field: "max_commute_minutes", Message: "must be positive"}
	}
	if c.Destination.Pinned != nil && !c.Destination.Pinned.Valid() {
		return &ValidationError{Field: "destination.pinned", Message: "coordinates out of range"}
	}
	return nil
}

// ValidationError describes one rejected criteria field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidCriteria, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCriteria
}
