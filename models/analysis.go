package models

// AnalysisStatus tells whether an axis was scored from real inputs or fell
// back to a documented default.
type AnalysisStatus string

const (
	StatusOK       AnalysisStatus = "ok"
	StatusDegraded AnalysisStatus = "degraded"
)

// Outcome is embedded in every axis analysis.
type Outcome struct {
	Status         AnalysisStatus `json:"status"`
	DegradedReason string         `json:"degraded_reason,omitempty"`
}

func (o Outcome) Degraded() bool {
	return o.Status == StatusDegraded
}

func OK() Outcome {
	return Outcome{Status: StatusOK}
}

func Degraded(reason string) Outcome {
	return Outcome{Status: StatusDegraded, DegradedReason: reason}
}

// CommuteAnalysis is the commute axis for one listing. Minutes are nil for
// modes that could be neither resolved nor estimated.
type CommuteAnalysis struct {
	Outcome
	ListingID        string        `json:"listing_id"`
	HasCommute       bool          `json:"has_commute"`
	TransitMinutes   *int          `json:"transit_minutes"`
	DrivingMinutes   *int          `json:"driving_minutes"`
	BikingMinutes    *int          `json:"biking_minutes"`
	WalkingMinutes   *int          `json:"walking_minutes"`
	PreferredMode    TransportMode `json:"preferred_mode"`
	BestMode         TransportMode `json:"best_mode,omitempty"`
	BestTime         int           `json:"best_time"`
	Estimated        bool          `json:"estimated"`
	WithinMaxCommute bool          `json:"within_max_commute"`
	Score            int           `json:"commute_score"`
	Summary          string        `json:"summary"`
}

// SetMinutes records the minutes for mode.
func (c *CommuteAnalysis) SetMinutes(mode TransportMode, minutes int) {
	m := minutes
	switch mode {
	case ModeTransit:
		c.TransitMinutes = &m
	case ModeDriving:
		c.DrivingMinutes = &m
	case ModeBiking:
		c.BikingMinutes = &m
	case ModeWalking:
		c.WalkingMinutes = &m
	}
}

// CommutePlan is what one search resolved about travel before its
// candidates are scored: the destination point and the minutes per listing
// ID and mode. Failure is set when the lookup failed for the whole search.
type CommutePlan struct {
	Target  Coordinates
	Minutes map[string]map[TransportMode]int
	Failure string
}

// NeighborhoodAnalysis is the neighborhood axis for one listing.
type NeighborhoodAnalysis struct {
	Outcome
	ListingID           string   `json:"listing_id"`
	NeighborhoodName    string   `json:"neighborhood_name"`
	SafetyScore         int      `json:"safety_score"`
	SafetyRating        string   `json:"safety_rating"`
	SafetyFromIncidents bool     `json:"safety_from_incidents"`
	WalkabilityScore    int      `json:"walkability_score"`
	NightlifeScore      int      `json:"nightlife_score"`
	QuietScore          int      `json:"quiet_score"`
	GroceryNearby       []string `json:"grocery_nearby"`
	RestaurantsNearby   int      `json:"restaurants_nearby"`
	ParksNearby         int      `json:"parks_nearby"`
	Score               int      `json:"neighborhood_score"`
	Summary             string   `json:"summary"`
}

// BudgetAnalysis compares a listing's rent against the market.
type BudgetAnalysis struct {
	Outcome
	ListingID              string   `json:"listing_id"`
	MonthlyRent            int      `json:"monthly_rent"`
	EstimatedUtilities     int      `json:"estimated_utilities"`
	TotalMonthly           int      `json:"total_monthly"`
	MarketAverage          int      `json:"market_average"`
	PriceDifference        int      `json:"price_difference"`
	PriceDifferencePercent float64  `json:"price_difference_percent"`
	PricePerSqft           *float64 `json:"price_per_sqft"`
	SpaceValueScore        *int     `json:"space_value_score"`
	IsGoodDeal             bool     `json:"is_good_deal"`
	Score                  int      `json:"budget_score"`
	Summary                string   `json:"summary"`
}

// WalkabilityAnalysis scores proximity to parks, schools and groceries.
type WalkabilityAnalysis struct {
	Outcome
	ListingID              string `json:"listing_id"`
	Score                  int    `json:"walkability_score"`
	ParksNearby            int    `json:"parks_nearby"`
	SchoolsNearby          int    `json:"schools_nearby"`
	GroceriesNearby        int    `json:"groceries_nearby"`
	ClosestParkName        string `json:"closest_park_name,omitempty"`
	ClosestParkDistance    *int   `json:"closest_park_distance,omitempty"`
	ClosestSchoolName      string `json:"closest_school_name,omitempty"`
	ClosestSchoolDistance  *int   `json:"closest_school_distance,omitempty"`
	ClosestGroceryName     string `json:"closest_grocery_name,omitempty"`
	ClosestGroceryDistance *int   `json:"closest_grocery_distance,omitempty"`
	Summary                string `json:"summary"`
}

// AmenityAnalysis scores how a listing's features match declared priorities.
type AmenityAnalysis struct {
	Outcome
	ListingID string     `json:"listing_id"`
	Matched   []Priority `json:"matched"`
	Score     int        `json:"amenity_score"`
	Summary   string     `json:"summary"`
}
