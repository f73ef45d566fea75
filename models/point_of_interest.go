package models

// POICategory groups points of interest for walkability scoring.
type POICategory string

const (
	CategoryParks     POICategory = "parks"
	CategorySchools   POICategory = "schools"
	CategoryGroceries POICategory = "groceries"
)

var POICategories = []POICategory{CategoryParks, CategorySchools, CategoryGroceries}

// PointOfInterest is one entry of a read-only POI dataset.
type PointOfInterest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// NearbyPlace is a point of interest found within a radius.
type NearbyPlace struct {
	Name      string `json:"name"`
	DistanceM int    `json:"distance_m"`
}
