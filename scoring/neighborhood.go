package scoring

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"nestfinder/models"
)

// NeighborhoodProfile holds the static sub-scores (0-100) for a neighborhood.
type NeighborhoodProfile struct {
	Name              string   `json:"name"`
	Safety            int      `json:"safety_score"`
	Walkability       int      `json:"walkability_score"`
	Nightlife         int      `json:"nightlife_score"`
	Quiet             int      `json:"quiet_score"`
	GroceryNearby     []string `json:"grocery_nearby"`
	RestaurantsNearby int      `json:"restaurants_nearby"`
	ParksNearby       int      `json:"parks_nearby"`
}

// DefaultNeighborhoodProfile is used for neighborhoods missing from the table.
var DefaultNeighborhoodProfile = NeighborhoodProfile{
	Safety:            70,
	Walkability:       70,
	Nightlife:         50,
	Quiet:             65,
	GroceryNearby:     []string{"Local grocery"},
	RestaurantsNearby: 30,
	ParksNearby:       5,
}

// NeighborhoodTable is an immutable lookup of neighborhood profiles.
type NeighborhoodTable struct {
	profiles map[string]NeighborhoodProfile
	fallback NeighborhoodProfile
}

func NewNeighborhoodTable(profiles []NeighborhoodProfile, fallback NeighborhoodProfile) *NeighborhoodTable {
	t := &NeighborhoodTable{
		profiles: make(map[string]NeighborhoodProfile, len(profiles)),
		fallback: fallback,
	}
	for _, p := range profiles {
		t.profiles[p.Name] = p
	}
	return t
}

// Lookup returns the profile for name, or the fallback with found=false.
func (t *NeighborhoodTable) Lookup(name string) (NeighborhoodProfile, bool) {
	if p, ok := t.profiles[name]; ok {
		return p, true
	}
	p := t.fallback
	p.Name = name
	return p, false
}

// Names lists known neighborhoods alphabetically.
func (t *NeighborhoodTable) Names() []string {
	names := make([]string, 0, len(t.profiles))
	for n := range t.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NeighborhoodScore averages safety and walkability, and also nightlife or
// quiet when the renter prioritized them.
func NeighborhoodScore(p NeighborhoodProfile, priorities []models.Priority) int {
	scores := []int{p.Safety, p.Walkability}
	if slices.Contains(priorities, models.PriorityNightlife) {
		scores = append(scores, p.Nightlife)
	}
	if slices.Contains(priorities, models.PriorityQuietArea) {
		scores = append(scores, p.Quiet)
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return clampScore(int(math.Round(float64(sum) / float64(len(scores)))))
}

func SafetyRating(safety int) string {
	switch {
	case safety >= 85:
		return "excellent"
	case safety >= 70:
		return "good"
	case safety >= 55:
		return "moderate"
	default:
		return "caution"
	}
}

func NeighborhoodSummary(p NeighborhoodProfile, priorities []models.Priority) string {
	var clauses []string
	switch {
	case p.Safety >= 85:
		clauses = append(clauses, "very safe area")
	case p.Safety >= 70:
		clauses = append(clauses, "generally safe")
	case p.Safety < 55:
		clauses = append(clauses, "higher crime area")
	}
	if p.Walkability >= 85 {
		clauses = append(clauses, "highly walkable")
	}
	if slices.Contains(priorities, models.PriorityNightlife) && p.Nightlife >= 70 {
		clauses = append(clauses, "great nightlife")
	}
	if slices.Contains(priorities, models.PriorityQuietArea) && p.Quiet >= 75 {
		clauses = append(clauses, "quiet residential area")
	}
	if len(clauses) == 0 {
		return fmt.Sprintf("Typical %s neighborhood", p.Name)
	}
	return capitalize(strings.Join(clauses, ", "))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
