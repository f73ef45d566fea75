package scoring

import "math"

const (
	safetyFloor   = 40.0
	safetyCeiling = 95.0
)

// DefaultIncidentSeverity weighs incident categories; unknown categories weigh 1.
var DefaultIncidentSeverity = map[string]float64{
	"homicide":           25,
	"sexual_assault":     15,
	"assault":            8,
	"robbery":            6,
	"break_and_enter":    4,
	"auto_theft":         3,
	"theft_from_vehicle": 2,
	"theft":              1.5,
	"mischief":           1,
}

// SafetyIndex derives safety sub-scores from incident counts. Neighborhoods
// with more weighted incidents score lower, within [40,95].
type SafetyIndex struct {
	scores map[string]int
}

// NewSafetyIndex min-max normalizes the severity-weighted incident totals
// across all neighborhoods. When every total is equal each neighborhood gets
// the midpoint of the range.
func NewSafetyIndex(incidents map[string]map[string]int, severity map[string]float64) *SafetyIndex {
	idx := &SafetyIndex{scores: make(map[string]int, len(incidents))}
	if len(incidents) == 0 {
		return idx
	}

	totals := make(map[string]float64, len(incidents))
	lo, hi := math.Inf(1), math.Inf(-1)
	for name, counts := range incidents {
		var total float64
		for category, n := range counts {
			w, ok := severity[category]
			if !ok {
				w = 1
			}
			total += w * float64(n)
		}
		totals[name] = total
		lo = math.Min(lo, total)
		hi = math.Max(hi, total)
	}

	for name, total := range totals {
		norm := 0.5
		if hi > lo {
			norm = (total - lo) / (hi - lo)
		}
		idx.scores[name] = int(math.Round(safetyCeiling - norm*(safetyCeiling-safetyFloor)))
	}
	return idx
}

// Score returns the derived safety score for a neighborhood.
func (s *SafetyIndex) Score(neighborhood string) (int, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.scores[neighborhood]
	return v, ok
}

func (s *SafetyIndex) Len() int {
	if s == nil {
		return 0
	}
	return len(s.scores)
}
