package scoring

// Built-in Ottawa reference data, used when no dataset files are configured.

// DefaultRentByBedrooms covers neighborhoods missing from a market table.
var DefaultRentByBedrooms = map[int]int{0: 1400, 1: 1700, 2: 2200, 3: 2800}

// NewMarketTableWithDefaults builds a table from rows using the Ottawa
// per-bedroom defaults.
func NewMarketTableWithDefaults(rows []MarketAverage) *MarketTable {
	return NewMarketTable(rows, DefaultRentByBedrooms, defaultMarketFallback)
}

func OttawaNeighborhoodTable() *NeighborhoodTable {
	return NewNeighborhoodTable([]NeighborhoodProfile{
		{Name: "Centretown", Safety: 75, Walkability: 92, Nightlife: 85, Quiet: 40, GroceryNearby: []string{"Farm Boy", "Loblaws", "Metro"}, RestaurantsNearby: 150, ParksNearby: 5},
		{Name: "Byward Market", Safety: 65, Walkability: 95, Nightlife: 95, Quiet: 25, GroceryNearby: []string{"Moulin de Provence", "Metro"}, RestaurantsNearby: 200, ParksNearby: 3},
		{Name: "The Glebe", Safety: 88, Walkability: 85, Nightlife: 60, Quiet: 70, GroceryNearby: []string{"Whole Foods", "Metro", "Farm Boy"}, RestaurantsNearby: 80, ParksNearby: 8},
		{Name: "Westboro", Safety: 90, Walkability: 82, Nightlife: 55, Quiet: 75, GroceryNearby: []string{"Superstore", "Farm Boy"}, RestaurantsNearby: 60, ParksNearby: 10},
		{Name: "Hintonburg", Safety: 72, Walkability: 80, Nightlife: 70, Quiet: 55, GroceryNearby: []string{"Parkdale Market", "Herb & Spice"}, RestaurantsNearby: 70, ParksNearby: 6},
		{Name: "Sandy Hill", Safety: 70, Walkability: 78, Nightlife: 50, Quiet: 60, GroceryNearby: []string{"Metro", "Shoppers Drug Mart"}, RestaurantsNearby: 40, ParksNearby: 5},
		{Name: "Little Italy", Safety: 75, Walkability: 83, Nightlife: 75, Quiet: 50, GroceryNearby: []string{"Nicastro's", "La Bottega"}, RestaurantsNearby: 90, ParksNearby: 4},
		{Name: "Vanier", Safety: 55, Walkability: 65, Nightlife: 40, Quiet: 60, GroceryNearby: []string{"Food Basics", "Walmart"}, RestaurantsNearby: 30, ParksNearby: 4},
		{Name: "Alta Vista", Safety: 85, Walkability: 55, Nightlife: 20, Quiet: 90, GroceryNearby: []string{"Loblaws", "Shoppers"}, RestaurantsNearby: 20, ParksNearby: 12},
		{Name: "Old Ottawa South", Safety: 87, Walkability: 75, Nightlife: 35, Quiet: 80, GroceryNearby: []string{"Metro"}, RestaurantsNearby: 25, ParksNearby: 7},
		{Name: "New Edinburgh", Safety: 88, Walkability: 72, Nightlife: 30, Quiet: 85, GroceryNearby: []string{"Metro", "Jacobsons"}, RestaurantsNearby: 20, ParksNearby: 8},
	}, DefaultNeighborhoodProfile)
}

func OttawaMarketTable() *MarketTable {
	return NewMarketTable([]MarketAverage{
		{"Centretown", 1, 1800}, {"Centretown", 2, 2400},
		{"Byward Market", 1, 2000}, {"Byward Market", 2, 2700},
		{"The Glebe", 1, 1900}, {"The Glebe", 2, 2500},
		{"Westboro", 1, 2000}, {"Westboro", 2, 2600},
		{"Hintonburg", 1, 1750}, {"Hintonburg", 2, 2300},
		{"Sandy Hill", 1, 1600}, {"Sandy Hill", 2, 2100},
		{"Little Italy", 1, 1700}, {"Little Italy", 2, 2200},
		{"Vanier", 1, 1450}, {"Vanier", 2, 1850},
		{"Alta Vista", 1, 1550}, {"Alta Vista", 2, 2000},
		{"Old Ottawa South", 1, 1800}, {"Old Ottawa South", 2, 2400},
		{"New Edinburgh", 1, 1850}, {"New Edinburgh", 2, 2450},
	}, DefaultRentByBedrooms, defaultMarketFallback)
}
