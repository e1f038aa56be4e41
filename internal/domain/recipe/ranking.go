package recipe

import "sort"

// expiringSoonDays is the tier boundary for sustainability ranking.
// Recipes whose ingredients expire within this many days always sort
// ahead of recipes with more slack, regardless of carbon footprint.
const expiringSoonDays = 3

// SustainabilityLess reports whether a should sort before b under
// sustainable mode. It is a strict two-tier comparison, not a weighted
// score: the expiration tier dominates, and carbon footprint only
// breaks ties within a tier.
func SustainabilityLess(a, b Recipe) bool {
	aSoon := a.Expiration.DaysUntilExpiration <= expiringSoonDays
	bSoon := b.Expiration.DaysUntilExpiration <= expiringSoonDays
	if aSoon != bSoon {
		return aSoon
	}
	return a.CarbonFootprint < b.CarbonFootprint
}

// SortSustainable orders recipes in place for sustainable mode.
// The sort is stable so equally ranked recipes keep their generation order.
func SortSustainable(recipes []Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return SustainabilityLess(recipes[i], recipes[j])
	})
}
