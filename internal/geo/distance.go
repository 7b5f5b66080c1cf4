package geo

import (
	"context"
	"math"
	"strconv"

	"truck_dispatch/internal/models"
)

const (
	earthRadiusMiles = 3958.8
	// roadFactor pads straight-line distance to approximate road miles.
	roadFactor = 1.15

	minSameStateMiles  = 10
	maxSameStateMiles  = 200
	minCrossStateMiles = 100
	maxCrossStateMiles = 2000
	// zipMilesDivisor converts a numeric ZIP difference into miles.
	zipMilesDivisor = 50

	// FallbackMiles is used when nothing is known about either ZIP. Routes
	// carry mileage_source=fallback so the figure is never mistaken for a
	// measured one.
	FallbackMiles = 250
)

// statePairMiles holds typical road miles for common lanes, keyed by the
// alphabetically ordered state pair.
var statePairMiles = map[[2]string]int{
	{"CA", "IL"}: 2015, {"CA", "TX"}: 1435, {"AZ", "CA"}: 370, {"CA", "NV"}: 270,
	{"CA", "OR"}: 635, {"CA", "WA"}: 1135, {"IL", "TX"}: 925, {"IL", "NY"}: 790,
	{"GA", "IL"}: 715, {"IL", "OH"}: 355, {"IL", "IN"}: 180, {"IL", "WI"}: 90,
	{"IL", "MO"}: 300, {"IL", "MI"}: 285, {"IL", "MN"}: 410, {"GA", "TX"}: 790,
	{"FL", "TX"}: 965, {"OK", "TX"}: 205, {"LA", "TX"}: 350, {"AZ", "TX"}: 1065,
	{"CO", "TX"}: 795, {"NY", "PA"}: 95, {"MA", "NY"}: 215, {"FL", "GA"}: 440,
	{"OH", "PA"}: 185, {"GA", "TN"}: 250, {"IN", "OH"}: 175, {"KY", "TN"}: 175,
}

// Estimate is an approximate road distance and how it was derived.
type Estimate struct {
	Miles  int    `json:"mileage"`
	Source string `json:"source"`
}

// Locator resolves a ZIP to a location.
type Locator interface {
	Resolve(ctx context.Context, zip string) (*models.ZipCode, error)
}

// Estimator approximates road miles between ZIP codes. It is a heuristic:
// same-state and cross-state figures come from ZIP digit distance, not
// geography.
type Estimator struct {
	locator Locator
}

func NewEstimator(locator Locator) *Estimator {
	return &Estimator{locator: locator}
}

// Estimate never fails; when nothing is known it returns FallbackMiles with
// source "fallback".
func (e *Estimator) Estimate(ctx context.Context, originZip, destZip string) Estimate {
	origin := e.locate(ctx, originZip)
	dest := e.locate(ctx, destZip)

	originState := stateOf(origin, originZip)
	destState := stateOf(dest, destZip)

	if originState != "" && destState != "" {
		delta := zipDelta(originZip, destZip)
		if originState == destState {
			return Estimate{Miles: clamp(minSameStateMiles+delta/zipMilesDivisor, minSameStateMiles, maxSameStateMiles), Source: models.MileageSameState}
		}
		if miles, ok := lookupStatePair(originState, destState); ok {
			return Estimate{Miles: miles, Source: models.MileageStatePair}
		}
		return Estimate{Miles: clamp(minCrossStateMiles+delta/zipMilesDivisor, minCrossStateMiles, maxCrossStateMiles), Source: models.MileageZipDelta}
	}

	if origin.HasCoordinates() && dest.HasCoordinates() {
		d := HaversineMiles(*origin.Latitude, *origin.Longitude, *dest.Latitude, *dest.Longitude)
		return Estimate{Miles: int(math.Round(d * roadFactor)), Source: models.MileageHaversine}
	}

	return Estimate{Miles: FallbackMiles, Source: models.MileageFallback}
}

func (e *Estimator) locate(ctx context.Context, zip string) *models.ZipCode {
	if e.locator != nil {
		if z, err := e.locator.Resolve(ctx, zip); err == nil {
			return z
		}
	}
	if loc, ok := LookupEmbedded(zip); ok {
		return loc.ZipCode()
	}
	return nil
}

func stateOf(z *models.ZipCode, zip string) string {
	if z != nil && z.State != "" {
		return z.State
	}
	state, _ := StateForZip(zip)
	return state
}

func lookupStatePair(a, b string) (int, bool) {
	if a > b {
		a, b = b, a
	}
	miles, ok := statePairMiles[[2]string{a, b}]
	return miles, ok
}

func zipDelta(a, b string) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return 0
	}
	if x > y {
		return x - y
	}
	return y - x
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// HaversineMiles returns the great-circle distance between two points.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
