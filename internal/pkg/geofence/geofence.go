package geofence

import (
	"context"
	"math"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
)

// Resolver matches coordinates against candidate locations by haversine
// distance. Among the locations whose radius contains the point, the nearest
// one wins.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveGeoFence implements scan.GeoFenceResolver.
func (r *Resolver) ResolveGeoFence(ctx context.Context, lat, lon float64, candidates []scan.CandidateLocation) (scan.CandidateLocation, error) {
	var best scan.CandidateLocation
	bestDistance := math.MaxFloat64
	found := false

	for _, loc := range candidates {
		if !loc.Active {
			continue
		}
		distance := HaversineDistance(lat, lon, loc.Latitude, loc.Longitude)
		if distance <= float64(loc.RadiusMeters) && distance < bestDistance {
			best = loc
			bestDistance = distance
			found = true
		}
	}

	if !found {
		return scan.CandidateLocation{}, scan.ErrOutsideGeoFence
	}
	return best, nil
}

// HaversineDistance returns the great-circle distance between two coordinates
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
