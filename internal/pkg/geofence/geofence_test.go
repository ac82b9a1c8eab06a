package geofence

import (
	"context"
	"testing"

	"github.com/shiftwise-hr/shiftwise-backend-go/internal/domain/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	// Jakarta Monas to Jakarta City Hall, roughly 650 meters.
	d := HaversineDistance(-6.1754, 106.8272, -6.1805, 106.8284)
	assert.InDelta(t, 580, d, 100)

	assert.Zero(t, HaversineDistance(-6.1754, 106.8272, -6.1754, 106.8272))
}

func TestResolveGeoFence(t *testing.T) {
	resolver := NewResolver()
	candidates := []scan.CandidateLocation{
		{ID: "hq", Latitude: -6.1754, Longitude: 106.8272, RadiusMeters: 100, Active: true},
		{ID: "branch", Latitude: -6.1760, Longitude: 106.8275, RadiusMeters: 500, Active: true},
		{ID: "closed", Latitude: -6.1754, Longitude: 106.8272, RadiusMeters: 1000, Active: false},
	}

	t.Run("nearest containing location wins", func(t *testing.T) {
		loc, err := resolver.ResolveGeoFence(context.Background(), -6.1754, 106.8272, candidates)
		require.NoError(t, err)
		assert.Equal(t, "hq", loc.ID)
	})

	t.Run("inactive locations are skipped", func(t *testing.T) {
		far := []scan.CandidateLocation{
			{ID: "closed", Latitude: -6.1754, Longitude: 106.8272, RadiusMeters: 1000, Active: false},
		}
		_, err := resolver.ResolveGeoFence(context.Background(), -6.1754, 106.8272, far)
		assert.ErrorIs(t, err, scan.ErrOutsideGeoFence)
	})

	t.Run("outside every radius", func(t *testing.T) {
		_, err := resolver.ResolveGeoFence(context.Background(), -6.3000, 106.9000, candidates)
		assert.ErrorIs(t, err, scan.ErrOutsideGeoFence)
	})
}
