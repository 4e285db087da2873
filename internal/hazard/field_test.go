package hazard

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepthDeterministicPerSeed(t *testing.T) {
	a := NewField(7, 3.0, 0.55)
	b := NewField(7, 3.0, 0.55)

	p := Point{X: 12.5, Y: 48.0}
	assert.Equal(t, a.DepthAt(p), b.DepthAt(p))

	c := NewField(8, 3.0, 0.55)
	// A different seed reshapes the terrain; spot-check a few points to
	// confirm the fields actually differ.
	differs := false
	for _, q := range []Point{{1, 1}, {25, 70}, {60, 15}, {90, 90}} {
		if a.DepthAt(q) != c.DepthAt(q) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "fields with different seeds are identical")
}

func TestDepthNonNegative(t *testing.T) {
	f := NewField(42, 3.0, 0.55)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		require.GreaterOrEqual(t, f.DepthAt(RandomLocation(rng)), 0.0)
	}
}

func TestFieldHasWetAndDryGround(t *testing.T) {
	f := NewField(42, 3.0, 0.55)
	rng := rand.New(rand.NewSource(2))

	wet, dry := 0, 0
	for i := 0; i < 2000; i++ {
		if f.InFloodplain(RandomLocation(rng)) {
			wet++
		} else {
			dry++
		}
	}
	require.Positive(t, wet, "field floods nowhere")
	require.Positive(t, dry, "field floods everywhere")
}

func TestRandomLocationInDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		p := RandomLocation(rng)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, Extent)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, Extent)
	}
}
