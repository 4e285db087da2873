// Package hazard provides a synthetic inundation-depth field built from
// layered simplex noise. It stands in for a surveyed flood raster: the
// rest of the model only ever asks how deep a scenario floods a location.
package hazard

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Extent bounds the model domain. Locations are unitless coordinates
// inside [0, Extent) on both axes.
const Extent = 100.0

// depthSpread stretches normalized water-surface differences onto the
// meter range the damage curve is calibrated for.
const depthSpread = 8.0

// Terrain noise recipe: octave count, base frequency, persistence.
const (
	terrainOctaves     = 4
	terrainFrequency   = 0.08
	terrainPersistence = 0.5
)

// Point is a location in the model domain.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Field answers depth queries for one storm regime.
type Field struct {
	elevNoise  opensimplex.Noise
	waterLevel float64
	depthScale float64
}

// NewField builds the terrain layer for a scenario. The same seed and
// shaping parameters always produce the same field.
func NewField(seed int64, depthScale, waterLevel float64) *Field {
	return &Field{
		elevNoise:  opensimplex.NewNormalized(seed),
		waterLevel: waterLevel,
		depthScale: depthScale,
	}
}

// DepthAt returns the inundation depth at p in meters, zero on high ground.
func (f *Field) DepthAt(p Point) float64 {
	elev := octaveNoise(f.elevNoise, p.X, p.Y, terrainOctaves, terrainFrequency, terrainPersistence)
	depth := (f.waterLevel - elev) * f.depthScale * depthSpread
	if depth < 0 {
		return 0
	}
	return depth
}

// InFloodplain reports whether p sits below the scenario's flood stage.
func (f *Field) InFloodplain(p Point) bool {
	return f.DepthAt(p) > 0
}

// RandomLocation draws a uniform point inside the model domain.
func RandomLocation(rng *rand.Rand) Point {
	return Point{X: rng.Float64() * Extent, Y: rng.Float64() * Extent}
}

// octaveNoise layers multiple noise frequencies for natural-looking terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
