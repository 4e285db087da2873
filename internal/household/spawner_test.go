package household

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodadapt/internal/hazard"
	"floodadapt/internal/risk"
)

func testSpawner(t *testing.T, seed int64) *Spawner {
	t.Helper()
	sc, err := risk.ParseScenario("harvey")
	require.NoError(t, err)
	field := hazard.NewField(seed+1, sc.DepthScale, sc.WaterLevel)
	return NewSpawner(seed, field, sc, DefaultParams())
}

func TestSpawnPopulationDeterministic(t *testing.T) {
	a := testSpawner(t, 42).SpawnPopulation(25)
	b := testSpawner(t, 42).SpawnPopulation(25)

	require.Len(t, a, 25)
	require.Len(t, b, 25)
	for i := range a {
		assert.Equal(t, *a[i], *b[i], "household %d differs between identical spawns", i)
	}
}

func TestSpawnDemographics(t *testing.T) {
	hs := testSpawner(t, 7).SpawnPopulation(200)
	p := DefaultParams()

	for i, h := range hs {
		require.Equal(t, i+1, h.ID)

		require.GreaterOrEqual(t, h.Age, 20.0)
		require.LessOrEqual(t, h.Age, 79.0)

		require.GreaterOrEqual(t, h.Income, IncomeMin)
		require.LessOrEqual(t, h.Income, IncomeMax)
		require.Equal(t, math.Trunc(h.Income), h.Income, "income must be whole dollars")

		// Starting savings are a whole 1-5 multiple of income.
		mult := h.Savings / h.Income
		require.InDelta(t, math.Round(mult), mult, 1e-9)
		require.GreaterOrEqual(t, mult, 1.0)
		require.LessOrEqual(t, mult, 5.0)

		for m := 0; m < NumMeasures; m++ {
			require.GreaterOrEqual(t, h.MeasureCosts[m], p.CostMin[m])
			require.Less(t, h.MeasureCosts[m], p.CostMax[m])
		}
	}
}

func TestSpawnExposure(t *testing.T) {
	hs := testSpawner(t, 11).SpawnPopulation(100)

	for _, h := range hs {
		require.GreaterOrEqual(t, h.DepthEstimated, 0.0)
		assert.Equal(t, h.DepthEstimated > 0, h.InFloodplain)
		assert.Equal(t, risk.DamageFraction(h.DepthEstimated), h.DamageEstimated)
		assert.Equal(t, 0.07, h.FloodProbability)
		assert.Zero(t, h.DepthActual)
		assert.Zero(t, h.DamageActual)
		assert.False(t, h.IsAdapted)
		assert.Empty(t, h.Undergone)
	}
}

func TestDrawIncomeBand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultParams()
	for i := 0; i < 10000; i++ {
		v := drawIncome(rng, p)
		require.GreaterOrEqual(t, v, IncomeMin)
		require.LessOrEqual(t, v, IncomeMax)
		require.Equal(t, math.Trunc(v), v)
	}
}
