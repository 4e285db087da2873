package household

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodadapt/internal/risk"
)

func testHousehold() *Household {
	return &Household{
		ID:               1,
		Age:              35,
		Income:           10000,
		Savings:          30000,
		InFloodplain:     true,
		FloodProbability: 0.07,
		DepthEstimated:   1.5,
		DamageEstimated:  risk.DamageFraction(1.5),
		MeasureCosts:     [NumMeasures]float64{35000, 6000, 7000},
	}
}

func TestStepFinancesAges(t *testing.T) {
	h := testHousehold()
	rng := rand.New(rand.NewSource(1))
	StepFinances(h, rng, DefaultParams())
	assert.Equal(t, 35.25, h.Age)
}

func TestStepFinancesAlwaysSaves(t *testing.T) {
	p := DefaultParams()
	p.SavingThreshold = 0 // every draw lands above the threshold

	h := testHousehold()
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		before := h.Savings
		StepFinances(h, rng, p)
		gain := h.Savings - before
		// A quarter of saving is three months at one of the rate steps.
		require.GreaterOrEqual(t, gain, h.Income*0.05*3-1e-9)
		require.LessOrEqual(t, gain, h.Income*0.25*3+1e-9)
	}
}

func TestStepFinancesAlwaysConsumes(t *testing.T) {
	p := DefaultParams()
	p.SavingThreshold = 1 // Float64 draws in [0,1) never exceed it

	h := testHousehold()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		before := h.Savings
		StepFinances(h, rng, p)
		require.Less(t, h.Savings, before)
		require.GreaterOrEqual(t, h.Savings, before*0.75) // steepest rate is 0.25
	}
	require.GreaterOrEqual(t, h.Savings, 0.0)
}

func TestRebirthResetsAdaptationKeepsAccumulators(t *testing.T) {
	p := DefaultParams()
	h := testHousehold()
	h.Age = 79.9

	Adopt(h, MeasureDryproofing, 6000, p)
	Adopt(h, MeasureWetproofing, 7000, p)
	h.ActualDamage = 1234
	h.ReducedActualDamage = 567
	reducedEst := h.ReducedEstimatedDamage
	require.True(t, h.IsAdapted)

	rng := rand.New(rand.NewSource(4))
	StepFinances(h, rng, p)

	assert.Equal(t, 1, h.ID)
	assert.Equal(t, 1, h.Rebirths)
	assert.GreaterOrEqual(t, h.Age, 20.0)
	assert.LessOrEqual(t, h.Age, 79.0)
	assert.False(t, h.IsAdapted)
	assert.Empty(t, h.Undergone)
	for m := range h.Measures {
		assert.False(t, h.Measures[m].Active)
		assert.Nil(t, h.Measures[m].Lifetime)
	}
	assert.Equal(t, risk.DamageFraction(h.DepthEstimated), h.DamageEstimated)

	// Lifetime metrics and the cost draws survive the turnover.
	assert.Equal(t, 1234.0, h.ActualDamage)
	assert.Equal(t, 567.0, h.ReducedActualDamage)
	assert.Equal(t, reducedEst, h.ReducedEstimatedDamage)
	assert.Equal(t, 2, h.Adoptions)
	assert.Equal(t, [NumMeasures]float64{35000, 6000, 7000}, h.MeasureCosts)

	// The new resident starts with whole-multiple savings again.
	mult := h.Savings / h.Income
	assert.GreaterOrEqual(t, mult, 1.0)
	assert.LessOrEqual(t, mult, 5.0)
}

func TestNoRebirthBeforeMaxAge(t *testing.T) {
	p := DefaultParams()
	h := testHousehold()
	h.Age = 79.5

	rng := rand.New(rand.NewSource(5))
	StepFinances(h, rng, p)
	assert.Equal(t, 79.75, h.Age)
	assert.Zero(t, h.Rebirths)

	StepFinances(h, rng, p)
	assert.Equal(t, 1, h.Rebirths, "turnover at exactly the age limit")
}
