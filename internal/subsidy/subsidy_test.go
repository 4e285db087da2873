package subsidy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"floodadapt/internal/household"
)

func TestNoneChargesFullPrice(t *testing.T) {
	var n None
	assert.Equal(t, 1.0, n.Multiplier(1, household.MeasureElevation))
	assert.Equal(t, 1.0, n.Multiplier(99, household.MeasureWetproofing))
}

func TestFixedRateDiscounts(t *testing.T) {
	f := FixedRate{Rate: 0.25}
	assert.Equal(t, 0.75, f.Multiplier(1, household.MeasureDryproofing))

	assert.Equal(t, 1.0, FixedRate{Rate: -0.5}.Multiplier(1, household.MeasureElevation))
	assert.Equal(t, 0.0, FixedRate{Rate: 2}.Multiplier(1, household.MeasureElevation))
}

func TestForRate(t *testing.T) {
	assert.IsType(t, None{}, ForRate(0))
	assert.IsType(t, FixedRate{}, ForRate(0.3))
	assert.Equal(t, 0.7, ForRate(0.3).Multiplier(4, household.MeasureDryproofing))
}
