package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioProbabilities(t *testing.T) {
	cases := []struct {
		name string
		p    float64
	}{
		{"harvey", 0.07},
		{"100yr", 0.01},
		{"500yr", 0.002},
	}
	for _, tc := range cases {
		sc, err := ParseScenario(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.p, sc.Probability)
		assert.Equal(t, tc.name, sc.Name)
		assert.Positive(t, sc.DepthScale)
		assert.Positive(t, sc.WaterLevel)
	}
}

func TestParseScenarioUnknown(t *testing.T) {
	_, err := ParseScenario("katrina")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "katrina")
	assert.Contains(t, err.Error(), "harvey")
}

func TestNamesCoverAllScenarios(t *testing.T) {
	for _, name := range Names() {
		_, err := ParseScenario(name)
		require.NoError(t, err, "listed scenario %q does not parse", name)
	}
	assert.Len(t, Names(), len(scenarios))
}
