package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
)

func testConfig() config.Config {
	return config.Config{
		Seed:          12345,
		CellCount:     600,
		Aspect:        16.0 / 9.0,
		CellSizeKm:    2.5,
		Template:      config.TemplateLowIsland,
		LatitudeSouth: 30,
		MaxElevationM: 5000,
		MaxDepthM:     1250,
		Tuning:        config.IdentityTuningProfile(),
	}
}

func TestShapeProducesValuesWithinEnvelope(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)
	field, err := Shape(m, cfg)
	require.NoError(t, err)

	for i, v := range field.SignedM {
		assert.GreaterOrEqualf(t, v, -cfg.MaxDepthM, "cell %d below envelope", i)
		assert.LessOrEqualf(t, v, cfg.MaxElevationM, "cell %d above envelope", i)
	}
}

func TestShapeHomeostasisHitsLandBandOrIsNonDegenerate(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)
	field, err := Shape(m, cfg)
	require.NoError(t, err)

	minLand, maxLand := cfg.Template.LandBand()
	ratio := field.LandRatio()
	inBand := ratio >= minLand && ratio <= maxLand
	nonDegenerate := field.LandCount() > 0 && field.WaterCount() > 0
	assert.True(t, inBand || nonDegenerate)
}

func TestShapeIsDeterministic(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)
	f1, err := Shape(m, cfg)
	require.NoError(t, err)
	f2, err := Shape(m, cfg)
	require.NoError(t, err)
	assert.Equal(t, f1.SignedM, f2.SignedM)
}

func TestExecuteDSLRejectsUnknownOpcode(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)
	f := NewField(m, cfg)
	err := ExecuteDSL(f, "Bogus 1 2 3", nil)
	assert.Error(t, err)
}

func TestParseBandRejectsUnknownSelector(t *testing.T) {
	_, err := parseBand([]string{"weird"}, 1, "add")
	assert.Error(t, err)
}
