package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() Config {
	return Config{
		Seed:          12345,
		CellCount:     5000,
		Aspect:        16.0 / 9.0,
		CellSizeKm:    2.5,
		Template:      TemplateLowIsland,
		LatitudeSouth: 30,
		MaxElevationM: 5000,
		MaxDepthM:     1250,
		EquatorTempC:  27,
		PoleTempC:     -20,
		LapseCPerKm:   6.5,
		MaxAnnualPrecipMm: 4000,
		WindBands: []WindBand{
			{LatMin: -90, LatMax: 90, Compass: West},
		},
		RiverTraceThresholdBase: 5,
		RiverMajorMultiplier:    8,
		MinRiverVertices:        4,
		MinRealmCells:           50,
		MinRealmPopulationFraction: 0.05,
		Tuning: IdentityTuningProfile(),
	}
}

func TestValidateAcceptsBaseConfig(t *testing.T) {
	require.NoError(t, baseConfig().Validate())
}

func TestValidateRejectsNonPositiveSize(t *testing.T) {
	c := baseConfig()
	c.CellCount = 0
	assert.Error(t, c.Validate())

	c = baseConfig()
	c.CellSizeKm = -1
	assert.Error(t, c.Validate())
}

func TestValidateRejectsLatitudeOutOfRange(t *testing.T) {
	c := baseConfig()
	c.LatitudeSouth = 120
	assert.Error(t, c.Validate())
}

func TestValidateRejectsEmptyWindBands(t *testing.T) {
	c := baseConfig()
	c.WindBands = nil
	assert.Error(t, c.Validate())
}

func TestValidateRejectsNonFinite(t *testing.T) {
	c := baseConfig()
	c.MaxElevationM = math64NaN()
	assert.Error(t, c.Validate())
}

func math64NaN() float64 {
	var zero float64
	return zero / zero
}

func TestMetadataDerivesEnvelope(t *testing.T) {
	c := baseConfig()
	md := c.Metadata()

	assert.Greater(t, md.WidthKm, 0.0)
	assert.Greater(t, md.HeightKm, 0.0)
	assert.Equal(t, -c.MaxDepthM, md.MinElevationM)
	assert.Equal(t, 0.0, md.SeaLevelM)
	assert.Equal(t, c.MaxElevationM, md.MaxElevationM)
}

func TestWithTuningProfileMergesOverride(t *testing.T) {
	c := baseConfig()
	c, err := c.WithTuningProfile(TemplateVolcano)
	require.NoError(t, err)

	assert.Equal(t, 1.4, c.Tuning.HillHeightMul)
	// untouched fields stay at identity
	assert.Equal(t, 1.0, c.Tuning.CultureTargetScale)
}

func TestIdentityTuningProfileIsNeutral(t *testing.T) {
	p := IdentityTuningProfile()
	assert.Equal(t, 1.0, p.HillHeightMul)
	assert.Equal(t, 0.0, p.BlobPowerBias)
}

func TestLandBandRanges(t *testing.T) {
	min, max := TemplateLowIsland.LandBand()
	assert.Equal(t, 0.10, min)
	assert.Equal(t, 0.60, max)

	min, max = TemplateContinents.LandBand()
	assert.Equal(t, 0.25, min)
	assert.Equal(t, 0.82, max)
}
