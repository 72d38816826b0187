package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

func testConfig() config.Config {
	return config.Config{
		Seed:              12345,
		CellCount:         400,
		Aspect:            16.0 / 9.0,
		CellSizeKm:        2.5,
		Template:          config.TemplateContinents,
		LatitudeSouth:     30,
		MaxElevationM:     5000,
		MaxDepthM:         1250,
		EquatorTempC:      27,
		PoleTempC:         -20,
		LapseCPerKm:       6.5,
		MaxAnnualPrecipMm: 4000,
		WindBands: []config.WindBand{
			{LatMin: -90, LatMax: 90, Compass: config.West},
		},
		Tuning: config.IdentityTuningProfile(),
	}
}

func TestComputePrecipWithinEnvelope(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)
	elev, err := terrain.Shape(m, cfg)
	require.NoError(t, err)

	field := Compute(m, elev, cfg)
	for i, v := range field.PrecipMmYear {
		assert.GreaterOrEqualf(t, v, 0.0, "cell %d negative precip", i)
		assert.LessOrEqualf(t, v, cfg.MaxAnnualPrecipMm+1e-6, "cell %d exceeds max precip", i)
	}
}

func TestComputeTemperatureNeverExceedsEquatorPlateau(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)
	elev, err := terrain.Shape(m, cfg)
	require.NoError(t, err)

	field := Compute(m, elev, cfg)
	assert.Len(t, field.TemperatureC, m.CellCount)

	for i, v := range field.TemperatureC {
		assert.LessOrEqualf(t, v, cfg.EquatorTempC+1e-6, "cell %d hotter than equator plateau", i)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)
	elev, err := terrain.Shape(m, cfg)
	require.NoError(t, err)

	f1 := Compute(m, elev, cfg)
	f2 := Compute(m, elev, cfg)
	assert.Equal(t, f1.TemperatureC, f2.TemperatureC)
	assert.Equal(t, f1.PrecipMmYear, f2.PrecipMmYear)
}
