package biome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/worldgen/climate"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/hydrology"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

func testConfig() config.Config {
	return config.Config{
		Seed:                    12345,
		CellCount:               500,
		Aspect:                  16.0 / 9.0,
		CellSizeKm:              2.5,
		Template:                config.TemplateContinents,
		LatitudeSouth:           30,
		MaxElevationM:           5000,
		MaxDepthM:               1250,
		EquatorTempC:            27,
		PoleTempC:               -20,
		LapseCPerKm:             6.5,
		MaxAnnualPrecipMm:       4000,
		RiverTraceThresholdBase: 5,
		RiverMajorMultiplier:    8,
		MinRiverVertices:        3,
		WindBands: []config.WindBand{
			{LatMin: -90, LatMax: 90, Compass: config.West},
		},
		Tuning: config.IdentityTuningProfile(),
	}
}

func buildUpTo(t *testing.T) (*mesh.CellMesh, terrain.ElevationField, climate.Field, hydrology.Field, config.Config) {
	t.Helper()
	cfg := testConfig()
	m := mesh.Build(cfg)
	elev, err := terrain.Shape(m, cfg)
	require.NoError(t, err)
	clim := climate.Compute(m, elev, cfg)
	hydro := hydrology.Compute(m, elev, clim, cfg)
	return m, elev, clim, hydro, cfg
}

func TestComputeValuesClampedToRange(t *testing.T) {
	m, elev, clim, hydro, cfg := buildUpTo(t)
	f := Compute(m, elev, clim, hydro, cfg)

	for i := 0; i < m.CellCount; i++ {
		assert.GreaterOrEqual(t, f.Habitability[i], 0.0)
		assert.LessOrEqual(t, f.Habitability[i], 100.0)
		assert.GreaterOrEqual(t, f.Suitability[i], 0.0)
		assert.LessOrEqual(t, f.Suitability[i], 100.0)
		assert.GreaterOrEqual(t, f.MovementCost[i], 0.0)
		assert.LessOrEqual(t, f.MovementCost[i], 100.0)
		assert.GreaterOrEqual(t, f.Population[i], 0.0)
	}
}

func TestWaterCellsDefaultBiomes(t *testing.T) {
	m, elev, clim, hydro, cfg := buildUpTo(t)
	f := Compute(m, elev, clim, hydro, cfg)

	for i := 0; i < m.CellCount; i++ {
		if elev.SignedM[i] > 0 {
			continue
		}
		if f.IsLakeCell[i] {
			assert.Equal(t, config.BiomeLake, f.BiomeID[i])
		} else {
			assert.Equal(t, config.BiomeCoastalMarsh, f.BiomeID[i])
		}
	}
}

func TestWaterFeaturesPartitionAllWaterCells(t *testing.T) {
	m, elev, clim, hydro, cfg := buildUpTo(t)
	f := Compute(m, elev, clim, hydro, cfg)

	total := 0
	for _, feat := range f.Features {
		total += feat.CellCount
	}
	waterCells := 0
	for i := 0; i < m.CellCount; i++ {
		if elev.SignedM[i] <= 0 {
			waterCells++
		}
	}
	assert.Equal(t, waterCells, total)
}
