package political

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/climate"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/hydrology"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

func testConfig() config.Config {
	return config.Config{
		Seed:                       12345,
		CellCount:                  800,
		Aspect:                     16.0 / 9.0,
		CellSizeKm:                 2.5,
		Template:                   config.TemplateContinents,
		LatitudeSouth:              30,
		MaxElevationM:              5000,
		MaxDepthM:                  1250,
		EquatorTempC:               27,
		PoleTempC:                  -20,
		LapseCPerKm:                6.5,
		MaxAnnualPrecipMm:          4000,
		RiverTraceThresholdBase:    5,
		RiverMajorMultiplier:       8,
		MinRiverVertices:           3,
		MinRealmCells:              20,
		MinRealmPopulationFraction: 0.05,
		WindBands: []config.WindBand{
			{LatMin: -90, LatMax: 90, Compass: config.West},
		},
		Tuning: config.IdentityTuningProfile(),
	}
}

func buildAll(t *testing.T) (*mesh.CellMesh, terrain.ElevationField, biome.Field, hydrology.Field, config.Config) {
	t.Helper()
	cfg := testConfig()
	m := mesh.Build(cfg)
	elev, err := terrain.Shape(m, cfg)
	require.NoError(t, err)
	clim := climate.Compute(m, elev, cfg)
	hydro := hydrology.Compute(m, elev, clim, cfg)
	bio := biome.Compute(m, elev, clim, hydro, cfg)
	return m, elev, bio, hydro, cfg
}

func TestEveryLandNonLakeCellHasFullHierarchy(t *testing.T) {
	m, elev, bio, hydro, cfg := buildAll(t)
	f := Compute(m, elev, bio, hydro, cfg)

	for i := 0; i < m.CellCount; i++ {
		if elev.SignedM[i] > 0 && !bio.IsLakeCell[i] {
			assert.NotZerof(t, f.CultureID[i], "cell %d missing culture", i)
			assert.NotZerof(t, f.RealmID[i], "cell %d missing realm", i)
			assert.NotZerof(t, f.ProvinceID[i], "cell %d missing province", i)
			assert.NotZerof(t, f.CountyID[i], "cell %d missing county", i)
		} else {
			assert.Zerof(t, f.CultureID[i], "water cell %d should have no culture", i)
		}
	}
}

func TestRealmCountEqualsCultureCount(t *testing.T) {
	m, elev, bio, hydro, cfg := buildAll(t)
	f := Compute(m, elev, bio, hydro, cfg)

	cultures := map[int]bool{}
	realms := map[int]bool{}
	for i := 0; i < m.CellCount; i++ {
		if f.CultureID[i] > 0 {
			cultures[f.CultureID[i]] = true
			realms[f.RealmID[i]] = true
		}
	}
	assert.Equal(t, len(cultures), len(realms))
}

func TestCountyIDsAreContiguous(t *testing.T) {
	m, elev, bio, hydro, cfg := buildAll(t)
	f := Compute(m, elev, bio, hydro, cfg)

	seen := map[int]bool{}
	maxID := 0
	for i := 0; i < m.CellCount; i++ {
		if f.CountyID[i] > 0 {
			seen[f.CountyID[i]] = true
			if f.CountyID[i] > maxID {
				maxID = f.CountyID[i]
			}
		}
	}
	for id := 1; id <= maxID; id++ {
		assert.Truef(t, seen[id], "county id %d missing, not contiguous", id)
	}
}
