package hydrology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/worldgen/climate"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

func testConfig() config.Config {
	return config.Config{
		Seed:                    12345,
		CellCount:               600,
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

func buildFields(t *testing.T) (*mesh.CellMesh, terrain.ElevationField, climate.Field, config.Config) {
	t.Helper()
	cfg := testConfig()
	m := mesh.Build(cfg)
	elev, err := terrain.Shape(m, cfg)
	require.NoError(t, err)
	clim := climate.Compute(m, elev, cfg)
	return m, elev, clim, cfg
}

func TestComputeFluxIsMonotoneNonNegative(t *testing.T) {
	m, elev, clim, cfg := buildFields(t)
	f := Compute(m, elev, clim, cfg)

	for v := range f.VertexFlux {
		if f.IsOcean(v) {
			continue
		}
		assert.GreaterOrEqualf(t, f.VertexFlux[v], f.VertexPrecip[v]-1e-9, "vertex %d flux below its own precip", v)
	}
}

func TestFlowTargetReachesOceanWithoutCycles(t *testing.T) {
	m, elev, clim, cfg := buildFields(t)
	f := Compute(m, elev, clim, cfg)

	for v := range f.FlowTarget {
		if f.IsOcean(v) {
			continue
		}
		cur := v
		steps := 0
		seen := map[int]bool{}
		for !f.IsOcean(cur) {
			require.Falsef(t, seen[cur], "cycle detected starting at vertex %d", v)
			seen[cur] = true
			next := f.FlowTarget[cur]
			require.GreaterOrEqualf(t, next, 0, "vertex %d has no flow target", cur)
			cur = next
			steps++
			require.LessOrEqualf(t, steps, len(f.FlowTarget), "flow did not terminate from vertex %d", v)
		}
	}
}

func TestExtractedRiversMeetMinimumLength(t *testing.T) {
	m, elev, clim, cfg := buildFields(t)
	f := Compute(m, elev, clim, cfg)

	_, _, minVerts := effectiveThresholds(cfg)
	for _, r := range f.Rivers {
		assert.GreaterOrEqual(t, len(r.Vertices), minVerts)
		assert.True(t, f.IsOcean(f.FlowTarget[r.MouthVertex]))
		assert.Equal(t, f.VertexFlux[r.MouthVertex], r.Discharge)
	}
}
