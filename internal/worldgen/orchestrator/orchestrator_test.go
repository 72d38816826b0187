package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
)

func testConfig() config.Config {
	return config.Config{
		Seed:                       42,
		CellCount:                  500,
		Aspect:                     1.5,
		CellSizeKm:                 3,
		Template:                   config.TemplateContinents,
		LatitudeSouth:              20,
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

func TestGenerateRunsAllStages(t *testing.T) {
	world, err := Generate(context.Background(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, 486, world.Mesh.CellCount)
	assert.Len(t, world.Elevation.SignedM, 486)
	assert.Len(t, world.Climate.TemperatureC, 486)
	assert.Len(t, world.Biome.BiomeID, 486)
	assert.Len(t, world.Political.CultureID, 486)
	assert.NotEmpty(t, world.Metadata.RunID)
	assert.Contains(t, world.Metadata.StageElapse, "political")
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.CellCount = 0

	_, err := Generate(context.Background(), cfg)
	assert.Error(t, err)
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := testConfig()
	a, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Elevation.SignedM, b.Elevation.SignedM)
	assert.Equal(t, a.Mesh.VertexPos, b.Mesh.VertexPos)
	assert.Equal(t, a.Mesh.VertexNeighbors, b.Mesh.VertexNeighbors)
	assert.Equal(t, a.Mesh.EdgeEndpoints, b.Mesh.EdgeEndpoints)
	assert.Equal(t, a.Hydrology.Rivers, b.Hydrology.Rivers)
	assert.Equal(t, a.Political.CountyID, b.Political.CountyID)
	assert.Equal(t, a.Political.ProvinceID, b.Political.ProvinceID)
}

// multiRealmConfig uses a larger cell count with a relaxed realm floor and
// an inflated county target so culture spreading produces several realms
// and county formation produces enough undersized counties to force the
// orphan-merge path in the same run.
func multiRealmConfig() config.Config {
	cfg := testConfig()
	cfg.CellCount = 3000
	cfg.MinRealmCells = 5
	cfg.MinRealmPopulationFraction = 0.01
	cfg.Tuning.CountyTargetScale = 4
	cfg.Tuning.CultureTargetScale = 3
	return cfg
}

func TestGenerateIsDeterministicAcrossRealmsAndOrphanMerge(t *testing.T) {
	cfg := multiRealmConfig()
	a, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	require.Greater(t, a.Political.LandmassCount, 0)
	realmCount := 0
	for _, r := range a.Political.RealmID {
		if r > realmCount {
			realmCount = r
		}
	}
	require.Greater(t, realmCount, 1, "test config should produce more than one realm")

	assert.Equal(t, a.Mesh.VertexPos, b.Mesh.VertexPos)
	assert.Equal(t, a.Mesh.VertexNeighbors, b.Mesh.VertexNeighbors)
	assert.Equal(t, a.Mesh.EdgeEndpoints, b.Mesh.EdgeEndpoints)
	assert.Equal(t, a.Mesh.EdgeCells, b.Mesh.EdgeCells)
	assert.Equal(t, a.Hydrology.Rivers, b.Hydrology.Rivers)
	assert.Equal(t, a.Political.CountyID, b.Political.CountyID)
	assert.Equal(t, a.Political.RealmID, b.Political.RealmID)
	assert.Equal(t, a.Political.ProvinceID, b.Political.ProvinceID)
}

func TestGetTemplateReturnsNonEmptyScript(t *testing.T) {
	script := GetTemplate(config.TemplateArchipelago)
	assert.NotEmpty(t, script)
}

func TestExecuteDSLRunsAgainstAnArbitraryMesh(t *testing.T) {
	cfg := testConfig()
	m := mesh.Build(cfg)

	field, err := ExecuteDSL(m, "Hill 1 30% 50% 50%", cfg, cfg.Seed)
	require.NoError(t, err)
	assert.Len(t, field.SignedM, m.CellCount)
}

func TestCompareReportsMetricsForBothWorlds(t *testing.T) {
	cfgA := testConfig()
	cfgB := testConfig()
	cfgB.Template = config.TemplatePangea

	metrics, err := Compare(context.Background(), cfgA, cfgB)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, metrics.LandRatioA, 0.0)
	assert.GreaterOrEqual(t, metrics.LandRatioB, 0.0)
	assert.NotNil(t, metrics.BiomeCountsA)
	assert.NotNil(t, metrics.BiomeCountsB)
}
