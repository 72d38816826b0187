// Package orchestrator exposes the four public entry points of the world
// generation pipeline: Generate, GetTemplate, ExecuteDSL and Compare. It
// wires the six stage packages together in their fixed order and layers
// the ambient logging/metrics concerns around each stage.
package orchestrator

import (
	"context"
	"time"

	"worldforge/internal/logging"
	"worldforge/internal/metrics"
	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/climate"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/hydrology"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/political"
	"worldforge/internal/worldgen/rng"
	"worldforge/internal/worldgen/terrain"
)

// GenerationMetadata is the envelope every generated world carries: when it
// ran, under what run id, and how long each stage took.
type GenerationMetadata struct {
	RunID       string
	GeneratedAt time.Time
	StageElapse map[string]time.Duration
}

// World is the assembled output of a full Generate call: one field per
// pipeline stage, plus the metadata envelope.
type World struct {
	Config     config.Config
	Mesh       *mesh.CellMesh
	Elevation  terrain.ElevationField
	Climate    climate.Field
	Hydrology  hydrology.Field
	Biome      biome.Field
	Political  political.Field
	Metadata   GenerationMetadata
}

// Generate runs the seven-stage pipeline end to end: mesh, terrain shaping,
// land-ratio homeostasis (both inside terrain.Shape), climate, hydrography,
// biome classification and the political hierarchy,
// in that fixed order. It is deterministic in cfg.Seed and every other
// Config field.
func Generate(ctx context.Context, cfg config.Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx = logging.WithRun(ctx, cfg.Seed)
	logger := logging.FromContext(ctx)
	logger.Info().Str("template", cfg.Template.String()).Int("cell_count", cfg.CellCount).Msg("generation started")

	elapsed := make(map[string]time.Duration)
	timeStage := func(stage string, fn func()) {
		start := time.Now()
		done := logging.StageTimer(ctx, stage)
		fn()
		done()
		d := time.Since(start)
		elapsed[stage] = d
		metrics.RecordStageDuration(stage, d)
	}

	var m *mesh.CellMesh
	timeStage("mesh", func() {
		m = mesh.Build(cfg)
	})

	var elev terrain.ElevationField
	var shapeErr error
	timeStage("terrain", func() {
		elev, shapeErr = terrain.Shape(m, cfg)
	})
	if shapeErr != nil {
		return nil, shapeErr
	}

	var clim climate.Field
	timeStage("climate", func() {
		clim = climate.Compute(m, elev, cfg)
	})

	var hydro hydrology.Field
	timeStage("hydrology", func() {
		hydro = hydrology.Compute(m, elev, clim, cfg)
	})

	var bio biome.Field
	timeStage("biome", func() {
		bio = biome.Compute(m, elev, clim, hydro, cfg)
	})

	var pol political.Field
	timeStage("political", func() {
		pol = political.Compute(m, elev, bio, hydro, cfg)
	})

	metrics.RecordRun()
	logger.Info().Msg("generation completed")

	return &World{
		Config:    cfg,
		Mesh:      m,
		Elevation: elev,
		Climate:   clim,
		Hydrology: hydro,
		Biome:     bio,
		Political: pol,
		Metadata: GenerationMetadata{
			RunID:       logging.RunID(ctx),
			GeneratedAt: time.Now(),
			StageElapse: elapsed,
		},
	}, nil
}

// GetTemplate returns the built-in elevation-shaping DSL script for a
// template id, the same script Generate runs for that template.
func GetTemplate(id config.TemplateID) string {
	return terrain.GetTemplate(id)
}

// ExecuteDSL runs a terrain-shaping script against a mesh under a given
// seed and returns the resulting elevation field, without running the
// rest of the pipeline. It is the sandbox entry point template authors use
// to iterate on a script before wiring it into a Config.
func ExecuteDSL(m *mesh.CellMesh, script string, cfg config.Config, seed int64) (terrain.ElevationField, error) {
	f := terrain.NewField(m, cfg)
	r := rng.New(seed, rng.SaltElevation)
	if err := terrain.ExecuteDSL(f, script, r); err != nil {
		return terrain.ElevationField{}, err
	}
	minLand, maxLand := cfg.Template.LandBand()
	terrain.ApplyHomeostasis(f, minLand, maxLand)
	return f.Freeze(), nil
}
