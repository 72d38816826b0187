package terrain

import (
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/rng"
)

// Shape runs the elevation DSL for cfg.Template followed by land-ratio
// homeostasis, producing the frozen ElevationField stages 4-7 read.
func Shape(m *mesh.CellMesh, cfg config.Config) (ElevationField, error) {
	f := NewField(m, cfg)
	r := rng.New(cfg.Seed, rng.SaltElevation)

	script := GetTemplate(cfg.Template)
	if err := ExecuteDSL(f, script, r); err != nil {
		return ElevationField{}, err
	}

	minLand, maxLand := cfg.Template.LandBand()
	ApplyHomeostasis(f, minLand, maxLand)

	return f.Freeze(), nil
}
