// Package political implements the culture/realm/province/county
// hierarchy: landmass detection, culture spreading by competitive
// Dijkstra, global population-balanced county formation, realm
// derivation by majority vote, and province partition on the
// county-adjacency graph.
package political

import (
	"math"

	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/hydrology"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

// Field is the public output of stage 7.
type Field struct {
	LandmassID    []int
	LandmassCount int

	CultureID  []int
	RealmID    []int
	ProvinceID []int
	CountyID   []int

	Capitals    []int
	CountySeats []int
}

// Compute runs the full bottom-up political pipeline: cultures spread
// first, counties form globally, realms derive from county-level culture
// majority, and provinces are drawn per-realm on the county graph. Realms
// and provinces are always derived from settled counties, never assigned
// top-down ahead of them.
func Compute(m *mesh.CellMesh, elev terrain.ElevationField, bio biome.Field, hydro hydrology.Field, cfg config.Config) Field {
	isLand := make([]bool, m.CellCount)
	for i, v := range elev.SignedM {
		isLand[i] = v > 0
	}
	isLandNonLake := landNonLakeMask(m, isLand, bio)

	landmassID, landmassCount := detectLandmasses(m, bio, isLand)

	trace, major, _ := effectiveRiverThresholds(cfg)
	tm := newTransportModel(m, bio, hydro, trace, major)

	culture := spreadCultures(m, bio, landmassID, landmassCount, isLandNonLake, tm, cfg)
	countyID, seats := formCounties(m, bio, isLandNonLake, culture.cultureID, tm, cfg)

	countyCount := 0
	for _, c := range countyID {
		if c > countyCount {
			countyCount = c
		}
	}

	realmID, countyRealm := deriveRealms(m, countyID, culture.cultureID, countyCount)
	graph := buildCountyGraph(m, countyID, seats, bio, countyCount)
	countyProvince := partitionProvinces(m, graph, countyRealm, countyCount, bio, cfg)

	provinceID := make([]int, m.CellCount)
	for i := 0; i < m.CellCount; i++ {
		if countyID[i] > 0 {
			provinceID[i] = countyProvince[countyID[i]]
		}
	}

	return Field{
		LandmassID:    landmassID,
		LandmassCount: landmassCount,
		CultureID:     culture.cultureID,
		RealmID:       realmID,
		ProvinceID:    provinceID,
		CountyID:      countyID,
		Capitals:      culture.capitals,
		CountySeats:   seats,
	}
}

func effectiveRiverThresholds(cfg config.Config) (trace, major float64, minVerts int) {
	scale := math.Sqrt(float64(cfg.CellCount) / 5000)
	trace = cfg.RiverTraceThresholdBase * scale * cfg.Tuning.RiverTraceThresholdMul
	major = cfg.RiverTraceThresholdBase * cfg.RiverMajorMultiplier * scale * cfg.Tuning.RiverMajorThresholdMul
	if major <= trace {
		major = trace * 8
	}
	minVerts = cfg.MinRiverVertices
	return
}
