package orchestrator

import (
	"context"
	"sort"

	"worldforge/internal/worldgen/config"
)

// ComparisonMetrics summarizes the differences between two generated worlds,
// for regression-testing a config or template change.
type ComparisonMetrics struct {
	LandRatioA, LandRatioB           float64
	EdgeLandRatioA, EdgeLandRatioB   float64
	CoastEdgeRatioA, CoastEdgeRatioB float64

	ElevationP50A, ElevationP50B float64
	ElevationP90A, ElevationP90B float64

	RiverCountA, RiverCountB       int
	RiverCoverageA, RiverCoverageB float64

	RealmCountA, RealmCountB   int
	CountyCountA, CountyCountB int

	BiomeCountsA, BiomeCountsB map[config.BiomeID]int
	BiomeOverlap               float64 // fraction of cells sharing the same BiomeID, A vs B
}

// Compare runs two full generations from cfgA and cfgB and reports how
// their outputs differ. It is meant for regression-testing a config or
// template edit against a known-good baseline, not for production use.
func Compare(ctx context.Context, cfgA, cfgB config.Config) (ComparisonMetrics, error) {
	worldA, err := Generate(ctx, cfgA)
	if err != nil {
		return ComparisonMetrics{}, err
	}
	worldB, err := Generate(ctx, cfgB)
	if err != nil {
		return ComparisonMetrics{}, err
	}

	m := ComparisonMetrics{
		LandRatioA: worldA.Elevation.LandRatio(),
		LandRatioB: worldB.Elevation.LandRatio(),

		EdgeLandRatioA: edgeLandRatio(worldA),
		EdgeLandRatioB: edgeLandRatio(worldB),

		CoastEdgeRatioA: coastEdgeRatio(worldA),
		CoastEdgeRatioB: coastEdgeRatio(worldB),

		RiverCountA: len(worldA.Hydrology.Rivers),
		RiverCountB: len(worldB.Hydrology.Rivers),

		RiverCoverageA: riverCoverage(worldA),
		RiverCoverageB: riverCoverage(worldB),

		RealmCountA: countDistinctPositive(worldA.Political.RealmID),
		RealmCountB: countDistinctPositive(worldB.Political.RealmID),

		CountyCountA: countDistinctPositive(worldA.Political.CountyID),
		CountyCountB: countDistinctPositive(worldB.Political.CountyID),

		BiomeCountsA: biomeCounts(worldA),
		BiomeCountsB: biomeCounts(worldB),
	}

	m.ElevationP50A, m.ElevationP90A = elevationPercentiles(worldA)
	m.ElevationP50B, m.ElevationP90B = elevationPercentiles(worldB)

	if worldA.Mesh.CellCount == worldB.Mesh.CellCount {
		m.BiomeOverlap = biomeOverlap(worldA, worldB)
	}

	return m, nil
}

func edgeLandRatio(w *World) float64 {
	land, total := 0, 0
	for i, boundary := range w.Mesh.IsBoundary {
		if !boundary {
			continue
		}
		total++
		if w.Elevation.SignedM[i] > 0 {
			land++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(land) / float64(total)
}

func coastEdgeRatio(w *World) float64 {
	coastEdges, total := 0, 0
	for _, pair := range w.Mesh.EdgeCells {
		a, b := pair[0], pair[1]
		if a < 0 || b < 0 {
			continue
		}
		total++
		landA := w.Elevation.SignedM[a] > 0
		landB := w.Elevation.SignedM[b] > 0
		if landA != landB {
			coastEdges++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(coastEdges) / float64(total)
}

func riverCoverage(w *World) float64 {
	if len(w.Hydrology.Rivers) == 0 {
		return 0
	}
	vertices := 0
	for _, r := range w.Hydrology.Rivers {
		vertices += len(r.Vertices)
	}
	if len(w.Mesh.VertexPos) == 0 {
		return 0
	}
	return float64(vertices) / float64(len(w.Mesh.VertexPos))
}

func elevationPercentiles(w *World) (p50, p90 float64) {
	vals := append([]float64{}, w.Elevation.SignedM...)
	sort.Float64s(vals)
	if len(vals) == 0 {
		return 0, 0
	}
	p50 = vals[int(0.50*float64(len(vals)-1))]
	p90 = vals[int(0.90*float64(len(vals)-1))]
	return p50, p90
}

func countDistinctPositive(ids []int) int {
	seen := map[int]bool{}
	for _, id := range ids {
		if id > 0 {
			seen[id] = true
		}
	}
	return len(seen)
}

func biomeCounts(w *World) map[config.BiomeID]int {
	counts := make(map[config.BiomeID]int)
	for _, b := range w.Biome.BiomeID {
		counts[b]++
	}
	return counts
}

func biomeOverlap(a, b *World) float64 {
	if len(a.Biome.BiomeID) != len(b.Biome.BiomeID) || len(a.Biome.BiomeID) == 0 {
		return 0
	}
	same := 0
	for i := range a.Biome.BiomeID {
		if a.Biome.BiomeID[i] == b.Biome.BiomeID[i] {
			same++
		}
	}
	return float64(same) / float64(len(a.Biome.BiomeID))
}
