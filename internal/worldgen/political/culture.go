package political

import (
	"math"

	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
)

type landmassStats struct {
	cellCount  int
	population float64
	cells      []int
}

func collectLandmassStats(landmassID []int, count int, bio biome.Field) []landmassStats {
	stats := make([]landmassStats, count+1) // 1-based
	for i, id := range landmassID {
		if id <= 0 {
			continue
		}
		stats[id].cellCount++
		stats[id].population += bio.Population[i]
		stats[id].cells = append(stats[id].cells, i)
	}
	return stats
}

func eligibleLandmasses(stats []landmassStats, cfg config.Config) []int {
	totalPop := 0.0
	for _, s := range stats {
		totalPop += s.population
	}
	var eligible []int
	for id := 1; id < len(stats); id++ {
		s := stats[id]
		minCells := float64(cfg.MinRealmCells) * cfg.Tuning.MinRealmCellsMul
		minPopFrac := cfg.MinRealmPopulationFraction * cfg.Tuning.MinRealmPopulationFractionMul
		if float64(s.cellCount) >= minCells && s.population >= minPopFrac*totalPop {
			eligible = append(eligible, id)
		}
	}
	if len(eligible) == 0 {
		best, bestScore := -1, -1.0
		for id := 1; id < len(stats); id++ {
			score := stats[id].population
			if score > bestScore || (score == bestScore && stats[id].cellCount > stats[best].cellCount) {
				bestScore = score
				best = id
			}
		}
		if best != -1 {
			eligible = []int{best}
		}
	}
	return eligible
}

type cultureResult struct {
	cultureID []int
	capitals  []int
	count     int
}

func spreadCultures(m *mesh.CellMesh, bio biome.Field, landmassID []int, landmassCount int, isLandNonLake []bool, tm *transportModel, cfg config.Config) cultureResult {
	stats := collectLandmassStats(landmassID, landmassCount, bio)
	eligible := eligibleLandmasses(stats, cfg)

	eligibleCells := 0
	var candidates []int
	eligibleSet := make(map[int]bool)
	for _, id := range eligible {
		eligibleSet[id] = true
		eligibleCells += stats[id].cellCount
		candidates = append(candidates, stats[id].cells...)
	}

	target := int(math.Round(float64(eligibleCells) / 900 * cfg.Tuning.CultureTargetScale))
	target = clampInt(target, 1, 24)

	totalArea := 0.0
	for i := 0; i < m.CellCount; i++ {
		if isLandNonLake[i] {
			totalArea += m.AreaKm2[i]
		}
	}
	minSpacing := math.Sqrt(totalArea/float64(target)) * 0.35

	score := func(c int) float64 { return bio.Suitability[c] + 0.02*bio.Population[c] }
	capitals := farthestPointSeed(m, candidates, score, target, minSpacing)

	covered := make(map[int]bool)
	for _, c := range capitals {
		covered[landmassID[c]] = true
	}
	for _, id := range eligible {
		if covered[id] {
			continue
		}
		best, bestScore := -1, -1.0
		for _, c := range stats[id].cells {
			s := score(c)
			if s > bestScore {
				bestScore = s
				best = c
			}
		}
		if best != -1 {
			capitals = append(capitals, best)
		}
	}

	owner, _ := competitiveDijkstra(m, capitals, isLandNonLake, tm.edgeCost)
	nearestSeedFallback(m, owner, isLandNonLake, capitals)

	cultureID := make([]int, m.CellCount)
	for i := 0; i < m.CellCount; i++ {
		if isLandNonLake[i] && owner[i] >= 0 {
			cultureID[i] = owner[i] + 1
		}
	}
	return cultureResult{cultureID: cultureID, capitals: capitals, count: len(capitals)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
