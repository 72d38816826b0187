package political

import (
	"math"
	"sort"

	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
)

// deriveRealms tallies per-county culture votes and stamps the majority
// culture as realm id for every cell in that county.
func deriveRealms(m *mesh.CellMesh, countyID, cultureID []int, countyCount int) (realmID []int, countyRealm []int) {
	votes := make([]map[int]int, countyCount+1)
	for i := 0; i < m.CellCount; i++ {
		cid := countyID[i]
		if cid == 0 {
			continue
		}
		if votes[cid] == nil {
			votes[cid] = make(map[int]int)
		}
		votes[cid][cultureID[i]]++
	}

	countyRealm = make([]int, countyCount+1)
	for cid := 1; cid <= countyCount; cid++ {
		best, bestVotes := 0, -1
		for culture, n := range votes[cid] {
			if n > bestVotes || (n == bestVotes && culture < best) {
				bestVotes = n
				best = culture
			}
		}
		countyRealm[cid] = best
	}

	realmID = make([]int, m.CellCount)
	for i := 0; i < m.CellCount; i++ {
		if countyID[i] > 0 {
			realmID[i] = countyRealm[countyID[i]]
		}
	}
	return realmID, countyRealm
}

// countyGraph is the county-adjacency graph: two counties are adjacent
// iff any pair of their cells are mesh neighbours.
type countyGraph struct {
	adjacency [][]int
	seat      []int // county id -> seat cell index
	area      []float64
	pop       []float64
	cellCount []int
}

func buildCountyGraph(m *mesh.CellMesh, countyID []int, seats []int, bio biome.Field, countyCount int) *countyGraph {
	g := &countyGraph{
		adjacency: make([][]int, countyCount+1),
		seat:      make([]int, countyCount+1),
		area:      make([]float64, countyCount+1),
		pop:       make([]float64, countyCount+1),
		cellCount: make([]int, countyCount+1),
	}
	for i := 1; i <= countyCount && i-1 < len(seats); i++ {
		g.seat[i] = seats[i-1]
	}
	seen := make(map[[2]int]bool)
	for i := 0; i < m.CellCount; i++ {
		cid := countyID[i]
		if cid == 0 {
			continue
		}
		g.area[cid] += m.AreaKm2[i]
		g.pop[cid] += bio.Population[i]
		g.cellCount[cid]++
		for _, nb := range m.Neighbor[i] {
			if nb < 0 {
				continue
			}
			ocid := countyID[nb]
			if ocid == 0 || ocid == cid {
				continue
			}
			key := canonPair(cid, ocid)
			if seen[key] {
				continue
			}
			seen[key] = true
			g.adjacency[cid] = append(g.adjacency[cid], ocid)
			g.adjacency[ocid] = append(g.adjacency[ocid], cid)
		}
	}
	return g
}

func (g *countyGraph) edgeCost(m *mesh.CellMesh, bio biome.Field) func(a, b int) float64 {
	return func(a, b int) float64 {
		sa, sb := g.seat[a], g.seat[b]
		return cellDist(m, sa, sb) * 0.5 * (bio.MovementCost[sa] + bio.MovementCost[sb])
	}
}

// partitionProvinces runs a per-realm province partition on the
// county-adjacency graph, via competitive weighted Dijkstra restricted
// to each realm's counties, with Euclidean nearest-seat fallback for any
// county the Dijkstra never reaches.
func partitionProvinces(m *mesh.CellMesh, g *countyGraph, countyRealm []int, countyCount int, bio biome.Field, cfg config.Config) (countyProvince []int) {
	countyProvince = make([]int, countyCount+1)

	realms := make(map[int][]int)
	for cid := 1; cid <= countyCount; cid++ {
		realms[countyRealm[cid]] = append(realms[countyRealm[cid]], cid)
	}

	cost := g.edgeCost(m, bio)
	nextID := 1
	// realms is a map, so ranging it directly would hand out a different
	// nextID block to the same realm on every run; visit realm ids in
	// ascending order so province id assignment is stable.
	realmIDs := make([]int, 0, len(realms))
	for rid := range realms {
		realmIDs = append(realmIDs, rid)
	}
	sort.Ints(realmIDs)
	for _, rid := range realmIDs {
		realmCounties := realms[rid]
		realmCells := 0
		for _, cid := range realmCounties {
			realmCells += g.cellCount[cid]
		}
		target := clampInt(int(math.Round(float64(realmCells)/450*cfg.Tuning.ProvinceTargetScale)), 1, 18)

		inRealm := make(map[int]bool, len(realmCounties))
		for _, cid := range realmCounties {
			inRealm[cid] = true
		}
		totalArea := 0.0
		for _, cid := range realmCounties {
			totalArea += g.area[cid]
		}
		spacing := 0.25 * math.Sqrt(totalArea/float64(target))

		score := func(cid int) float64 { return g.pop[cid] }
		seedsBySeat := farthestPointSeedCounty(m, g, realmCounties, score, target, spacing)

		owner := make([]int, countyCount+1)
		reach := make([]float64, countyCount+1)
		for i := range owner {
			owner[i] = -1
			reach[i] = math.Inf(1)
		}
		h := newPriorityQueue()
		for k, seed := range seedsBySeat {
			owner[seed] = k
			reach[seed] = 0
			h.push(0, seed, k)
		}
		for h.Len() > 0 {
			item := h.pop()
			cur, k, d := item.id, item.payload, item.key
			if d > reach[cur]+tieEpsilon || owner[cur] != k {
				continue
			}
			for _, nb := range g.adjacency[cur] {
				if !inRealm[nb] {
					continue
				}
				nd := d + cost(cur, nb)
				if nd < reach[nb]-tieEpsilon || (math.Abs(nd-reach[nb]) <= tieEpsilon && k < owner[nb]) {
					reach[nb] = math.Min(reach[nb], nd)
					owner[nb] = k
					h.push(nd, nb, k)
				}
			}
		}
		for _, cid := range realmCounties {
			if owner[cid] != -1 {
				continue
			}
			best, bestD := -1, math.Inf(1)
			for k, seed := range seedsBySeat {
				d := cellDist(m, g.seat[cid], g.seat[seed])
				if d < bestD {
					bestD = d
					best = k
				}
			}
			owner[cid] = best
		}

		for _, cid := range realmCounties {
			countyProvince[cid] = nextID + owner[cid]
		}
		nextID += target
	}
	return countyProvince
}

func farthestPointSeedCounty(m *mesh.CellMesh, g *countyGraph, candidates []int, score func(int) float64, target int, minSpacing float64) []int {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}
	ranked := append([]int{}, candidates...)
	sortByScoreDesc(ranked, score)

	countySeatDist := func(a, b int) float64 { return cellDist(m, g.seat[a], g.seat[b]) }

	var seeds []int
	accepted := make(map[int]bool)
	for _, c := range ranked {
		if len(seeds) >= target {
			break
		}
		ok := true
		for _, s := range seeds {
			if countySeatDist(c, s) < minSpacing {
				ok = false
				break
			}
		}
		if ok {
			seeds = append(seeds, c)
			accepted[c] = true
		}
	}
	if len(seeds) < target {
		for _, c := range ranked {
			if len(seeds) >= target {
				break
			}
			if accepted[c] {
				continue
			}
			seeds = append(seeds, c)
			accepted[c] = true
		}
	}
	return seeds
}

func sortByScoreDesc(ids []int, score func(int) float64) {
	for i := 1; i < len(ids); i++ {
		j := i
		for j > 0 && score(ids[j-1]) < score(ids[j]) {
			ids[j-1], ids[j] = ids[j], ids[j-1]
			j--
		}
	}
}
