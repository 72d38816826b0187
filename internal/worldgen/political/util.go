package political

import (
	"math"
	"sort"

	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/mesh"
)

func landNonLakeMask(m *mesh.CellMesh, elevPositive []bool, bio biome.Field) []bool {
	out := make([]bool, m.CellCount)
	for i := 0; i < m.CellCount; i++ {
		out[i] = elevPositive[i] && !bio.IsLakeCell[i]
	}
	return out
}

// farthestPointSeed ranks candidates by score descending and greedily
// accepts any candidate at least minSpacing away (Euclidean, by cell
// center) from every previously accepted seed; if fewer than target are
// accepted in one pass, tops up from the same ranked list in order.
func farthestPointSeed(m *mesh.CellMesh, candidates []int, score func(int) float64, target int, minSpacing float64) []int {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}
	ranked := append([]int{}, candidates...)
	sort.SliceStable(ranked, func(i, j int) bool { return score(ranked[i]) > score(ranked[j]) })

	var seeds []int
	accepted := make(map[int]bool)
	for _, c := range ranked {
		if len(seeds) >= target {
			break
		}
		ok := true
		for _, s := range seeds {
			if cellDist(m, c, s) < minSpacing {
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

func cellDist(m *mesh.CellMesh, a, b int) float64 {
	pa, pb := m.Center[a], m.Center[b]
	dx, dy := pa.X-pb.X, pa.Y-pb.Y
	return math.Sqrt(dx*dx + dy*dy)
}

const tieEpsilon = 1e-4

// competitiveDijkstra floods from each of seeds[owner]=cell over domain
// cells (restricted to the allowed set), assigning the cheapest-reaching
// owner id to every reached cell. Ties within tieEpsilon favor the lower
// owner id. edgeCost returns the cell-to-cell edge cost, or +Inf to
// forbid crossing.
func competitiveDijkstra(m *mesh.CellMesh, seeds []int, allowed []bool, edgeCost func(a, b int) float64) (owner []int, dist []float64) {
	owner = make([]int, m.CellCount)
	dist = make([]float64, m.CellCount)
	for i := range owner {
		owner[i] = -1
		dist[i] = math.Inf(1)
	}

	h := newPriorityQueue()
	for ownerID, seed := range seeds {
		if seed < 0 {
			continue
		}
		dist[seed] = 0
		owner[seed] = ownerID
		h.push(0, seed, ownerID)
	}

	for h.Len() > 0 {
		item := h.pop()
		cur, ownerID, cost := item.id, item.payload, item.key
		if cost > dist[cur]+tieEpsilon {
			continue
		}
		for _, nb := range m.Neighbor[cur] {
			if nb < 0 || !allowed[nb] {
				continue
			}
			ec := edgeCost(cur, nb)
			if math.IsInf(ec, 1) {
				continue
			}
			nd := cost + ec
			if nd < dist[nb]-tieEpsilon || (math.Abs(nd-dist[nb]) <= tieEpsilon && ownerID < owner[nb]) {
				if nd < dist[nb] {
					dist[nb] = nd
				}
				owner[nb] = ownerID
				h.push(nd, nb, ownerID)
			}
		}
	}
	return owner, dist
}

// nearestSeedFallback assigns any allowed, unowned cell to the nearest
// seed by Euclidean distance, for disconnected components Dijkstra never
// reached.
func nearestSeedFallback(m *mesh.CellMesh, owner []int, allowed []bool, seeds []int) {
	for i := 0; i < m.CellCount; i++ {
		if !allowed[i] || owner[i] != -1 {
			continue
		}
		best, bestD := -1, math.Inf(1)
		for ownerID, seed := range seeds {
			if seed < 0 {
				continue
			}
			d := cellDist(m, i, seed)
			if d < bestD {
				bestD = d
				best = ownerID
			}
		}
		owner[i] = best
	}
}
