package political

import (
	"math"

	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/hydrology"
	"worldforge/internal/worldgen/mesh"
)

// transportModel precomputes the scalars the per-edge transport cost
// formula needs so every Dijkstra expansion can call edgeCost in O(1).
type transportModel struct {
	m                      *mesh.CellMesh
	movementCost           []float64
	nominalNeighborDistKm  float64
	edgeFluxOfPair         map[[2]int]float64
	traceThreshold         float64
	majorThreshold         float64
}

func newTransportModel(m *mesh.CellMesh, bio biome.Field, hydro hydrology.Field, traceThreshold, majorThreshold float64) *transportModel {
	tm := &transportModel{
		m:              m,
		movementCost:   bio.MovementCost,
		edgeFluxOfPair: make(map[[2]int]float64, len(m.EdgeEndpoints)),
		traceThreshold: traceThreshold,
		majorThreshold: majorThreshold,
	}

	for ei, cells := range m.EdgeCells {
		if cells[1] < 0 {
			continue
		}
		tm.edgeFluxOfPair[canonPair(cells[0], cells[1])] = hydro.EdgeFlux[ei]
	}

	var sum float64
	var count int
	for a := 0; a < m.CellCount; a++ {
		for _, b := range m.Neighbor[a] {
			if b < 0 || b < a {
				continue
			}
			sum += dist(m, a, b)
			count++
		}
	}
	if count > 0 {
		tm.nominalNeighborDistKm = sum / float64(count)
	} else {
		tm.nominalNeighborDistKm = 1
	}
	return tm
}

func canonPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func dist(m *mesh.CellMesh, a, b int) float64 {
	pa, pb := m.Center[a], m.Center[b]
	dx, dy := pa.X-pb.X, pa.Y-pb.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// edgeCost is the cell-level transport edge cost.
func (tm *transportModel) edgeCost(a, b int) float64 {
	ma := math.Max(1, tm.movementCost[a])
	mb := math.Max(1, tm.movementCost[b])
	base := 0.5 * (ma + mb)
	d := dist(tm.m, a, b)
	factor := clamp(d/tm.nominalNeighborDistKm, 0.5, 2.5)

	flux := tm.edgeFluxOfPair[canonPair(a, b)]
	penalty := 0.0
	if flux > tm.traceThreshold {
		t := clamp((flux-tm.traceThreshold)/(tm.majorThreshold-tm.traceThreshold), 0, 1)
		nominalMovement := clamp(base, 5, 120)
		penalty = 0.15*nominalMovement + 0.65*nominalMovement*t
	}
	return base*factor + penalty
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
