// Package hydrology fills depressions, accumulates flow, and extracts
// rivers over the mesh's vertex graph.
package hydrology

import (
	"math"
	"sort"

	"worldforge/internal/worldgen/climate"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

// River is one extracted polyline, source to mouth.
type River struct {
	ID           int
	Vertices     []int
	MouthVertex  int
	SourceVertex int
	Discharge    float64
}

// Field is the public output of stage 5.
type Field struct {
	VertexElevM     []float64
	VertexPrecip    []float64
	WaterLevelM     []float64
	VertexFlux      []float64
	FlowTarget      []int
	EdgeFlux        []float64
	Rivers          []River
}

func (f Field) IsOcean(v int) bool {
	return f.VertexElevM[v] <= 0
}

func (f Field) IsLake(v int) bool {
	return !f.IsOcean(v) && f.WaterLevelM[v]-f.VertexElevM[v] > 25
}

// Compute runs interpolation, priority-flood fill, flow accumulation,
// edge flux deposit, and river extraction.
func Compute(m *mesh.CellMesh, elev terrain.ElevationField, clim climate.Field, cfg config.Config) Field {
	nv := len(m.VertexPos)
	f := Field{
		VertexElevM:  make([]float64, nv),
		VertexPrecip: make([]float64, nv),
		WaterLevelM:  make([]float64, nv),
		VertexFlux:   make([]float64, nv),
		FlowTarget:   make([]int, nv),
		EdgeFlux:     make([]float64, len(m.EdgeEndpoints)),
	}
	interpolate(m, elev, clim, cfg, &f)
	priorityFlood(m, &f)
	flowAccumulate(m, &f)
	depositEdgeFlux(m, &f)
	f.Rivers = extractRivers(m, cfg, &f)
	return f
}

func interpolate(m *mesh.CellMesh, elev terrain.ElevationField, clim climate.Field, cfg config.Config, f *Field) {
	for v := range f.VertexElevM {
		cells := m.VertexCells[v]
		if len(cells) == 0 {
			continue
		}
		var sumElev, sumPrecip float64
		for _, c := range cells {
			sumElev += elev.SignedM[c]
			sumPrecip += clim.PrecipMmYear[c]
		}
		n := float64(len(cells))
		f.VertexElevM[v] = sumElev / n
		meanPrecip := sumPrecip / n
		if cfg.MaxAnnualPrecipMm > 0 {
			f.VertexPrecip[v] = meanPrecip / cfg.MaxAnnualPrecipMm * 100
		}
		f.WaterLevelM[v] = f.VertexElevM[v]
		f.FlowTarget[v] = -1
	}
}

func touchesBoundary(m *mesh.CellMesh, v int) bool {
	for _, c := range m.VertexCells[v] {
		if m.IsBoundary[c] {
			return true
		}
	}
	return false
}

func priorityFlood(m *mesh.CellMesh, f *Field) {
	nv := len(f.VertexElevM)
	visited := make([]bool, nv)
	h := newVertexHeap()

	for v := 0; v < nv; v++ {
		if f.IsOcean(v) {
			visited[v] = true
			continue
		}
	}
	for v := 0; v < nv; v++ {
		if visited[v] {
			continue
		}
		adjOcean := false
		for _, nb := range m.VertexNeighbors[v] {
			if f.IsOcean(nb) {
				adjOcean = true
				break
			}
		}
		if adjOcean || touchesBoundary(m, v) {
			visited[v] = true
			h.push(f.WaterLevelM[v], v)
		}
	}

	for h.Len() > 0 {
		_, cur := h.pop()
		for _, nb := range m.VertexNeighbors[cur] {
			if visited[nb] {
				continue
			}
			raised := math.Max(f.VertexElevM[nb], f.WaterLevelM[cur])
			f.WaterLevelM[nb] = raised
			if raised > f.VertexElevM[nb] {
				f.FlowTarget[nb] = cur
			}
			visited[nb] = true
			h.push(f.WaterLevelM[nb], nb)
		}
	}
}

func flowAccumulate(m *mesh.CellMesh, f *Field) {
	nv := len(f.VertexElevM)
	land := make([]int, 0, nv)
	for v := 0; v < nv; v++ {
		if !f.IsOcean(v) {
			land = append(land, v)
		}
	}
	sort.Slice(land, func(i, j int) bool {
		a, b := land[i], land[j]
		if f.WaterLevelM[a] != f.WaterLevelM[b] {
			return f.WaterLevelM[a] > f.WaterLevelM[b]
		}
		return f.VertexElevM[a] < f.VertexElevM[b]
	})

	for _, v := range land {
		f.VertexFlux[v] += f.VertexPrecip[v]
		if f.FlowTarget[v] == -1 {
			best := -1
			bestLevel := math.Inf(1)
			for _, nb := range m.VertexNeighbors[v] {
				level := f.WaterLevelM[nb]
				if f.IsOcean(nb) {
					level = f.VertexElevM[nb]
				}
				if level < bestLevel {
					bestLevel = level
					best = nb
				}
			}
			f.FlowTarget[v] = best
		}
		target := f.FlowTarget[v]
		if target >= 0 && !f.IsOcean(target) {
			f.VertexFlux[target] += f.VertexFlux[v]
		}
	}
}

func depositEdgeFlux(m *mesh.CellMesh, f *Field) {
	edgeIndex := make(map[[2]int]int, len(m.EdgeEndpoints))
	for i, ep := range m.EdgeEndpoints {
		if ep[1] < 0 {
			continue
		}
		edgeIndex[canonPair(ep[0], ep[1])] = i
	}
	for v, target := range f.FlowTarget {
		if target < 0 || f.IsOcean(v) {
			continue
		}
		if idx, ok := edgeIndex[canonPair(v, target)]; ok {
			f.EdgeFlux[idx] += f.VertexFlux[v]
		}
	}
}

func canonPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func effectiveThresholds(cfg config.Config) (trace, major float64, minVerts int) {
	scale := math.Sqrt(float64(cfg.CellCount) / 5000)
	trace = cfg.RiverTraceThresholdBase * scale * cfg.Tuning.RiverTraceThresholdMul
	major = cfg.RiverTraceThresholdBase * cfg.RiverMajorMultiplier * scale * cfg.Tuning.RiverMajorThresholdMul
	minVerts = int(float64(cfg.MinRiverVertices) * cfg.Tuning.MinRiverVerticesMul)
	if minVerts < 1 {
		minVerts = 1
	}
	return
}

func extractRivers(m *mesh.CellMesh, cfg config.Config, f *Field) []River {
	trace, _, minVerts := effectiveThresholds(cfg)
	nv := len(f.VertexElevM)

	inflows := make([][]int, nv)
	for v, target := range f.FlowTarget {
		if target >= 0 {
			inflows[target] = append(inflows[target], v)
		}
	}

	var mouths []int
	for v := 0; v < nv; v++ {
		if !f.IsOcean(v) && f.FlowTarget[v] >= 0 && f.IsOcean(f.FlowTarget[v]) && f.VertexFlux[v] >= trace {
			mouths = append(mouths, v)
		}
	}
	sort.Slice(mouths, func(i, j int) bool { return f.VertexFlux[mouths[i]] > f.VertexFlux[mouths[j]] })

	claimed := make([]bool, nv)
	var rivers []River
	nextID := 1

	traceUpstream := func(mouth int) []int {
		path := []int{mouth}
		cur := mouth
		for {
			var best int = -1
			bestFlux := trace
			for _, in := range inflows[cur] {
				if claimed[in] {
					continue
				}
				if f.VertexFlux[in] >= bestFlux {
					bestFlux = f.VertexFlux[in]
					best = in
				}
			}
			if best == -1 {
				break
			}
			path = append(path, best)
			claimed[best] = true
			cur = best
		}
		// reverse to source->mouth order
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		return path
	}

	for _, mouth := range mouths {
		if claimed[mouth] {
			continue
		}
		claimed[mouth] = true
		verts := traceUpstream(mouth)
		if len(verts) < minVerts {
			continue
		}
		rivers = append(rivers, River{
			ID:           nextID,
			Vertices:     verts,
			MouthVertex:  mouth,
			SourceVertex: verts[0],
			Discharge:    f.VertexFlux[mouth],
		})
		nextID++
	}

	tributaryThreshold := trace * 0.5
	for ri := range rivers {
		for _, stemV := range rivers[ri].Vertices {
			for _, in := range inflows[stemV] {
				if claimed[in] || f.VertexFlux[in] < tributaryThreshold {
					continue
				}
				claimed[in] = true
				trib := traceUpstream(in)
				trib = append(trib, stemV)
				if len(trib) < minVerts {
					continue
				}
				rivers = append(rivers, River{
					ID:           nextID,
					Vertices:     trib,
					MouthVertex:  stemV,
					SourceVertex: trib[0],
					Discharge:    f.VertexFlux[in],
				})
				nextID++
			}
		}
	}
	return rivers
}
