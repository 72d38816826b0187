// Package mesh builds the Voronoi cell mesh that every later stage operates
// over: a jittered grid of sites dualized, via a hand-rolled Bowyer-Watson
// Delaunay triangulation, into irregular convex cells with index-aligned
// neighbor and boundary-polygon data.
package mesh

import (
	"sort"

	"worldforge/internal/worldgen/config"
)

// CellMesh is the frozen topology every later stage reads but never
// mutates: cell i's data lives at index i across every parallel slice.
type CellMesh struct {
	Meta config.WorldMetadata

	CellCount int

	// Center is the original jittered site position, not the polygon
	// centroid.
	Center []Point

	// Polygon gives each cell's boundary in CCW order.
	Polygon [][]Point

	// AreaKm2 is the shoelace area of Polygon[i].
	AreaKm2 []float64

	// Neighbor[i][k] is the site index across Polygon[i]'s k-th edge, or
	// -1 if that edge borders the auxiliary boundary ring rather than
	// another interior cell. Index-aligned with Polygon[i].
	Neighbor [][]int

	// IsBoundary is true iff any entry of Neighbor[i] is -1.
	IsBoundary []bool

	// VertexOfCell[i][k] is the global vertex id of Polygon[i][k].
	VertexOfCell [][]int

	// VertexPos[v] is the Voronoi vertex position (a Delaunay triangle's
	// circumcenter); vertex id v is the underlying triangle's index.
	VertexPos []Point

	// VertexCells[v] lists the interior site (cell) ids incident to
	// vertex v, used to interpolate per-vertex elevation and flux.
	VertexCells [][]int

	// VertexNeighbors[v] lists the other vertex ids connected to v by a
	// shared Delaunay edge, i.e. the hydrography vertex graph.
	VertexNeighbors [][]int

	// EdgeEndpoints[e] and EdgeCells[e] are index-aligned: the e-th
	// Voronoi edge runs between vertices EdgeEndpoints[e][0..1] and
	// separates cells EdgeCells[e][0..1]. EdgeEndpoints[e][1] == -1 for an
	// edge at the outer hull that belongs to a single triangle. An
	// EdgeCells entry is -1 where that side is an auxiliary boundary-ring
	// site; interior ids sort first, so a lone -1 is always at index 1,
	// and an edge between two ring sites has -1 on both sides.
	EdgeEndpoints [][2]int
	EdgeCells     [][2]int
}

// Build constructs the cell mesh for a validated config. Config.Validate
// must have already been called; Build does not re-check it.
func Build(cfg config.Config) *CellMesh {
	meta := cfg.Metadata()
	sites, interiorCount := generateSites(meta.WidthKm, meta.HeightKm, cfg.CellCount, cfg.Seed)
	triangles := delaunayTriangulate(sites)
	fans := dualize(sites, interiorCount, triangles)

	m := &CellMesh{
		Meta:       meta,
		CellCount:  interiorCount,
		Center:     make([]Point, interiorCount),
		Polygon:    make([][]Point, interiorCount),
		AreaKm2:    make([]float64, interiorCount),
		Neighbor:     make([][]int, interiorCount),
		IsBoundary:   make([]bool, interiorCount),
		VertexOfCell: make([][]int, interiorCount),
	}

	for i := 0; i < interiorCount; i++ {
		fan := fans[i]
		m.Center[i] = sites[i]
		m.Polygon[i] = fan.vertices
		m.Neighbor[i] = fan.neighbors
		m.VertexOfCell[i] = fan.vertexIDs
		m.AreaKm2[i] = shoelaceArea(fan.vertices)
		for _, nb := range fan.neighbors {
			if nb == -1 {
				m.IsBoundary[i] = true
				break
			}
		}
	}

	buildVertexGraph(m, sites, interiorCount, triangles)
	return m
}

// buildVertexGraph derives the global vertex/edge graph from triangle
// adjacency: each triangle is one vertex; two triangles sharing a Delaunay
// edge (two common sites) are connected by one Voronoi edge.
func buildVertexGraph(m *CellMesh, sites []Point, interiorCount int, triangles []triangle) {
	m.VertexPos = make([]Point, len(triangles))
	m.VertexCells = make([][]int, len(triangles))
	m.VertexNeighbors = make([][]int, len(triangles))

	for i, t := range triangles {
		m.VertexPos[i] = t.center
		for _, v := range [3]int{t.a, t.b, t.c} {
			if v < interiorCount {
				m.VertexCells[i] = append(m.VertexCells[i], v)
			}
		}
	}

	type triPair struct{ first, second int }
	byEdge := make(map[edgeKey]*triPair)
	for ti, t := range triangles {
		for _, e := range [3][2]int{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}} {
			k := makeEdgeKey(e[0], e[1])
			pair, ok := byEdge[k]
			if !ok {
				byEdge[k] = &triPair{first: ti, second: -1}
				continue
			}
			pair.second = ti
		}
	}

	// byEdge is a map, so ranging it directly would assign edge ids and
	// per-vertex neighbor order differently on every run; sort the edge
	// keys first so EdgeEndpoints/EdgeCells and each VertexNeighbors[v]
	// list come out in the same order for identical input every time.
	keys := make([]edgeKey, 0, len(byEdge))
	for k := range byEdge {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].u != keys[j].u {
			return keys[i].u < keys[j].u
		}
		return keys[i].v < keys[j].v
	})

	for _, k := range keys {
		pair := byEdge[k]
		cells := [2]int{k.u, k.v}
		for j := range cells {
			if cells[j] >= interiorCount {
				cells[j] = -1
			}
		}
		if pair.second == -1 {
			m.EdgeEndpoints = append(m.EdgeEndpoints, [2]int{pair.first, -1})
			m.EdgeCells = append(m.EdgeCells, cells)
			continue
		}
		m.VertexNeighbors[pair.first] = append(m.VertexNeighbors[pair.first], pair.second)
		m.VertexNeighbors[pair.second] = append(m.VertexNeighbors[pair.second], pair.first)
		m.EdgeEndpoints = append(m.EdgeEndpoints, [2]int{pair.first, pair.second})
		m.EdgeCells = append(m.EdgeCells, cells)
	}
}

// FindNearestCell does an O(N) linear scan for the cell whose center is
// closest to p. The mesh has no spatial acceleration structure; at the
// cell counts this pipeline targets (low thousands) a linear scan is
// cheap enough that a grid or k-d tree would add complexity without a
// measurable benefit.
func (m *CellMesh) FindNearestCell(p Point) int {
	best := -1
	bestD := 0.0
	for i, c := range m.Center {
		d := dist2(c, p)
		if best == -1 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
