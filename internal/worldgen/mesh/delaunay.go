package mesh

import (
	"math"
	"sort"
)

// triangle holds the three site indices of a Delaunay triangle, in no
// particular winding order; circumcenter is cached since every triangle
// becomes exactly one Voronoi vertex.
type triangle struct {
	a, b, c int
	center  Point
	radius2 float64
}

func newTriangle(sites []Point, a, b, c int) triangle {
	center := circumcenter(sites[a], sites[b], sites[c])
	return triangle{a: a, b: b, c: c, center: center, radius2: dist2(center, sites[a])}
}

func (t triangle) contains(sites []Point, p int) bool {
	return dist2(t.center, sites[p]) <= t.radius2*(1+1e-9)
}

type edgeKey struct{ u, v int }

func makeEdgeKey(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// delaunayTriangulate computes a Delaunay triangulation of sites via the
// classic Bowyer-Watson incremental algorithm: a bounding super-triangle is
// inserted first and every triangle touching one of its three vertices is
// discarded at the end.
func delaunayTriangulate(sites []Point) []triangle {
	n := len(sites)
	if n < 3 {
		return nil
	}

	minX, minY := sites[0].X, sites[0].Y
	maxX, maxY := sites[0].X, sites[0].Y
	for _, p := range sites {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	dx, dy := maxX-minX, maxY-minY
	deltaMax := math.Max(dx, dy) * 20
	if deltaMax <= 0 {
		deltaMax = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	// Super-triangle vertices are appended after the real sites.
	superA := len(sites)
	superB := superA + 1
	superC := superA + 2
	work := make([]Point, n, n+3)
	copy(work, sites)
	work = append(work,
		Point{midX - 2*deltaMax, midY - deltaMax},
		Point{midX, midY + 2*deltaMax},
		Point{midX + 2*deltaMax, midY - deltaMax},
	)

	triangles := []triangle{newTriangle(work, superA, superB, superC)}

	for p := 0; p < n; p++ {
		var bad []int
		for i, t := range triangles {
			if t.contains(work, p) {
				bad = append(bad, i)
			}
		}

		polygon := make([]edgeKey, 0)
		edgeCount := make(map[edgeKey]int)
		type fullEdge struct{ u, v int }
		edgeOf := make(map[edgeKey]fullEdge)
		for _, ti := range bad {
			t := triangles[ti]
			edges := [3][2]int{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}}
			for _, e := range edges {
				k := makeEdgeKey(e[0], e[1])
				edgeCount[k]++
				edgeOf[k] = fullEdge{e[0], e[1]}
			}
		}
		for k, count := range edgeCount {
			if count == 1 {
				polygon = append(polygon, k)
			}
		}
		// edgeCount is a map, so the order it's ranged in is randomized per
		// run; sort by (u,v) so the cavity is always re-triangulated in the
		// same order and triangle/vertex ids stay stable across identical
		// calls.
		sort.Slice(polygon, func(i, j int) bool {
			if polygon[i].u != polygon[j].u {
				return polygon[i].u < polygon[j].u
			}
			return polygon[i].v < polygon[j].v
		})

		keep := make([]triangle, 0, len(triangles)-len(bad)+len(polygon))
		badSet := make(map[int]bool, len(bad))
		for _, ti := range bad {
			badSet[ti] = true
		}
		for i, t := range triangles {
			if !badSet[i] {
				keep = append(keep, t)
			}
		}
		for _, k := range polygon {
			fe := edgeOf[k]
			keep = append(keep, newTriangle(work, fe.u, fe.v, p))
		}
		triangles = keep
	}

	final := make([]triangle, 0, len(triangles))
	for _, t := range triangles {
		if t.a >= superA || t.b >= superA || t.c >= superA {
			continue
		}
		final = append(final, t)
	}
	return final
}
