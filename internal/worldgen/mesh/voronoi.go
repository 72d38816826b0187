package mesh

import (
	"math"
	"sort"
)

// cellFan is the intermediate per-cell result of dualizing the
// triangulation: the polygon vertices (in CCW order) and the neighboring
// site index across each polygon edge, index-aligned with the polygon.
type cellFan struct {
	vertices  []Point
	vertexIDs []int // triangle index of each polygon vertex, index-aligned with vertices
	neighbors []int // -1 for a neighbor that is an auxiliary boundary site
}

// dualize converts a Delaunay triangulation into one Voronoi cell per
// interior site (indices [0,interiorCount)). Each triangle's circumcenter
// is a Voronoi vertex; the triangles incident to a site, sorted by angle
// around it, form the site's cell polygon in CCW order.
func dualize(sites []Point, interiorCount int, triangles []triangle) []cellFan {
	incident := make([][]int, interiorCount)
	for ti, t := range triangles {
		for _, v := range [3]int{t.a, t.b, t.c} {
			if v < interiorCount {
				incident[v] = append(incident[v], ti)
			}
		}
	}

	fans := make([]cellFan, interiorCount)
	for site := 0; site < interiorCount; site++ {
		tris := incident[site]
		if len(tris) == 0 {
			continue
		}
		center := sites[site]
		sort.Slice(tris, func(i, j int) bool {
			return angleAround(center, triangles[tris[i]].center) < angleAround(center, triangles[tris[j]].center)
		})

		verts := make([]Point, len(tris))
		ids := make([]int, len(tris))
		neighbors := make([]int, len(tris))
		for i, ti := range tris {
			verts[i] = triangles[ti].center
			ids[i] = ti
			tj := tris[(i+1)%len(tris)]
			nb := sharedNeighbor(triangles[ti], triangles[tj], site)
			if nb >= interiorCount {
				nb = -1
			}
			neighbors[i] = nb
		}
		fans[site] = cellFan{vertices: verts, vertexIDs: ids, neighbors: neighbors}
	}
	return fans
}

func angleAround(center, p Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// sharedNeighbor finds the site (other than `site`) that both t1 and t2
// have in common; this is the site across the polygon edge between their
// two circumcenters. Returns -1 if no such unique third site exists.
func sharedNeighbor(t1, t2 triangle, site int) int {
	v1 := [3]int{t1.a, t1.b, t1.c}
	v2 := map[int]bool{t2.a: true, t2.b: true, t2.c: true}
	for _, v := range v1 {
		if v != site && v2[v] {
			return v
		}
	}
	return -1
}
