package mesh

import (
	"math"

	"worldforge/internal/worldgen/rng"
)

// generateSites builds the jittered interior grid plus the boundary padding
// ring. Interior sites occupy indices [0,interiorCount);
// auxiliary boundary-ring sites occupy [interiorCount,len(sites)) and never
// appear as output cells — they exist only to bound the Voronoi diagram so
// interior cells near the map edge get finite polygons.
func generateSites(widthKm, heightKm float64, cellCount int, seed int64) (sites []Point, interiorCount int) {
	r := rng.New(seed, rng.SaltMesh)

	spacing := math.Sqrt(widthKm * heightKm / float64(cellCount))
	if spacing <= 0 {
		spacing = 1
	}
	radius := spacing / 2

	var interior []Point
	for y := radius; y <= heightKm; y += spacing {
		for x := radius; x <= widthKm; x += spacing {
			jx := x + r.Uniform(-0.9*radius, 0.9*radius)
			jy := y + r.Uniform(-0.9*radius, 0.9*radius)
			jx = clamp(jx, 0, widthKm)
			jy = clamp(jy, 0, heightKm)
			interior = append(interior, Point{jx, jy})
		}
	}

	var ring []Point
	ringSpacing := 2 * spacing
	// Top and bottom rows, offset one spacing beyond the rectangle.
	for x := -spacing; x <= widthKm+spacing; x += ringSpacing {
		ring = append(ring, Point{x, -spacing})
		ring = append(ring, Point{x, heightKm + spacing})
	}
	// Left and right columns.
	for y := -spacing; y <= heightKm+spacing; y += ringSpacing {
		ring = append(ring, Point{-spacing, y})
		ring = append(ring, Point{widthKm + spacing, y})
	}

	sites = make([]Point, 0, len(interior)+len(ring))
	sites = append(sites, interior...)
	sites = append(sites, ring...)
	return sites, len(interior)
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
