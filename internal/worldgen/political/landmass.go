package political

import (
	"worldforge/internal/worldgen/biome"
	"worldforge/internal/worldgen/mesh"
)

// detectLandmasses BFS-labels connected components of land-non-lake
// cells; water/lake cells get -1.
func detectLandmasses(m *mesh.CellMesh, bio biome.Field, isLand []bool) (landmassID []int, count int) {
	landmassID = make([]int, m.CellCount)
	for i := range landmassID {
		landmassID[i] = -1
	}
	nextID := 1
	for i := 0; i < m.CellCount; i++ {
		if !isLand[i] || bio.IsLakeCell[i] || landmassID[i] != -1 {
			continue
		}
		queue := []int{i}
		landmassID[i] = nextID
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range m.Neighbor[cur] {
				if nb < 0 || !isLand[nb] || bio.IsLakeCell[nb] || landmassID[nb] != -1 {
					continue
				}
				landmassID[nb] = nextID
				queue = append(queue, nb)
			}
		}
		nextID++
	}
	return landmassID, nextID - 1
}
