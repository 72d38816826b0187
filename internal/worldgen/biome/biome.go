// Package biome classifies land cover, derives habitability/movement
// cost/suitability, and estimates population.
package biome

import (
	"math"

	"worldforge/internal/worldgen/climate"
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/hydrology"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

// WaterFeature is a connected component of non-land cells.
type WaterFeature struct {
	ID            int
	Type          config.WaterFeatureType
	TouchesBorder bool
	CellCount     int
}

// Field is the public output of stage 6.
type Field struct {
	IsLakeCell     []bool
	FeatureID      []int
	Features       []WaterFeature
	CoastDistance  []int
	Slope          []float64
	BiomeID        []config.BiomeID
	Habitability   []float64
	MovementCost   []float64
	Suitability    []float64
	Population     []float64
}

// Compute runs the full stage-6 derivation.
func Compute(m *mesh.CellMesh, elev terrain.ElevationField, clim climate.Field, hydro hydrology.Field, cfg config.Config) Field {
	n := m.CellCount
	f := Field{
		IsLakeCell:    make([]bool, n),
		FeatureID:     make([]int, n),
		CoastDistance: make([]int, n),
		Slope:         make([]float64, n),
		BiomeID:       make([]config.BiomeID, n),
		Habitability:  make([]float64, n),
		MovementCost:  make([]float64, n),
		Suitability:   make([]float64, n),
		Population:    make([]float64, n),
	}

	classifyLakeCells(m, elev, hydro, &f)
	buildWaterFeatures(m, elev, &f)
	computeCoastDistance(m, elev, &f)
	computeSlope(m, elev, &f)
	classifyBiomes(m, elev, clim, hydro, cfg, &f)
	computeSuitability(m, elev, hydro, cfg, &f)
	return f
}

func classifyLakeCells(m *mesh.CellMesh, elev terrain.ElevationField, hydro hydrology.Field, f *Field) {
	for i := 0; i < m.CellCount; i++ {
		if elev.SignedM[i] > 0 {
			continue
		}
		verts := m.VertexOfCell[i]
		if len(verts) == 0 {
			continue
		}
		lakeVerts := 0
		for _, v := range verts {
			if v < len(hydro.VertexElevM) && hydro.IsLake(v) {
				lakeVerts++
			}
		}
		f.IsLakeCell[i] = 2*lakeVerts >= len(verts)
	}
}

func buildWaterFeatures(m *mesh.CellMesh, elev terrain.ElevationField, f *Field) {
	visited := make([]bool, m.CellCount)
	nextID := 1
	for i := 0; i < m.CellCount; i++ {
		if visited[i] || elev.SignedM[i] > 0 {
			continue
		}
		queue := []int{i}
		visited[i] = true
		cells := []int{i}
		touchesBorder := m.IsBoundary[i]
		allLake := f.IsLakeCell[i]
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range m.Neighbor[cur] {
				if nb < 0 {
					continue
				}
				if visited[nb] || elev.SignedM[nb] > 0 {
					continue
				}
				visited[nb] = true
				cells = append(cells, nb)
				queue = append(queue, nb)
				if m.IsBoundary[nb] {
					touchesBorder = true
				}
				if !f.IsLakeCell[nb] {
					allLake = false
				}
			}
		}
		ftype := config.WaterFeatureOcean
		if !touchesBorder && allLake {
			ftype = config.WaterFeatureLake
		}
		id := nextID
		nextID++
		for _, c := range cells {
			f.FeatureID[c] = id
		}
		f.Features = append(f.Features, WaterFeature{
			ID: id, Type: ftype, TouchesBorder: touchesBorder, CellCount: len(cells),
		})
	}
}

func computeCoastDistance(m *mesh.CellMesh, elev terrain.ElevationField, f *Field) {
	n := m.CellCount
	isLand := func(i int) bool { return elev.SignedM[i] > 0 }

	distLand := make([]int, n)
	distWater := make([]int, n)
	for i := range distLand {
		distLand[i] = -1
		distWater[i] = -1
	}

	var landFrontier, waterFrontier []int
	for i := 0; i < n; i++ {
		isCoastLand := false
		isCoastWater := false
		for _, nb := range m.Neighbor[i] {
			if nb < 0 {
				continue
			}
			if isLand(i) && !isLand(nb) {
				isCoastLand = true
			}
			if !isLand(i) && isLand(nb) {
				isCoastWater = true
			}
		}
		if isLand(i) && isCoastLand {
			distLand[i] = 0
			landFrontier = append(landFrontier, i)
		}
		if !isLand(i) && isCoastWater {
			distWater[i] = 0
			waterFrontier = append(waterFrontier, i)
		}
	}

	bfsFill(m, distLand, landFrontier, isLand, true)
	bfsFill(m, distWater, waterFrontier, isLand, false)

	for i := 0; i < n; i++ {
		if isLand(i) {
			if distLand[i] < 0 {
				distLand[i] = 0
			}
			f.CoastDistance[i] = distLand[i]
		} else {
			if distWater[i] < 0 {
				distWater[i] = 0
			}
			f.CoastDistance[i] = -distWater[i]
		}
	}
}

func bfsFill(m *mesh.CellMesh, dist []int, frontier []int, isLand func(int) bool, wantLand bool) {
	queue := append([]int{}, frontier...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range m.Neighbor[cur] {
			if nb < 0 || isLand(nb) != wantLand || dist[nb] >= 0 {
				continue
			}
			dist[nb] = dist[cur] + 1
			queue = append(queue, nb)
		}
	}
}

func computeSlope(m *mesh.CellMesh, elev terrain.ElevationField, f *Field) {
	for i := 0; i < m.CellCount; i++ {
		maxDh := 0.0
		for _, nb := range m.Neighbor[i] {
			if nb < 0 {
				continue
			}
			dh := math.Abs(elev.SignedM[i] - elev.SignedM[nb])
			if dh > maxDh {
				maxDh = dh
			}
		}
		f.Slope[i] = math.Min(1, maxDh/1000)
	}
}

func coastalSalt(coastDist int) float64 {
	switch {
	case coastDist == 0:
		return 1
	case coastDist == 1:
		return 0.45
	case coastDist == 2:
		return 0.25
	default:
		return 0
	}
}

func classifyBiomes(m *mesh.CellMesh, elev terrain.ElevationField, clim climate.Field, hydro hydrology.Field, cfg config.Config, f *Field) {
	for i := 0; i < m.CellCount; i++ {
		if f.IsLakeCell[i] {
			f.BiomeID[i] = config.BiomeLake
			continue
		}
		if elev.SignedM[i] <= 0 {
			f.BiomeID[i] = config.BiomeCoastalMarsh
			continue
		}

		temp := clim.TemperatureC[i]
		precipPct := 0.0
		if cfg.MaxAnnualPrecipMm > 0 {
			precipPct = clim.PrecipMmYear[i] / cfg.MaxAnnualPrecipMm * 100
		}
		elevPct := elev.SignedM[i] / elev.MaxElevM * 100
		slope := f.Slope[i] * cfg.Tuning.SlopeScaleMul
		salt := coastalSalt(f.CoastDistance[i]) * cfg.Tuning.CoastalSaltScaleMul
		flux := meanIncidentFlux(m, hydro, i)

		soil := classifySoil(temp, precipPct, elevPct, slope, salt, flux)
		f.BiomeID[i] = soilToBiome(soil, temp, precipPct, elevPct, slope)
	}
}

func meanIncidentFlux(m *mesh.CellMesh, hydro hydrology.Field, cell int) float64 {
	verts := m.VertexOfCell[cell]
	if len(verts) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range verts {
		if v < len(hydro.VertexFlux) {
			sum += hydro.VertexFlux[v]
		}
	}
	return sum / float64(len(verts))
}

// classifySoil derives the pseudo-soil classification key from climate,
// slope, coastal proximity, and flux.
func classifySoil(tempC, precipPct, elevPct, slope, salt, flux float64) config.SoilType {
	switch {
	case tempC < -5:
		return config.SoilPermafrost
	case salt >= 0.45 && precipPct < 20:
		return config.SoilSaline
	case slope > 0.55 || elevPct > 70:
		return config.SoilLithosol
	case flux > 5:
		return config.SoilAlluvial
	case precipPct < 20 && tempC > 15:
		return config.SoilAridisol
	case tempC > 22 && precipPct > 60:
		return config.SoilLaterite
	case tempC < 8 && precipPct > 35:
		return config.SoilPodzol
	default:
		return config.SoilChernozem
	}
}

func soilToBiome(s config.SoilType, tempC, precipPct, elevPct, slope float64) config.BiomeID {
	switch s {
	case config.SoilPermafrost:
		if elevPct > 60 || slope > 0.5 {
			return config.BiomeAlpineBarren
		}
		if tempC < -15 {
			return config.BiomeGlacier
		}
		return config.BiomeTundra
	case config.SoilSaline:
		return config.BiomeSaltFlat
	case config.SoilLithosol:
		if slope > 0.7 {
			return config.BiomeAlpineBarren
		}
		return config.BiomeMountainShrub
	case config.SoilAlluvial:
		if precipPct > 50 {
			return config.BiomeFloodplain
		}
		return config.BiomeWetland
	case config.SoilAridisol:
		if tempC > 20 {
			return config.BiomeHotDesert
		}
		return config.BiomeColdDesert
	case config.SoilLaterite:
		if precipPct > 80 {
			return config.BiomeTropicalRainforest
		}
		if precipPct > 50 {
			return config.BiomeTropicalDryForest
		}
		return config.BiomeSavanna
	case config.SoilPodzol:
		if tempC < 0 {
			return config.BiomeBorealForest
		}
		return config.BiomeTemperateForest
	default: // Chernozem
		if precipPct < 35 {
			return config.BiomeScrubland
		}
		if precipPct > 65 {
			return config.BiomeWoodland
		}
		return config.BiomeGrassland
	}
}

func computeSuitability(m *mesh.CellMesh, elev terrain.ElevationField, hydro hydrology.Field, cfg config.Config, f *Field) {
	hasRiver := make([]bool, m.CellCount)
	for _, r := range hydro.Rivers {
		for _, v := range r.Vertices {
			for _, c := range m.VertexCells[v] {
				hasRiver[c] = true
			}
		}
	}

	for i := 0; i < m.CellCount; i++ {
		base := f.BiomeID[i].BaseHabitability()
		hab := base * cfg.Tuning.HabitabilityBiasMul
		if hasRiver[i] {
			hab += 10
		}
		if m.IsBoundary[i] || f.CoastDistance[i] == 0 {
			hab += 8
		}
		hab = clamp01to100(hab)

		move := f.BiomeID[i].BaseMovementCost()*cfg.Tuning.MovementCostBiasMul + 15*f.Slope[i]
		move = clamp01to100(move)

		altPenalty := math.Max(0, (elev.SignedM[i]-2600)/180)
		suit := clamp01to100((hab-22*f.Slope[i]-altPenalty)*cfg.Tuning.SuitabilityBiasMul)

		f.Habitability[i] = hab
		f.MovementCost[i] = move
		f.Suitability[i] = suit

		if elev.SignedM[i] > 0 && !f.IsLakeCell[i] {
			f.Population[i] = suit * m.AreaKm2[i] * 0.08
		}
	}
}

func clamp01to100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
