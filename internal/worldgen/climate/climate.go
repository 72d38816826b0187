// Package climate derives per-cell temperature and precipitation from the
// mesh, elevation field, and configured wind bands.
package climate

import (
	"math"
	"sort"
	"sync"

	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/terrain"
)

// Field is the public output of stage 4.
type Field struct {
	TemperatureC []float64
	PrecipMmYear []float64
}

// Compute runs the full temperature and precipitation derivation.
func Compute(m *mesh.CellMesh, elev terrain.ElevationField, cfg config.Config) Field {
	n := m.CellCount
	temp := computeTemperature(m, elev, cfg)

	bands := make([][]float64, len(cfg.WindBands))
	var wg sync.WaitGroup
	for bi, wb := range cfg.WindBands {
		bi, wb := bi, wb
		wg.Add(1)
		go func() {
			defer wg.Done()
			bands[bi] = sweepBand(m, elev, temp, cfg, wb)
		}()
	}
	wg.Wait()

	summed := make([]float64, n)
	for bi, wb := range cfg.WindBands {
		weight := latitudeOverlapFraction(m.Meta.LatitudeSouth, m.Meta.LatitudeNorth, wb.LatMin, wb.LatMax)
		if weight <= 0 {
			continue
		}
		for i := 0; i < n; i++ {
			summed[i] += bands[bi][i] * weight
		}
	}

	precip := normalizePrecip(summed, cfg.MaxAnnualPrecipMm)
	for i, v := range precip {
		biased := v * cfg.Tuning.PrecipitationBiasMul
		if biased > cfg.MaxAnnualPrecipMm {
			biased = cfg.MaxAnnualPrecipMm
		}
		precip[i] = biased
	}
	return Field{TemperatureC: temp, PrecipMmYear: precip}
}

func computeTemperature(m *mesh.CellMesh, elev terrain.ElevationField, cfg config.Config) []float64 {
	n := m.CellCount
	out := make([]float64, n)
	south, north := m.Meta.LatitudeSouth, m.Meta.LatitudeNorth
	span := north - south
	if span == 0 {
		span = 1
	}
	var wg sync.WaitGroup
	chunks, chunkSize := parallelChunks(n)
	for c := 0; c < chunks; c++ {
		lo, hi := c*chunkSize, min(n, (c+1)*chunkSize)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				lat := south + (m.Center[i].Y/m.Meta.HeightKm)*span
				sea := seaLevelTemperature(lat, cfg.EquatorTempC, cfg.PoleTempC)
				elevM := math.Max(0, elev.SignedM[i])
				out[i] = (sea - cfg.LapseCPerKm*elevM/1000) * cfg.Tuning.TemperatureBiasMul
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}

func seaLevelTemperature(lat, equatorC, poleC float64) float64 {
	abs := math.Abs(lat)
	if abs <= 15 {
		return equatorC
	}
	t := (abs - 15) / 75 // 0 at 15deg, 1 at 90deg
	if t > 1 {
		t = 1
	}
	cosFalloff := (1 + math.Cos(t*math.Pi)) / 2
	return poleC + (equatorC-poleC)*cosFalloff
}

func moistureCapacity(tempC, mul float64) float64 {
	v := math.Pow(2, tempC/10) * mul
	if v < 0.05 {
		return 0.05
	}
	if v > 4 {
		return 4
	}
	return v
}

func windVector(wb config.WindBand) (float64, float64) {
	deg := wb.Compass.DegreesClockwiseFromNorth()
	rad := deg * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}

func sweepBand(m *mesh.CellMesh, elev terrain.ElevationField, temp []float64, cfg config.Config, wb config.WindBand) []float64 {
	n := m.CellCount
	wx, wy := windVector(wb)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	proj := make([]float64, n)
	for i := 0; i < n; i++ {
		proj[i] = m.Center[i].X*wx + m.Center[i].Y*wy
	}
	sort.Slice(order, func(a, b int) bool { return proj[order[a]] < proj[order[b]] })

	visited := make([]bool, n)
	humidity := make([]float64, n)
	precip := make([]float64, n)

	for _, i := range order {
		cap := moistureCapacity(temp[i], cfg.Tuning.MoistureCapacityMul)
		isLand := elev.SignedM[i] > 0

		var upNum, upDen float64
		for _, nb := range m.Neighbor[i] {
			if nb < 0 || !visited[nb] {
				continue
			}
			dx := m.Center[i].X - m.Center[nb].X
			dy := m.Center[i].Y - m.Center[nb].Y
			w := math.Max(0, dx*wx+dy*wy)
			w = w * w
			upNum += w * humidity[nb]
			upDen += w
		}
		if upDen > 0 {
			humidity[i] = upNum / upDen
		} else {
			humidity[i] = 0.9 * cap
		}

		if !isLand {
			humidity[i] += 0.08 * cap
		} else {
			coastal := m.IsBoundary[i]
			base := 0.025 * humidity[i]
			if coastal {
				base += 0.05 * humidity[i]
			}
			slope := 0.0
			for _, nb := range m.Neighbor[i] {
				if nb < 0 {
					continue
				}
				dh := elev.SignedM[i] - elev.SignedM[nb]
				if dh > 0 {
					slope = math.Max(slope, math.Min(dh, 1000)/1000)
				}
			}
			altFactor := elev.SignedM[i] / elev.MaxElevM
			orographic := humidity[i] * 0.25 * slope * (0.5 + altFactor)
			deposit := base + orographic
			if deposit > humidity[i] {
				deposit = humidity[i]
			}
			precip[i] = deposit
			humidity[i] -= deposit
		}

		if humidity[i] > cap {
			humidity[i] = cap
		}
		if temp[i] < -5 {
			humidity[i] *= 0.1
		}
		visited[i] = true
	}
	return precip
}

func latitudeOverlapFraction(mapSouth, mapNorth, bandMin, bandMax float64) float64 {
	lo := math.Max(mapSouth, bandMin)
	hi := math.Min(mapNorth, bandMax)
	if hi <= lo {
		return 0
	}
	mapSpan := mapNorth - mapSouth
	if mapSpan <= 0 {
		return 0
	}
	return (hi - lo) / mapSpan
}

func normalizePrecip(summed []float64, maxPrecip float64) []float64 {
	out := make([]float64, len(summed))
	maxV := 0.0
	for _, v := range summed {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 {
		return out
	}
	denom := math.Pow(maxV, 0.225)
	for i, v := range summed {
		if v < 0 {
			v = 0
		}
		out[i] = math.Pow(v, 0.225) / denom * maxPrecip
	}
	return out
}

func parallelChunks(n int) (chunks, size int) {
	const workers = 8
	if n < workers {
		return 1, n
	}
	size = (n + workers - 1) / workers
	return workers, size
}
