package terrain

import (
	"math"

	"worldforge/internal/worldgen/mesh"
	"worldforge/internal/worldgen/rng"
)

func siteAtPercent(f *Field, xPct, yPct float64) int {
	p := mesh.Point{X: xPct / 100 * f.WidthKm, Y: yPct / 100 * f.HeightKm}
	return f.M.FindNearestCell(p)
}

func neighborsOf(f *Field, cell int) []int {
	var out []int
	for _, nb := range f.M.Neighbor[cell] {
		if nb >= 0 {
			out = append(out, nb)
		}
	}
	return out
}

// opHill stamps c blobs of rising elevation via BFS falloff.
func opHill(f *Field, c int, hUnits, xPct, yPct float64, r *rng.Source) {
	unit := f.ShapeUnit()
	power := blobPower(f.M.CellCount, f.Tuning.BlobPowerBias)
	hUnits *= f.Tuning.HillHeightMul
	for b := 0; b < c; b++ {
		seed := -1
		for attempt := 0; attempt < 50; attempt++ {
			jx := xPct + r.Uniform(-5, 5)
			jy := yPct + r.Uniform(-5, 5)
			cand := siteAtPercent(f, clampPct(jx), clampPct(jy))
			if f.SignedM[cand] < 0.9*f.MaxElevM {
				seed = cand
				break
			}
			seed = cand
		}
		if seed == -1 {
			continue
		}
		stampBlob(f, seed, hUnits, power, unit, +1, r)
	}
}

// opPit is Hill's mirror: it lowers elevation and uses floating-point
// (not truncated) decay, seeded on land.
func opPit(f *Field, c int, hUnits, xPct, yPct float64, r *rng.Source) {
	unit := f.ShapeUnit()
	hUnits *= f.Tuning.PitDepthMul
	for b := 0; b < c; b++ {
		seed := -1
		for attempt := 0; attempt < 50; attempt++ {
			jx := xPct + r.Uniform(-5, 5)
			jy := yPct + r.Uniform(-5, 5)
			cand := siteAtPercent(f, clampPct(jx), clampPct(jy))
			if f.SignedM[cand] > 0 {
				seed = cand
				break
			}
			seed = cand
		}
		if seed == -1 {
			continue
		}
		stampPit(f, seed, hUnits, unit, r)
	}
}

func stampBlob(f *Field, seed int, hUnits, power, unit float64, sign float64, r *rng.Source) {
	visited := map[int]bool{seed: true}
	change := map[int]float64{seed: hUnits}
	queue := []int{seed}
	f.Add(seed, sign*hUnits*unit)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curChange := change[cur]
		for _, nb := range neighborsOf(f, cur) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			next := math.Floor(math.Pow(curChange, power) * r.Uniform(0.9, 1.1))
			if next <= 1 {
				continue
			}
			change[nb] = next
			f.Add(nb, sign*next*unit)
			queue = append(queue, nb)
		}
	}
}

func stampPit(f *Field, seed int, hUnits, unit float64, r *rng.Source) {
	visited := map[int]bool{seed: true}
	queue := []struct {
		cell int
		h    float64
	}{{seed, hUnits}}
	f.Add(seed, -hUnits*unit)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range neighborsOf(f, cur.cell) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			delta := cur.h * r.Uniform(0.9, 1.1)
			if delta < 1 {
				continue
			}
			f.Add(nb, -delta*unit)
			queue = append(queue, struct {
				cell int
				h    float64
			}{nb, delta})
		}
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// opRangeOrTrough stamps a ridge (sign>0) or valley (sign<0) via a greedy
// endpoint-to-endpoint walk followed by frontier-wave expansion.
func opRangeOrTrough(f *Field, c int, hUnits, xPct, yPct float64, r *rng.Source, isRange bool) {
	unit := f.ShapeUnit()
	power := linePower(f.M.CellCount, f.Tuning.LinePowerBias)
	kDiv := 3.0
	if !isRange {
		kDiv = 2.0
	}
	sign := 1.0
	if isRange {
		hUnits *= f.Tuning.RangeHeightMul
	} else {
		sign = -1.0
		hUnits *= f.Tuning.TroughDepthMul
	}

	for i := 0; i < c; i++ {
		start := siteAtPercent(f, xPct, yPct)
		var best int
		bestScore := -1.0
		for attempt := 0; attempt < 50; attempt++ {
			ex := xPct + r.Uniform(-100.0/8, 100.0/kDiv)
			ey := yPct + r.Uniform(-100.0/8, 100.0/kDiv)
			cand := siteAtPercent(f, clampPct(ex), clampPct(ey))
			d := dist2km(f, start, cand)
			lo := f.WidthKm / 8
			hi := f.WidthKm / kDiv
			if d >= lo*lo && d <= hi*hi {
				if d > bestScore {
					bestScore = d
					best = cand
				}
			} else if bestScore < 0 {
				best = cand
			}
		}
		end := best

		path := walkGreedyPath(f, start, end, r)
		ridgeUnits := make(map[int]float64, len(path))
		visited := make(map[int]bool, len(path))
		for _, cell := range path {
			visited[cell] = true
			ridgeUnits[cell] = hUnits
			f.Add(cell, sign*hUnits*unit)
		}
		frontierWave(f, path, hUnits, power, unit, sign, r)

		if isRange {
			for idx, cell := range path {
				if idx%6 != 0 {
					continue
				}
				walkDownhillProminence(f, cell, hUnits, unit, r)
			}
		}
	}
}

func dist2km(f *Field, a, b int) float64 {
	pa, pb := f.M.Center[a], f.M.Center[b]
	dx, dy := pa.X-pb.X, pa.Y-pb.Y
	return dx*dx + dy*dy
}

// walkGreedyPath steps from start toward end via whichever neighbour is
// closest to end, applying a 17.5% chance per candidate to shrink its
// squared distance before comparing (injected noise against getting stuck
// on a locally-optimal neighbour).
func walkGreedyPath(f *Field, start, end int, r *rng.Source) []int {
	path := []int{start}
	cur := start
	for steps := 0; steps < f.M.CellCount && cur != end; steps++ {
		nbs := neighborsOf(f, cur)
		if len(nbs) == 0 {
			break
		}
		best := nbs[0]
		bestD := dist2km(f, best, end)
		for _, nb := range nbs[1:] {
			d := dist2km(f, nb, end)
			if r.Bool(0.175) {
				d /= 4 // halve distance, squared halves become /4
			}
			if d < bestD {
				bestD = d
				best = nb
			}
		}
		if best == cur {
			break
		}
		cur = best
		path = append(path, cur)
	}
	return path
}

func frontierWave(f *Field, path []int, hUnits, power, unit, sign float64, r *rng.Source) {
	visited := make(map[int]bool, len(path)*4)
	frontier := make([]int, len(path))
	copy(frontier, path)
	for _, cell := range path {
		visited[cell] = true
	}
	h := hUnits
	for h >= 2 {
		var next []int
		for _, cell := range frontier {
			for _, nb := range neighborsOf(f, cell) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				delta := h * r.Uniform(0.85, 1.15)
				f.Add(nb, sign*delta*unit)
				next = append(next, nb)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
		h = math.Pow(h, power) - 1
	}
}

func walkDownhillProminence(f *Field, start int, depthUnits, unit float64, r *rng.Source) {
	cur := start
	visited := map[int]bool{cur: true}
	steps := int(depthUnits/4) + 1
	for s := 0; s < steps; s++ {
		nbs := neighborsOf(f, cur)
		var lowest int = -1
		lowestV := f.SignedM[cur]
		for _, nb := range nbs {
			if visited[nb] {
				continue
			}
			if f.SignedM[nb] < lowestV {
				lowestV = f.SignedM[nb]
				lowest = nb
			}
		}
		if lowest == -1 {
			break
		}
		parent := f.SignedM[cur]
		self := f.SignedM[lowest]
		f.Set(lowest, (2*parent+self)/3)
		visited[lowest] = true
		cur = lowest
	}
	_ = r
}

// opMask applies distance-from-edge attenuation.
func opMask(f *Field, factor float64) {
	fr := math.Max(math.Abs(factor), 1)
	for i, c := range f.M.Center {
		nx := 2*c.X/f.WidthKm - 1
		ny := 2*c.Y/f.HeightKm - 1
		distance := (1 - nx*nx) * (1 - ny*ny)
		if factor < 0 {
			distance = 1 - distance
		}
		h := f.SignedM[i]
		f.Set(i, (h*(fr-1)+h*distance)/fr)
	}
}

// opStrait carves a channel of w expansion rings around a greedy path:
// left edge to right edge at mid-height when horizontal, bottom edge to
// top edge at mid-width otherwise.
func opStrait(f *Field, w int, horizontal bool, r *rng.Source) {
	var start, end mesh.Point
	if horizontal {
		start = mesh.Point{X: 0, Y: f.HeightKm / 2}
		end = mesh.Point{X: f.WidthKm, Y: f.HeightKm / 2}
	} else {
		start = mesh.Point{X: f.WidthKm / 2, Y: 0}
		end = mesh.Point{X: f.WidthKm / 2, Y: f.HeightKm}
	}
	startCell := f.M.FindNearestCell(start)
	endCell := f.M.FindNearestCell(end)
	path := walkGreedyPath(f, startCell, endCell, r)

	frontier := map[int]bool{}
	for _, c := range path {
		frontier[c] = true
	}
	visited := map[int]bool{}
	for _, c := range path {
		visited[c] = true
	}
	ring := path
	for k := 0; k < w; k++ {
		var next []int
		for _, cell := range ring {
			for _, nb := range neighborsOf(f, cell) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				next = append(next, nb)
			}
		}
		for _, cell := range next {
			v := f.SignedM[cell]
			sign := 1.0
			if v < 0 {
				sign = -1
			}
			mag := math.Pow(math.Abs(v)/f.ShapeUnit(), 0.8)
			if math.IsInf(mag, 0) || math.IsNaN(mag) {
				mag = 0
			}
			f.Set(cell, sign*mag*f.ShapeUnit())
		}
		ring = next
		if len(ring) == 0 {
			break
		}
	}
}

// band selects which cells an Add/Multiply operates on.
type band struct {
	mode   string // "land", "water", "all", "range"
	minM   float64
	maxM   float64
}

func (b band) includes(v float64) bool {
	switch b.mode {
	case "land":
		return v > 0
	case "water":
		return v <= 0
	case "all":
		return true
	default:
		return v >= b.minM && v <= b.maxM
	}
}

// opAdd adds a constant meter delta to cells in band; the land alias
// clamps the result to stay non-negative.
func opAdd(f *Field, delta float64, b band) {
	for i, v := range f.SignedM {
		if !b.includes(v) {
			continue
		}
		nv := v + delta
		if b.mode == "land" && nv < 0 {
			nv = 0
		}
		f.Set(i, nv)
	}
}

func opMultiply(f *Field, k float64, b band) {
	for i, v := range f.SignedM {
		if !b.includes(v) {
			continue
		}
		f.Set(i, v*k)
	}
}

// opSmooth averages each cell with its neighbours.
func opSmooth(f *Field, r float64) {
	if r <= 0 {
		r = 1
	}
	out := make([]float64, len(f.SignedM))
	for i := range f.SignedM {
		nbs := neighborsOf(f, i)
		sum := f.SignedM[i]
		for _, nb := range nbs {
			sum += f.SignedM[nb]
		}
		mean := sum / float64(1+len(nbs))
		out[i] = (f.SignedM[i]*(r-1) + mean) / r
	}
	for i, v := range out {
		f.Set(i, v)
	}
}

// opInvert mirrors the field across the chosen axis with probability p.
func opInvert(f *Field, p float64, axis string, r *rng.Source) {
	if !r.Bool(p) {
		return
	}
	out := make([]float64, len(f.SignedM))
	for i, c := range f.M.Center {
		rx, ry := c.X, c.Y
		switch axis {
		case "x":
			rx = f.WidthKm - c.X
		case "y":
			ry = f.HeightKm - c.Y
		default: // both
			rx = f.WidthKm - c.X
			ry = f.HeightKm - c.Y
		}
		src := f.M.FindNearestCell(mesh.Point{X: rx, Y: ry})
		out[i] = f.SignedM[src]
	}
	for i, v := range out {
		f.Set(i, v)
	}
}
