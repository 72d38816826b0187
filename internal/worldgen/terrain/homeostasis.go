package terrain

import "sort"

// ApplyHomeostasis corrects the land ratio toward a target band: up to 3
// passes of a uniform elevation shift toward the template's target land
// band, followed by a forced min/max-cell injection if either land or
// water ended up empty.
func ApplyHomeostasis(f *Field, minLand, maxLand float64) {
	for pass := 0; pass < 3; pass++ {
		ratio := currentLandRatio(f)
		if ratio >= minLand && ratio <= maxLand {
			break
		}
		target := minLand
		if ratio > maxLand {
			target = maxLand
		}
		delta := shiftForTargetRatio(f, target)
		delta += 0.001 // break ties deterministically
		for i := range f.SignedM {
			f.Add(i, delta)
		}
	}
	ensureNonDegenerate(f)
}

func currentLandRatio(f *Field) float64 {
	land := 0
	for _, v := range f.SignedM {
		if v > 0 {
			land++
		}
	}
	return float64(land) / float64(len(f.SignedM))
}

// shiftForTargetRatio returns the elevation delta that would move the
// land/water cutoff to the percentile corresponding to targetRatio.
func shiftForTargetRatio(f *Field, targetRatio float64) float64 {
	n := len(f.SignedM)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, f.SignedM)
	sort.Float64s(sorted)

	idx := n - int(targetRatio*float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return -sorted[idx]
}

// ensureNonDegenerate sets the single lowest cell to -10% of MaxDepthM and
// the single highest cell to +10% of MaxElevM if shaping left no land or
// no water at all.
func ensureNonDegenerate(f *Field) {
	land, water := 0, 0
	minI, maxI := 0, 0
	for i, v := range f.SignedM {
		if v > 0 {
			land++
		} else {
			water++
		}
		if v < f.SignedM[minI] {
			minI = i
		}
		if v > f.SignedM[maxI] {
			maxI = i
		}
	}
	if land > 0 && water > 0 {
		return
	}
	f.Set(minI, -0.1*f.MaxDepthM)
	f.Set(maxI, 0.1*f.MaxElevM)
}
