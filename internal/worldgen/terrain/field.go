// Package terrain implements the template-shaping DSL interpreter and the
// land-ratio homeostasis correction.
package terrain

import (
	"worldforge/internal/worldgen/config"
	"worldforge/internal/worldgen/mesh"
)

// Field is the mutable elevation-in-progress the DSL interpreter writes
// into; once shaping and homeostasis finish it is frozen into the
// immutable ElevationField the rest of the pipeline reads.
type Field struct {
	M         *mesh.CellMesh
	SignedM   []float64
	MaxElevM  float64
	MaxDepthM float64
	WidthKm   float64
	HeightKm  float64
	Tuning    config.TuningProfile
}

// ElevationField is the public, read-only output of stages 2-3.
type ElevationField struct {
	SignedM   []float64
	MaxElevM  float64
	MaxDepthM float64
}

// NewField allocates a zeroed working field sized to the mesh.
func NewField(m *mesh.CellMesh, cfg config.Config) *Field {
	return &Field{
		M:         m,
		SignedM:   make([]float64, m.CellCount),
		MaxElevM:  cfg.MaxElevationM,
		MaxDepthM: cfg.MaxDepthM,
		WidthKm:   m.Meta.WidthKm,
		HeightKm:  m.Meta.HeightKm,
		Tuning:    cfg.Tuning,
	}
}

func (f *Field) clampOne(v float64) float64 {
	if v > f.MaxElevM {
		return f.MaxElevM
	}
	if v < -f.MaxDepthM {
		return -f.MaxDepthM
	}
	return v
}

// Set writes a clamped value to cell i.
func (f *Field) Set(i int, v float64) {
	f.SignedM[i] = f.clampOne(v)
}

// Add clamps (current + delta) into cell i.
func (f *Field) Add(i int, delta float64) {
	f.Set(i, f.SignedM[i]+delta)
}

// ShapeUnit is the DSL's internal elevation unit: (max_elev+max_depth)/100.
func (f *Field) ShapeUnit() float64 {
	return (f.MaxElevM + f.MaxDepthM) / 100
}

// Freeze copies the working field into the public, read-only output type.
func (f *Field) Freeze() ElevationField {
	out := make([]float64, len(f.SignedM))
	copy(out, f.SignedM)
	return ElevationField{SignedM: out, MaxElevM: f.MaxElevM, MaxDepthM: f.MaxDepthM}
}

// LandCount and WaterCount classify by the land <=> value>0 rule.
func (e ElevationField) LandCount() int {
	n := 0
	for _, v := range e.SignedM {
		if v > 0 {
			n++
		}
	}
	return n
}

func (e ElevationField) WaterCount() int {
	return len(e.SignedM) - e.LandCount()
}

func (e ElevationField) LandRatio() float64 {
	if len(e.SignedM) == 0 {
		return 0
	}
	return float64(e.LandCount()) / float64(len(e.SignedM))
}
