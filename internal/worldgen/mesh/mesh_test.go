package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldforge/internal/worldgen/config"
)

func smallConfig() config.Config {
	return config.Config{
		Seed:       7,
		CellCount:  200,
		Aspect:     1.5,
		CellSizeKm: 4,
		Template:   config.TemplateLowIsland,
	}
}

func TestBuildProducesRequestedCellCount(t *testing.T) {
	m := Build(smallConfig())
	// jittered grid rounds to the nearest whole row/column, so an exact
	// match isn't guaranteed, but it must be close.
	assert.InDelta(t, 200, m.CellCount, 40)
}

func TestBuildAreasArePositive(t *testing.T) {
	m := Build(smallConfig())
	require.Greater(t, m.CellCount, 0)
	for i, area := range m.AreaKm2 {
		assert.Greaterf(t, area, 0.0, "cell %d has non-positive area", i)
	}
}

func TestBuildNeighborsAreIndexAligned(t *testing.T) {
	m := Build(smallConfig())
	for i := range m.Polygon {
		assert.Equal(t, len(m.Polygon[i]), len(m.Neighbor[i]), "cell %d polygon/neighbor length mismatch", i)
		for _, nb := range m.Neighbor[i] {
			if nb == -1 {
				continue
			}
			assert.GreaterOrEqual(t, nb, 0)
			assert.Less(t, nb, m.CellCount)
		}
	}
}

func TestBuildFlagsBoundaryCells(t *testing.T) {
	m := Build(smallConfig())
	sawBoundary := false
	for _, b := range m.IsBoundary {
		if b {
			sawBoundary = true
			break
		}
	}
	assert.True(t, sawBoundary, "expected at least one boundary cell near the map edge")
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := smallConfig()
	m1 := Build(cfg)
	m2 := Build(cfg)
	require.Equal(t, m1.CellCount, m2.CellCount)
	for i := range m1.Center {
		assert.Equal(t, m1.Center[i], m2.Center[i])
		assert.InDelta(t, m1.AreaKm2[i], m2.AreaKm2[i], 1e-9)
	}
}

func TestFindNearestCellReturnsClosest(t *testing.T) {
	m := Build(smallConfig())
	target := m.Center[5]
	nearest := m.FindNearestCell(Point{target.X + 0.001, target.Y + 0.001})
	assert.Equal(t, 5, nearest)
}
