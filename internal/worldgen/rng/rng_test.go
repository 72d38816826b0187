package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(12345, SaltMesh)
	b := New(12345, SaltMesh)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDifferentSaltsDecorrelate(t *testing.T) {
	a := New(12345, SaltMesh)
	b := New(12345, SaltElevation)

	same := true
	for i := 0; i < 20; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	assert.False(t, same, "different salts should diverge within 20 draws")
}

func TestUniformRange(t *testing.T) {
	s := New(1, SaltClimate)
	for i := 0; i < 100; i++ {
		v := s.Uniform(0.9, 1.1)
		assert.GreaterOrEqual(t, v, 0.9)
		assert.Less(t, v, 1.1)
	}
}

func TestUniformDegenerateRange(t *testing.T) {
	s := New(1, SaltClimate)
	assert.Equal(t, 5.0, s.Uniform(5.0, 5.0))
}
