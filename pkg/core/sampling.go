package core

import (
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own PCG stream
func NewSeededSampler(seed uint64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(seed, 0)))
}

// NewPixelSampler creates a sampler whose stream depends only on the render seed
// and the pixel coordinates, so a pixel renders identically on any worker
func NewPixelSampler(seed uint64, x, y int) *RandomSampler {
	stream := uint64(uint32(y))<<32 | uint64(uint32(x))
	return NewRandomSampler(rand.New(rand.NewPCG(seed, stream)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}
