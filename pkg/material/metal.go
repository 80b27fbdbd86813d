package material

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Color // Metal color
	Fuzz   float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	// Clamp fuzz to valid range
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Reflect(hit.Normal).Normalize()
	reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzz))

	scattered := core.NewRay(hit.Point, reflected)

	// Fuzz can push the ray below the surface; it is absorbed
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}

func (m *Metal) String() string {
	return fmt.Sprintf("metal(albedo=%.2f,%.2f,%.2f fuzz=%.2f)", m.Albedo.X, m.Albedo.Y, m.Albedo.Z, m.Fuzz)
}
