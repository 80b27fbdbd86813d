package material

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color // Fraction of incoming light reflected per channel
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// normal + unit sphere sample gives a cosine-distributed direction
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The sample can land opposite the normal and cancel it out
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

func (l *Lambertian) String() string {
	return fmt.Sprintf("lambertian(albedo=%.2f,%.2f,%.2f)", l.Albedo.X, l.Albedo.Y, l.Albedo.Z)
}
