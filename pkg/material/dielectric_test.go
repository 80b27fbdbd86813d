package material

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false

	sampler := core.NewSeededSampler(42)
	for i := 0; i < 2000 && (!hasReflection || !hasRefraction); i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewColor(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}

		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	// Reflectance at 45° for air->glass is ~5%, 2000 draws see both outcomes
	if !hasRefraction || !hasReflection {
		t.Errorf("Expected both outcomes: reflection=%t refraction=%t", hasReflection, hasRefraction)
	}
}

func TestDielectricRefractionFollowsSnell(t *testing.T) {
	glass := NewDielectric(1.5)
	rayDirection := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	// A draw of 0.999 beats Schlick's reflectance, forcing refraction
	result, _ := glass.Scatter(ray, hit, fixedSampler{value1D: 0.999})
	out := result.Scattered.Direction

	if math.Abs(out.Length()-1) > 1e-9 {
		t.Errorf("Refracted direction should be unit, got %f", out.Length())
	}
	sinIn := math.Sqrt(0.5)
	sinOut := out.X
	if math.Abs(sinIn-1.5*sinOut) > 1e-9 {
		t.Errorf("Snell's law violated: sin_in=%f, 1.5*sin_out=%f", sinIn, 1.5*sinOut)
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass travelling at a shallow angle towards the surface
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false, // exiting the material
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	// Even a draw that would otherwise refract must reflect
	for _, draw := range []float64{0, 0.5, 0.999999} {
		result, scattered := glass.Scatter(ray, hit, fixedSampler{value1D: draw})
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Y <= 0 {
			t.Errorf("Expected total internal reflection (ray going up), got %v", result.Scattered.Direction)
		}
		if math.Abs(result.Scattered.Direction.X-rayDirection.X) > 1e-10 {
			t.Errorf("Expected X component %.6f, got %.6f", rayDirection.X, result.Scattered.Direction.X)
		}
	}
}

func TestReflectanceFunction(t *testing.T) {
	// Normal incidence - should be low for air->glass
	r0 := Reflectance(1.0, 1.0/1.5)
	if math.Abs(r0-0.04) > 1e-9 {
		t.Errorf("Normal incidence reflectance = %.5f, expected 0.04", r0)
	}

	// Grazing incidence - reflectance reaches 1
	r90 := Reflectance(0.0, 1.0/1.5)
	if math.Abs(r90-1) > 1e-12 {
		t.Errorf("Grazing incidence reflectance = %.3f, expected 1.0", r90)
	}

	r45 := Reflectance(math.Sqrt(0.5), 1.0/1.5)
	if r45 <= r0 || r90 <= r45 {
		t.Errorf("Reflectance should increase with angle: R(0°)=%.3f, R(45°)=%.3f, R(90°)=%.3f", r0, r45, r90)
	}
}
