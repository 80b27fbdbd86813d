package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var (
	testMaterial = material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	forward      = core.NewInterval(0.001, math.Inf(1))
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, forward)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -4),
			expectedT:      0.5,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, forward)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != testMaterial {
				t.Error("Hit record should carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 0.5)); isHit {
		t.Errorf("Expected miss due to max bound, but got hit at t=%f", hit.T)
	}
	if hit, isHit := sphere.Hit(ray, core.NewInterval(3.5, 1000)); isHit {
		t.Errorf("Expected miss due to min bound, but got hit at t=%f", hit.T)
	}

	// The interval is exclusive: a root sitting on the bound does not count
	if hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1)); isHit {
		t.Errorf("Expected miss for root on the upper bound, got t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit := sphere.Hit(ray, core.NewInterval(1.5, 1000))
	if !isHit || math.Abs(hit.T-3) > 1e-9 {
		t.Fatalf("Expected far root t=3, got %v %v", hit, isHit)
	}
	if hit.FrontFace {
		t.Error("Far root is reached from inside the sphere")
	}
}

func TestSphere_Hit_CenterOfView(t *testing.T) {
	// Unit sphere two units in front of a camera at the origin
	sphere := NewSphere(core.NewVec3(0, 0, -2), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, core.NewInterval(0, math.Inf(1)))
	if !isHit {
		t.Fatal("Expected hit through the image center")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected t≈1, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestSphere_Hit_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -2), 1.0, testMaterial)

	// Grazes the sphere at (1,0,-2): discriminant is exactly zero
	tangent := core.NewRay(core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := sphere.Hit(tangent, core.NewInterval(0, math.Inf(1)))
	if !isHit {
		t.Fatal("Tangent root strictly inside the interval should be a hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected single root t=2, got %f", hit.T)
	}
	if _, isHit := sphere.Hit(tangent, core.NewInterval(0, 2)); isHit {
		t.Error("Tangent root on the interval bound must miss")
	}

	// Oblique ray from the camera: non-negative discriminant, the nearer root wins
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, -2))
	oc := sphere.Center.Subtract(ray.Origin)
	h := ray.Direction.Dot(oc)
	a := ray.Direction.LengthSquared()
	discriminant := h*h - a*(oc.LengthSquared()-1)
	if discriminant < 0 {
		t.Fatalf("Test setup error: discriminant %f should be non-negative", discriminant)
	}

	hit, isHit = sphere.Hit(ray, core.NewInterval(0, math.Inf(1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	expectedT := (h - math.Sqrt(discriminant)) / a
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected nearer root t=%f, got %f", expectedT, hit.T)
	}
}

func TestSphere_ZeroAndNegativeRadius(t *testing.T) {
	negative := NewSphere(core.NewVec3(0, 0, -1), -2, testMaterial)
	if negative.Radius != 0 {
		t.Errorf("Expected negative radius to clamp to 0, got %f", negative.Radius)
	}

	// Even a ray straight through the center misses
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := negative.Hit(ray, forward); isHit {
		t.Error("Zero radius sphere must never be hit")
	}
}

func TestSphere_HitProperties(t *testing.T) {
	sampler := core.NewSeededSampler(2024)
	hits, backHits := 0, 0

	for i := 0; i < 5000; i++ {
		center := core.RandomUnitVector(sampler).Multiply(3 * sampler.Get1D())
		radius := 0.1 + 2*sampler.Get1D()
		sphere := NewSphere(center, radius, testMaterial)

		origin := core.RandomUnitVector(sampler).Multiply(5 * sampler.Get1D())
		direction := core.RandomUnitVector(sampler).Multiply(0.1 + 3*sampler.Get1D())
		ray := core.NewRay(origin, direction)
		interval := core.NewInterval(0.001, 10)

		hit, isHit := sphere.Hit(ray, interval)
		if !isHit {
			continue
		}
		hits++
		if !hit.FrontFace {
			backHits++
		}

		if !interval.Surrounds(hit.T) {
			t.Fatalf("t=%f outside interval %v", hit.T, interval)
		}
		distance := ray.At(hit.T).Subtract(center).Length()
		if math.Abs(distance-radius) > 1e-6*radius {
			t.Fatalf("Hit point at distance %f from center, radius %f", distance, radius)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-6 {
			t.Fatalf("Normal not unit: %f", hit.Normal.Length())
		}
		outward := ray.At(hit.T).Subtract(center)
		if (ray.Direction.Dot(outward) < 0) != hit.FrontFace {
			t.Fatalf("FrontFace=%t but direction·outward=%f", hit.FrontFace, ray.Direction.Dot(outward))
		}
		if hit.Normal.Dot(ray.Direction) > 0 {
			t.Fatalf("Normal must oppose the ray, normal·direction=%f", hit.Normal.Dot(ray.Direction))
		}
	}

	if hits == 0 {
		t.Fatal("No random rays hit; property not exercised")
	}
	if backHits == 0 {
		t.Fatal("No random ray hit a back face; property not exercised")
	}
}
