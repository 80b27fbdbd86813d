package scene

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

const (
	sphereGridSeed = 20240501
	groundY        = -0.5
	smallRadius    = 0.12
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS -> linear sRGB
	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	unit := core.NewInterval(0, 1)
	return core.NewColor(unit.Clamp(r), unit.Clamp(g), unit.Clamp(blue))
}

// NewSphereGridScene creates a jittered grid of small spheres resting on the
// ground, with three large feature spheres in the middle. The layout comes from
// a fixed seed so the scene is identical on every call.
func NewSphereGridScene() *Scene {
	random := rand.New(rand.NewPCG(sphereGridSeed, 0))
	world := geometry.NewHittableList()

	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, groundY-1000, -4), 1000, ground))

	glass := material.NewDielectric(1.5)
	bigCenters := []core.Point3{
		core.NewVec3(-1.3, groundY+0.6, -4),
		core.NewVec3(0, groundY+0.6, -4.5),
		core.NewVec3(1.3, groundY+0.6, -4),
	}
	world.Add(geometry.NewSphere(bigCenters[0], 0.6, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(bigCenters[1], 0.6, glass))
	world.Add(geometry.NewSphere(bigCenters[2], 0.6, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)))

	for i := -8; i <= 8; i++ {
		for k := 0; k < 12; k++ {
			center := core.NewVec3(
				0.4*float64(i)+0.1*random.Float64(),
				groundY+smallRadius,
				-1.5-0.5*float64(k)-0.1*random.Float64(),
			)

			if overlapsAny(center, smallRadius, bigCenters, 0.6) {
				continue
			}

			var mat material.Material
			switch choose := random.Float64(); {
			case choose < 0.7:
				hue := 360 * random.Float64()
				mat = material.NewLambertian(oklchToRGB(0.7, 0.15, hue))
			case choose < 0.9:
				hue := 360 * random.Float64()
				mat = material.NewMetal(oklchToRGB(0.8, 0.08, hue), 0.5*random.Float64())
			default:
				mat = glass
			}
			world.Add(geometry.NewSphere(center, smallRadius, mat))
		}
	}

	return &Scene{
		World:  world,
		Camera: renderer.DefaultCameraConfig(),
	}
}

func overlapsAny(center core.Point3, radius float64, others []core.Point3, otherRadius float64) bool {
	for _, other := range others {
		if center.Subtract(other).Length() < radius+otherRadius {
			return true
		}
	}
	return false
}
