package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewDefaultScene creates the classic three spheres on a large ground sphere
func NewDefaultScene() *Scene {
	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50) // air inside glass
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)

	return &Scene{
		World:  world,
		Camera: renderer.DefaultCameraConfig(),
	}
}

// NewSkyScene creates an empty world; every ray sees the background
func NewSkyScene() *Scene {
	return &Scene{
		World:  geometry.NewHittableList(),
		Camera: renderer.DefaultCameraConfig(),
	}
}
