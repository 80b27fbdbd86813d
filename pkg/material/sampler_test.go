package material

import "github.com/df07/go-weekend-raytracer/pkg/core"

// fixedSampler replays the same values so scattering decisions can be forced
type fixedSampler struct {
	value1D float64
	value3D core.Vec3
}

func (f fixedSampler) Get1D() float64 { return f.value1D }

func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value1D, f.value1D) }

func (f fixedSampler) Get3D() core.Vec3 { return f.value3D }

// downSample makes RandomUnitVector return (0,-1,0)
var downSample = core.NewVec3(0.5, 0, 0.5)
