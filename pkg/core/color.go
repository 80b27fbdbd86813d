package core

import (
	"image/color"
	"math"
)

// intensity is the range a gamma-encoded channel is clamped to before quantization
var intensity = NewInterval(0.000, 0.999)

// Color is linear RGB radiance stored in a Vec3.
// Components are unbounded until Quantize is applied.
type Color struct {
	Vec3
}

// NewColor creates a new linear color
func NewColor(r, g, b float64) Color {
	return Color{Vec3{X: r, Y: g, Z: b}}
}

// Black is the absence of radiance
var Black = Color{}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.Vec3.Add(other.Vec3)}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.Vec3.Multiply(scalar)}
}

// Attenuate returns the element-wise product of two colors
func (c Color) Attenuate(other Color) Color {
	return Color{c.MultiplyVec(other.Vec3)}
}

// LinearToGamma encodes one linear channel with a gamma 2 curve
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// Gamma returns the gamma-encoded color
func (c Color) Gamma() Color {
	return NewColor(LinearToGamma(c.X), LinearToGamma(c.Y), LinearToGamma(c.Z))
}

// Quantize gamma-encodes the color and maps each channel to an 8-bit value
func (c Color) Quantize() (r, g, b uint8) {
	return quantizeChannel(c.X), quantizeChannel(c.Y), quantizeChannel(c.Z)
}

func quantizeChannel(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linear)))
}

// ToRGBA converts the color to an opaque 8-bit RGBA value
func (c Color) ToRGBA() color.RGBA {
	r, g, b := c.Quantize()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
