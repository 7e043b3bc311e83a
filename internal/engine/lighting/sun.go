// Package lighting describes the directional light the model shader uses.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default sun placement in degrees and its strength.
const (
	DefaultAzimuth   = 53
	DefaultElevation = 63
	DefaultDiffuse   = 0.65
	DefaultAmbient   = 0.35
)

// Uniforms is the part of a shader program a light writes to.
type Uniforms interface {
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
}

// Sun is a directional light with a flat ambient term.
type Sun struct {
	Direction mgl32.Vec3 // unit vector pointing towards the sun
	Color     mgl32.Vec3
	Ambient   float32
}

// DefaultSun returns a white sun above and behind the default camera.
func DefaultSun() Sun {
	return NewSun(DefaultAzimuth, DefaultElevation, mgl32.Vec3{1, 1, 1}.Mul(DefaultDiffuse), DefaultAmbient)
}

// NewSun places a sun by azimuth around +Y and elevation above the horizon.
func NewSun(azimuth, elevation float32, color mgl32.Vec3, ambient float32) Sun {
	return Sun{
		Direction: SunDirection(azimuth, elevation),
		Color:     color,
		Ambient:   mgl32.Clamp(ambient, 0, 1),
	}
}

// SunDirection converts azimuth and elevation in degrees to a unit vector
// pointing towards the sun. Azimuth 0 faces +Z; elevation 90 is straight up.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// Apply uploads the light to a bound program.
func (s Sun) Apply(u Uniforms) {
	u.SetVec3("u_LightDir", s.Direction)
	u.SetVec3("u_LightColor", s.Color)
	u.SetFloat("u_Ambient", s.Ambient)
}
