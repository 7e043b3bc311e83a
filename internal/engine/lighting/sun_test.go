package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float32
		elevation float32
		want      mgl32.Vec3
	}{
		{"zenith", 0, 90, mgl32.Vec3{0, 1, 0}},
		{"horizon +Z", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"horizon +X", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"horizon -Z", 180, 0, mgl32.Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
			if l := got.Len(); l < 0.9999 || l > 1.0001 {
				t.Errorf("length = %v, want 1", l)
			}
		})
	}
}

func TestNewSunClampsAmbient(t *testing.T) {
	if got := NewSun(0, 45, mgl32.Vec3{1, 1, 1}, 2).Ambient; got != 1 {
		t.Errorf("ambient = %v, want 1", got)
	}
	if got := NewSun(0, 45, mgl32.Vec3{1, 1, 1}, -1).Ambient; got != 0 {
		t.Errorf("ambient = %v, want 0", got)
	}
}

type recorder struct {
	vecs   map[string]mgl32.Vec3
	floats map[string]float32
}

func (r *recorder) SetVec3(name string, v mgl32.Vec3) { r.vecs[name] = v }
func (r *recorder) SetFloat(name string, v float32)   { r.floats[name] = v }

func TestApply(t *testing.T) {
	sun := DefaultSun()
	r := &recorder{vecs: map[string]mgl32.Vec3{}, floats: map[string]float32{}}
	sun.Apply(r)

	if r.vecs["u_LightDir"] != sun.Direction {
		t.Errorf("u_LightDir = %v", r.vecs["u_LightDir"])
	}
	if r.vecs["u_LightColor"] != (mgl32.Vec3{DefaultDiffuse, DefaultDiffuse, DefaultDiffuse}) {
		t.Errorf("u_LightColor = %v", r.vecs["u_LightColor"])
	}
	if r.floats["u_Ambient"] != DefaultAmbient {
		t.Errorf("u_Ambient = %v", r.floats["u_Ambient"])
	}
	if sun.Direction.Y() <= 0 {
		t.Errorf("default sun is below the horizon: %v", sun.Direction)
	}
}
