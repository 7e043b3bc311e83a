// Package picking provides ray casting and model picking.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/model"
	"github.com/Faultbox/modelview/internal/engine/scene"
)

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts pixel coordinates (origin top-left) into a world-space
// ray. invViewProj is the inverse of projection * view.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl32.Mat4, p mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(p)
	if w[3] != 0 {
		return w.Vec3().Mul(1 / w[3])
	}
	return w.Vec3()
}

// IntersectAABB returns the distance to the entry point of box, or the exit
// point when the ray starts inside it.
func (r Ray) IntersectAABB(box model.Bounds) (t float32, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectPlaneY returns the XZ point where the ray crosses height y.
func (r Ray) IntersectPlaneY(y float32) (x, z float32, ok bool) {
	if abs32(r.Direction[1]) < 0.001 {
		return 0, 0, false
	}
	t := (y - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false
	}
	p := r.At(t)
	return p[0], p[2], true
}

// PickModel returns the index of the nearest visible model whose world
// bounds the ray hits.
func PickModel(r Ray, models []*scene.Model) (index int, dist float32, ok bool) {
	index = -1
	for i, m := range models {
		if m == nil || !m.Visible() {
			continue
		}
		t, hit := r.IntersectAABB(m.WorldBounds())
		if hit && (!ok || t < dist) {
			index, dist, ok = i, t, true
		}
	}
	return index, dist, ok
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
