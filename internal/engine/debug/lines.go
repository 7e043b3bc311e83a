// Package debug provides debug line geometry and screenshot capture.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/model"
)

// Line is one colored segment.
type Line struct {
	From  mgl32.Vec3
	To    mgl32.Vec3
	Color mgl32.Vec3
}

// Axis colors.
var (
	AxisX     = mgl32.Vec3{1, 0, 0}
	AxisY     = mgl32.Vec3{0, 1, 0}
	AxisZ     = mgl32.Vec3{0, 0, 1}
	GridColor = mgl32.Vec3{0.3, 0.3, 0.3}
)

// DefaultBoundsPadding expands selection boxes so they do not z-fight with
// the model surface.
const DefaultBoundsPadding = 0.05

// GridLines returns lines on the XZ plane from -half to +half every spacing
// units, along both axes.
func GridLines(half int, spacing float32, color mgl32.Vec3) []Line {
	if half <= 0 || spacing <= 0 {
		return nil
	}
	extent := float32(half)
	steps := int(extent / spacing)

	lines := make([]Line, 0, 2*(2*steps+1))
	for i := -steps; i <= steps; i++ {
		p := float32(i) * spacing
		lines = append(lines,
			Line{From: mgl32.Vec3{p, 0, -extent}, To: mgl32.Vec3{p, 0, extent}, Color: color},
			Line{From: mgl32.Vec3{-extent, 0, p}, To: mgl32.Vec3{extent, 0, p}, Color: color},
		)
	}
	return lines
}

// AxisLines returns X, Y and Z from the origin in red, green and blue.
func AxisLines(length float32) []Line {
	return []Line{
		{To: mgl32.Vec3{length, 0, 0}, Color: AxisX},
		{To: mgl32.Vec3{0, length, 0}, Color: AxisY},
		{To: mgl32.Vec3{0, 0, length}, Color: AxisZ},
	}
}

// BoundsWireframe returns the 12 edges of b grown by padding, as 24
// endpoints of 3 floats each.
func BoundsWireframe(b model.Bounds, padding float32) []float32 {
	minX, minY, minZ := b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding
	maxX, maxY, maxZ := b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding

	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BoundsWireframeVertexCount is the number of endpoints BoundsWireframe returns.
const BoundsWireframeVertexCount = 24

// BoundsLines returns the edges of b as Lines. An empty box has none.
func BoundsLines(b model.Bounds, padding float32, color mgl32.Vec3) []Line {
	if b.IsEmpty() {
		return nil
	}
	v := BoundsWireframe(b, padding)
	lines := make([]Line, 0, BoundsWireframeVertexCount/2)
	for i := 0; i < len(v); i += 6 {
		lines = append(lines, Line{
			From:  mgl32.Vec3{v[i], v[i+1], v[i+2]},
			To:    mgl32.Vec3{v[i+3], v[i+4], v[i+5]},
			Color: color,
		})
	}
	return lines
}
