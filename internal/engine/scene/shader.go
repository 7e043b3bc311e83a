// Package scene holds GPU-resident meshes, models built from imported
// assets, and the scene that owns them with their parent/child links.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Shader is the program interface meshes and models draw through.
// *shader.Program satisfies it.
type Shader interface {
	Use()
	Valid() bool
	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat4(name string, m mgl32.Mat4)
}
