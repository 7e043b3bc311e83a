// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DefaultVertexShader is the vertex shader for textured models.
//
//go:embed default.vert
var DefaultVertexShader string

// DefaultFragmentShader is the fragment shader for textured models.
//
//go:embed default.frag
var DefaultFragmentShader string

// LineVertexShader is the vertex shader for debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the flat-color fragment shader for debug lines.
//
//go:embed line.frag
var LineFragmentShader string

// SkyboxVertexShader is the vertex shader for the cubemap skybox.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the cubemap skybox.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
