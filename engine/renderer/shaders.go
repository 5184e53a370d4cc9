package renderer

import (
	_ "embed"
)

// DefaultShaderName is the asset name of the built-in 2D shader.
const DefaultShaderName = "basic2d"

// ProjectionUniform is the name of the projection matrix uniform every 2D
// shader must declare.
const ProjectionUniform = "uProjection"

//go:embed shaders/basic2d.vert
var defaultVertexSource string

//go:embed shaders/basic2d.frag
var defaultFragmentSource string

// DefaultShaderSource returns the built-in position+color shader.
func DefaultShaderSource() ShaderSource {
	return ShaderSource{
		Name:     DefaultShaderName,
		Vertex:   defaultVertexSource,
		Fragment: defaultFragmentSource,
	}
}
