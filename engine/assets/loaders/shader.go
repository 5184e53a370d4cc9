package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/anima2d/engine/renderer"
)

const (
	VertexExtension   = ".vert"
	FragmentExtension = ".frag"
)

// ShaderLoader reads a GLSL stage pair. The path is given without extension
// and <path>.vert and <path>.frag are read. Data holds a renderer.ShaderSource.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, params interface{}) (*Resource, error) {
	vertex, err := os.ReadFile(path + VertexExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertex stage: %w", err)
	}
	fragment, err := os.ReadFile(path + FragmentExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment stage: %w", err)
	}
	name := filepath.Base(path)
	if n, ok := params.(string); ok && n != "" {
		name = n
	}
	return &Resource{
		Name:     name,
		Type:     ResourceTypeShader,
		FullPath: path,
		DataSize: uint64(len(vertex) + len(fragment)),
		Data: renderer.ShaderSource{
			Name:     name,
			Vertex:   string(vertex),
			Fragment: string(fragment),
		},
	}, nil
}

func (sl *ShaderLoader) Unload(res *Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
