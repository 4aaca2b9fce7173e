package mesh

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

type shapeConfig struct {
	label      string
	normals    bool
	texCoords  bool
	colors     bool
	color      common.Color
	faceColors []common.Color
	mode       backend.DrawMode
}

// ShapeBuilderOption is a functional option used to configure generated geometry.
type ShapeBuilderOption func(*shapeConfig)

// WithLabel sets the mesh label.
func WithLabel(label string) ShapeBuilderOption {
	return func(c *shapeConfig) {
		c.label = label
	}
}

// WithNormals sets whether per-vertex normals are generated.
//
// Parameters:
//   - enabled: a boolean indicating whether normals should be generated
//
// Returns:
//   - ShapeBuilderOption: a function that toggles normals
func WithNormals(enabled bool) ShapeBuilderOption {
	return func(c *shapeConfig) {
		c.normals = enabled
	}
}

// WithTexCoords sets whether per-vertex texture coordinates are generated.
//
// Parameters:
//   - enabled: a boolean indicating whether texture coordinates should be generated
//
// Returns:
//   - ShapeBuilderOption: a function that toggles texture coordinates
func WithTexCoords(enabled bool) ShapeBuilderOption {
	return func(c *shapeConfig) {
		c.texCoords = enabled
	}
}

// WithColor generates a per-vertex color attribute filled with one color.
//
// Parameters:
//   - color: the vertex color
//
// Returns:
//   - ShapeBuilderOption: a function that enables the color attribute
func WithColor(color common.Color) ShapeBuilderOption {
	return func(c *shapeConfig) {
		c.colors = true
		c.color = color
		c.faceColors = nil
	}
}

// WithVertexColors generates a per-vertex color attribute. Cubes color each face from the given
// palette (cycled), or from a default six color palette when none is given. Other shapes use the
// first palette entry.
//
// Parameters:
//   - palette: optional face colors
//
// Returns:
//   - ShapeBuilderOption: a function that enables the color attribute
func WithVertexColors(palette ...common.Color) ShapeBuilderOption {
	return func(c *shapeConfig) {
		c.colors = true
		if len(palette) == 0 {
			palette = defaultFaceColors
		}
		c.faceColors = palette
		c.color = palette[0]
	}
}

// WithDrawMode overrides the primitive topology of the generated mesh.
func WithDrawMode(mode backend.DrawMode) ShapeBuilderOption {
	return func(c *shapeConfig) {
		c.mode = mode
	}
}

var defaultFaceColors = []common.Color{
	{R: 1, G: 0, B: 0, A: 1},
	{R: 0, G: 1, B: 0, A: 1},
	{R: 0, G: 0, B: 1, A: 1},
	{R: 1, G: 1, B: 0, A: 1},
	{R: 0, G: 1, B: 1, A: 1},
	{R: 1, G: 0, B: 1, A: 1},
}

func newShapeConfig(label string, options []ShapeBuilderOption) *shapeConfig {
	c := &shapeConfig{label: label, color: common.Color{R: 1, G: 1, B: 1, A: 1}, mode: backend.DrawModeTriangles}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// layout returns the interleaved layout: position, then normal, color and texcoord when enabled.
func (c *shapeConfig) layout() backend.VertexLayout {
	l := backend.VertexLayout{}
	add := func(s backend.Semantic, n int) {
		l.Attribs = append(l.Attribs, backend.VertexAttrib{Semantic: s, Components: n, Offset: l.Stride})
		l.Stride += n * 4
	}
	add(backend.SemanticPosition, 3)
	if c.normals {
		add(backend.SemanticNormal, 3)
	}
	if c.colors {
		add(backend.SemanticColor, 4)
	}
	if c.texCoords {
		add(backend.SemanticTexCoord, 2)
	}
	return l
}

// vertex appends one interleaved vertex, skipping attributes that are disabled.
func (c *shapeConfig) vertex(dst []float32, pos, normal [3]float32, color common.Color, uv [2]float32) []float32 {
	dst = append(dst, pos[:]...)
	if c.normals {
		dst = append(dst, normal[:]...)
	}
	if c.colors {
		dst = append(dst, color.R, color.G, color.B, color.A)
	}
	if c.texCoords {
		dst = append(dst, uv[:]...)
	}
	return dst
}
