package mesh

import (
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/chewxy/math32"
)

// maxSphereDivisions keeps sphere vertex counts inside 16 bit indices.
const maxSphereDivisions = 254

type cubeFace struct {
	n, u, v [3]float32
}

// faces are listed with u x v = n so corners wind counter-clockwise seen from outside.
var cubeFaces = [6]cubeFace{
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
}

// Cube generates an axis aligned cube centred on the origin with 24 vertices and 36 indices.
//
// Parameters:
//   - size: the edge length
//   - options: a variadic list of ShapeBuilderOption functions
//
// Returns:
//   - backend.MeshData: the cube
func Cube(size float32, options ...ShapeBuilderOption) backend.MeshData {
	c := newShapeConfig("cube", options)
	h := size * 0.5
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	verts := make([]float32, 0, 24*c.layout().Stride/4)
	indices := make([]uint16, 0, 36)
	for i, f := range cubeFaces {
		color := c.color
		if len(c.faceColors) > 0 {
			color = c.faceColors[i%len(c.faceColors)]
		}
		base := uint16(i * 4)
		for _, k := range corners {
			var pos [3]float32
			for a := 0; a < 3; a++ {
				pos[a] = (f.n[a] + f.u[a]*k[0] + f.v[a]*k[1]) * h
			}
			uv := [2]float32{(k[0] + 1) * 0.5, (1 - k[1]) * 0.5}
			verts = c.vertex(verts, pos, f.n, color, uv)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return backend.MeshData{
		Label:       c.label,
		Layout:      c.layout(),
		Vertices:    verts,
		Indices:     indices,
		Mode:        c.mode,
		VertexCount: 24,
	}
}

// Plane generates a rectangle in the XY plane facing +Z, centred on the origin.
//
// Parameters:
//   - width: the extent along X
//   - height: the extent along Y
//   - options: a variadic list of ShapeBuilderOption functions
//
// Returns:
//   - backend.MeshData: the plane
func Plane(width, height float32, options ...ShapeBuilderOption) backend.MeshData {
	c := newShapeConfig("plane", options)
	hw, hh := width*0.5, height*0.5
	n := [3]float32{0, 0, 1}

	var verts []float32
	for i, k := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		color := c.color
		if len(c.faceColors) > 0 {
			color = c.faceColors[i%len(c.faceColors)]
		}
		verts = c.vertex(verts, [3]float32{k[0] * hw, k[1] * hh, 0}, n, color, [2]float32{(k[0] + 1) * 0.5, (1 - k[1]) * 0.5})
	}

	return backend.MeshData{
		Label:       c.label,
		Layout:      c.layout(),
		Vertices:    verts,
		Indices:     []uint16{0, 1, 2, 0, 2, 3},
		Mode:        c.mode,
		VertexCount: 4,
	}
}

// Quad generates a non-indexed clip space quad covering the viewport, drawn as a triangle strip.
func Quad(options ...ShapeBuilderOption) backend.MeshData {
	c := newShapeConfig("quad", append([]ShapeBuilderOption{WithDrawMode(backend.DrawModeTriangleStrip)}, options...))
	n := [3]float32{0, 0, 1}

	var verts []float32
	for _, k := range [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		verts = c.vertex(verts, [3]float32{k[0], k[1], 0}, n, c.color, [2]float32{(k[0] + 1) * 0.5, (1 - k[1]) * 0.5})
	}

	return backend.MeshData{
		Label:       c.label,
		Layout:      c.layout(),
		Vertices:    verts,
		Mode:        c.mode,
		VertexCount: 4,
	}
}

// Sphere generates a UV sphere centred on the origin.
//
// Parameters:
//   - radius: the sphere radius
//   - rings: latitude divisions, at least 2
//   - sectors: longitude divisions, at least 3
//   - options: a variadic list of ShapeBuilderOption functions
//
// Returns:
//   - backend.MeshData: the sphere
func Sphere(radius float32, rings, sectors int, options ...ShapeBuilderOption) backend.MeshData {
	c := newShapeConfig("sphere", options)
	rings = min(max(rings, 2), maxSphereDivisions)
	sectors = min(max(sectors, 3), maxSphereDivisions)

	count := (rings + 1) * (sectors + 1)
	verts := make([]float32, 0, count*c.layout().Stride/4)
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)
		for s := 0; s <= sectors; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(sectors)
			sinTheta, cosTheta := math32.Sincos(theta)
			n := [3]float32{sinPhi * sinTheta, cosPhi, sinPhi * cosTheta}
			pos := [3]float32{n[0] * radius, n[1] * radius, n[2] * radius}
			uv := [2]float32{float32(s) / float32(sectors), float32(r) / float32(rings)}
			verts = c.vertex(verts, pos, n, c.color, uv)
		}
	}

	indices := make([]uint16, 0, rings*sectors*6)
	stride := sectors + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			a := uint16(r*stride + s)
			b := a + 1
			cc := uint16((r+1)*stride + s)
			d := cc + 1
			indices = append(indices, a, cc, d, a, d, b)
		}
	}

	return backend.MeshData{
		Label:       c.label,
		Layout:      c.layout(),
		Vertices:    verts,
		Indices:     indices,
		Mode:        c.mode,
		VertexCount: count,
	}
}

// NewCube wraps Cube in a Mesh.
func NewCube(size float32, options ...ShapeBuilderOption) Mesh {
	return NewMesh(Cube(size, options...))
}

// NewPlane wraps Plane in a Mesh.
func NewPlane(width, height float32, options ...ShapeBuilderOption) Mesh {
	return NewMesh(Plane(width, height, options...))
}

// NewQuad wraps Quad in a Mesh.
func NewQuad(options ...ShapeBuilderOption) Mesh {
	return NewMesh(Quad(options...))
}

// NewSphere wraps Sphere in a Mesh.
func NewSphere(radius float32, rings, sectors int, options ...ShapeBuilderOption) Mesh {
	return NewMesh(Sphere(radius, rings, sectors, options...))
}

