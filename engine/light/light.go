// Package light holds the light sources of a sample and pushes their enable flags and positions to
// a shader.
package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction. Its position
	// vector carries w = 0.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position. Its position
	// vector carries w = 1.
	LightTypePoint
)

func (t LightType) w() float32 {
	if t == LightTypePoint {
		return 1
	}
	return 0
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	enabled   bool
}

// Light defines the interface for a light source in a sample scene.
//
// Lights are owned by a Set, which flattens them into the uLightState flags and the uLightPos
// vector read by the lit shaders.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or point)
	Type() LightType

	// Position returns the homogeneous position of the light: w is 1 for point lights and 0 for
	// directional lights, whose xyz is then a direction.
	//
	// Returns:
	//   - mgl32.Vec4: the position
	Position() mgl32.Vec4

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Enabled returns whether this light is active for rendering.
	Enabled() bool

	// SetPosition sets the position, or the direction of a directional light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white color, unit intensity and any
// provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec4 {
	return l.position.Vec4(l.lightType.w())
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = mgl32.Vec3{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// Orbit returns the point at angle radians on a circle of the given radius in the XY plane.
//
// Parameters:
//   - angle: the angle in radians, 0 on the +X axis
//   - radius: the circle radius
//
// Returns:
//   - mgl32.Vec3: the point, with z = 0
func Orbit(angle, radius float32) mgl32.Vec3 {
	s, c := math32.Sincos(angle)
	return mgl32.Vec3{c * radius, s * radius, 0}
}
