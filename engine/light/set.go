package light

import (
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the length of the uLightState array in the lit shaders.
const MaxLights = 8

// Uniform names written by Set.Apply.
const (
	UniformLightState    = "uLightState"
	UniformLightPosition = "uLightPos"
)

// ErrTooManyLights is returned by Set.Add when the set already holds MaxLights lights.
var ErrTooManyLights = errors.New("light: set is full")

// UniformSetter is the part of a shader a Set writes to.
type UniformSetter interface {
	SetVec4(name string, v mgl32.Vec4)
	SetIntArray(name string, v []int32)
}

type set struct {
	lights []Light
}

// Set is an ordered list of up to MaxLights lights. Slot i of the state array belongs to the i-th
// added light.
type Set interface {
	// Add appends a light.
	//
	// Parameters:
	//   - l: the light
	//
	// Returns:
	//   - int: the light's slot
	//   - error: ErrTooManyLights when the set is full
	Add(l Light) (int, error)

	// Remove drops a light; later lights move down one slot.
	//
	// Returns:
	//   - bool: true if the light was in the set
	Remove(l Light) bool

	// Light returns the light in slot i, or nil.
	Light(i int) Light

	// Len returns the number of lights.
	Len() int

	// States returns MaxLights flags, 1 for each enabled light and 0 for disabled or empty slots.
	States() []int32

	// Positions returns the homogeneous position of every light multiplied by m.
	//
	// Parameters:
	//   - m: the matrix taking light positions into the frame the shader expects
	//
	// Returns:
	//   - []mgl32.Vec4: one position per light, in slot order
	Positions(m mgl32.Mat4) []mgl32.Vec4

	// Apply writes uLightState and the position of the first enabled light to uLightPos.
	//
	// Parameters:
	//   - s: the shader to write to
	//   - m: the matrix passed to Positions
	Apply(s UniformSetter, m mgl32.Mat4)
}

var _ Set = &set{}

// NewSet creates a Set holding the given lights. Lights beyond MaxLights are ignored.
//
// Parameters:
//   - lights: the initial lights
//
// Returns:
//   - Set: the set
func NewSet(lights ...Light) Set {
	s := &set{}
	for _, l := range lights {
		_, _ = s.Add(l)
	}
	return s
}

func (s *set) Add(l Light) (int, error) {
	if len(s.lights) >= MaxLights {
		return -1, ErrTooManyLights
	}
	s.lights = append(s.lights, l)
	return len(s.lights) - 1, nil
}

func (s *set) Remove(l Light) bool {
	i := slices.Index(s.lights, l)
	if i < 0 {
		return false
	}
	s.lights = slices.Delete(s.lights, i, i+1)
	return true
}

func (s *set) Light(i int) Light {
	if i < 0 || i >= len(s.lights) {
		return nil
	}
	return s.lights[i]
}

func (s *set) Len() int {
	return len(s.lights)
}

func (s *set) States() []int32 {
	states := make([]int32, MaxLights)
	for i, l := range s.lights {
		if l.Enabled() {
			states[i] = 1
		}
	}
	return states
}

func (s *set) Positions(m mgl32.Mat4) []mgl32.Vec4 {
	out := make([]mgl32.Vec4, len(s.lights))
	for i, l := range s.lights {
		out[i] = m.Mul4x1(l.Position())
	}
	return out
}

func (s *set) Apply(u UniformSetter, m mgl32.Mat4) {
	u.SetIntArray(UniformLightState, s.States())
	for _, l := range s.lights {
		if l.Enabled() {
			u.SetVec4(UniformLightPosition, m.Mul4x1(l.Position()))
			return
		}
	}
}
