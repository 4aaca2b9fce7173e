package common

// Rect is a pixel rectangle, used for viewports.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Aspect returns width / height, or 0 for an empty rectangle.
func (r Rect) Aspect() float32 {
	if r.Empty() {
		return 0
	}
	return float32(r.Width) / float32(r.Height)
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// Vec4 returns the color as a 4-component array, in the order shaders expect it.
func (c Color) Vec4() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
