package animator

import "github.com/chewxy/math32"

// Interpolator maps linear progress in [0, 1] to eased progress.
type Interpolator func(t float32) float32

// Linear returns t unchanged.
func Linear(t float32) float32 {
	return t
}

// AccelerateDecelerate starts and ends slowly, following a cosine curve.
func AccelerateDecelerate(t float32) float32 {
	return (1 - math32.Cos(t*math32.Pi)) * 0.5
}

// Accelerate starts slowly and speeds up.
func Accelerate(t float32) float32 {
	return t * t
}

// Decelerate starts quickly and slows down.
func Decelerate(t float32) float32 {
	return 1 - (1-t)*(1-t)
}
