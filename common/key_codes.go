package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyP     = 80  // P key (ASCII), pauses and resumes animators
	KeyR     = 82  // R key (ASCII), reloads shaders
	KeySpace = 32  // Spacebar (ASCII), requests a single redraw
	KeyEsc   = 256 // Escape key (GLFW), closes the window
	KeyF5    = 294 // F5 key (GLFW), recreates the surface and every GPU resource
)
