package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

var (
	// ErrCompile is wrapped by every *CompileError.
	ErrCompile = errors.New("shader: compile failed")

	// ErrShaderNotLoaded is returned by operations that need a linked program.
	ErrShaderNotLoaded = errors.New("shader: not loaded")

	// ErrAttributeNotFound is returned when a named vertex attribute is not active in the program.
	ErrAttributeNotFound = errors.New("shader: attribute not found")

	// ErrInvalidWGSL is returned by ValidateWGSL.
	ErrInvalidWGSL = errors.New("shader: invalid wgsl")
)

// StagePreprocess marks a CompileError raised while expanding @oxy: annotations.
const StagePreprocess backend.ShaderStage = "preprocess"

// CompileError describes a failed Load. The shader it came from stays unusable until a later Load succeeds.
type CompileError struct {
	Shader string
	Stage  backend.ShaderStage
	Log    string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %q: %s: %s", e.Shader, e.Stage, e.Log)
}

func (e *CompileError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCompile, e.Err}
	}
	return []error{ErrCompile}
}
