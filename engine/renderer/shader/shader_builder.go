package shader

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithSource sets the vertex and fragment sources compiled by Load.
//
// Parameters:
//   - vertex: vertex stage source
//   - fragment: fragment stage source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the sources
func WithSource(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexSource = vertex
		s.fragmentSource = fragment
	}
}

// WithPreProcessor sets the pre-processor used to expand @oxy: annotations.
// Shaders sharing include chunks should share one pre-processor.
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(s *shader) {
		s.pp = pp
	}
}

// WithAttrib declares an attribute binding applied on every successful Load.
//
// Parameters:
//   - sem: the vertex semantic
//   - name: the attribute name in the vertex source
//
// Returns:
//   - ShaderBuilderOption: a function that declares the binding
func WithAttrib(sem backend.Semantic, name string) ShaderBuilderOption {
	return func(s *shader) {
		s.declared[sem] = name
	}
}

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(logger *slog.Logger) ShaderBuilderOption {
	return func(s *shader) {
		s.logger = logger
	}
}
