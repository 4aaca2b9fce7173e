package loader

// Language is a shader source language.
type Language string

const (
	// LanguageGLSL is GLSL 330 core, compiled by the OpenGL backend.
	LanguageGLSL Language = "glsl"

	// LanguageWGSL is WGSL, compiled by the WebGPU backend.
	LanguageWGSL Language = "wgsl"
)

// StagePaths locates the vertex and fragment source of one shader in one language. WGSL shaders
// commonly keep both entry points in one file, so both paths may be equal.
type StagePaths struct {
	Vertex   string `toml:"vertex" yaml:"vertex"`
	Fragment string `toml:"fragment" yaml:"fragment"`
}

// ShaderEntry is one shader in a manifest.
type ShaderEntry struct {
	Name string     `toml:"name" yaml:"name"`
	GLSL StagePaths `toml:"glsl" yaml:"glsl"`
	WGSL StagePaths `toml:"wgsl" yaml:"wgsl"`
}

// Paths returns the stage paths for a language.
//
// Parameters:
//   - lang: the language
//
// Returns:
//   - StagePaths: the paths
//   - bool: false if the entry has no source for that language
func (e ShaderEntry) Paths(lang Language) (StagePaths, bool) {
	var p StagePaths
	switch lang {
	case LanguageGLSL:
		p = e.GLSL
	case LanguageWGSL:
		p = e.WGSL
	}
	return p, p.Vertex != "" && p.Fragment != ""
}

// Manifest lists the shaders of a sample and the include chunks they may pull in. Chunks are keyed
// by language, then by the name used in //@oxy:include.
type Manifest struct {
	Shaders []ShaderEntry                `toml:"shader" yaml:"shaders"`
	Chunks  map[string]map[string]string `toml:"chunks" yaml:"chunks"`
}
