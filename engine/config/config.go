// Package config reads the shaderlab configuration file and turns it into engine options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/window"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is returned when a decoded configuration fails validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("config: unsupported format")
)

// Format is the encoding of a configuration file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DefaultNames are tried in order by Find.
var DefaultNames = []string{"shaderlab.toml", "shaderlab.yaml", "shaderlab.yml"}

// WindowConfig sizes the window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title" flag:"title"`
	Width  int    `toml:"width" yaml:"width" flag:"width"`
	Height int    `toml:"height" yaml:"height" flag:"height"`
}

// RenderConfig selects the device and how often it draws.
type RenderConfig struct {
	Backend    string    `toml:"backend" yaml:"backend" flag:"b,backend"`
	Mode       string    `toml:"mode" yaml:"mode" flag:"m,mode"`
	VSync      bool      `toml:"vsync" yaml:"vsync" flag:"vsync"`
	MSAA       int       `toml:"msaa" yaml:"msaa" flag:"msaa"`
	FrameLimit float64   `toml:"frame_limit" yaml:"frame_limit" flag:"frame-limit"`
	ClearColor []float32 `toml:"clear_color" yaml:"clear_color" flag:"clear-color"` // RGBA; empty keeps the sample's color
}

// ShaderConfig points the engine at shader sources on disk.
type ShaderConfig struct {
	Dir       string `toml:"dir" yaml:"dir" flag:"shaders"`
	HotReload bool   `toml:"hot_reload" yaml:"hot_reload" flag:"r,hot-reload"`
}

// Config is the whole configuration file. The flag tags name the matching command line flags.
type Config struct {
	Sample    string       `toml:"sample" yaml:"sample" flag:"s,sample"`
	LogLevel  string       `toml:"log_level" yaml:"log_level" flag:"l,log-level"`
	Profiling bool         `toml:"profiling" yaml:"profiling" flag:"profiling"`
	Window    WindowConfig `toml:"window" yaml:"window"`
	Render    RenderConfig `toml:"render" yaml:"render"`
	Shaders   ShaderConfig `toml:"shaders" yaml:"shaders"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Sample:   "pfl",
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "shaderlab",
			Width:  1280,
			Height: 720,
		},
		Render: RenderConfig{
			Backend: string(backend.BackendTypeGL),
			Mode:    engine.RenderModeWhenDirty.String(),
			VSync:   true,
		},
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads a TOML or YAML file over Default and validates the result.
//
// Parameters:
//   - path: the file path; the extension selects the format
//
// Returns:
//   - Config: the configuration
//   - error: ErrUnsupportedFormat, a read or decode error, or an error wrapping ErrInvalidConfig
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find returns the first of DefaultNames present in dir, or "" when none is.
func Find(dir string) string {
	for _, name := range DefaultNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Parse decodes data over Default and validates the result. Unknown keys are errors.
func Parse(data []byte, format Format) (Config, error) {
	c := Default()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return Config{}, fmt.Errorf("failed to decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves the defaults.
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if _, err := c.BackendType(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.RenderMode(); err != nil {
		errs = append(errs, err)
	}
	if c.Render.MSAA < 0 {
		errs = append(errs, fmt.Errorf("msaa %d must not be negative", c.Render.MSAA))
	}
	if c.Render.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("frame_limit %g must not be negative", c.Render.FrameLimit))
	}
	if n := len(c.Render.ClearColor); n != 0 && n != 4 {
		errs = append(errs, fmt.Errorf("clear_color needs 4 components, got %d", n))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Shaders.HotReload && c.Shaders.Dir == "" {
		errs = append(errs, errors.New("hot_reload needs shaders.dir"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// BackendType returns the configured device type.
func (c Config) BackendType() (backend.BackendType, error) {
	switch bt := backend.BackendType(strings.ToLower(c.Render.Backend)); bt {
	case backend.BackendTypeGL, backend.BackendTypeWGPU:
		return bt, nil
	default:
		return "", fmt.Errorf("unknown backend %q", c.Render.Backend)
	}
}

// RenderMode returns the configured render mode.
func (c Config) RenderMode() (engine.RenderMode, error) {
	switch strings.ToLower(c.Render.Mode) {
	case engine.RenderModeContinuously.String():
		return engine.RenderModeContinuously, nil
	case engine.RenderModeWhenDirty.String():
		return engine.RenderModeWhenDirty, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", c.Render.Mode)
	}
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// EngineOptions converts a validated configuration to engine options.
//
// Parameters:
//   - logger: the logger handed to the engine
//
// Returns:
//   - []engine.EngineBuilderOption: the options
func (c Config) EngineOptions(logger *slog.Logger) []engine.EngineBuilderOption {
	bt, _ := c.BackendType()
	mode, _ := c.RenderMode()
	opts := []engine.EngineBuilderOption{
		engine.WithLogger(logger),
		engine.WithBackend(bt),
		engine.WithRenderMode(mode),
		engine.WithVSync(c.Render.VSync),
		engine.WithMSAA(c.Render.MSAA),
		engine.WithRenderFrameLimit(c.Render.FrameLimit),
		engine.WithProfiling(c.Profiling),
		engine.WithWindowOptions(
			window.WithTitle(c.Window.Title),
			window.WithWidth(c.Window.Width),
			window.WithHeight(c.Window.Height),
		),
	}
	if len(c.Render.ClearColor) == 4 {
		cc := c.Render.ClearColor
		opts = append(opts, engine.WithClearColor(common.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}))
	}
	if c.Shaders.Dir != "" {
		opts = append(opts, engine.WithShaderDir(c.Shaders.Dir), engine.WithHotReload(c.Shaders.HotReload))
	}
	return opts
}
