// Package samples lists the samples the shaderlab command can run.
package samples

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine"
	"github.com/Carmen-Shannon/oxy-shaderlab/samples/coloredrect"
	"github.com/Carmen-Shannon/oxy-shaderlab/samples/pfl"
)

// ErrUnknownSample is returned by Lookup for a name no sample is registered under.
var ErrUnknownSample = errors.New("samples: unknown sample")

// Sample is a runnable demo with its embedded shader assets.
type Sample struct {
	Name        string
	Description string

	// New creates a fresh App.
	New func() engine.App

	// Shaders returns the manifest and shader sources, used when no shader directory is configured.
	Shaders func() fs.FS
}

var registry = []Sample{
	{
		Name:        pfl.Name,
		Description: "per-fragment lighting: a cube lit by an orbiting light",
		New:         func() engine.App { return pfl.New() },
		Shaders:     pfl.Shaders,
	},
	{
		Name:        coloredrect.Name,
		Description: "a red rectangle rotated by dragging",
		New:         func() engine.App { return coloredrect.New() },
		Shaders:     coloredrect.Shaders,
	},
}

// All returns every registered sample in menu order.
func All() []Sample {
	return append([]Sample(nil), registry...)
}

// Lookup finds a sample by name.
//
// Parameters:
//   - name: the sample name
//
// Returns:
//   - Sample: the sample
//   - error: ErrUnknownSample when nothing is registered under name
func Lookup(name string) (Sample, error) {
	for _, s := range registry {
		if s.Name == name {
			return s, nil
		}
	}
	return Sample{}, fmt.Errorf("%w: %q", ErrUnknownSample, name)
}
