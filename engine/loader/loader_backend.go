package loader

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// manifestBackend decodes one manifest file format.
type manifestBackend interface {
	// Decode parses manifest data.
	//
	// Parameters:
	//   - data: the raw file content
	//
	// Returns:
	//   - Manifest: the decoded manifest
	//   - error: error if the data is malformed
	Decode(data []byte) (Manifest, error)
}

type tomlManifestBackend struct{}

func (tomlManifestBackend) Decode(data []byte) (Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

type yamlManifestBackend struct{}

func (yamlManifestBackend) Decode(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// resolveBackend picks the manifest decoder from the file extension.
func resolveBackend(name string) (manifestBackend, error) {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".toml":
		return tomlManifestBackend{}, nil
	case ".yaml", ".yml":
		return yamlManifestBackend{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedManifest, ext)
	}
}
