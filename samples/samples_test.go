package samples

import (
	"io/fs"
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			got, err := Lookup(s.Name)
			require.NoError(t, err)
			assert.Equal(t, s.Name, got.Name)
			assert.NotNil(t, got.New())
		})
	}

	_, err := Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownSample)
}

func TestSamplesShipBothLanguages(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			fsys := s.Shaders()
			_, err := fs.Stat(fsys, "shaders.toml")
			require.NoError(t, err)

			l, err := loader.NewLoader(fsys)
			require.NoError(t, err)
			require.NotEmpty(t, l.Names())
			for _, name := range l.Names() {
				for _, lang := range []loader.Language{loader.LanguageGLSL, loader.LanguageWGSL} {
					src, err := l.Source(name, lang)
					require.NoError(t, err, "%s/%s", name, lang)
					assert.NotEmpty(t, src.Vertex)
					assert.NotEmpty(t, src.Fragment)
				}
			}
		})
	}
}
