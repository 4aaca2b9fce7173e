package shader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreProcessor_Include(t *testing.T) {
	pp := NewPreProcessor(map[string]string{
		"lighting": "float diffuse(vec3 n, vec3 l) { return max(dot(n, l), 0.0); }",
	})

	out, err := pp.Process("#version 330 core\n//@oxy:include lighting\nvoid main() {}")
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\nfloat diffuse(vec3 n, vec3 l) { return max(dot(n, l), 0.0); }\nvoid main() {}", out)
}

func TestPreProcessor_NestedIncludeAndCycle(t *testing.T) {
	pp := NewPreProcessor(nil)
	pp.RegisterChunk("a", "//@oxy:include b\nA")
	pp.RegisterChunk("b", "B")

	out, err := pp.Process("//@oxy:include a")
	require.NoError(t, err)
	assert.Equal(t, "B\nA", out)

	pp.RegisterChunk("b", "//@oxy:include a")
	_, err = pp.Process("//@oxy:include a")
	assert.ErrorContains(t, err, "cycle")
	assert.Equal(t, []string{"a", "b"}, pp.Chunks())
}

func TestPreProcessor_AttribDeclarations(t *testing.T) {
	pp := NewPreProcessor(nil)

	out, err := pp.Process("//@oxy:attrib position aPosition\n//@oxy:attrib texcoord aUV\nin vec4 aPosition;")
	require.NoError(t, err)
	assert.Equal(t, "in vec4 aPosition;", out)

	decls := pp.Declarations()
	require.Len(t, decls, 2)
	sem, name, ok := decls[1].Attrib()
	require.True(t, ok)
	assert.Equal(t, backend.SemanticTexCoord, sem)
	assert.Equal(t, "aUV", name)
	assert.Equal(t, 2, decls[1].Line)

	_, err = pp.Process("void main() {}")
	require.NoError(t, err)
	assert.Empty(t, pp.Declarations())
	assert.Len(t, decls, 2)
}

func TestPreProcessor_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", "//@oxy:"},
		{"unknown type", "//@oxy:provider 0 0 camera"},
		{"include arity", "//@oxy:include"},
		{"attrib arity", "//@oxy:attrib position"},
		{"unknown semantic", "//@oxy:attrib tangent aTangent"},
		{"unknown chunk", "//@oxy:include missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreProcessor(nil).Process(tt.source)
			assert.Error(t, err)
		})
	}
}

func TestPreProcessor_IgnoresNonCommentMentions(t *testing.T) {
	out, err := NewPreProcessor(nil).Process(`const char* s = "@oxy:include x";`)
	require.NoError(t, err)
	assert.Equal(t, `const char* s = "@oxy:include x";`, out)
}
