package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\s+fn\s+(\w+)\s*\(`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\s+fn\s+(\w+)\s*\(`)
	uniformDeclRegex   = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var<\s*uniform\s*>\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// VertexInput is one @location input of the vertex entry point.
type VertexInput struct {
	Name     string
	Type     string
	Location int
}

// UniformField is a member of a uniform block with its byte placement.
type UniformField struct {
	Name   string
	Type   string
	Offset uint64
	Size   uint64
}

// UniformBlock is a var<uniform> binding. Non-struct bindings are reported as a block with a
// single field named after the variable.
type UniformBlock struct {
	Group   int
	Binding int
	Var     string
	Type    string
	Size    uint64
	Fields  []UniformField
}

// Reflection is what ReflectWGSL learns from a WGSL program.
type Reflection struct {
	VertexEntry   string
	FragmentEntry string
	VertexInputs  []VertexInput
	Uniforms      []UniformBlock
}

// Attributes returns the vertex input locations keyed by name.
func (r Reflection) Attributes() map[string]int32 {
	out := make(map[string]int32, len(r.VertexInputs))
	for _, in := range r.VertexInputs {
		out[in.Name] = int32(in.Location)
	}
	return out
}

// LookupUniform finds a uniform by field name across every block.
func (r Reflection) LookupUniform(name string) (UniformBlock, UniformField, bool) {
	for _, b := range r.Uniforms {
		for _, f := range b.Fields {
			if f.Name == name {
				return b, f, true
			}
		}
	}
	return UniformBlock{}, UniformField{}, false
}

// ReflectWGSL extracts entry points, vertex inputs and uniform block layouts from WGSL source.
// Vertex and fragment sources may be passed separately or as one module.
//
// Parameters:
//   - source: the WGSL source
//
// Returns:
//   - Reflection: the reflected interface
//   - error: ErrInvalidWGSL if a uniform block type cannot be laid out
func ReflectWGSL(source string) (Reflection, error) {
	cleaned := stripComments(source)
	structs := parseStructs(cleaned)
	byName := make(map[string]wgslStruct, len(structs))
	for _, ws := range structs {
		byName[ws.name] = ws
	}
	layouts := structLayouts(structs)

	var r Reflection
	if m := fragmentEntryRegex.FindStringSubmatch(cleaned); m != nil {
		r.FragmentEntry = m[1]
	}
	if loc := vertexEntryRegex.FindStringSubmatchIndex(cleaned); loc != nil {
		r.VertexEntry = cleaned[loc[2]:loc[3]]
		params := parenBody(cleaned[loc[1]-1:])
		r.VertexInputs = vertexInputs(parseFields(params), byName)
	} else {
		for _, ws := range structs {
			if isVertexInput(ws) {
				r.VertexInputs = vertexInputs(ws.fields, byName)
				break
			}
		}
	}

	for _, m := range uniformDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		block := UniformBlock{Group: group, Binding: binding, Var: m[3], Type: strings.TrimSpace(m[4])}

		if ws, ok := byName[block.Type]; ok {
			l, offsets, ok := structLayout(ws, layouts)
			if !ok {
				return Reflection{}, fmt.Errorf("%w: cannot lay out uniform struct %q", ErrInvalidWGSL, ws.name)
			}
			block.Size = l.size
			for i, f := range ws.fields {
				fl, _ := layoutOf(f.typeName, layouts)
				block.Fields = append(block.Fields, UniformField{Name: f.name, Type: f.typeName, Offset: offsets[i], Size: fl.size})
			}
		} else {
			l, ok := layoutOf(block.Type, layouts)
			if !ok {
				return Reflection{}, fmt.Errorf("%w: unknown uniform type %q", ErrInvalidWGSL, block.Type)
			}
			block.Size = alignUp(16, l.size)
			block.Fields = []UniformField{{Name: block.Var, Type: block.Type, Size: l.size}}
		}
		r.Uniforms = append(r.Uniforms, block)
	}
	sort.Slice(r.Uniforms, func(i, j int) bool {
		if r.Uniforms[i].Group != r.Uniforms[j].Group {
			return r.Uniforms[i].Group < r.Uniforms[j].Group
		}
		return r.Uniforms[i].Binding < r.Uniforms[j].Binding
	})
	return r, nil
}

// vertexInputs flattens entry point parameters, expanding struct typed parameters into their
// @location fields.
func vertexInputs(params []wgslField, structs map[string]wgslStruct) []VertexInput {
	var out []VertexInput
	for _, p := range params {
		if p.isBuiltin {
			continue
		}
		if p.location >= 0 {
			out = append(out, VertexInput{Name: p.name, Type: p.typeName, Location: p.location})
			continue
		}
		if ws, ok := structs[p.typeName]; ok {
			for _, f := range ws.fields {
				if f.location >= 0 && !f.isBuiltin {
					out = append(out, VertexInput{Name: f.name, Type: f.typeName, Location: f.location})
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// parenBody returns the text between the opening parenthesis at s[0] and its match.
func parenBody(s string) string {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i]
			}
		}
	}
	return ""
}
