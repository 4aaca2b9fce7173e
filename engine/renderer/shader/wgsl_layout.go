package shader

import (
	"regexp"
	"strconv"
	"strings"
)

// typeLayout is the byte size and alignment of a WGSL type in the uniform address space.
type typeLayout struct {
	size  uint64
	align uint64
}

type wgslField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

type wgslStruct struct {
	name   string
	fields []wgslField
}

// primitiveLayouts holds size and alignment of WGSL scalars, vectors and matrices.
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var primitiveLayouts = map[string]typeLayout{
	"f32": {4, 4}, "i32": {4, 4}, "u32": {4, 4}, "f16": {2, 2}, "bool": {4, 4},

	"vec2<f32>": {8, 8}, "vec2f": {8, 8},
	"vec3<f32>": {12, 16}, "vec3f": {12, 16},
	"vec4<f32>": {16, 16}, "vec4f": {16, 16},

	"vec2<i32>": {8, 8}, "vec2i": {8, 8},
	"vec3<i32>": {12, 16}, "vec3i": {12, 16},
	"vec4<i32>": {16, 16}, "vec4i": {16, 16},

	"vec2<u32>": {8, 8}, "vec2u": {8, 8},
	"vec3<u32>": {12, 16}, "vec3u": {12, 16},
	"vec4<u32>": {16, 16}, "vec4u": {16, 16},

	"mat2x2<f32>": {16, 8}, "mat2x2f": {16, 8},
	"mat3x3<f32>": {48, 16}, "mat3x3f": {48, 16},
	"mat4x4<f32>": {64, 16}, "mat4x4f": {64, 16},
	"mat3x4<f32>": {48, 16}, "mat4x3<f32>": {64, 16},
}

var (
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex    = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex     = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex       = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)
)

func alignUp(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// layoutOf resolves a type against the primitives and already computed structs. Fixed-size
// arrays are supported; runtime-sized arrays are not part of uniform blocks and do not resolve.
func layoutOf(typeName string, known map[string]typeLayout) (typeLayout, bool) {
	if l, ok := primitiveLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := known[typeName]; ok {
		return l, true
	}
	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return typeLayout{}, false
	}
	elemType, count, ok := strings.Cut(strings.TrimSuffix(inner, ">"), ",")
	if !ok {
		return typeLayout{}, false
	}
	elem, ok := layoutOf(strings.TrimSpace(elemType), known)
	if !ok {
		return typeLayout{}, false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
	if err != nil {
		return typeLayout{}, false
	}
	// uniform arrays use a 16 byte element stride
	stride := alignUp(max(elem.align, 16), elem.size)
	return typeLayout{n * stride, max(elem.align, 16)}, true
}

// structLayout places every non-builtin field at its aligned offset and returns the offsets
// along with the rounded struct layout.
func structLayout(ws wgslStruct, known map[string]typeLayout) (typeLayout, []uint64, bool) {
	offset := uint64(0)
	maxAlign := uint64(1)
	offsets := make([]uint64, len(ws.fields))
	for i, f := range ws.fields {
		if f.isBuiltin {
			continue
		}
		fl, ok := layoutOf(f.typeName, known)
		if !ok {
			return typeLayout{}, nil, false
		}
		offset = alignUp(fl.align, offset)
		offsets[i] = offset
		offset += fl.size
		maxAlign = max(maxAlign, fl.align)
	}
	return typeLayout{alignUp(maxAlign, offset), maxAlign}, offsets, true
}

// structLayouts resolves every struct, iterating until no further struct can be resolved so
// structs may reference structs declared after them.
func structLayouts(structs []wgslStruct) map[string]typeLayout {
	resolved := make(map[string]typeLayout, len(structs))
	remaining := append([]wgslStruct(nil), structs...)
	for len(remaining) > 0 {
		next := remaining[:0]
		for _, ws := range remaining {
			if l, _, ok := structLayout(ws, resolved); ok {
				resolved[ws.name] = l
			} else {
				next = append(next, ws)
			}
		}
		if len(next) == len(remaining) {
			break
		}
		remaining = next
	}
	return resolved
}

func parseStructs(source string) []wgslStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	out := make([]wgslStruct, 0, len(matches))
	for _, m := range matches {
		out = append(out, wgslStruct{name: m[1], fields: parseFields(m[2])})
	}
	return out
}

func parseFields(body string) []wgslField {
	parts := splitTopLevel(body)
	fields := make([]wgslField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fm := fieldRegex.FindStringSubmatch(part)
		if fm == nil {
			continue
		}
		f := wgslField{
			name:      fm[1],
			typeName:  strings.TrimSpace(fm[2]),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(part),
		}
		if lm := locationRegex.FindStringSubmatch(part); lm != nil {
			f.location, _ = strconv.Atoi(lm[1])
		}
		fields = append(fields, f)
	}
	return fields
}

// splitTopLevel splits at commas outside angle brackets so array<T, N> stays whole.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			case depth == 0 && source[i] == '/' && source[i+1] == '/':
				for i < len(source) && source[i] != '\n' {
					i++
				}
				if i < len(source) {
					sb.WriteByte('\n')
				}
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

// isVertexInput reports whether a struct only carries @location fields and no builtins.
func isVertexInput(ws wgslStruct) bool {
	hasLocation := false
	for _, f := range ws.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}
