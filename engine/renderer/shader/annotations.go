// annotations.go defines the @oxy: annotations understood by the shader pre-processor. Annotations
// are single-line comments so that un-processed sources still compile on both GLSL and WGSL:
//
//	//@oxy:include <chunk>            replaced by the registered source chunk
//	//@oxy:attrib <semantic> <name>   binds a vertex input to a semantic on explicit-binding devices
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
)

const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a source line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects a registered chunk at the annotation site.
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeAttrib declares which vertex input carries a semantic.
	AnnotationTypeAttrib AnnotationType = "attrib"
)

// Annotation is one parsed @oxy: line.
type Annotation struct {
	Type AnnotationType

	// Args holds the annotation arguments:
	//   - include: [0] = chunk name
	//   - attrib:  [0] = semantic, [1] = attribute name
	Args []string

	// Line is the 1-based line number in the source the annotation was read from.
	Line int
}

// Attrib returns the semantic and attribute name of an attrib annotation.
func (a Annotation) Attrib() (backend.Semantic, string, bool) {
	if a.Type != AnnotationTypeAttrib || len(a.Args) != 2 {
		return 0, "", false
	}
	sem, ok := backend.ParseSemantic(a.Args[0])
	return sem, a.Args[1], ok
}

// parseAnnotation parses a single source line. It returns nil with no error for lines that are
// not annotations.
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy:include requires exactly one argument", lineNum)
		}
		return &Annotation{Type: AnnotationTypeInclude, Args: args[1:], Line: lineNum}, nil
	case AnnotationTypeAttrib:
		if len(args) != 3 {
			return nil, fmt.Errorf("line %d: @oxy:attrib requires a semantic and an attribute name", lineNum)
		}
		if _, ok := backend.ParseSemantic(args[1]); !ok {
			return nil, fmt.Errorf("line %d: unknown semantic %q in @oxy:attrib", lineNum, args[1])
		}
		return &Annotation{Type: AnnotationTypeAttrib, Args: args[1:], Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
