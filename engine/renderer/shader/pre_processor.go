package shader

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// maxIncludeDepth bounds nested @oxy:include expansion.
const maxIncludeDepth = 8

type preProcessor struct {
	chunks       map[string]string
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in shader source. Include annotations are replaced by
// registered chunks, attrib annotations are removed from the output and collected as declarations.
type PreProcessor interface {
	// RegisterChunk makes a source chunk available to @oxy:include. Registering an existing name replaces it.
	//
	// Parameters:
	//   - name: the chunk name used in the annotation
	//   - source: the chunk source text
	RegisterChunk(name, source string)

	// Chunks returns the registered chunk names in sorted order.
	Chunks() []string

	// Process expands the annotations in source. The declarations list is reset on every call.
	//
	// Parameters:
	//   - source: raw shader source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error if an annotation is malformed, an include is unknown, or includes nest too deep
	Process(source string) (string, error)

	// Declarations returns the attrib annotations collected by the last Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the collected declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor seeded with the given chunks.
//
// Parameters:
//   - chunks: initial chunk sources keyed by name, may be nil
//
// Returns:
//   - PreProcessor: the pre-processor
func NewPreProcessor(chunks map[string]string) PreProcessor {
	p := &preProcessor{chunks: make(map[string]string, len(chunks))}
	maps.Copy(p.chunks, chunks)
	return p
}

func (p *preProcessor) RegisterChunk(name, source string) {
	p.chunks[name] = source
}

func (p *preProcessor) Chunks() []string {
	return slices.Sorted(maps.Keys(p.chunks))
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	return p.expand(source, nil)
}

func (p *preProcessor) expand(source string, stack []string) (string, error) {
	if len(stack) > maxIncludeDepth {
		return "", fmt.Errorf("include depth exceeded: %s", strings.Join(stack, " -> "))
	}

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			name := a.Args[0]
			if slices.Contains(stack, name) {
				return "", fmt.Errorf("line %d: include cycle through %q", a.Line, name)
			}
			chunk, ok := p.chunks[name]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include chunk %q", a.Line, name)
			}
			expanded, err := p.expand(chunk, append(stack, name))
			if err != nil {
				return "", fmt.Errorf("%s: %w", name, err)
			}
			out = append(out, expanded)
		case AnnotationTypeAttrib:
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return slices.Clone(p.declarations)
}
