package wgpubackend

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-shaderlab/common"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-shaderlab/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// program is a pair of WGSL modules with their reflected interface and the bind groups that
// expose its uniform blocks through the ring buffer.
type program struct {
	vertex, fragment           *wgpu.ShaderModule
	vertexEntry, fragmentEntry string
	attribs                    map[string]int32

	fields      map[string]int32
	refs        []uniformField
	blocks      []uniformBlock
	groupBlocks [][]int // block indices per group, in binding order

	groupLayouts []*wgpu.BindGroupLayout
	bindGroups   []*wgpu.BindGroup
	layout       *wgpu.PipelineLayout
}

// reflectProgram validates and reflects the two stages and merges their uniform blocks. The
// vertex and fragment sources may be the same module.
func reflectProgram(vertexSource, fragmentSource string) (shader.Reflection, error) {
	if err := shader.ValidateWGSL(vertexSource); err != nil {
		return shader.Reflection{}, &backend.StageError{Stage: backend.StageVertex, Log: err.Error()}
	}
	vr, err := shader.ReflectWGSL(vertexSource)
	if err != nil {
		return shader.Reflection{}, &backend.StageError{Stage: backend.StageVertex, Log: err.Error()}
	}
	if vr.VertexEntry == "" {
		return shader.Reflection{}, &backend.StageError{Stage: backend.StageVertex, Log: "no @vertex entry point"}
	}
	if fragmentSource == vertexSource {
		if vr.FragmentEntry == "" {
			return shader.Reflection{}, &backend.StageError{Stage: backend.StageFragment, Log: "no @fragment entry point"}
		}
		return vr, nil
	}

	if err := shader.ValidateWGSL(fragmentSource); err != nil {
		return shader.Reflection{}, &backend.StageError{Stage: backend.StageFragment, Log: err.Error()}
	}
	fr, err := shader.ReflectWGSL(fragmentSource)
	if err != nil {
		return shader.Reflection{}, &backend.StageError{Stage: backend.StageFragment, Log: err.Error()}
	}
	if fr.FragmentEntry == "" {
		return shader.Reflection{}, &backend.StageError{Stage: backend.StageFragment, Log: "no @fragment entry point"}
	}

	merged := vr
	merged.FragmentEntry = fr.FragmentEntry
	for _, fb := range fr.Uniforms {
		dup := false
		for _, vb := range vr.Uniforms {
			if vb.Group == fb.Group && vb.Binding == fb.Binding {
				if vb.Size != fb.Size {
					return shader.Reflection{}, &backend.StageError{
						Stage: backend.StageLink,
						Log:   fmt.Sprintf("uniform @group(%d) @binding(%d) differs between stages", fb.Group, fb.Binding),
					}
				}
				dup = true
				break
			}
		}
		if !dup {
			merged.Uniforms = append(merged.Uniforms, fb)
		}
	}
	return merged, nil
}

// newUniformTable lays out the staging blocks for a reflection. Field names are the lookup keys;
// a name declared in two blocks resolves to the first.
func newUniformTable(r shader.Reflection) (map[string]int32, []uniformField, []uniformBlock) {
	fields := make(map[string]int32)
	var refs []uniformField
	blocks := make([]uniformBlock, 0, len(r.Uniforms))
	for i, b := range r.Uniforms {
		blocks = append(blocks, uniformBlock{
			group:   uint32(b.Group),
			binding: uint32(b.Binding),
			data:    make([]byte, b.Size),
		})
		for _, f := range b.Fields {
			if _, ok := fields[f.Name]; ok {
				continue
			}
			fields[f.Name] = int32(len(refs))
			refs = append(refs, uniformField{block: i, offset: f.Offset, size: f.Size, typ: f.Type})
		}
	}
	return fields, refs, blocks
}

// CompileProgram validates both stages with the WGSL front-end, creates their modules and the
// bind group layout of every uniform block.
func (d *Device) CompileProgram(vertexSource, fragmentSource string) (backend.Program, error) {
	r, err := reflectProgram(vertexSource, fragmentSource)
	if err != nil {
		return 0, err
	}

	p := &program{
		vertexEntry:   r.VertexEntry,
		fragmentEntry: r.FragmentEntry,
		attribs:       r.Attributes(),
	}
	p.fields, p.refs, p.blocks = newUniformTable(r)

	if p.vertex, err = d.createModule("vertex", vertexSource); err != nil {
		return 0, &backend.StageError{Stage: backend.StageVertex, Log: err.Error()}
	}
	if fragmentSource == vertexSource {
		p.fragment = p.vertex
	} else if p.fragment, err = d.createModule("fragment", fragmentSource); err != nil {
		d.releaseProgram(p)
		return 0, &backend.StageError{Stage: backend.StageFragment, Log: err.Error()}
	}

	if err := d.createBindGroups(p); err != nil {
		d.releaseProgram(p)
		return 0, &backend.StageError{Stage: backend.StageLink, Log: err.Error()}
	}

	d.nextProgram++
	d.programs[d.nextProgram] = p
	return d.nextProgram, nil
}

func (d *Device) createModule(label, source string) (*wgpu.ShaderModule, error) {
	return d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
}

func (d *Device) createBindGroups(p *program) error {
	maxGroup := -1
	for _, b := range p.blocks {
		maxGroup = max(maxGroup, int(b.group))
	}
	p.groupBlocks = make([][]int, maxGroup+1)
	for i, b := range p.blocks {
		p.groupBlocks[b.group] = append(p.groupBlocks[b.group], i)
	}

	p.groupLayouts = make([]*wgpu.BindGroupLayout, maxGroup+1)
	p.bindGroups = make([]*wgpu.BindGroup, maxGroup+1)
	for g, indices := range p.groupBlocks {
		layoutEntries := make([]wgpu.BindGroupLayoutEntry, 0, len(indices))
		groupEntries := make([]wgpu.BindGroupEntry, 0, len(indices))
		for _, i := range indices {
			b := p.blocks[i]
			layoutEntries = append(layoutEntries, wgpu.BindGroupLayoutEntry{
				Binding:    b.binding,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   uint64(len(b.data)),
				},
			})
			groupEntries = append(groupEntries, wgpu.BindGroupEntry{
				Binding: b.binding,
				Buffer:  d.uniformBuffer,
				Offset:  0,
				Size:    uint64(len(b.data)),
			})
		}

		layout, err := d.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("group %d", g),
			Entries: layoutEntries,
		})
		if err != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, err)
		}
		p.groupLayouts[g] = layout

		bg, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("group %d", g),
			Layout:  layout,
			Entries: groupEntries,
		})
		if err != nil {
			return fmt.Errorf("failed to create bind group %d: %w", g, err)
		}
		p.bindGroups[g] = bg
	}

	var err error
	p.layout, err = d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "program",
		BindGroupLayouts: p.groupLayouts,
	})
	return err
}

func (d *Device) releaseProgram(p *program) {
	for _, bg := range p.bindGroups {
		if bg != nil {
			bg.Release()
		}
	}
	for _, l := range p.groupLayouts {
		if l != nil {
			l.Release()
		}
	}
	if p.layout != nil {
		p.layout.Release()
	}
	if p.fragment != nil && p.fragment != p.vertex {
		p.fragment.Release()
	}
	if p.vertex != nil {
		p.vertex.Release()
	}
}

// DeleteProgram releases a program and every pipeline built from it.
func (d *Device) DeleteProgram(h backend.Program) {
	p, ok := d.programs[h]
	if !ok {
		return
	}
	for key, rp := range d.pipelines {
		if key.program == h {
			rp.Release()
			delete(d.pipelines, key)
		}
	}
	d.releaseProgram(p)
	delete(d.programs, h)
	if d.current == h {
		d.current = 0
	}
}

func (d *Device) AttribLocation(h backend.Program, name string) int32 {
	p, ok := d.programs[h]
	if !ok {
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) ActiveAttributes(h backend.Program) map[string]int32 {
	out := make(map[string]int32)
	if p, ok := d.programs[h]; ok {
		for k, v := range p.attribs {
			out[k] = v
		}
	}
	return out
}

// UniformLocation returns the index of a uniform block field. Locations are per program.
func (d *Device) UniformLocation(h backend.Program, name string) int32 {
	p, ok := d.programs[h]
	if !ok {
		return -1
	}
	if loc, ok := p.fields[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UseProgram(h backend.Program) {
	d.current = h
}

func (d *Device) setUniform(location int32, data []byte) {
	p, ok := d.programs[d.current]
	if !ok || location < 0 || int(location) >= len(p.refs) {
		return
	}
	f := p.refs[location]
	p.blocks[f.block].write(f.offset, f.size, data)
}

func (d *Device) SetUniformMatrix4(location int32, m [16]float32) {
	d.setUniform(location, common.Float32Bytes(m[:]))
}

// SetUniformMatrix3 pads each column to a vec4 when the field is a WGSL mat3x3.
func (d *Device) SetUniformMatrix3(location int32, m [9]float32) {
	p, ok := d.programs[d.current]
	if ok && location >= 0 && int(location) < len(p.refs) && strings.HasPrefix(p.refs[location].typ, "mat3x3") {
		padded := common.Mat3Padded(mgl32.Mat3(m))
		d.setUniform(location, common.Float32Bytes(padded[:]))
		return
	}
	d.setUniform(location, common.Float32Bytes(m[:]))
}

func (d *Device) SetUniform4f(location int32, v [4]float32) {
	d.setUniform(location, common.Float32Bytes(v[:]))
}

func (d *Device) SetUniform3f(location int32, v [3]float32) {
	d.setUniform(location, common.Float32Bytes(v[:]))
}

func (d *Device) SetUniform1f(location int32, v float32) {
	d.setUniform(location, common.Float32Bytes([]float32{v}))
}

func (d *Device) SetUniform1i(location int32, v int32) {
	d.setUniform(location, common.Int32Bytes([]int32{v}))
}

// SetUniform1iv writes the values tightly packed, matching an array<vec4<i32>, N> field.
func (d *Device) SetUniform1iv(location int32, v []int32) {
	d.setUniform(location, common.Int32Bytes(v))
}
