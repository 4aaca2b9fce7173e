package wgpubackend

import "errors"

// ErrUniformRingFull is returned by Draw when a frame writes more uniform data than the ring holds.
var ErrUniformRingFull = errors.New("wgpubackend: uniform ring buffer full")

// uniformField locates one named uniform inside a program's staging blocks.
type uniformField struct {
	block  int
	offset uint64
	size   uint64
	typ    string
}

// uniformBlock is the CPU copy of one var<uniform> binding. It is copied into the ring on every
// draw so each draw sees the values set before it.
type uniformBlock struct {
	group   uint32
	binding uint32
	data    []byte
}

// write copies src into the block at offset, clipped to the field size and the block end.
func (b *uniformBlock) write(offset, size uint64, src []byte) {
	if offset >= uint64(len(b.data)) {
		return
	}
	n := min(uint64(len(src)), size, uint64(len(b.data))-offset)
	copy(b.data[offset:offset+n], src[:n])
}

// uniformRing hands out aligned ranges of one uniform buffer bound with dynamic offsets. It
// rewinds at the start of every frame.
type uniformRing struct {
	size   uint64
	align  uint64
	cursor uint64
}

func (r *uniformRing) alloc(n uint64) (uint64, error) {
	off := (r.cursor + r.align - 1) / r.align * r.align
	if off+n > r.size {
		return 0, ErrUniformRingFull
	}
	r.cursor = off + n
	return off, nil
}

func (r *uniformRing) reset() {
	r.cursor = 0
}
