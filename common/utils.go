package common

import (
	"encoding/binary"
	"math"
)

// Float32Bytes encodes a float32 slice as little-endian bytes for GPU buffer uploads.
//
// Parameters:
//   - data: the values to encode
//
// Returns:
//   - []byte: a newly allocated byte slice, or nil if data is empty
func Float32Bytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// Int32Bytes encodes an int32 slice as little-endian bytes.
func Int32Bytes(data []int32) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

// Uint16Bytes encodes an index slice as little-endian bytes.
func Uint16Bytes(data []uint16) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, 2*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}
