package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"

	"intent-router/internal/intent/repository"
)

// encodeVector writes a uint32 length prefix followed by little-endian float32s.
func encodeVector(v []float32) ([]byte, error) {
	if len(v) == 0 {
		return nil, repository.ErrInvalidVector
	}
	buf := make([]byte, 4+4*len(v))
	binary.LittleEndian.PutUint32(buf, uint32(len(v)))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4+4*i:], math.Float32bits(f))
	}
	return buf, nil
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data) < 4 {
		return nil, repository.ErrInvalidVector
	}
	n := int(binary.LittleEndian.Uint32(data))
	if n == 0 || len(data) != 4+4*n {
		return nil, fmt.Errorf("%w: blob of %d bytes for %d values", repository.ErrInvalidVector, len(data), n)
	}
	v := make([]float32, n)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4+4*i:]))
	}
	return v, nil
}
