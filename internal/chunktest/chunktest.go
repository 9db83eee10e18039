// Package chunktest builds synthetic chunk streams for tests.
//
// The builders produce wire images only, they are not a supported encoder.
// Declared lengths count the chunk header itself, and container lengths
// carry the kind flag in the sign bit, so the images exercise the same
// arithmetic the decoder undoes.
package chunktest

import "encoding/binary"

const (
	headerSize         = 2 + 4
	extendedHeaderSize = 2 + 4 + 8
)

// Value encodes a value chunk holding payload.
func Value(id int16, payload []byte) []byte {
	total := headerSize + len(payload)
	b := make([]byte, headerSize, total)
	binary.LittleEndian.PutUint16(b[0:], uint16(id))
	binary.LittleEndian.PutUint32(b[2:], uint32(total))
	return append(b, payload...)
}

// Container encodes a container chunk around the already encoded children.
// The declared length is the total chunk size with the sign bit set over
// the 32 bit field.
func Container(id int16, children ...[]byte) []byte {
	body := Stream(children...)
	total := headerSize + len(body)
	b := make([]byte, headerSize, headerSize+len(body))
	binary.LittleEndian.PutUint16(b[0:], uint16(id))
	binary.LittleEndian.PutUint32(b[2:], uint32(total)|1<<31)
	return append(b, body...)
}

// ExtendedValue encodes a value chunk in the 64 bit escape form: a zero 32
// bit length followed by the real length as int64.
func ExtendedValue(id int16, payload []byte) []byte {
	total := extendedHeaderSize + len(payload)
	b := make([]byte, extendedHeaderSize, total)
	binary.LittleEndian.PutUint16(b[0:], uint16(id))
	binary.LittleEndian.PutUint32(b[2:], 0)
	binary.LittleEndian.PutUint64(b[6:], uint64(total))
	return append(b, payload...)
}

// ExtendedContainer encodes a container chunk in the 64 bit escape form,
// with the kind flag in the sign bit of the 64 bit field.
func ExtendedContainer(id int16, children ...[]byte) []byte {
	body := Stream(children...)
	total := extendedHeaderSize + len(body)
	b := make([]byte, extendedHeaderSize, extendedHeaderSize+len(body))
	binary.LittleEndian.PutUint16(b[0:], uint16(id))
	binary.LittleEndian.PutUint32(b[2:], 0)
	binary.LittleEndian.PutUint64(b[6:], uint64(total)|1<<63)
	return append(b, body...)
}

// Header encodes a bare 32 bit form header with rawLength written verbatim,
// for malformed and boundary cases the other builders refuse to produce.
func Header(id int16, rawLength int32) []byte {
	b := make([]byte, headerSize)
	binary.LittleEndian.PutUint16(b[0:], uint16(id))
	binary.LittleEndian.PutUint32(b[2:], uint32(rawLength))
	return b
}

// ExtendedHeader encodes a bare escape form header with rawLength written
// verbatim into the 64 bit field.
func ExtendedHeader(id int16, rawLength int64) []byte {
	b := make([]byte, extendedHeaderSize)
	binary.LittleEndian.PutUint16(b[0:], uint16(id))
	binary.LittleEndian.PutUint32(b[2:], 0)
	binary.LittleEndian.PutUint64(b[6:], uint64(rawLength))
	return b
}

// Stream concatenates encoded chunks into a single stream image.
func Stream(chunks ...[]byte) []byte {
	var b []byte
	for _, c := range chunks {
		b = append(b, c...)
	}
	return b
}
