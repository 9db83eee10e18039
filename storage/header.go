package storage

import "fmt"

// Chunk header wire layout. All fields little endian.
//
// .     | id | raw length |
// bytes | 2  |     4      |
//
// A zero raw length escapes to the wide form for streams past 2GiB:
//
// .     | id | 0  | raw length |
// bytes | 2  | 4  |     8      |
//
// The raw length counts the whole chunk, header bytes included, and its
// sign bit carries the container/value discriminator at either width.
const (
	headerSize         = 2 + 4
	extendedHeaderSize = 2 + 4 + 8
)

// decodeHeader reads one chunk header, leaving the cursor at the first
// payload byte. The returned Header carries the payload length, with the
// kind flag and the header's own size already factored out of the raw
// wire length.
func decodeHeader(c *cursor) (Header, error) {
	off := c.position()

	id, err := c.readInt16()
	if err != nil {
		return Header{}, err
	}
	raw32, err := c.readInt32()
	if err != nil {
		return Header{}, err
	}

	raw := int64(raw32)
	width := 32
	size := int64(headerSize)
	extended := false
	if raw32 == 0 {
		raw, err = c.readInt64()
		if err != nil {
			return Header{}, err
		}
		if raw == 0 {
			// A chunk can never be shorter than its own header, so a zero
			// in the escape field too has no valid reading.
			return Header{}, fmt.Errorf("%w: extended length is zero at offset %d",
				ErrMalformedHeader, off)
		}
		width = 64
		size = extendedHeaderSize
		extended = true
	}

	kind := KindValue
	length := raw
	if raw < 0 {
		kind = KindContainer
		length = clearSignBit(raw, width)
	}
	length -= size
	if length < 0 {
		return Header{}, fmt.Errorf(
			"%w: declared length %d cannot cover its own %d byte header at offset %d",
			ErrMalformedHeader, length+size, size, off)
	}

	return Header{ID: id, Length: length, Kind: kind, Extended: extended}, nil
}

// clearSignBit recovers a container's declared length from its tagged
// encoding. The sign bit is a flag over an otherwise unsigned field, so it
// is masked off at the width actually read, never arithmetically negated:
// a raw 32 bit 0x8000000e is a container of total length 14.
func clearSignBit(raw int64, width int) int64 {
	if width == 32 {
		return int64(uint32(raw) &^ (1 << 31))
	}
	return int64(uint64(raw) &^ (1 << 63))
}
