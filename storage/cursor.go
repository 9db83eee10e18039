package storage

import (
	"encoding/binary"
	"fmt"
)

// cursor is a bounds checked little endian reader over a fully buffered
// stream. Reads advance a single forward position; there is no seeking.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// position is the absolute offset of the next unread byte. Budget
// arithmetic and error messages are both expressed in terms of it.
func (c *cursor) position() int64 {
	return int64(c.pos)
}

func (c *cursor) remaining() int64 {
	return int64(len(c.data) - c.pos)
}

func (c *cursor) need(n int64) error {
	if n > c.remaining() {
		return fmt.Errorf("%w: need %d bytes at offset %d, %d remain",
			ErrUnexpectedEndOfStream, n, c.pos, c.remaining())
	}
	return nil
}

func (c *cursor) readInt16() (int16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := int16(binary.LittleEndian.Uint16(c.data[c.pos:]))
	c.pos += 2
	return v, nil
}

func (c *cursor) readInt32() (int32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(c.data[c.pos:]))
	c.pos += 4
	return v, nil
}

func (c *cursor) readInt64() (int64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(c.data[c.pos:]))
	c.pos += 8
	return v, nil
}

// readBytes copies out the next n bytes. The copy keeps decoded values
// independent of the buffer the stream was read into.
func (c *cursor) readBytes(n int64) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, c.data[c.pos:])
	c.pos += int(n)
	return b, nil
}
