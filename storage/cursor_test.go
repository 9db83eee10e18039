package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReadsLittleEndian(t *testing.T) {
	c := newCursor([]byte{
		0xfe, 0xff, // int16 -2
		0xf2, 0xff, 0xff, 0xff, // int32 -14
		0x0e, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // int64 14
		'A', 'B',
	})

	v16, err := c.readInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(-2), v16)
	assert.Equal(t, int64(2), c.position())

	v32, err := c.readInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-14), v32)
	assert.Equal(t, int64(6), c.position())

	v64, err := c.readInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(14), v64)
	assert.Equal(t, int64(14), c.position())

	b, err := c.readBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("AB"), b)
	assert.Equal(t, int64(16), c.position())
	assert.Equal(t, int64(0), c.remaining())
}

func TestCursorReadBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	c := newCursor(src)

	b, err := c.readBytes(4)
	require.NoError(t, err)

	src[0] = 0xff
	assert.Equal(t, []byte{1, 2, 3, 4}, b)
}

func TestCursorEndOfStream(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(c *cursor) error
	}{
		{"int16 short", []byte{0x01}, func(c *cursor) error { _, err := c.readInt16(); return err }},
		{"int32 short", []byte{0x01, 0x02, 0x03}, func(c *cursor) error { _, err := c.readInt32(); return err }},
		{"int64 short", make([]byte, 7), func(c *cursor) error { _, err := c.readInt64(); return err }},
		{"bytes short", []byte{0x01, 0x02}, func(c *cursor) error { _, err := c.readBytes(3); return err }},
		{"empty", nil, func(c *cursor) error { _, err := c.readInt16(); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(tt.data)
			err := tt.read(c)
			require.ErrorIs(t, err, ErrUnexpectedEndOfStream)
			// A failed read must not advance the position.
			assert.Equal(t, int64(0), c.position())
		})
	}
}
