package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mki/max-dump/internal/chunktest"
)

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name    string
		wire    []byte
		want    Header
		wantErr error
	}{
		{
			"value",
			chunktest.Value(0x0001, []byte("AB")),
			Header{ID: 0x0001, Length: 2, Kind: KindValue},
			nil,
		},
		{
			"empty value",
			chunktest.Value(0x0007, nil),
			Header{ID: 0x0007, Length: 0, Kind: KindValue},
			nil,
		},
		{
			"container",
			chunktest.Container(0x0002, chunktest.Value(0x0001, []byte("AB"))),
			Header{ID: 0x0002, Length: 8, Kind: KindContainer},
			nil,
		},
		{
			"empty container",
			chunktest.Container(0x0002),
			Header{ID: 0x0002, Length: 0, Kind: KindContainer},
			nil,
		},
		{
			"extended value",
			chunktest.ExtendedValue(0x0003, []byte("WXYZ")),
			Header{ID: 0x0003, Length: 4, Kind: KindValue, Extended: true},
			nil,
		},
		{
			"extended container",
			chunktest.ExtendedContainer(0x0003, chunktest.Value(0x0001, []byte("AB"))),
			Header{ID: 0x0003, Length: 8, Kind: KindContainer, Extended: true},
			nil,
		},
		{
			// The sign bit is a flag over the field, not a two's complement
			// sign: raw -14 is a container of declared length 0x7ffffff2,
			// not of length 14.
			"sign bit cleared not negated",
			chunktest.Header(0x0009, -14),
			Header{ID: 0x0009, Length: 0x7ffffff2 - headerSize, Kind: KindContainer},
			nil,
		},
		{
			// Raw 0x80000000: clearing the sign bit leaves magnitude 0,
			// which cannot cover the 6 byte header.
			"minimum int32 raw length",
			chunktest.Header(0x0009, math.MinInt32),
			Header{},
			ErrMalformedHeader,
		},
		{
			"declared length under header size",
			chunktest.Header(0x0001, 3),
			Header{},
			ErrMalformedHeader,
		},
		{
			"extended length zero",
			chunktest.ExtendedHeader(0x0001, 0),
			Header{},
			ErrMalformedHeader,
		},
		{
			"extended container under header size",
			chunktest.ExtendedHeader(0x0001, math.MinInt64+4),
			Header{},
			ErrMalformedHeader,
		},
		{
			"truncated mid header",
			chunktest.Value(0x0001, []byte("AB"))[:4],
			Header{},
			ErrUnexpectedEndOfStream,
		},
		{
			"truncated mid extended length",
			chunktest.ExtendedValue(0x0001, nil)[:10],
			Header{},
			ErrUnexpectedEndOfStream,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeHeader(newCursor(tt.wire))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeHeaderLeavesCursorAtPayload(t *testing.T) {
	c := newCursor(chunktest.Value(0x0001, []byte("AB")))
	_, err := decodeHeader(c)
	require.NoError(t, err)
	assert.Equal(t, int64(headerSize), c.position())

	c = newCursor(chunktest.ExtendedValue(0x0001, []byte("AB")))
	_, err = decodeHeader(c)
	require.NoError(t, err)
	assert.Equal(t, int64(extendedHeaderSize), c.position())
}

func TestClearSignBit(t *testing.T) {
	tests := []struct {
		name  string
		raw   int64
		width int
		want  int64
	}{
		{"32 bit tagged 14", int64(int32(math.MinInt32 + 14)), 32, 14},
		{"32 bit minimum", math.MinInt32, 32, 0},
		{"64 bit tagged 14", math.MinInt64 + 14, 64, 14},
		{"64 bit minimum", math.MinInt64, 64, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clearSignBit(tt.raw, tt.width))
		})
	}
}
