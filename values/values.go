// Package values decodes the payloads of value chunks into typed Go
// values.
//
// The storage layer treats payloads as opaque bytes; which bytes mean what
// depends entirely on the chunk id and on which stream is being read. A
// Decoder is a plain function, and cross cutting shaping (NUL trimming,
// emptiness checks) composes by wrapping one decoder in another. A
// Registry maps chunk ids to decoders explicitly; there is no global
// table and no inference.
package values

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/mki/max-dump/storage"
)

var (
	ErrNotAValue = errors.New("values: container chunks carry no decodable payload")
	ErrBadValue  = errors.New("values: payload does not decode as the registered type")
)

// Decoder turns a value chunk payload into a typed Go value.
type Decoder func(raw []byte) (any, error)

// UTF16String decodes UTF-16 text, the native string encoding of the
// format. A leading byte order mark is honoured and stripped; without one
// the bytes are read little endian, matching how the archives are written.
func UTF16String(raw []byte) (any, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of UTF-16 code units",
			ErrBadValue, len(raw))
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	return string(out), nil
}

// ASCIIString decodes single byte text.
func ASCIIString(raw []byte) (any, error) {
	for _, b := range raw {
		if b > 0x7f {
			return nil, fmt.Errorf("%w: byte 0x%02x is not ascii", ErrBadValue, b)
		}
	}
	return string(raw), nil
}

func Uint16(raw []byte) (any, error) {
	if len(raw) != 2 {
		return nil, fmt.Errorf("%w: uint16 needs 2 bytes, have %d", ErrBadValue, len(raw))
	}
	return binary.LittleEndian.Uint16(raw), nil
}

func Int32(raw []byte) (any, error) {
	if len(raw) != 4 {
		return nil, fmt.Errorf("%w: int32 needs 4 bytes, have %d", ErrBadValue, len(raw))
	}
	return int32(binary.LittleEndian.Uint32(raw)), nil
}

func Uint32(raw []byte) (any, error) {
	if len(raw) != 4 {
		return nil, fmt.Errorf("%w: uint32 needs 4 bytes, have %d", ErrBadValue, len(raw))
	}
	return binary.LittleEndian.Uint32(raw), nil
}

func Int64(raw []byte) (any, error) {
	if len(raw) != 8 {
		return nil, fmt.Errorf("%w: int64 needs 8 bytes, have %d", ErrBadValue, len(raw))
	}
	return int64(binary.LittleEndian.Uint64(raw)), nil
}

// TrimRightNUL wraps a string decoder and trims trailing NULs from its
// result. String values in scene streams are commonly NUL terminated or
// NUL padded to an even size.
func TrimRightNUL(d Decoder) Decoder {
	return func(raw []byte) (any, error) {
		v, err := d(raw)
		if err != nil {
			return nil, err
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: TrimRightNUL wraps string decoders, got %T", ErrBadValue, v)
		}
		return strings.TrimRight(s, "\x00"), nil
	}
}

// NonEmpty wraps a decoder, rejecting empty payloads before they reach it.
func NonEmpty(d Decoder) Decoder {
	return func(raw []byte) (any, error) {
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: empty payload", ErrBadValue)
		}
		return d(raw)
	}
}

// Registry maps chunk ids to decoders. Ids are only meaningful relative to
// the stream and containing chunk being read, so registries are built per
// use.
type Registry struct {
	decoders map[int16]Decoder
}

func NewRegistry() *Registry {
	return &Registry{decoders: map[int16]Decoder{}}
}

// Register associates a decoder with a chunk id, replacing any previous
// registration for that id.
func (r *Registry) Register(id int16, d Decoder) {
	r.decoders[id] = d
}

func (r *Registry) Lookup(id int16) (Decoder, bool) {
	d, ok := r.decoders[id]
	return d, ok
}

// Decode applies the decoder registered for the node's id. found reports
// whether any decoder was registered; an unregistered id is not an error,
// the payload is simply opaque. A registered id on a container node is an
// error, containers have no payload to decode.
func (r *Registry) Decode(n storage.Node) (v any, found bool, err error) {
	d, ok := r.decoders[n.Header.ID]
	if !ok {
		return nil, false, nil
	}
	if n.Header.Kind == storage.KindContainer {
		return nil, true, fmt.Errorf("%w: chunk 0x%04x", ErrNotAValue, uint16(n.Header.ID))
	}
	v, err = d(n.Value)
	if err != nil {
		return nil, true, fmt.Errorf("chunk 0x%04x: %w", uint16(n.Header.ID), err)
	}
	return v, true, nil
}
