// Package export serializes decoded chunk forests as deterministic CBOR
// documents, for archiving dumps and feeding downstream tooling. The
// render package is the human readable counterpart.
package export

import (
	"time"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/google/uuid"

	"github.com/mki/max-dump/storage"
)

// Document is the machine readable form of one decoded stream.
type Document struct {
	// DumpID names this dump run.
	DumpID string `cbor:"1,keyasint"`
	// Stream is the archive stream the nodes were decoded from.
	Stream string `cbor:"2,keyasint"`
	// CreatedAt is the dump time in unix seconds.
	CreatedAt int64  `cbor:"3,keyasint"`
	Nodes     []Node `cbor:"4,keyasint"`
}

// Node mirrors storage.Node in a tagged, compact form. Empty values and
// child lists are omitted rather than encoded empty.
type Node struct {
	ID       int16  `cbor:"1,keyasint"`
	Kind     uint8  `cbor:"2,keyasint"`
	Length   int64  `cbor:"3,keyasint"`
	Extended bool   `cbor:"4,keyasint,omitempty"`
	Value    []byte `cbor:"5,keyasint,omitempty"`
	Children []Node `cbor:"6,keyasint,omitempty"`
}

// NewDocument captures a decoded stream as an exportable document, stamped
// with a fresh dump id and the current time.
func NewDocument(stream string, nodes []storage.Node) Document {
	return Document{
		DumpID:    uuid.NewString(),
		Stream:    stream,
		CreatedAt: time.Now().Unix(),
		Nodes:     fromStorage(nodes),
	}
}

func fromStorage(nodes []storage.Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Node{
			ID:       n.Header.ID,
			Kind:     uint8(n.Header.Kind),
			Length:   n.Header.Length,
			Extended: n.Header.Extended,
			Children: fromStorage(n.Children),
		}
		if len(n.Value) > 0 {
			out[i].Value = n.Value
		}
	}
	return out
}

// Forest converts the document's nodes back into the decoder's node form.
func (d Document) Forest() []storage.Node {
	return toStorage(d.Nodes)
}

func toStorage(nodes []Node) []storage.Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]storage.Node, len(nodes))
	for i, n := range nodes {
		out[i] = storage.Node{
			Header: storage.Header{
				ID:       n.ID,
				Length:   n.Length,
				Kind:     storage.Kind(n.Kind),
				Extended: n.Extended,
			},
			Value:    n.Value,
			Children: toStorage(n.Children),
		}
	}
	return out
}

// NewCodec returns the deterministic codec documents are written with.
// Determinism keeps dumps of identical streams byte identical, so stored
// dumps diff cleanly.
func NewCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(),
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

func Marshal(codec dtcbor.CBORCodec, d Document) ([]byte, error) {
	return codec.MarshalCBOR(d)
}

func Unmarshal(codec dtcbor.CBORCodec, data []byte) (Document, error) {
	var d Document
	if err := codec.UnmarshalInto(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}
