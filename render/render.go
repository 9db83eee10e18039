// Package render writes decoded chunk forests as indented text, one line
// per chunk with byte previews for value payloads. The output is the
// interactive dump format; the export package is the machine readable
// counterpart.
package render

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/mki/max-dump/storage"
	"github.com/mki/max-dump/values"
)

const (
	indentWidth = 2
	// previews show at most this many payload bytes; the full payload is
	// always available through the export form.
	previewBytes = 16
)

// Renderer writes chunk forests as text. The zero options form prints
// structure and raw previews; attach a values.Registry to add decoded
// lines for known chunk ids.
type Renderer struct {
	reg *values.Registry
}

type Option func(*Renderer)

// WithRegistry attaches typed decoders. Nodes whose ids resolve gain a
// decoded line; decode failures are shown rather than swallowed, the raw
// previews above them already carry the bytes.
func WithRegistry(reg *values.Registry) Option {
	return func(r *Renderer) {
		r.reg = reg
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Tree renders a whole forest with the default Renderer.
func Tree(w io.Writer, nodes []storage.Node) error {
	return New().Tree(w, nodes)
}

// Node renders a single node and its descendants with the default
// Renderer, indented as if it sat at the given container depth.
func Node(w io.Writer, n storage.Node, depth int) error {
	return New().Node(w, n, depth)
}

func (r *Renderer) Tree(w io.Writer, nodes []storage.Node) error {
	var b strings.Builder
	for _, n := range nodes {
		r.writeNode(&b, n, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) Node(w io.Writer, n storage.Node, depth int) error {
	var b strings.Builder
	r.writeNode(&b, n, depth)
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) writeNode(b *strings.Builder, n storage.Node, depth int) {
	pad := strings.Repeat(" ", depth*indentWidth)

	if n.Header.Kind == storage.KindContainer {
		fmt.Fprintf(b, "%s[0x%04x Container len=%d children=%d%s]\n",
			pad, uint16(n.Header.ID), n.Header.Length, len(n.Children), extSuffix(n.Header))
		for _, c := range n.Children {
			r.writeNode(b, c, depth+1)
		}
		return
	}

	fmt.Fprintf(b, "%s[0x%04x Value len=%d%s]\n",
		pad, uint16(n.Header.ID), n.Header.Length, extSuffix(n.Header))
	if len(n.Value) > 0 {
		fmt.Fprintf(b, "%s  hex: %s\n", pad, hexPreview(n.Value))
		fmt.Fprintf(b, "%s  ascii: %s\n", pad, asciiPreview(n.Value))
		if len(n.Value) == 4 {
			fmt.Fprintf(b, "%s  int: %d\n", pad, int32(binary.LittleEndian.Uint32(n.Value)))
		}
	}
	if r.reg != nil {
		v, found, err := r.reg.Decode(n)
		switch {
		case !found:
		case err != nil:
			fmt.Fprintf(b, "%s  decode error: %v\n", pad, err)
		default:
			if s, ok := v.(string); ok {
				fmt.Fprintf(b, "%s  decoded: %q\n", pad, s)
			} else {
				fmt.Fprintf(b, "%s  decoded: %v\n", pad, v)
			}
		}
	}
}

func extSuffix(h storage.Header) string {
	if h.Extended {
		return " ext"
	}
	return ""
}

func hexPreview(v []byte) string {
	shown := v
	if len(v) > previewBytes {
		shown = v[:previewBytes]
	}
	parts := make([]string, len(shown))
	for i, b := range shown {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	s := strings.Join(parts, " ")
	if len(v) > previewBytes {
		s += fmt.Sprintf(" .. (%d bytes total)", len(v))
	}
	return s
}

// asciiPreview maps the shown bytes to printable ascii, with '.' standing
// in for everything else.
func asciiPreview(v []byte) string {
	shown := v
	if len(v) > previewBytes {
		shown = v[:previewBytes]
	}
	out := make([]byte, len(shown))
	for i, b := range shown {
		if b >= 0x20 && b <= 0x7e {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
