package storage

import "fmt"

// Kind discriminates the two chunk payload forms. It is derived from the
// sign bit of the raw wire length and from nothing else.
type Kind uint8

const (
	// KindContainer chunks hold a nested sequence of child chunks.
	KindContainer Kind = 1
	// KindValue chunks hold raw bytes, opaque at this layer.
	KindValue Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "Container"
	case KindValue:
		return "Value"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Header is a decoded chunk header.
type Header struct {
	// ID identifies the chunk within its parent. Ids are only meaningful
	// relative to the containing chunk and siblings are free to repeat
	// them; nothing here interprets the value.
	ID int16
	// Length is the payload length in bytes. The raw wire length counts
	// the header itself; that and the kind flag are already removed.
	Length int64
	// Kind says whether the payload is child chunks or raw bytes.
	Kind Kind
	// Extended records that the wire carried the 64 bit escape form, so
	// the original layout remains reconstructible from the decoded tree.
	Extended bool
}

// Node is one decoded chunk. Exactly one of Children and Value is
// meaningful, selected by Header.Kind. A container owns its children and a
// value owns its bytes; trees are built bottom up in a single pass and are
// never mutated after that.
type Node struct {
	Header   Header
	Children []Node
	Value    []byte
}

// ChildByID returns the first direct child carrying id.
func (n Node) ChildByID(id int16) (Node, bool) {
	for _, c := range n.Children {
		if c.Header.ID == id {
			return c, true
		}
	}
	return Node{}, false
}

// IndexByID maps nodes by their chunk id. When siblings repeat an id the
// later one wins; use GroupByID when the repeats matter.
func IndexByID(nodes []Node) map[int16]Node {
	m := make(map[int16]Node, len(nodes))
	for _, n := range nodes {
		m[n.Header.ID] = n
	}
	return m
}

// GroupByID collects nodes sharing a chunk id, preserving stream order
// within each group.
func GroupByID(nodes []Node) map[int16][]Node {
	m := make(map[int16][]Node)
	for _, n := range nodes {
		m[n.Header.ID] = append(m[n.Header.ID], n)
	}
	return m
}

// Walk visits every node in the forest depth first, parents before
// children. depth is 0 for the top level nodes. A non-nil error from visit
// stops the walk and is returned as is.
func Walk(nodes []Node, visit func(n Node, depth int) error) error {
	return walk(nodes, 0, visit)
}

func walk(nodes []Node, depth int, visit func(n Node, depth int) error) error {
	for _, n := range nodes {
		if err := visit(n, depth); err != nil {
			return err
		}
		if err := walk(n.Children, depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}
