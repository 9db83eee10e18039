package storage

import "fmt"

// Decode decodes a complete chunk stream already held in memory into its
// top level chunk sequence. Parse is the stream name oriented form built
// on top of this.
func Decode(data []byte, opts ...ParserOption) ([]Node, error) {
	o := newParserOptions(opts...)
	return readNodes(newCursor(data), int64(len(data)), 0, o.maxDepth)
}

// readNodes decodes consecutive chunks until exactly budget bytes have
// been consumed, recursing with a container's payload length as the child
// budget. Every claim is checked against the remaining budget before a
// payload byte is read, so the loop can only exit with the budget consumed
// exactly. depth is 0 at the top level; the bound protects the process
// stack from hostile nesting.
func readNodes(c *cursor, budget int64, depth, maxDepth int) ([]Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: %d levels of containers at offset %d, the bound is %d",
			ErrNestingTooDeep, depth, c.position(), maxDepth)
	}

	var nodes []Node
	start := c.position()
	for c.position()-start < budget {
		hdrOff := c.position()
		hdr, err := decodeHeader(c)
		if err != nil {
			return nil, err
		}
		used := c.position() - start
		if used > budget {
			return nil, fmt.Errorf(
				"%w: the chunk header at offset %d runs past the enclosing budget of %d bytes",
				ErrChunkOverrun, hdrOff, budget)
		}
		if hdr.Length > budget-used {
			return nil, fmt.Errorf(
				"%w: chunk 0x%04x at offset %d claims %d payload bytes, %d remain in the enclosing budget",
				ErrTruncatedStream, uint16(hdr.ID), hdrOff, hdr.Length, budget-used)
		}

		n := Node{Header: hdr}
		if hdr.Kind == KindContainer {
			n.Children, err = readNodes(c, hdr.Length, depth+1, maxDepth)
		} else {
			n.Value, err = c.readBytes(hdr.Length)
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	return nodes, nil
}
