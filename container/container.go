// Package container opens the OLE compound files ("structured storage")
// that scene archives are packaged in, and hands their named streams to
// the storage parser. Archives come either from the local filesystem or
// from a blob store, see BlobSource.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/richardlehane/mscfb"

	"github.com/mki/max-dump/storage"
)

// Streams are buffered whole before decoding; the cap keeps a corrupt
// directory entry from driving a pathological allocation.
const maxStreamBytes = 1 << 31

// CompoundFile presents the named streams of an OLE compound file. Stream
// names are the full directory path with "/" separating storage levels;
// for scene archives the interesting streams ("Scene", "ClassData", ...)
// all sit at the root, so the short name is the common case.
//
// A CompoundFile serializes its reads internally, so it is safe to share
// one instance between concurrent Parse calls.
type CompoundFile struct {
	mu      sync.Mutex
	names   []string
	entries map[string]*mscfb.File
	cache   map[string][]byte
	closer  io.Closer
}

var _ storage.StreamOpener = (*CompoundFile)(nil)

// Open opens the archive at path. The returned CompoundFile holds the
// file open until Close.
func Open(path string) (*CompoundFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	c, err := New(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	c.closer = f
	return c, nil
}

// OpenBytes opens an archive already held in memory.
func OpenBytes(data []byte) (*CompoundFile, error) {
	return New(bytes.NewReader(data))
}

// New opens an archive over ra, which must remain readable for the life
// of the CompoundFile. Input that mscfb rejects is reported as
// ErrNotCompoundFile.
func New(ra io.ReaderAt) (*CompoundFile, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrNotCompoundFile)
	}

	c := &CompoundFile{
		entries: map[string]*mscfb.File{},
		cache:   map[string][]byte{},
	}
	for {
		f, err := doc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The header parsed but the directory does not; the container
			// is still not readable as a compound file.
			return nil, fmt.Errorf("%s: %w", err.Error(), ErrNotCompoundFile)
		}
		name := entryName(f)
		if _, ok := c.entries[name]; !ok {
			c.names = append(c.names, name)
		}
		c.entries[name] = f
	}
	return c, nil
}

func entryName(f *mscfb.File) string {
	if len(f.Path) == 0 {
		return f.Name
	}
	return strings.Join(f.Path, "/") + "/" + f.Name
}

// StreamNames lists the streams in directory traversal order.
func (c *CompoundFile) StreamNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// OpenStream returns the complete content of the named stream. The bytes
// are cached on first read and shared on repeat calls; callers must not
// modify them. A name the archive does not have is reported with
// storage.ErrStreamNotFound, per the StreamOpener contract.
func (c *CompoundFile) OpenStream(_ context.Context, name string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.cache[name]; ok {
		return data, nil
	}
	f, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrStreamNotFound, name)
	}
	if f.Size < 0 {
		return nil, fmt.Errorf("%w: stream %q declares a negative size", ErrNotCompoundFile, name)
	}
	if f.Size > maxStreamBytes {
		return nil, fmt.Errorf("%w: stream %q declares %d bytes", ErrStreamTooLarge, name, f.Size)
	}

	data := make([]byte, f.Size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("reading stream %q: %w", name, err)
	}
	c.cache[name] = data
	return data, nil
}

// Close releases the underlying file for file backed archives. It is a no
// op for the in memory forms.
func (c *CompoundFile) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
