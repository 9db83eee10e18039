package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobReader struct {
	blobs map[string][]byte
	err   error
}

func (f *fakeBlobReader) Reader(
	_ context.Context, identity string, _ ...azblob.Option,
) (*azblob.ReaderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.blobs[identity]
	if !ok {
		return nil, fmt.Errorf("no such blob: %s", identity)
	}
	return &azblob.ReaderResponse{Reader: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestBlobSourceFetchNonCompoundBlob(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	src := NewBlobSource(logger.Sugar, &fakeBlobReader{
		blobs: map[string][]byte{"scenes/kitchen.max": []byte("garbage")},
	})

	_, err := src.Fetch(context.Background(), "scenes/kitchen.max")
	require.ErrorIs(t, err, ErrNotCompoundFile)
}

func TestBlobSourceFetchReaderErrorPassesThrough(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	boom := errors.New("boom")
	src := NewBlobSource(logger.Sugar, &fakeBlobReader{err: boom})

	_, err := src.Fetch(context.Background(), "scenes/kitchen.max")
	require.ErrorIs(t, err, boom)
}

func TestWrapArchiveNotFound(t *testing.T) {
	require.NoError(t, WrapArchiveNotFound(nil))

	// Anything that is not the azure storage not-found error passes
	// through untouched.
	plain := errors.New("unrelated")
	assert.Equal(t, plain, WrapArchiveNotFound(plain))
}

func TestIsArchiveNotFound(t *testing.T) {
	assert.False(t, IsArchiveNotFound(nil))
	assert.False(t, IsArchiveNotFound(errors.New("unrelated")))
	assert.True(t, IsArchiveNotFound(fmt.Errorf("blob gone: %w", ErrArchiveNotFound)))
}
