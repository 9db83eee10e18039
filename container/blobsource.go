package container

import (
	"context"
	"errors"
	"fmt"
	"io"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
)

const azblobBlobNotFound = "BlobNotFound"

// ArchiveBlobReader is the subset of the azblob store client needed to
// fetch archives. *azblob.Storer satisfies it.
type ArchiveBlobReader interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)
}

// BlobSource fetches scene archives from a blob store and opens them as
// compound files. Archives are modest, tens of MiB at the outside, so the
// whole blob is buffered before the container directory is opened.
type BlobSource struct {
	log   logger.Logger
	store ArchiveBlobReader
}

func NewBlobSource(log logger.Logger, store ArchiveBlobReader) *BlobSource {
	return &BlobSource{log: log, store: store}
}

// Fetch downloads the blob at blobPath and opens it as a compound file. A
// blob the store does not have is reported as ErrArchiveNotFound.
func (s *BlobSource) Fetch(ctx context.Context, blobPath string) (*CompoundFile, error) {
	rr, err := s.store.Reader(ctx, blobPath)
	if err != nil {
		return nil, WrapArchiveNotFound(err)
	}
	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading archive blob %q: %w", blobPath, err)
	}
	s.log.Debugf("fetched archive %q: %d bytes", blobPath, len(data))
	return OpenBytes(data)
}

func AsStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

// WrapArchiveNotFound translates err to ErrArchiveNotFound if the actual
// error is the azure sdk blob not found error. In all cases where the
// original err is not the azure BlobNotFound, the original err is returned
// as is. Including the case where it is nil.
func WrapArchiveNotFound(err error) error {
	if err == nil {
		return nil
	}
	serr, ok := AsStorageError(err)
	if !ok {
		return err
	}
	if serr.ErrorCode != azblobBlobNotFound {
		return err
	}
	return fmt.Errorf("%s: %w", err.Error(), ErrArchiveNotFound)
}

func IsArchiveNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrArchiveNotFound) {
		return true
	}
	serr, ok := AsStorageError(err)
	if !ok {
		return false
	}
	return serr.ErrorCode == azblobBlobNotFound
}
