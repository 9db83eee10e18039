package container

import "errors"

var (
	ErrNotCompoundFile = errors.New("the file is not an OLE compound file")
	ErrArchiveNotFound = errors.New("the archive blob is not present in the store")
	ErrStreamTooLarge  = errors.New("the stream directory entry declares more bytes than can be buffered")
)
