package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedHeader       = errors.New("the chunk header is malformed")
	ErrTruncatedStream       = errors.New("a chunk claims more bytes than its enclosing budget provides")
	ErrChunkOverrun          = errors.New("chunk decoding consumed bytes beyond the declared budget")
	ErrUnexpectedEndOfStream = errors.New("the stream ended part way through a read")
	ErrNestingTooDeep        = errors.New("container nesting exceeds the configured depth bound")
	ErrInvalidStreamName     = errors.New("invalid stream name")

	// ErrStreamNotFound is the error contract between the parser and its
	// StreamOpener. Opener implementations return an error matching this
	// sentinel (via errors.Is) when the named stream is absent, and the
	// parser turns that into an *InvalidStreamNameError carrying the names
	// the archive does have.
	ErrStreamNotFound = errors.New("the named stream is not present in the archive")
)

// InvalidStreamNameError reports a request for a stream the archive does
// not contain. Valid lists the stream names the archive does contain, so a
// caller can present the choices directly.
type InvalidStreamNameError struct {
	Name  string
	Valid []string
}

func (e *InvalidStreamNameError) Error() string {
	return fmt.Sprintf("invalid stream name: %q. valid choices are: %s",
		e.Name, strings.Join(e.Valid, ", "))
}

func (e *InvalidStreamNameError) Unwrap() error { return ErrInvalidStreamName }
