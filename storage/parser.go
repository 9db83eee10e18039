package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
)

// StreamOpener is the contract between the parser and whatever holds the
// archive. The container package provides the compound file backed
// implementation; tests substitute in memory fakes.
type StreamOpener interface {
	// StreamNames lists the streams present in the archive, for
	// diagnostics when a requested stream is missing.
	StreamNames() []string
	// OpenStream returns the complete content of the named stream. A
	// missing stream is reported with an error matching ErrStreamNotFound.
	OpenStream(ctx context.Context, name string) ([]byte, error)
}

// Parser decodes named archive streams into chunk forests.
//
// A Parser holds no decode state between calls, so one instance is safe
// for concurrent Parse calls provided its StreamOpener is.
type Parser struct {
	log    logger.Logger
	opener StreamOpener
	opts   ParserOptions
}

func NewParser(log logger.Logger, opener StreamOpener, opts ...ParserOption) *Parser {
	return &Parser{
		log:    log,
		opener: opener,
		opts:   newParserOptions(opts...),
	}
}

// Parse decodes the named stream into its top level chunk sequence. The
// whole stream is the byte budget: the returned forest accounts for every
// byte of the stream or the decode fails. There are no partial results.
//
// Requesting a stream the archive does not have returns an
// *InvalidStreamNameError listing the streams it does have.
func (p *Parser) Parse(ctx context.Context, streamName string) ([]Node, error) {
	data, err := p.opener.OpenStream(ctx, streamName)
	if err != nil {
		if errors.Is(err, ErrStreamNotFound) {
			return nil, &InvalidStreamNameError{Name: streamName, Valid: p.opener.StreamNames()}
		}
		return nil, fmt.Errorf("opening stream %q: %w", streamName, err)
	}
	p.log.Debugf("parsing stream %q: %d bytes", streamName, len(data))

	nodes, err := readNodes(newCursor(data), int64(len(data)), 0, p.opts.maxDepth)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", streamName, err)
	}
	return nodes, nil
}
