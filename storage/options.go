package storage

// DefaultMaxDepth bounds container nesting while decoding. Real scene
// archives nest a handful of levels; the bound exists to keep hostile or
// corrupt input from exhausting the process stack, not to describe the
// format.
const DefaultMaxDepth = 64

// ParserOptions holds the decode settings. The field values are private;
// use the With* options to set them.
type ParserOptions struct {
	maxDepth int
}

type ParserOption func(*ParserOptions)

// WithMaxDepth overrides the container nesting bound.
func WithMaxDepth(n int) ParserOption {
	return func(o *ParserOptions) {
		o.maxDepth = n
	}
}

func newParserOptions(opts ...ParserOption) ParserOptions {
	o := ParserOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
