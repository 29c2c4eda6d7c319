package match

// DefaultMaxDepth is the default bound on nested rule applications.
const DefaultMaxDepth = 10000

// Option configures a match.
type Option func(*options)

type options struct {
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithMaxDepth bounds the nesting of rule applications.
// Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxDepth
		}

		o.maxDepth = n
	}
}
