package lang

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/acalc/grammar"
	"github.com/ardnew/acalc/log"
	"github.com/ardnew/acalc/match"
	"github.com/ardnew/acalc/semantics"
)

// DefaultMaxDepth is the default bound on nesting, applied both to rule
// applications while matching and to actions while evaluating.
const DefaultMaxDepth = 10000

// Interpreter evaluates expressions.
//
// An Interpreter holds no evaluation state and is safe for concurrent use;
// the environments passed to it are not.
type Interpreter struct {
	cache    *match.Cache[Rule]
	logger   log.Logger // structured logger (zero value discards)
	maxDepth int
}

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithMaxDepth sets the maximum nesting depth of an expression.
// Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		in.maxDepth = depth
	}
}

// WithCache memoizes the syntax trees of up to size distinct inputs.
// A size less than 1 selects [match.DefaultCacheSize].
func WithCache(size int) Option {
	return func(in *Interpreter) {
		in.cache = match.NewCache[Rule](size)
	}
}

// New returns an Interpreter configured with opts.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}

	return in
}

// Evaluate evaluates expression against env using an [Interpreter]
// configured with opts.
func Evaluate(
	ctx context.Context,
	expression string,
	env *Env,
	opts ...Option,
) (float64, error) {
	return New(opts...).Evaluate(ctx, expression, env)
}

// Evaluate matches expression against the grammar and evaluates it with env.
// A nil env is replaced by a new environment with the built-in bindings.
//
// Assignments performed before an error occurs remain in env.
func (in *Interpreter) Evaluate(
	ctx context.Context,
	expression string,
	env *Env,
) (float64, error) {
	n, err := in.Match(ctx, expression)
	if err != nil {
		return 0, err
	}

	return in.Walk(ctx, n, env)
}

// Match returns the syntax tree of expression.
//
// A mismatch is reported as [ErrMatch] wrapping a [*match.Failure]; excessive
// nesting as [ErrRecursionLimit].
func (in *Interpreter) Match(
	ctx context.Context,
	expression string,
) (*grammar.Node[Rule], error) {
	var (
		n   *grammar.Node[Rule]
		err error
	)

	depth := match.WithMaxDepth(in.maxDepth)

	if in.cache != nil {
		n, err = in.cache.Match(Grammar(), expression, Exp, depth)
	} else {
		n, err = match.Match(Grammar(), expression, Exp, depth)
	}

	in.logger.TraceContext(ctx, "match",
		slog.Int("source_length", len(expression)),
		slog.Bool("cached", in.cache != nil),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return nil, matchError(err)
	}

	return n, nil
}

// Walk evaluates a syntax tree returned by [Interpreter.Match] with env.
func (in *Interpreter) Walk(
	ctx context.Context,
	n *grammar.Node[Rule],
	env *Env,
) (float64, error) {
	reg, err := loadRegistry()
	if err != nil {
		return 0, err
	}

	if env == nil {
		env = NewEnv()
	}

	v, err := reg.Walk(
		ctx,
		&scope{env: env, logger: in.logger},
		n,
		semantics.WithMaxDepth(in.maxDepth),
	)
	if err != nil {
		if errors.Is(err, semantics.ErrRecursionLimit) {
			err = ErrRecursionLimit.Wrap(err)
		}

		in.logger.TraceContext(ctx, "evaluate failed", slog.Any("error", err))

		return 0, err
	}

	in.logger.TraceContext(ctx, "evaluate",
		slog.String("source", n.SourceString()),
		slog.Float64("result", v),
	)

	return v, nil
}

func matchError(err error) error {
	var f *match.Failure

	switch {
	case errors.As(err, &f):
		return ErrMatch.Wrap(f).With(
			slog.Int("offset", f.Offset),
			slog.Int("line", f.Line),
			slog.Int("column", f.Column),
		)

	case errors.Is(err, match.ErrDepthExceeded):
		return ErrRecursionLimit.Wrap(err)

	default:
		return err
	}
}
