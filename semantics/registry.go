package semantics

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/acalc/grammar"
)

// DefaultMaxDepth is the default bound on nested action invocations.
const DefaultMaxDepth = 10000

// Registry maps each rule of a grammar to exactly one semantic action.
//
// R is the rule tag type, E the environment threaded through a walk and T
// the value computed by actions. A Registry is populated with
// [Registry.Register], checked for completeness with [Registry.Seal], and is
// read-only and safe for concurrent walks afterwards.
type Registry[R grammar.Tag, E, T any] struct {
	spec    *grammar.Spec[R]
	actions map[R]Action[R, E, T]
	sealed  bool
}

// NewRegistry returns an empty registry for the rules of spec.
func NewRegistry[R grammar.Tag, E, T any](spec *grammar.Spec[R]) *Registry[R, E, T] {
	return &Registry[R, E, T]{
		spec:    spec,
		actions: make(map[R]Action[R, E, T]),
	}
}

// Spec returns the grammar the registry was created for.
func (r *Registry[R, E, T]) Spec() *grammar.Spec[R] { return r.spec }

// Sealed reports whether [Registry.Seal] has succeeded.
func (r *Registry[R, E, T]) Sealed() bool { return r.sealed }

// Action returns the action registered for rule.
func (r *Registry[R, E, T]) Action(rule R) (Action[R, E, T], bool) {
	a, ok := r.actions[rule]

	return a, ok
}

// Register sets the action for rule. The arity of action must equal the
// arity of rule.
func (r *Registry[R, E, T]) Register(rule R, action Action[R, E, T]) error {
	attr := slog.String("rule", rule.String())

	if r.sealed {
		return ErrSealed.With(attr)
	}

	g, ok := r.spec.Rule(rule)
	if !ok {
		return ErrUnknownRule.With(attr)
	}

	if _, dup := r.actions[rule]; dup {
		return ErrDuplicateAction.With(attr)
	}

	if action.Arity() != g.Arity() {
		return ErrArityMismatch.With(
			attr,
			slog.Int("action_arity", action.Arity()),
			slog.Int("rule_arity", g.Arity()),
		)
	}

	r.actions[rule] = action

	return nil
}

// Seal verifies that every rule of the grammar has an action and makes the
// registry read-only.
func (r *Registry[R, E, T]) Seal() error {
	var missing []string

	for _, g := range r.spec.Rules() {
		if _, ok := r.actions[g.Tag]; !ok {
			missing = append(missing, g.Name())
		}
	}

	if len(missing) > 0 {
		return ErrMissingAction.With(
			slog.String("rules", strings.Join(missing, ", ")),
			slog.Int("count", len(missing)),
		)
	}

	r.sealed = true

	return nil
}

// WalkOption configures a walk.
type WalkOption func(*walkOptions)

type walkOptions struct {
	maxDepth int
}

// WithMaxDepth bounds the nesting of action invocations.
// Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(n int) WalkOption {
	return func(o *walkOptions) {
		if n < 1 {
			n = DefaultMaxDepth
		}

		o.maxDepth = n
	}
}

// Walk evaluates the tree rooted at n with env.
func (r *Registry[R, E, T]) Walk(
	ctx context.Context,
	env E,
	n *grammar.Node[R],
	opts ...WalkOption,
) (T, error) {
	o := walkOptions{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	w := &Walker[R, E, T]{
		ctx:      ctx,
		reg:      r,
		env:      env,
		maxDepth: o.maxDepth,
	}

	return w.Eval(n)
}
