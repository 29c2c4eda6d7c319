package semantics

import (
	"context"
	"log/slog"

	"github.com/ardnew/acalc/grammar"
)

// Walker carries the state of one walk and is passed to every action.
type Walker[R grammar.Tag, E, T any] struct {
	ctx      context.Context
	env      E
	reg      *Registry[R, E, T]
	depth    int
	maxDepth int
}

// Context returns the context of the walk.
func (w *Walker[R, E, T]) Context() context.Context { return w.ctx }

// Env returns the environment of the walk.
func (w *Walker[R, E, T]) Env() E { return w.env }

// Depth returns the number of actions currently executing.
func (w *Walker[R, E, T]) Depth() int { return w.depth }

// Eval dispatches n to the action registered for its rule.
func (w *Walker[R, E, T]) Eval(n *grammar.Node[R]) (T, error) {
	var zero T

	if err := w.ctx.Err(); err != nil {
		return zero, err
	}

	if n.Kind != grammar.KindRule {
		return zero, ErrUnregisteredRule.With(
			slog.String("node", n.Name()),
			slog.Int("offset", n.Start),
		)
	}

	rule := slog.String("rule", n.Rule.String())

	a, ok := w.reg.actions[n.Rule]
	if !ok {
		return zero, ErrUnregisteredRule.With(rule, slog.Int("offset", n.Start))
	}

	if a.Arity() != len(n.Children) {
		return zero, ErrArityMismatch.With(
			rule,
			slog.Int("action_arity", a.Arity()),
			slog.Int("node_arity", len(n.Children)),
		)
	}

	if w.depth >= w.maxDepth {
		return zero, ErrRecursionLimit.With(
			rule,
			slog.Int("max_depth", w.maxDepth),
			slog.Int("offset", n.Start),
		)
	}

	w.depth++
	v, err := a.invoke(w, n)
	w.depth--

	return v, err
}

// EvalIter evaluates each child of the iteration node n in order and stops
// at the first error.
func (w *Walker[R, E, T]) EvalIter(n *grammar.Node[R]) ([]T, error) {
	if n.Kind != grammar.KindIter {
		return nil, ErrNotIteration.With(slog.String("node", n.Name()))
	}

	vals := make([]T, 0, len(n.Children))

	for _, c := range n.Children {
		v, err := w.Eval(c)
		if err != nil {
			return nil, err
		}

		vals = append(vals, v)
	}

	return vals, nil
}
