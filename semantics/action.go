package semantics

import "github.com/ardnew/acalc/grammar"

// Action is a semantic action for nodes of one rule. The arity of an action
// is a property of its type: a [Func2] receives exactly two children.
type Action[R grammar.Tag, E, T any] interface {
	Arity() int

	invoke(w *Walker[R, E, T], n *grammar.Node[R]) (T, error)
}

// Func0 is an action for rules of arity 0.
type Func0[R grammar.Tag, E, T any] func(w *Walker[R, E, T], n *grammar.Node[R]) (T, error)

// Func1 is an action for rules of arity 1.
type Func1[R grammar.Tag, E, T any] func(w *Walker[R, E, T], n, a *grammar.Node[R]) (T, error)

// Func2 is an action for rules of arity 2.
type Func2[R grammar.Tag, E, T any] func(w *Walker[R, E, T], n, a, b *grammar.Node[R]) (T, error)

// Func3 is an action for rules of arity 3.
type Func3[R grammar.Tag, E, T any] func(w *Walker[R, E, T], n, a, b, c *grammar.Node[R]) (T, error)

// Func4 is an action for rules of arity 4.
type Func4[R grammar.Tag, E, T any] func(w *Walker[R, E, T], n, a, b, c, d *grammar.Node[R]) (T, error)

func (Func0[R, E, T]) Arity() int { return 0 }
func (Func1[R, E, T]) Arity() int { return 1 }
func (Func2[R, E, T]) Arity() int { return 2 }
func (Func3[R, E, T]) Arity() int { return 3 }
func (Func4[R, E, T]) Arity() int { return 4 }

func (f Func0[R, E, T]) invoke(w *Walker[R, E, T], n *grammar.Node[R]) (T, error) {
	return f(w, n)
}

func (f Func1[R, E, T]) invoke(w *Walker[R, E, T], n *grammar.Node[R]) (T, error) {
	return f(w, n, n.Children[0])
}

func (f Func2[R, E, T]) invoke(w *Walker[R, E, T], n *grammar.Node[R]) (T, error) {
	return f(w, n, n.Children[0], n.Children[1])
}

func (f Func3[R, E, T]) invoke(w *Walker[R, E, T], n *grammar.Node[R]) (T, error) {
	return f(w, n, n.Children[0], n.Children[1], n.Children[2])
}

func (f Func4[R, E, T]) invoke(w *Walker[R, E, T], n *grammar.Node[R]) (T, error) {
	return f(w, n, n.Children[0], n.Children[1], n.Children[2], n.Children[3])
}

// Delegate returns an action for single-child rules that yields the value of
// the child.
func Delegate[R grammar.Tag, E, T any]() Func1[R, E, T] {
	return func(w *Walker[R, E, T], _, a *grammar.Node[R]) (T, error) {
		return w.Eval(a)
	}
}
