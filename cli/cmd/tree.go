package cmd

import (
	"context"
	"io"
)

// Tree prints the concrete syntax tree of an expression without evaluating
// it.
type Tree struct {
	Output output `embed:""`

	Expression string `arg:"" help:"Expression to parse."`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	n, err := s.Interpreter().Match(ctx, t.Expression)
	if err != nil {
		return err
	}

	return t.Output.render(ctx, s.Out, n.Outline(), func(w io.Writer) error {
		return n.Print(w)
	})
}
