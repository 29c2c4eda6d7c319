package cmd

import (
	"context"
	"io"

	"github.com/ardnew/acalc/lang"
)

// Grammar prints the expression grammar.
type Grammar struct {
	Output output `embed:""`
}

// Run executes the grammar command.
func (g *Grammar) Run(ctx context.Context) error {
	spec := lang.Grammar()

	return g.Output.render(ctx, sessionFrom(ctx).Out, spec.Outline(), func(w io.Writer) error {
		return spec.Format(w)
	})
}
