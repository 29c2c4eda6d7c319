package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/pkg"
)

// Eval evaluates expressions given as arguments, in order, against one
// environment, printing each result on its own line.
//
// Without arguments, Eval starts an interactive session when stdin is a
// terminal, and otherwise evaluates stdin as a script.
type Eval struct {
	Expressions []string `arg:"" help:"Expressions to evaluate." name:"expression" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	if len(e.Expressions) == 0 {
		if isTerminal(s.In) {
			return (&Repl{}).Run(ctx)
		}

		return (&Run{Files: []string{stdinSource}}).Run(ctx)
	}

	in, env := s.Interpreter(), s.Env()

	for _, expr := range e.Expressions {
		v, err := in.Evaluate(ctx, expr, env)
		if err != nil {
			return pkg.WrapError(err).With(
				slog.String("command", "eval"),
				slog.String("expression", expr),
			)
		}

		if _, err := fmt.Fprintln(s.Out, lang.FormatResult(v)); err != nil {
			return err
		}
	}

	return nil
}

func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
