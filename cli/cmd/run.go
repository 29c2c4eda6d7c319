package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/pkg"
)

// Run evaluates script files against one environment. Statements are
// separated by newlines or semicolons, and '#' starts a comment.
type Run struct {
	Files []string `arg:"" default:"-" help:"Script files, or '-' for stdin." name:"file" type:"path"`
	Last  bool     `help:"Print only the value of the last statement." short:"l"`
	Echo  bool     `help:"Print each statement before its value." short:"e"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	srcs, closeAll, err := openSources(r.Files, s.In)
	if err != nil {
		return err
	}
	defer closeAll()

	var (
		in   = s.Interpreter()
		env  = s.Env()
		last *lang.Statement
	)

	for _, src := range srcs {
		for st, err := range in.EvaluateReader(ctx, src, env) {
			if err != nil {
				return pkg.WrapError(err).With(
					slog.String("command", "run"),
					slog.String("file", src.name),
					slog.String("statement", st.Source),
				)
			}

			if r.Last {
				last = &st

				continue
			}

			if err := r.print(s, st); err != nil {
				return err
			}
		}
	}

	if last != nil {
		return r.print(s, *last)
	}

	return nil
}

func (r *Run) print(s Session, st lang.Statement) (err error) {
	if r.Echo {
		_, err = fmt.Fprintf(s.Out, "%s => %s\n", st.Source, lang.FormatResult(st.Value))
	} else {
		_, err = fmt.Fprintln(s.Out, lang.FormatResult(st.Value))
	}

	return err
}
