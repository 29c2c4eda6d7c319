package lang

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/acalc/pkg"
)

// Statement is one expression of a script.
type Statement struct {
	Source string  // expression text, trimmed
	Line   int     // 1-based line of the script the statement appears on
	Value  float64 // result of evaluation
}

// EvaluateReader evaluates each statement of the script read from r, in
// order, with env.
//
// Statements are separated by newlines or semicolons. Text from '#' to the
// end of a line is a comment. Blank statements are skipped.
//
// The returned sequence yields each evaluated statement. It stops after the
// first error, which carries the statement's line as the "line" attribute.
// Assignments made by earlier statements are not rolled back.
func (in *Interpreter) EvaluateReader(
	ctx context.Context,
	r io.Reader,
	env *Env,
) iter.Seq2[Statement, error] {
	return func(yield func(Statement, error) bool) {
		// Wrap reader with async read-ahead so input is fetched while
		// earlier statements evaluate.
		ra := readahead.NewReader(r)
		defer ra.Close()

		data, err := io.ReadAll(ra)
		if err != nil {
			yield(Statement{}, ErrReadInput.Wrap(err))

			return
		}

		in.logger.TraceContext(ctx, "read script", slog.Int("source_length", len(data)))

		if env == nil {
			env = NewEnv()
		}

		for st := range statements(string(data)) {
			v, err := in.Evaluate(ctx, st.Source, env)
			if err != nil {
				yield(st, pkg.WrapError(err).With(slog.Int("line", st.Line)))

				return
			}

			st.Value = v

			if !yield(st, nil) {
				return
			}
		}
	}
}

// statements splits a script into non-blank statements.
func statements(src string) iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		line := 0

		for text := range strings.Lines(src) {
			line++

			if c := strings.IndexByte(text, '#'); c >= 0 {
				text = text[:c]
			}

			for part := range strings.SplitSeq(text, ";") {
				if part = strings.TrimSpace(part); part == "" {
					continue
				}

				if !yield(Statement{Source: part, Line: line}) {
					return
				}
			}
		}
	}
}
