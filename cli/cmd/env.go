package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"text/tabwriter"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/pkg"
)

// Env lists the bindings of a new environment, after evaluating any
// expressions given with --define.
type Env struct {
	Output output `embed:""`

	Names  []string `arg:""                                  help:"Names to list (default: all)." name:"name" optional:""`
	Kind   []string `enum:"constant,variable,function"        help:"List only bindings of these kinds (${enum})." short:"k"`
	Define []string `help:"Expressions evaluated before listing." placeholder:"EXPR" short:"d"`
}

// binding is the serialized form of a [lang.Binding]. Values are formatted
// as the language spells them, since JSON has no non-finite numbers.
type binding struct {
	Name      string `json:"name"                yaml:"name"`
	Kind      string `json:"kind"                yaml:"kind"`
	Value     string `json:"value,omitempty"     yaml:"value,omitempty"`
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`
	Doc       string `json:"doc,omitempty"       yaml:"doc,omitempty"`
}

func makeBinding(b lang.Binding) binding {
	out := binding{Name: b.Name, Kind: b.Kind.String(), Doc: b.Doc}

	if b.Kind == lang.KindFunction {
		out.Signature = b.Signature()
	} else {
		out.Value = lang.FormatResult(b.Value)
	}

	return out
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	list, err := e.bindings(ctx, s)
	if err != nil {
		return err
	}

	return e.Output.render(ctx, s.Out, list, func(w io.Writer) error {
		return writeBindings(w, list)
	})
}

func (e *Env) bindings(ctx context.Context, s Session) ([]binding, error) {
	in, env := s.Interpreter(), s.Env()

	for _, expr := range e.Define {
		if _, err := in.Evaluate(ctx, expr, env); err != nil {
			return nil, pkg.WrapError(err).With(
				slog.String("command", "env"),
				slog.String("expression", expr),
			)
		}
	}

	for _, name := range e.Names {
		if _, ok := env.Lookup(name); !ok {
			return nil, lang.ErrUndefinedName.With(slog.String("name", name))
		}
	}

	list := []binding{}

	for b := range env.All() {
		if len(e.Names) > 0 && !slices.Contains(e.Names, b.Name) {
			continue
		}

		if len(e.Kind) > 0 && !slices.Contains(e.Kind, b.Kind.String()) {
			continue
		}

		list = append(list, makeBinding(b))
	}

	return list, nil
}

func writeBindings(w io.Writer, list []binding) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, b := range list {
		def := b.Value
		if b.Kind == lang.KindFunction.String() {
			def = b.Signature
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Name, b.Kind, def, b.Doc)
	}

	return tw.Flush()
}
