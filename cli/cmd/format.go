package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Output formats accepted by the tree, grammar and env commands.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// output selects how a command renders its result.
type output struct {
	Format string `default:"text" enum:"text,yaml,json" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                          help:"Indent width for YAML and JSON output." short:"i"`
}

// render writes v to w in the selected format. Text output is produced by
// text; YAML and JSON marshal v.
func (o output) render(
	ctx context.Context,
	w io.Writer,
	v any,
	text func(io.Writer) error,
) error {
	var (
		data []byte
		err  error
	)

	switch o.Format {
	case FormatText, "":
		return text(w)

	case FormatJSON:
		if o.Indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", o.Indent))
		} else {
			data, err = json.Marshal(v)
		}

	case FormatYAML:
		var opts []yaml.EncodeOption
		if o.Indent > 0 {
			opts = append(opts, yaml.Indent(o.Indent))
		}

		data, err = yaml.MarshalContext(ctx, v, opts...)

	default:
		return ErrFormat.With(slog.String("format", o.Format))
	}

	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", o.Format))
	}

	if _, err = w.Write(data); err != nil {
		return err
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}

	return err
}
