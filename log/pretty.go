package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette colors pretty output. Colors are always enabled on these values;
// whether to be pretty at all is the caller's decision (see [WithPretty]).
type palette struct {
	key, str, num, yes, no, dur, tim, null *color.Color
	levels                                 map[slog.Level]*color.Color
}

var loadPalette = sync.OnceValue(func() *palette {
	c := func(attrs ...color.Attribute) *color.Color {
		cc := color.New(attrs...)
		cc.EnableColor()

		return cc
	}

	return &palette{
		key:  c(color.FgHiBlack),
		str:  c(color.FgCyan),
		num:  c(color.FgYellow),
		yes:  c(color.FgGreen),
		no:   c(color.FgRed),
		dur:  c(color.FgMagenta),
		tim:  c(color.FgBlue),
		null: c(color.FgHiBlack),
		levels: map[slog.Level]*color.Color{
			slog.Level(LevelTrace): c(color.FgHiBlack),
			slog.Level(LevelDebug): c(color.FgBlue),
			slog.Level(LevelInfo):  c(color.FgGreen),
			slog.Level(LevelWarn):  c(color.FgYellow, color.Bold),
			slog.Level(LevelError): c(color.FgRed, color.Bold),
		},
	}
})

func (p *palette) level(l slog.Level) *color.Color {
	best := slog.Level(LevelTrace)

	for k := range p.levels {
		if k <= l && k > best {
			best = k
		}
	}

	return p.levels[best]
}

// value renders v in the color of its kind, without quoting.
func (p *palette) value(buf *bytes.Buffer, v slog.Value) {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		p.str.Fprint(buf, v.String())
	case slog.KindInt64:
		p.num.Fprint(buf, strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		p.num.Fprint(buf, strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		p.num.Fprint(buf, strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			p.yes.Fprint(buf, "true")
		} else {
			p.no.Fprint(buf, "false")
		}
	case slog.KindDuration:
		p.dur.Fprint(buf, v.Duration().String())
	case slog.KindTime:
		p.tim.Fprint(buf, v.Time().Format(time.RFC3339))
	default:
		if v.Any() == nil {
			p.null.Fprint(buf, "null")
		} else {
			p.str.Fprint(buf, v.String())
		}
	}
}

// prettyHandler holds the state shared by both pretty handlers: options,
// attributes added with WithAttrs (already qualified by group) and the open
// group prefix.
type prettyHandler struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	formatTime FormatTime
	attrs      []slog.Attr
	prefix     string
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

// header returns the leading attributes of a record: time, level, source
// and message.
func (h *prettyHandler) header(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() && h.formatTime != nil {
		if s := h.formatTime(r.Time); s != "" {
			attrs = append(attrs, slog.String(slog.TimeKey, s))
		}
	}

	attrs = append(attrs, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			attrs = append(attrs, slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	return append(attrs, slog.String(slog.MessageKey, r.Message))
}

// body returns the handler's stored attributes followed by those of r.
func (h *prettyHandler) body(r slog.Record) []slog.Attr {
	attrs := slices.Clone(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		attrs = append(attrs, a)

		return true
	})

	return attrs
}

func (h *prettyHandler) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) withAttrs(attrs []slog.Attr) prettyHandler {
	c := *h
	c.attrs = slices.Clip(h.attrs)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return c
}

func (h *prettyHandler) withGroup(name string) prettyHandler {
	c := *h
	if name != "" {
		c.prefix = h.prefix + name + "."
	}

	return c
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct{ prettyHandler }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		formatTime: formatTime,
	}}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var (
		buf bytes.Buffer
		p   = loadPalette()
	)

	for _, a := range append(h.header(r), h.body(r)...) {
		if a.Equal(slog.Attr{}) {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		p.key.Fprint(&buf, a.Key)
		buf.WriteByte('=')

		if level, ok := a.Value.Any().(slog.Level); ok && a.Key == slog.LevelKey {
			p.level(level).Fprint(&buf, Level(level).String())

			continue
		}

		p.value(&buf, a.Value)
	}

	return h.write(&buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes an indented, colorized JSON-like object per
// record. Keys and strings are unquoted.
type prettyJSONHandler struct{ prettyHandler }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		formatTime: formatTime,
	}}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	var (
		buf   bytes.Buffer
		p     = loadPalette()
		first = true
	)

	buf.WriteString("{\n")

	for _, a := range append(h.header(r), h.body(r)...) {
		if a.Equal(slog.Attr{}) {
			continue
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString("  ")
		p.key.Fprint(&buf, a.Key)
		buf.WriteString(": ")

		if level, ok := a.Value.Any().(slog.Level); ok && a.Key == slog.LevelKey {
			p.level(level).Fprint(&buf, Level(level).String())

			continue
		}

		p.value(&buf, a.Value)
	}

	buf.WriteString("\n}")

	return h.write(&buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
