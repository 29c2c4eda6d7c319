// Package log provides leveled structured logging based on [log/slog].
//
// A [Logger] is an immutable value. Configure it with functional options
// when it is made, and derive variants with [Logger.Wrap] and
// [Logger.With]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger = logger.With(slog.String("component", "repl"))
//	logger.DebugContext(ctx, "history loaded", slog.Int("entries", n))
//
// The zero Logger discards all output, so components can accept a Logger
// without requiring one.
//
// # Levels
//
// Five levels are defined, from [LevelTrace] to [LevelError]. Trace is
// below slog's debug level and reports evaluation internals.
//
// # Output
//
// Records are written as text (key=value) or JSON. With [WithPretty], both
// formats are colorized for a terminal.
//
// # Package-level logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default Logger, which [Config] reconfigures. Functions without a context
// parameter use [DefaultContextProvider].
package log
