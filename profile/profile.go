package profile

import (
	"log/slog"
	"slices"

	"github.com/ardnew/acalc/pkg"
)

// ErrUnknownMode is returned by [Profiler.Start] for a mode not listed by
// [Modes].
var ErrUnknownMode = pkg.NewError("unknown profiling mode")

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty selects the working directory
	Quiet bool   // suppress pkg/profile's own log messages
}

// Start starts profiling. An empty Mode, or a build without profiling
// support, starts nothing and returns a no-op Stopper.
//
// Only one profiler may run at a time.
func (p Profiler) Start() (Stopper, error) {
	if p.Mode == "" || !Enabled() {
		return ignore{}, nil
	}

	if !slices.Contains(Modes(), p.Mode) {
		return ignore{}, ErrUnknownMode.With(
			slog.String("mode", p.Mode),
			slog.Any("modes", Modes()),
		)
	}

	return start(p), nil
}

type ignore struct{}

func (ignore) Stop() {}
