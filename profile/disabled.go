//go:build !pprof

package profile

// Enabled reports whether profiling support is compiled in.
func Enabled() bool { return false }

// Modes returns the supported profiling modes, none without the pprof build
// tag.
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }
