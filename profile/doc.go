// Package profile provides optional runtime profiling for acalc.
//
// Profiling is built on [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag. Without it, [Enabled] reports false, [Modes] is
// empty, and [Profiler.Start] returns a Stopper that does nothing.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/acalc", Quiet: true}
//	s, err := p.Start()
//	if err != nil {
//		return err
//	}
//	defer s.Stop()
//
// Profile data is written to Path in a file named after the mode
// (cpu.pprof, mem.pprof, ...) when the Stopper is stopped. Analyze it with
//
//	go tool pprof -http=: /tmp/acalc/cpu.pprof
//
// # Command line
//
// A pprof build of acalc accepts --pprof-mode and --pprof-dir:
//
//	go build -tags pprof .
//	./acalc --pprof-mode cpu run bench.calc
//
// The default output directory is the pprof subdirectory of the user cache
// directory.
package profile

// Tag is the build tag that enables profiling, and the name of the default
// output subdirectory.
const Tag = `pprof`
