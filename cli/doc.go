// Package cli contains the command line interface for acalc.
//
// # Usage
//
// Expressions given as arguments are evaluated in order against one
// environment, and each result is printed on its own line:
//
//	acalc 'r = 2' 'pi * r ^ 2'
//
// With no arguments, acalc starts an interactive session when standard input
// is a terminal, and otherwise evaluates standard input as a script.
//
// # Commands
//
//   - eval: Evaluate expressions (default)
//   - run: Evaluate script files, or '-' for stdin
//   - repl: Start an interactive session
//   - tree: Print the parse tree of an expression
//   - grammar: Print the expression grammar
//   - env: List constants, variables and functions
//   - init: Write the current flag values to the configuration file
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory. YAML keys name flags with hyphens or underscores,
// and nested mappings join their keys with a hyphen:
//
//	max-depth: 500
//	log:
//	  level: debug
//	  pretty: false
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, kitchen, none, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o acalc .
//
// Flags:
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Examples
//
//	# Parse tree as YAML
//	acalc tree -o yaml '1 + 2 * 3'
//
//	# Evaluate a script, printing each statement with its value
//	acalc run --echo setup.calc
//
//	# Functions matching a name
//	acalc env -k function sin cos
package cli
