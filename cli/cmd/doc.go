// Package cmd implements the acalc subcommands: eval, run, repl, tree,
// grammar, env and init.
//
// Commands read their shared settings from a [Session] stored in the
// context with [WithSession], and the parsed command line from
// [WithContext].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
