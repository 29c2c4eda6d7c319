package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/acalc/cli/cmd/repl"
	"github.com/ardnew/acalc/lang"
)

// replCacheSize bounds the number of parsed inputs kept by the interactive
// session, where recalled history lines are parsed again.
const replCacheSize = 256

// Repl starts an interactive session.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	rs := repl.Session{
		Interpreter: s.Interpreter(lang.WithCache(replCacheSize)),
		Env:         s.Env(),
		Logger:      s.Logger,
		CacheDir:    s.CacheDir,
	}

	if r.NoHistory {
		rs.CacheDir = ""
	}

	return repl.Run(ctx, rs, tea.WithInput(s.In), tea.WithOutput(s.Out))
}
