package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/acalc/cli/cmd"
	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/pkg"
)

// CLI is the top-level command-line interface for acalc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	MaxDepth int              `default:"${maxDepth}" help:"Maximum nesting depth of an expression."         name:"max-depth"`
	Shadow   bool             `default:"false"       help:"Allow assignment to constants and functions."    negatable:""`
	Version  kong.VersionFlag `help:"Print version and exit."                                             short:"V"`

	Eval    cmd.Eval    `cmd:"" default:"withargs" help:"Evaluate expressions (default)"`
	Run     cmd.Run     `cmd:""                   help:"Evaluate script files"`
	Repl    cmd.Repl    `cmd:""                   help:"Start an interactive session"`
	Tree    cmd.Tree    `cmd:""                   help:"Print the parse tree of an expression"`
	Grammar cmd.Grammar `cmd:""                   help:"Print the expression grammar"`
	Env     cmd.Env     `cmd:""                   help:"List constants, variables and functions"`
	Init    cmd.Init    `cmd:""                   help:"Initialize configuration file"`
}

// Run executes the acalc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Version,
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that parse errors are
	// reported in the requested format.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	stop, err := cli.Pprof.start(ctx)
	if err != nil {
		return err
	}
	defer stop()

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSession(ctx, cmd.Session{
		Logger:   logger,
		CacheDir: pkg.CacheDir(),
		MaxDepth: cli.MaxDepth,
		Shadow:   cli.Shadow,
	})

	return ktx.Run(ctx, &cli)
}
