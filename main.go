package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/ardnew/acalc/cli"
	"github.com/ardnew/acalc/cli/cmd"
	"github.com/ardnew/acalc/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		cmd.Report(os.Stderr, color.New(color.FgRed), err)
		log.Debug("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
