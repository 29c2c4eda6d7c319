package cmd

import (
	"io"

	"github.com/fatih/color"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/pkg"
)

var (
	ErrMarshal     = pkg.NewError("marshal output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrOpenSource  = pkg.NewError("open source file")
	ErrFormat      = pkg.NewError("unsupported output format")
)

// Report writes err to w as [lang.Describe] renders it, in c when c is not
// nil.
func Report(w io.Writer, c *color.Color, err error) {
	msg := lang.Describe(err)

	if c != nil {
		msg = c.Sprint(msg)
	}

	_, _ = io.WriteString(w, msg+"\n")
}
