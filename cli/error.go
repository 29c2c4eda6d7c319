package cli

import "github.com/ardnew/acalc/pkg"

var (
	ErrSetup  = pkg.NewError("prepare runtime directories")
	ErrConfig = pkg.NewError("invalid configuration file")
)
