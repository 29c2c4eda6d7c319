package repl

import "github.com/ardnew/acalc/pkg"

var (
	ErrOutOfBounds  = pkg.NewError("history index out of range")
	ErrEditDeclined = pkg.NewError("edit declined")
	ErrHistory      = pkg.NewError("history file")
)
