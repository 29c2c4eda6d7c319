package lang

import "github.com/ardnew/acalc/pkg"

// Predefined errors (sentinel values).
var (
	ErrMatch          = pkg.NewError("syntax error")
	ErrUndefinedName  = pkg.NewError("undefined name")
	ErrNotCallable    = pkg.NewError("not a function")
	ErrNotValue       = pkg.NewError("function used as a value")
	ErrArityMismatch  = pkg.NewError("wrong number of arguments")
	ErrRecursionLimit = pkg.NewError("maximum recursion depth exceeded")
	ErrReadOnly       = pkg.NewError("cannot assign to read-only name")
	ErrInvalidBinding = pkg.NewError("invalid binding")
	ErrReadInput      = pkg.NewError("failed to read input")
)
