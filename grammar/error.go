package grammar

import "github.com/ardnew/acalc/pkg"

// Errors reported by [Builder.Build].
var (
	ErrArityMismatch = pkg.NewError("alternatives have different arity")
	ErrDuplicateRule = pkg.NewError("duplicate rule")
	ErrUndefinedRule = pkg.NewError("undefined rule")
	ErrEmptyChoice   = pkg.NewError("choice has no alternatives")
)
