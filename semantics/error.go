package semantics

import "github.com/ardnew/acalc/pkg"

// Registration errors.
var (
	ErrArityMismatch   = pkg.NewError("action arity does not match rule arity")
	ErrUnknownRule     = pkg.NewError("unknown rule")
	ErrDuplicateAction = pkg.NewError("duplicate action")
	ErrMissingAction   = pkg.NewError("missing action")
	ErrSealed          = pkg.NewError("registry is sealed")
)

// Walk errors.
var (
	ErrUnregisteredRule = pkg.NewError("no action for rule")
	ErrRecursionLimit   = pkg.NewError("maximum walk depth exceeded")
	ErrNotIteration     = pkg.NewError("node is not an iteration")
)
