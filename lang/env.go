package lang

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/acalc/match"
)

// Kind classifies a [Binding].
type Kind uint8

const (
	// KindConstant is a read-only numeric value.
	KindConstant Kind = iota
	// KindVariable is a numeric value that can be reassigned.
	KindVariable
	// KindFunction is a host function of fixed arity.
	KindFunction
)

// String returns a string representation of the binding kind.
func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Binding associates a name with a constant, a variable or a function.
//
// Value is meaningful for constants and variables. Fn, Arity and Params are
// meaningful for functions; Fn always receives exactly Arity arguments.
type Binding struct {
	Fn     func(args ...float64) float64
	Name   string
	Doc    string
	Params []string
	Value  float64
	Arity  int
	Kind   Kind
}

// NewConstant returns a constant binding.
func NewConstant(name string, value float64, doc string) Binding {
	return Binding{Name: name, Doc: doc, Value: value, Kind: KindConstant}
}

// NewVariable returns a variable binding.
func NewVariable(name string, value float64) Binding {
	return Binding{Name: name, Value: value, Kind: KindVariable}
}

// NewFunction returns a function binding whose arity is the number of named
// params.
func NewFunction(
	name, doc string,
	params []string,
	fn func(args ...float64) float64,
) Binding {
	return Binding{
		Fn:     fn,
		Name:   name,
		Doc:    doc,
		Params: params,
		Arity:  len(params),
		Kind:   KindFunction,
	}
}

// Unary returns a function binding of one argument named x.
func Unary(name, doc string, fn func(float64) float64) Binding {
	return NewFunction(name, doc, []string{"x"},
		func(args ...float64) float64 { return fn(args[0]) })
}

// Binary returns a function binding of two arguments named p and q.
func Binary(name, doc, p, q string, fn func(float64, float64) float64) Binding {
	return NewFunction(name, doc, []string{p, q},
		func(args ...float64) float64 { return fn(args[0], args[1]) })
}

// Signature returns the call signature of a function binding, or the name of
// any other binding.
func (b Binding) Signature() string {
	if b.Kind != KindFunction {
		return b.Name
	}

	params := b.Params
	if len(params) != b.Arity {
		params = make([]string, b.Arity)
		for i := range params {
			params[i] = "x" + strconv.Itoa(i+1)
		}
	}

	return b.Name + "(" + strings.Join(params, ", ") + ")"
}

// String returns the signature of a function, or "name = value" otherwise.
func (b Binding) String() string {
	if b.Kind == KindFunction {
		return b.Signature()
	}

	return b.Name + " = " + FormatResult(b.Value)
}

// Env is a mutable mapping from names to bindings, owned by one evaluation
// session. An Env is not safe for concurrent use.
type Env struct {
	bindings  map[string]Binding
	shadowing bool
}

// EnvOption configures a new [Env].
type EnvOption func(*envOptions)

type envOptions struct {
	shadowing bool
	builtins  bool
}

// WithShadowing permits assignment to names bound to constants and
// functions. The assigned name becomes a variable.
func WithShadowing(allow bool) EnvOption {
	return func(o *envOptions) { o.shadowing = allow }
}

// WithBuiltins selects whether the environment is seeded with the built-in
// constants and functions. The default is true.
func WithBuiltins(seed bool) EnvOption {
	return func(o *envOptions) { o.builtins = seed }
}

// NewEnv returns a new environment, seeded with the built-in constants and
// functions unless disabled with [WithBuiltins].
func NewEnv(opts ...EnvOption) *Env {
	o := envOptions{builtins: true}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	e := &Env{shadowing: o.shadowing}

	if o.builtins {
		e.bindings = builtinBindings()
	} else {
		e.bindings = make(map[string]Binding)
	}

	return e
}

// Shadowing reports whether constants and functions may be reassigned.
func (e *Env) Shadowing() bool { return e.shadowing }

// Len returns the number of bindings.
func (e *Env) Len() int { return len(e.bindings) }

// Lookup returns the binding for name.
func (e *Env) Lookup(name string) (Binding, bool) {
	b, ok := e.bindings[name]

	return b, ok
}

// Assign binds name to a variable holding value.
//
// Assigning to a name bound to a constant or function fails with
// [ErrReadOnly] unless the environment permits shadowing.
func (e *Env) Assign(name string, value float64) error {
	if b, ok := e.bindings[name]; ok && b.Kind != KindVariable && !e.shadowing {
		return ErrReadOnly.With(
			slog.String("name", name),
			slog.String("kind", b.Kind.String()),
		)
	}

	e.bindings[name] = NewVariable(name, value)

	return nil
}

// Define installs a host-provided binding, replacing any existing binding of
// the same name.
func (e *Env) Define(b Binding) error {
	if err := validateBinding(b); err != nil {
		return err
	}

	e.bindings[b.Name] = b

	return nil
}

// Remove deletes the binding of name and reports whether one existed.
func (e *Env) Remove(name string) bool {
	_, ok := e.bindings[name]
	delete(e.bindings, name)

	return ok
}

// Resolve returns the function bound to name after checking that it accepts
// argc arguments.
func (e *Env) Resolve(name string, argc int) (Binding, error) {
	b, ok := e.bindings[name]
	if !ok {
		return Binding{}, ErrUndefinedName.With(slog.String("name", name))
	}

	if b.Kind != KindFunction {
		return Binding{}, ErrNotCallable.With(
			slog.String("name", name),
			slog.String("kind", b.Kind.String()),
		)
	}

	if argc != b.Arity {
		return Binding{}, ErrArityMismatch.With(
			slog.String("name", name),
			slog.Int("expected", b.Arity),
			slog.Int("got", argc),
		)
	}

	return b, nil
}

// Call invokes the function bound to name with args.
func (e *Env) Call(name string, args ...float64) (float64, error) {
	b, err := e.Resolve(name, len(args))
	if err != nil {
		return 0, err
	}

	return b.Fn(args...), nil
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.bindings))
}

// All returns an iterator over all bindings in name order.
func (e *Env) All() iter.Seq[Binding] {
	return func(yield func(Binding) bool) {
		for _, name := range e.Names() {
			if !yield(e.bindings[name]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the environment.
func (e *Env) Clone() *Env {
	return &Env{
		bindings:  maps.Clone(e.bindings),
		shadowing: e.shadowing,
	}
}

func validateBinding(b Binding) error {
	name := slog.String("name", b.Name)

	if _, err := match.Match(Grammar(), b.Name, Ident); err != nil {
		return ErrInvalidBinding.Wrap(err).With(name)
	}

	switch b.Kind {
	case KindConstant, KindVariable:
		return nil

	case KindFunction:
		switch {
		case b.Fn == nil:
			return ErrInvalidBinding.With(name, slog.String("issue", "nil function"))
		case b.Arity < 0:
			return ErrInvalidBinding.With(name, slog.Int("arity", b.Arity))
		case b.Params != nil && len(b.Params) != b.Arity:
			return ErrInvalidBinding.With(
				name,
				slog.Int("arity", b.Arity),
				slog.Int("params", len(b.Params)),
			)
		}

		return nil

	default:
		return ErrInvalidBinding.With(name, slog.String("kind", b.Kind.String()))
	}
}
