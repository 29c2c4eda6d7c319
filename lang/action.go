package lang

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/ardnew/acalc/grammar"
	"github.com/ardnew/acalc/log"
	"github.com/ardnew/acalc/pkg"
	"github.com/ardnew/acalc/semantics"
)

// scope is the environment threaded through a walk.
type scope struct {
	env    *Env
	logger log.Logger
}

type (
	node     = grammar.Node[Rule]
	walker   = semantics.Walker[Rule, *scope, float64]
	registry = semantics.Registry[Rule, *scope, float64]
	action   = semantics.Action[Rule, *scope, float64]
	func0    = semantics.Func0[Rule, *scope, float64]
	func2    = semantics.Func2[Rule, *scope, float64]
	func3    = semantics.Func3[Rule, *scope, float64]
	func4    = semantics.Func4[Rule, *scope, float64]
)

var loadRegistry = sync.OnceValues(buildRegistry)

func buildRegistry() (*registry, error) {
	pass := semantics.Delegate[Rule, *scope, float64]()

	actions := []struct {
		action action
		rule   Rule
	}{
		{pass, Exp},
		{pass, AssignExp},
		{func3(assign), AssignExpAssign},
		{pass, AddExp},
		{binary(func(x, y float64) float64 { return x + y }), AddExpPlus},
		{binary(func(x, y float64) float64 { return x - y }), AddExpMinus},
		{pass, MulExp},
		{binary(func(x, y float64) float64 { return x * y }), MulExpTimes},
		{binary(func(x, y float64) float64 { return x / y }), MulExpDivide},
		{pass, ExpExp},
		{binary(math.Pow), ExpExpPower},
		{pass, PriExp},
		{func3(paren), PriExpParen},
		{unary(func(x float64) float64 { return x }), PriExpPos},
		{unary(func(x float64) float64 { return -x }), PriExpNeg},
		{func4(call), PriExpCall},
		{func0(value), Ident},
		{func0(value), Variable},
		{func0(number), Number},
	}

	reg := semantics.NewRegistry[Rule, *scope, float64](Grammar())
	errs := make([]error, 0, len(actions)+1)

	for _, a := range actions {
		errs = append(errs, reg.Register(a.rule, a.action))
	}

	if err := errors.Join(append(errs, reg.Seal())...); err != nil {
		return nil, err
	}

	return reg, nil
}

// AssignExp_assign = variable "=" AddExp
func assign(w *walker, _, name, _, rhs *node) (float64, error) {
	v, err := w.Eval(rhs)
	if err != nil {
		return 0, err
	}

	s := w.Env()
	if err := s.env.Assign(name.SourceString(), v); err != nil {
		return 0, pkg.WrapError(err).With(slog.Int("offset", name.Start))
	}

	s.logger.TraceContext(w.Context(), "assign",
		slog.String("name", name.SourceString()),
		slog.Float64("value", v),
	)

	return v, nil
}

// binary returns the action for an infix operator case: lhs op rhs.
func binary(op func(x, y float64) float64) func3 {
	return func(w *walker, _, lhs, _, rhs *node) (float64, error) {
		x, err := w.Eval(lhs)
		if err != nil {
			return 0, err
		}

		y, err := w.Eval(rhs)
		if err != nil {
			return 0, err
		}

		return op(x, y), nil
	}
}

// unary returns the action for a prefix operator case: op operand.
func unary(op func(x float64) float64) func2 {
	return func(w *walker, _, _, operand *node) (float64, error) {
		x, err := w.Eval(operand)
		if err != nil {
			return 0, err
		}

		return op(x), nil
	}
}

// PriExp_paren = "(" Exp ")"
func paren(w *walker, _, _, inner, _ *node) (float64, error) {
	return w.Eval(inner)
}

// PriExp_call = ident "(" ListOf<Exp, ","> ")"
//
// The callee is resolved before any argument is evaluated.
func call(w *walker, _, ident, _, args, _ *node) (float64, error) {
	s := w.Env()
	name := ident.SourceString()

	fn, err := s.env.Resolve(name, args.Arity())
	if err != nil {
		return 0, pkg.WrapError(err).With(slog.Int("offset", ident.Start))
	}

	vals, err := w.EvalIter(args)
	if err != nil {
		return 0, err
	}

	v := fn.Fn(vals...)

	s.logger.TraceContext(w.Context(), "call",
		slog.String("name", name),
		slog.Any("args", vals),
		slog.Float64("result", v),
	)

	return v, nil
}

func value(w *walker, n *node) (float64, error) {
	name := n.SourceString()

	b, ok := w.Env().env.Lookup(name)
	if !ok {
		return 0, ErrUndefinedName.With(
			slog.String("name", name),
			slog.Int("offset", n.Start),
		)
	}

	if b.Kind == KindFunction {
		return 0, ErrNotValue.With(
			slog.String("name", name),
			slog.Int("offset", n.Start),
		)
	}

	return b.Value, nil
}

// Literals too large for float64 are infinite, not errors.
func number(_ *walker, n *node) (float64, error) {
	v, err := strconv.ParseFloat(n.SourceString(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrMatch.Wrap(err).With(
			slog.String("number", n.SourceString()),
			slog.Int("offset", n.Start),
		)
	}

	return v, nil
}
