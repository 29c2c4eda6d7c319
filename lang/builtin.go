package lang

// This file defines the built-in constants and functions every environment
// is seeded with. The table is built once per process and cloned for each
// new environment, so assignments never reach the shared copy.

import (
	"maps"
	"math"
	"slices"
	"sync"
)

var builtinCache = sync.OnceValue(func() map[string]Binding {
	bs := make(map[string]Binding)

	for _, b := range builtins() {
		bs[b.Name] = b
	}

	return bs
})

func builtinBindings() map[string]Binding { return maps.Clone(builtinCache()) }

// Builtins returns the built-in bindings in name order.
func Builtins() []Binding {
	return slices.Collect(NewEnv().All())
}

func builtins() []Binding {
	return []Binding{
		// Constants.
		NewConstant("pi", math.Pi, "ratio of a circle's circumference to its diameter"),
		NewConstant("e", math.E, "base of the natural logarithm"),
		NewConstant("tau", 2*math.Pi, "ratio of a circle's circumference to its radius"),
		NewConstant("phi", math.Phi, "golden ratio"),
		NewConstant("inf", math.Inf(1), "positive infinity"),
		NewConstant("nan", math.NaN(), "not a number"),

		// Unary functions.
		Unary("abs", "absolute value", math.Abs),
		Unary("acos", "arccosine, in radians", math.Acos),
		Unary("asin", "arcsine, in radians", math.Asin),
		Unary("atan", "arctangent, in radians", math.Atan),
		Unary("cbrt", "cube root", math.Cbrt),
		Unary("ceil", "least integer value not less than x", math.Ceil),
		Unary("cos", "cosine of x radians", math.Cos),
		Unary("cosh", "hyperbolic cosine", math.Cosh),
		Unary("exp", "e raised to the power x", math.Exp),
		Unary("floor", "greatest integer value not greater than x", math.Floor),
		Unary("ln", "natural logarithm", math.Log),
		Unary("log", "base-10 logarithm", math.Log10),
		Unary("log2", "base-2 logarithm", math.Log2),
		Unary("round", "nearest integer, rounding half away from zero", math.Round),
		Unary("sign", "-1, 0 or 1 according to the sign of x", sign),
		Unary("sin", "sine of x radians", math.Sin),
		Unary("sinh", "hyperbolic sine", math.Sinh),
		Unary("sqrt", "square root", math.Sqrt),
		Unary("tan", "tangent of x radians", math.Tan),
		Unary("tanh", "hyperbolic tangent", math.Tanh),
		Unary("trunc", "integer part of x", math.Trunc),

		// Binary functions.
		Binary("atan2", "arctangent of y/x using the signs of both", "y", "x", math.Atan2),
		Binary("hypot", "sqrt(p*p + q*q)", "p", "q", math.Hypot),
		Binary("max", "larger of x and y", "x", "y", math.Max),
		Binary("min", "smaller of x and y", "x", "y", math.Min),
		Binary("mod", "remainder of x/y with the sign of x", "x", "y", math.Mod),
		Binary("pow", "x raised to the power y", "x", "y", math.Pow),
	}
}

func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
