// Package lang implements a small arithmetic language with variables and
// built-in functions.
//
// # Grammar
//
//	Arithmetic {
//	  Exp              = AssignExp
//	  AssignExp        = AssignExp_assign | AddExp
//	  AssignExp_assign = variable "=" AddExp
//	  AddExp           = AddExp_plus | AddExp_minus | MulExp
//	  AddExp_plus      = AddExp "+" MulExp
//	  AddExp_minus     = AddExp "-" MulExp
//	  MulExp           = MulExp_times | MulExp_divide | ExpExp
//	  MulExp_times     = MulExp "*" ExpExp
//	  MulExp_divide    = MulExp "/" ExpExp
//	  ExpExp           = ExpExp_power | PriExp
//	  ExpExp_power     = PriExp "^" ExpExp
//	  PriExp           = PriExp_paren | PriExp_pos | PriExp_neg
//	                   | PriExp_call | ident | number
//	  PriExp_paren     = "(" Exp ")"
//	  PriExp_pos       = "+" PriExp
//	  PriExp_neg       = "-" PriExp
//	  PriExp_call      = ident "(" ListOf<Exp, ","> ")"
//	  ident    (an identifier) = (letter | "_") (alnum | "_")*
//	  variable (a variable)    = (letter | "_") (alnum | "_")*
//	  number   (a number)      = digit* "." digit+ | digit+
//	}
//
// Whitespace may appear between any two tokens. Additive and multiplicative
// operators associate to the left, exponentiation to the right. Unary sign
// binds tighter than exponentiation, so -2^2 is 4.
//
// # Values
//
// Every value is a float64. Division by zero and other domain errors
// produce IEEE-754 infinities and NaN rather than errors.
//
// # Environment
//
// Names are resolved in an [Env], which holds constants, variables and
// functions of fixed arity. A new Env is seeded with the constants pi, e,
// tau, phi, inf and nan and with common functions from package math (see
// [Builtins]). An assignment such as x = 2*pi binds a variable and yields its
// value. Assigning to a constant or function is an error unless the Env was
// created with [WithShadowing].
//
// # Evaluation
//
// [Evaluate] and [Interpreter.Evaluate] evaluate one expression;
// [Interpreter.EvaluateReader] evaluates a script of statements separated by
// newlines or semicolons.
//
//	env := lang.NewEnv()
//	lang.Evaluate(ctx, "r = 2", env)        // 2
//	lang.Evaluate(ctx, "pi * r^2", env)     // 12.566370614359172
//	lang.Evaluate(ctx, "hypot(3, 4)", env)  // 5
package lang
