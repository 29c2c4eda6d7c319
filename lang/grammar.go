package lang

import (
	"sync"

	"github.com/ardnew/acalc/grammar"
)

// GrammarName and GrammarVersion identify the expression grammar.
const (
	GrammarName    = "Arithmetic"
	GrammarVersion = "1.0.0"
)

var loadGrammar = sync.OnceValues(buildGrammar)

// Grammar returns the expression grammar.
//
// Operator precedence is encoded by layering, from loosest to tightest:
// assignment, additive, multiplicative, exponentiation, then unary sign,
// parentheses, calls and atoms. Additive and multiplicative operators are
// left-associative through left recursion; exponentiation is
// right-associative.
func Grammar() *grammar.Spec[Rule] {
	spec, err := loadGrammar()
	if err != nil {
		panic("lang: invalid grammar: " + err.Error())
	}

	return spec
}

func buildGrammar() (*grammar.Spec[Rule], error) {
	var (
		b    = grammar.NewBuilder[Rule](GrammarName, GrammarVersion)
		ref  = func(r Rule) grammar.Expr { return grammar.Ref(r) }
		lit  = func(s string) grammar.Expr { return grammar.Text(s) }
		seq  = grammar.Sequence
		name = seq(
			grammar.Choice(grammar.Letter(), lit("_")),
			grammar.Star(grammar.Choice(grammar.Alnum(), lit("_"))),
		)
	)

	b.Define(Exp, ref(AssignExp))

	b.Define(AssignExp, grammar.Choice(
		b.Case(AssignExpAssign, seq(ref(Variable), lit("="), ref(AddExp))),
		ref(AddExp),
	))

	b.Define(AddExp, grammar.Choice(
		b.Case(AddExpPlus, seq(ref(AddExp), lit("+"), ref(MulExp))),
		b.Case(AddExpMinus, seq(ref(AddExp), lit("-"), ref(MulExp))),
		ref(MulExp),
	))

	b.Define(MulExp, grammar.Choice(
		b.Case(MulExpTimes, seq(ref(MulExp), lit("*"), ref(ExpExp))),
		b.Case(MulExpDivide, seq(ref(MulExp), lit("/"), ref(ExpExp))),
		ref(ExpExp),
	))

	b.Define(ExpExp, grammar.Choice(
		b.Case(ExpExpPower, seq(ref(PriExp), lit("^"), ref(ExpExp))),
		ref(PriExp),
	))

	b.Define(PriExp, grammar.Choice(
		b.Case(PriExpParen, seq(lit("("), ref(Exp), lit(")"))),
		b.Case(PriExpPos, seq(lit("+"), ref(PriExp))),
		b.Case(PriExpNeg, seq(lit("-"), ref(PriExp))),
		b.Case(PriExpCall, seq(
			ref(Ident), lit("("), grammar.ListOf(ref(Exp), lit(",")), lit(")"),
		)),
		ref(Ident),
		ref(Number),
	))

	b.Token(Ident, "an identifier", name)
	b.Token(Variable, "a variable", name)
	b.Token(Number, "a number", grammar.Choice(
		seq(grammar.Star(grammar.Digit()), lit("."), grammar.Plus(grammar.Digit())),
		grammar.Plus(grammar.Digit()),
	))

	return b.Build(Exp)
}
