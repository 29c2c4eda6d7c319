package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Expr is a parsing expression appearing in a rule body.
//
// The set of expression types is closed; the match engine switches over the
// concrete pointer types declared in this file.
type Expr interface {
	fmt.Stringer

	// arity is the number of CST children the expression contributes to the
	// node of its enclosing rule.
	arity() int
	// terms returns the direct sub-expressions.
	terms() []Expr
}

// Lit matches an exact string.
type Lit struct {
	Text string
}

// Class matches a single rune accepted by Match.
type Class struct {
	Name  string // short name used when formatting the grammar
	Desc  string // human-readable description used in failure messages
	Match func(rune) bool
}

// AnyChar matches any single rune.
type AnyChar struct{}

// Apply applies the rule with the given name.
type Apply struct {
	Name string
}

// Seq matches each term in order.
type Seq struct {
	Terms []Expr
}

// Alt tries each term in order and commits to the first that matches.
type Alt struct {
	Terms []Expr
}

// Repeat matches Term as many times as possible, at least Min times.
type Repeat struct {
	Term Expr
	Min  int
}

// Opt matches Term zero or one time.
type Opt struct {
	Term Expr
}

// Not succeeds, consuming nothing, when Term does not match.
type Not struct {
	Term Expr
}

// Look succeeds, consuming nothing, when Term matches.
type Look struct {
	Term Expr
}

// List matches zero or more Elem separated by Sep.
// It yields a single iteration node holding only the Elem nodes.
type List struct {
	Elem Expr
	Sep  Expr
}

// Text returns an expression matching text exactly.
func Text(text string) *Lit { return &Lit{Text: text} }

// Range returns an expression matching one rune in [lo, hi].
func Range(lo, hi rune) *Class {
	return &Class{
		Name:  strconv.QuoteRune(lo) + ".." + strconv.QuoteRune(hi),
		Desc:  "a character in " + strconv.QuoteRune(lo) + ".." + strconv.QuoteRune(hi),
		Match: func(r rune) bool { return lo <= r && r <= hi },
	}
}

// Letter returns an expression matching one Unicode letter.
func Letter() *Class {
	return &Class{Name: "letter", Desc: "a letter", Match: unicode.IsLetter}
}

// Digit returns an expression matching one decimal digit.
func Digit() *Class {
	return &Class{
		Name:  "digit",
		Desc:  "a digit",
		Match: func(r rune) bool { return '0' <= r && r <= '9' },
	}
}

// Alnum returns an expression matching one letter or decimal digit.
func Alnum() *Class {
	return &Class{
		Name: "alnum",
		Desc: "an alpha-numeric character",
		Match: func(r rune) bool {
			return unicode.IsLetter(r) || ('0' <= r && r <= '9')
		},
	}
}

// Any returns an expression matching any single rune.
func Any() *AnyChar { return &AnyChar{} }

// Ref returns an expression applying the rule identified by tag.
func Ref(tag fmt.Stringer) *Apply { return &Apply{Name: tag.String()} }

// Sequence returns an expression matching each term in order.
func Sequence(terms ...Expr) *Seq { return &Seq{Terms: terms} }

// Choice returns an ordered choice between terms.
func Choice(terms ...Expr) *Alt { return &Alt{Terms: terms} }

// Star returns an expression matching term zero or more times.
func Star(term Expr) *Repeat { return &Repeat{Term: term, Min: 0} }

// Plus returns an expression matching term one or more times.
func Plus(term Expr) *Repeat { return &Repeat{Term: term, Min: 1} }

// Maybe returns an expression matching term zero or one time.
func Maybe(term Expr) *Opt { return &Opt{Term: term} }

// Without returns a negative lookahead on term.
func Without(term Expr) *Not { return &Not{Term: term} }

// Ahead returns a positive lookahead on term.
func Ahead(term Expr) *Look { return &Look{Term: term} }

// ListOf returns an expression matching zero or more elem separated by sep.
func ListOf(elem, sep Expr) *List { return &List{Elem: elem, Sep: sep} }

// Arity returns the number of CST children e contributes to the node of its
// enclosing rule.
func Arity(e Expr) int { return e.arity() }

func (*Lit) arity() int      { return 1 }
func (*Class) arity() int    { return 1 }
func (*AnyChar) arity() int  { return 1 }
func (*Apply) arity() int    { return 1 }
func (*List) arity() int     { return 1 }
func (*Not) arity() int      { return 0 }
func (e *Repeat) arity() int { return e.Term.arity() }
func (e *Opt) arity() int    { return e.Term.arity() }
func (e *Look) arity() int   { return e.Term.arity() }

func (e *Seq) arity() int {
	n := 0
	for _, t := range e.Terms {
		n += t.arity()
	}

	return n
}

// arity of a choice is that of its first term; uniformity across terms is
// verified by the Builder.
func (e *Alt) arity() int {
	if len(e.Terms) == 0 {
		return 0
	}

	return e.Terms[0].arity()
}

func (*Lit) terms() []Expr      { return nil }
func (*Class) terms() []Expr    { return nil }
func (*AnyChar) terms() []Expr  { return nil }
func (*Apply) terms() []Expr    { return nil }
func (e *Seq) terms() []Expr    { return e.Terms }
func (e *Alt) terms() []Expr    { return e.Terms }
func (e *Repeat) terms() []Expr { return []Expr{e.Term} }
func (e *Opt) terms() []Expr    { return []Expr{e.Term} }
func (e *Not) terms() []Expr    { return []Expr{e.Term} }
func (e *Look) terms() []Expr   { return []Expr{e.Term} }
func (e *List) terms() []Expr   { return []Expr{e.Elem, e.Sep} }

func (e *Lit) String() string   { return strconv.Quote(e.Text) }
func (e *Class) String() string { return e.Name }
func (*AnyChar) String() string { return "any" }
func (e *Apply) String() string { return e.Name }
func (e *Seq) String() string   { return joinTerms(e.Terms, " ") }
func (e *Alt) String() string   { return joinTerms(e.Terms, " | ") }
func (e *Opt) String() string   { return group(e.Term) + "?" }
func (e *Not) String() string   { return "~" + group(e.Term) }
func (e *Look) String() string  { return "&" + group(e.Term) }

func (e *Repeat) String() string {
	if e.Min > 0 {
		return group(e.Term) + "+"
	}

	return group(e.Term) + "*"
}

func (e *List) String() string {
	return "ListOf<" + e.Elem.String() + ", " + e.Sep.String() + ">"
}

func joinTerms(terms []Expr, sep string) string {
	part := make([]string, len(terms))
	for i, t := range terms {
		if _, ok := t.(*Alt); ok && sep != " | " {
			part[i] = "(" + t.String() + ")"
		} else {
			part[i] = t.String()
		}
	}

	return strings.Join(part, sep)
}

// group parenthesizes compound expressions used as an operand of a prefix or
// suffix operator.
func group(e Expr) string {
	switch e.(type) {
	case *Seq, *Alt:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}
